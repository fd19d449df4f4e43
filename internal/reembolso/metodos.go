package reembolso

import (
	"math"

	"reversa_back_end/internal/models"
)

// Metodo de estorno oferecido ao cliente.
type Metodo string

const (
	MetodoCartao  Metodo = "cartao"
	MetodoPix     Metodo = "pix"
	MetodoBoleto  Metodo = "boleto"
	MetodoVoucher Metodo = "voucher"
)

// Tipos de chave PIX aceitos na configuração da loja.
var tiposChavePix = map[string]bool{
	"any":   true,
	"cpf":   true,
	"cnpj":  true,
	"email": true,
	"phone": true,
}

// MetodoValido informa se m é um método conhecido.
func MetodoValido(m Metodo) bool {
	switch m {
	case MetodoCartao, MetodoPix, MetodoBoleto, MetodoVoucher:
		return true
	}
	return false
}

// TipoChavePixValido valida a restrição de chave PIX da configuração.
func TipoChavePixValido(tipo string) bool {
	return tiposChavePix[tipo]
}

// ResolverMetodos devolve exatamente o subconjunto de métodos habilitados
// na configuração da loja, na ordem de exibição do formulário de abertura.
// Com PriorizarVoucher ligado o voucher aparece primeiro.
func ResolverMetodos(config models.ConfigReembolso) []Metodo {
	var metodos []Metodo
	if config.PriorizarVoucher && config.VoucherHabilitado {
		metodos = append(metodos, MetodoVoucher)
	}
	if config.CartaoHabilitado {
		metodos = append(metodos, MetodoCartao)
	}
	if config.PixHabilitado {
		metodos = append(metodos, MetodoPix)
	}
	if config.BoletoHabilitado {
		metodos = append(metodos, MetodoBoleto)
	}
	if !config.PriorizarVoucher && config.VoucherHabilitado {
		metodos = append(metodos, MetodoVoucher)
	}
	return metodos
}

// AplicarBonusVoucher calcula o valor de estorno em voucher com o bônus
// percentual da loja, arredondado em duas casas. Só o caminho voucher
// recebe bônus; o valor solicitado em si nunca é alterado.
func AplicarBonusVoucher(valor float64, config models.ConfigReembolso) float64 {
	return math.Round(valor*(1+config.BonusVoucher/100)*100) / 100
}
