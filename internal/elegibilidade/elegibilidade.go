package elegibilidade

import (
	"fmt"
	"strings"
	"time"

	"reversa_back_end/internal/models"
)

// Tipos de solicitação aceitos pelo avaliador.
const (
	TipoTroca     = "troca"
	TipoDevolucao = "devolucao"
)

// Prazo máximo (em dias) para troca manter aprovação automática,
// independente do prazo geral de elegibilidade da loja.
const PrazoAutoAprovacaoTroca = 7

// Motivos de defeito usam o prazo de defeito e exigem fotos quando a loja configurar.
var motivosDefeito = map[string]bool{
	"defeito":            true,
	"produto_danificado": true,
	"produto_errado":     true,
}

// Motivos inerentemente subjetivos: nunca passam sem revisão manual.
var motivosSubjetivos = map[string]bool{
	"arrependimento":   true,
	"nao_gostei":       true,
	"desisti_da_compra": true,
}

// Resultado é calculado a cada avaliação e nunca persistido.
// Elegivel depende só das checagens duras (prazo, valor, categoria);
// os avisos afetam apenas AprovacaoAutomatica.
type Resultado struct {
	Elegivel            bool     `json:"elegivel"`
	AprovacaoAutomatica bool     `json:"aprovacao_automatica"`
	Motivos             []string `json:"motivos"`
	Avisos              []string `json:"avisos"`
}

// Avaliar aplica as regras da loja a um pedido e decide se a solicitação
// qualifica e se pode ser aprovada sem revisão humana. Todas as checagens
// duras rodam até o fim: uma solicitação pode falhar por mais de um motivo
// ao mesmo tempo.
func Avaliar(pedido *models.Pedido, regras models.RegrasElegibilidade, tipo, motivo string, temFotos bool) Resultado {
	res := Resultado{Elegivel: true, Motivos: []string{}, Avisos: []string{}}

	// Pedido ausente ou sem itens: nada mais a avaliar
	if pedido == nil || len(pedido.Itens) == 0 {
		res.Elegivel = false
		res.Motivos = append(res.Motivos, "Pedido inválido ou não encontrado")
		return res
	}

	// Referência de tempo única: data de entrega, senão data do pedido
	referencia := pedido.DataPedido
	if pedido.DataEntrega != nil {
		referencia = *pedido.DataEntrega
	}
	diasCorridos := int(time.Since(referencia).Hours() / 24)

	// 1. Prazo, por categoria de motivo
	prazo := regras.PrazoArrependimentoDias
	if motivosDefeito[motivo] {
		prazo = regras.PrazoDefeitoDias
	}
	if diasCorridos > prazo {
		res.Elegivel = false
		res.Motivos = append(res.Motivos, fmt.Sprintf("Prazo excedido: %d dias (limite: %d dias)", diasCorridos, prazo))
	}

	// 2. Valor mínimo do pedido
	if pedido.ValorTotal < regras.ValorMinimo {
		res.Elegivel = false
		res.Motivos = append(res.Motivos, fmt.Sprintf("Valor do pedido R$ %.2f abaixo do mínimo R$ %.2f", pedido.ValorTotal, regras.ValorMinimo))
	}

	// 3. Categorias bloqueadas
	if bloqueadas := categoriasBloqueadas(pedido.Itens, regras.CategoriasBloqueadas); len(bloqueadas) > 0 {
		res.Elegivel = false
		res.Motivos = append(res.Motivos, "Categoria bloqueada para devolução: "+strings.Join(bloqueadas, ", "))
	}

	// As checagens abaixo não afetam a elegibilidade, apenas a aprovação automática
	revisaoManual := false

	if regras.FotosObrigatoriasDefeito && motivosDefeito[motivo] && !temFotos {
		revisaoManual = true
		res.Avisos = append(res.Avisos, "Fotos do defeito não enviadas, revisão manual necessária")
	}

	if motivosSubjetivos[motivo] {
		revisaoManual = true
		res.Avisos = append(res.Avisos, "Motivo sujeito a avaliação subjetiva, revisão manual necessária")
	}

	// Trocas têm janela de aprovação automática mais curta que o prazo geral
	if tipo == TipoTroca && diasCorridos > PrazoAutoAprovacaoTroca {
		revisaoManual = true
		res.Avisos = append(res.Avisos, fmt.Sprintf("Troca com %d dias corridos excede a janela de aprovação automática (%d dias), revisão manual necessária", diasCorridos, PrazoAutoAprovacaoTroca))
	}

	res.AprovacaoAutomatica = res.Elegivel && regras.AprovacaoAutomatica && !revisaoManual
	return res
}

func categoriasBloqueadas(itens []models.ItemPedido, bloqueio []string) []string {
	if len(bloqueio) == 0 {
		return nil
	}
	set := make(map[string]bool, len(bloqueio))
	for _, cat := range bloqueio {
		set[strings.ToLower(cat)] = true
	}

	var encontradas []string
	vistas := make(map[string]bool)
	for _, item := range itens {
		cat := strings.ToLower(item.Categoria)
		if set[cat] && !vistas[cat] {
			vistas[cat] = true
			encontradas = append(encontradas, item.Categoria)
		}
	}
	return encontradas
}
