package reembolso

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reversa_back_end/internal/models"
)

func TestResolverMetodos_SubconjuntoHabilitado(t *testing.T) {
	config := models.ConfigReembolso{
		CartaoHabilitado:  true,
		PixHabilitado:     true,
		BoletoHabilitado:  false,
		VoucherHabilitado: true,
	}

	metodos := ResolverMetodos(config)

	assert.Equal(t, []Metodo{MetodoCartao, MetodoPix, MetodoVoucher}, metodos)
}

func TestResolverMetodos_NenhumHabilitado(t *testing.T) {
	assert.Empty(t, ResolverMetodos(models.ConfigReembolso{}))
}

func TestResolverMetodos_VoucherPrioritarioVemPrimeiro(t *testing.T) {
	config := models.ConfigReembolso{
		CartaoHabilitado:  true,
		VoucherHabilitado: true,
		PriorizarVoucher:  true,
	}

	metodos := ResolverMetodos(config)

	assert.Equal(t, []Metodo{MetodoVoucher, MetodoCartao}, metodos)
}

func TestAplicarBonusVoucher(t *testing.T) {
	assert.Equal(t, 120.00, AplicarBonusVoucher(100, models.ConfigReembolso{PriorizarVoucher: true, BonusVoucher: 20}))
	assert.Equal(t, 100.00, AplicarBonusVoucher(100, models.ConfigReembolso{PriorizarVoucher: true, BonusVoucher: 0}))
	// Arredondamento em duas casas
	assert.Equal(t, 33.32, AplicarBonusVoucher(29.93, models.ConfigReembolso{BonusVoucher: 11.33}))
}

func TestTipoChavePixValido(t *testing.T) {
	for _, tipo := range []string{"any", "cpf", "cnpj", "email", "phone"} {
		assert.True(t, TipoChavePixValido(tipo), tipo)
	}
	assert.False(t, TipoChavePixValido("aleatoria"))
	assert.False(t, TipoChavePixValido(""))
}
