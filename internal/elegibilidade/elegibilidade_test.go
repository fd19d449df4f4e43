package elegibilidade

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reversa_back_end/internal/models"
)

func pedidoEntregueHa(dias int, total float64, categorias ...string) *models.Pedido {
	if len(categorias) == 0 {
		categorias = []string{"vestuario"}
	}
	entrega := time.Now().AddDate(0, 0, -dias)
	itens := make([]models.ItemPedido, 0, len(categorias))
	for i, cat := range categorias {
		itens = append(itens, models.ItemPedido{
			ID:            fmt.Sprintf("item-%d", i+1),
			Nome:          "Produto " + cat,
			Categoria:     cat,
			PrecoUnitario: total / float64(len(categorias)),
			Quantidade:    1,
		})
	}
	return &models.Pedido{
		Itens:       itens,
		ValorTotal:  total,
		DataPedido:  entrega.AddDate(0, 0, -3),
		DataEntrega: &entrega,
	}
}

func regrasPadrao() models.RegrasElegibilidade {
	return models.RegrasElegibilidade{
		PrazoArrependimentoDias: 15,
		PrazoDefeitoDias:        30,
		ValorMinimo:             0,
		AprovacaoAutomatica:     true,
	}
}

func TestAvaliar_PedidoDentroDasRegras(t *testing.T) {
	pedido := pedidoEntregueHa(10, 289.90)

	res := Avaliar(pedido, regrasPadrao(), TipoDevolucao, "tamanho_errado", false)

	assert.True(t, res.Elegivel)
	assert.True(t, res.AprovacaoAutomatica)
	assert.Empty(t, res.Motivos)
	assert.Empty(t, res.Avisos)
}

func TestAvaliar_PedidoInvalido(t *testing.T) {
	res := Avaliar(nil, regrasPadrao(), TipoDevolucao, "defeito", true)

	assert.False(t, res.Elegivel)
	assert.False(t, res.AprovacaoAutomatica)
	require.Len(t, res.Motivos, 1)
	assert.Equal(t, "Pedido inválido ou não encontrado", res.Motivos[0])
}

func TestAvaliar_PrazoExcedido(t *testing.T) {
	pedido := pedidoEntregueHa(20, 289.90)

	res := Avaliar(pedido, regrasPadrao(), TipoDevolucao, "tamanho_errado", false)

	assert.False(t, res.Elegivel)
	assert.False(t, res.AprovacaoAutomatica)
	require.Len(t, res.Motivos, 1)
	assert.Equal(t, "Prazo excedido: 20 dias (limite: 15 dias)", res.Motivos[0])
}

func TestAvaliar_MotivoDefeitoUsaPrazoProprio(t *testing.T) {
	// 20 dias estoura o prazo de arrependimento (15) mas não o de defeito (30)
	pedido := pedidoEntregueHa(20, 150.00)

	res := Avaliar(pedido, regrasPadrao(), TipoDevolucao, "defeito", true)

	assert.True(t, res.Elegivel)
	assert.Empty(t, res.Motivos)
}

func TestAvaliar_SemDataEntregaUsaDataPedido(t *testing.T) {
	pedido := pedidoEntregueHa(5, 100.00)
	pedido.DataEntrega = nil
	pedido.DataPedido = time.Now().AddDate(0, 0, -20)

	res := Avaliar(pedido, regrasPadrao(), TipoDevolucao, "tamanho_errado", false)

	assert.False(t, res.Elegivel)
	require.Len(t, res.Motivos, 1)
	assert.Contains(t, res.Motivos[0], "Prazo excedido: 20 dias")
}

func TestAvaliar_ValorMinimo(t *testing.T) {
	regras := regrasPadrao()
	regras.ValorMinimo = 50.00
	pedido := pedidoEntregueHa(3, 39.90)

	res := Avaliar(pedido, regras, TipoDevolucao, "tamanho_errado", false)

	assert.False(t, res.Elegivel)
	require.Len(t, res.Motivos, 1)
	assert.Equal(t, "Valor do pedido R$ 39.90 abaixo do mínimo R$ 50.00", res.Motivos[0])
}

func TestAvaliar_CategoriaBloqueada(t *testing.T) {
	regras := regrasPadrao()
	regras.CategoriasBloqueadas = []string{"perecivel", "intimo"}
	pedido := pedidoEntregueHa(3, 120.00, "vestuario", "intimo")

	res := Avaliar(pedido, regras, TipoDevolucao, "tamanho_errado", false)

	assert.False(t, res.Elegivel)
	require.Len(t, res.Motivos, 1)
	assert.Contains(t, res.Motivos[0], "intimo")
	assert.NotContains(t, res.Motivos[0], "vestuario")
}

func TestAvaliar_ListaBloqueioVaziaNuncaBloqueia(t *testing.T) {
	regras := regrasPadrao()
	regras.CategoriasBloqueadas = []string{}
	pedido := pedidoEntregueHa(3, 120.00, "perecivel")

	res := Avaliar(pedido, regras, TipoDevolucao, "tamanho_errado", false)

	assert.True(t, res.Elegivel)
}

func TestAvaliar_FalhasSimultaneasAcumulam(t *testing.T) {
	// Sem curto-circuito: prazo E valor mínimo aparecem juntos
	regras := regrasPadrao()
	regras.ValorMinimo = 100.00
	pedido := pedidoEntregueHa(25, 39.90)

	res := Avaliar(pedido, regras, TipoDevolucao, "tamanho_errado", false)

	assert.False(t, res.Elegivel)
	require.Len(t, res.Motivos, 2)
	assert.Contains(t, res.Motivos[0], "Prazo excedido")
	assert.Contains(t, res.Motivos[1], "abaixo do mínimo")
}

func TestAvaliar_FotosObrigatoriasSoAfetamAutoAprovacao(t *testing.T) {
	regras := regrasPadrao()
	regras.FotosObrigatoriasDefeito = true
	pedido := pedidoEntregueHa(3, 200.00)

	res := Avaliar(pedido, regras, TipoDevolucao, "defeito", false)

	assert.True(t, res.Elegivel)
	assert.False(t, res.AprovacaoAutomatica)
	require.Len(t, res.Avisos, 1)
	assert.Contains(t, res.Avisos[0], "Fotos do defeito")

	// Com fotos a aprovação automática volta
	res = Avaliar(pedido, regras, TipoDevolucao, "defeito", true)
	assert.True(t, res.AprovacaoAutomatica)
	assert.Empty(t, res.Avisos)
}

func TestAvaliar_MotivoSubjetivoForcaRevisao(t *testing.T) {
	pedido := pedidoEntregueHa(3, 200.00)

	for _, motivo := range []string{"arrependimento", "nao_gostei"} {
		res := Avaliar(pedido, regrasPadrao(), TipoDevolucao, motivo, false)
		assert.True(t, res.Elegivel, motivo)
		assert.False(t, res.AprovacaoAutomatica, motivo)
		assert.NotEmpty(t, res.Avisos, motivo)
	}
}

func TestAvaliar_TrocaForaDaJanelaCurta(t *testing.T) {
	// 10 dias: dentro do prazo geral (15) mas fora da janela de troca (7)
	pedido := pedidoEntregueHa(10, 200.00)

	res := Avaliar(pedido, regrasPadrao(), TipoTroca, "tamanho_errado", false)

	assert.True(t, res.Elegivel)
	assert.False(t, res.AprovacaoAutomatica)
	require.Len(t, res.Avisos, 1)
	assert.Contains(t, res.Avisos[0], "aprovação automática")

	// Devolução com os mesmos 10 dias não sofre a restrição
	res = Avaliar(pedido, regrasPadrao(), TipoDevolucao, "tamanho_errado", false)
	assert.True(t, res.AprovacaoAutomatica)
}

func TestAvaliar_AutoAprovacaoNuncaSemElegibilidade(t *testing.T) {
	pedido := pedidoEntregueHa(40, 200.00)

	res := Avaliar(pedido, regrasPadrao(), TipoDevolucao, "tamanho_errado", false)

	assert.False(t, res.Elegivel)
	assert.False(t, res.AprovacaoAutomatica)
}

func TestAvaliar_FlagDaLojaDesligada(t *testing.T) {
	regras := regrasPadrao()
	regras.AprovacaoAutomatica = false
	pedido := pedidoEntregueHa(3, 200.00)

	res := Avaliar(pedido, regras, TipoDevolucao, "tamanho_errado", false)

	assert.True(t, res.Elegivel)
	assert.False(t, res.AprovacaoAutomatica)
}
