package reembolso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransicionar_FluxoFeliz(t *testing.T) {
	ctx := Contexto{ValorSolicitado: 100, ValorFinal: 100, Metodo: MetodoPix, TransacaoID: "E2E-123", Ator: "agente"}

	res, err := Transicionar(StatusSolicitado, AcaoIniciarAnalise, ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusEmAnalise, res.ProximoStatus)

	res, err = Transicionar(StatusEmAnalise, AcaoAprovar, ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusAprovado, res.ProximoStatus)

	res, err = Transicionar(StatusAprovado, AcaoIniciarProcessamento, ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessando, res.ProximoStatus)

	res, err = Transicionar(StatusProcessando, AcaoMarcarPago, ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusConcluido, res.ProximoStatus)
}

func TestTransicionar_AprovarDireto(t *testing.T) {
	// Aprovação direta de SOLICITADO, sem passar por análise
	res, err := Transicionar(StatusSolicitado, AcaoAprovar, Contexto{ValorSolicitado: 80, ValorFinal: 50})
	require.NoError(t, err)
	assert.Equal(t, StatusAprovado, res.ProximoStatus)
}

func TestTransicionar_ValorFinalAcimaDoSolicitado(t *testing.T) {
	res, err := Transicionar(StatusSolicitado, AcaoAprovar, Contexto{ValorSolicitado: 100, ValorFinal: 150})

	assert.Nil(t, res)
	var errValor *ErroValorInvalido
	require.ErrorAs(t, err, &errValor)
	assert.Equal(t, 150.0, errValor.ValorFinal)
	assert.Equal(t, 100.0, errValor.ValorSolicitado)
}

func TestTransicionar_ValorFinalZeroOuNegativo(t *testing.T) {
	for _, valor := range []float64{0, -10} {
		res, err := Transicionar(StatusEmAnalise, AcaoAprovar, Contexto{ValorSolicitado: 100, ValorFinal: valor})
		assert.Nil(t, res)
		var errValor *ErroValorInvalido
		assert.ErrorAs(t, err, &errValor)
	}
}

func TestTransicionar_RecusarExigeMotivo(t *testing.T) {
	res, err := Transicionar(StatusEmAnalise, AcaoRecusar, Contexto{})

	assert.Nil(t, res)
	var errEvid *ErroEvidenciaAusente
	require.ErrorAs(t, err, &errEvid)
	assert.Equal(t, "motivo_recusa", errEvid.Campo)

	res, err = Transicionar(StatusEmAnalise, AcaoRecusar, Contexto{MotivoRecusa: "Fora da política"})
	require.NoError(t, err)
	assert.Equal(t, StatusRecusado, res.ProximoStatus)
}

func TestTransicionar_RecusarDeAprovado(t *testing.T) {
	res, err := Transicionar(StatusAprovado, AcaoRecusar, Contexto{MotivoRecusa: "Erro operacional"})
	require.NoError(t, err)
	assert.Equal(t, StatusRecusado, res.ProximoStatus)
}

func TestTransicionar_RecusarTardeDemais(t *testing.T) {
	// Depois de PROCESSANDO não há mais recusa
	for _, status := range []Status{StatusProcessando, StatusConcluido, StatusRecusado} {
		_, err := Transicionar(status, AcaoRecusar, Contexto{MotivoRecusa: "x"})
		var errTrans *ErroTransicaoInvalida
		assert.ErrorAs(t, err, &errTrans, string(status))
	}
}

func TestTransicionar_MarcarPagoExigeProvaDoMetodo(t *testing.T) {
	// Voucher sem código
	res, err := Transicionar(StatusProcessando, AcaoMarcarPago, Contexto{Metodo: MetodoVoucher, CodigoVoucher: ""})
	assert.Nil(t, res)
	var errEvid *ErroEvidenciaAusente
	require.ErrorAs(t, err, &errEvid)
	assert.Equal(t, "codigo_voucher", errEvid.Campo)

	// PIX sem transação
	res, err = Transicionar(StatusProcessando, AcaoMarcarPago, Contexto{Metodo: MetodoPix})
	assert.Nil(t, res)
	require.ErrorAs(t, err, &errEvid)
	assert.Equal(t, "transacao_id", errEvid.Campo)

	// Voucher com código passa
	res, err = Transicionar(StatusProcessando, AcaoMarcarPago, Contexto{Metodo: MetodoVoucher, CodigoVoucher: "VC-10"})
	require.NoError(t, err)
	assert.Equal(t, StatusConcluido, res.ProximoStatus)

	// Cartão com transação passa
	res, err = Transicionar(StatusProcessando, AcaoMarcarPago, Contexto{Metodo: MetodoCartao, TransacaoID: "re_123"})
	require.NoError(t, err)
	assert.Equal(t, StatusConcluido, res.ProximoStatus)
}

func TestTransicionar_ReverterVoltaUmPasso(t *testing.T) {
	casos := map[Status]Status{
		StatusEmAnalise:   StatusSolicitado,
		StatusAprovado:    StatusEmAnalise,
		StatusProcessando: StatusAprovado,
	}
	for de, para := range casos {
		res, err := Transicionar(de, AcaoReverter, Contexto{Ator: "agente"})
		require.NoError(t, err, string(de))
		assert.Equal(t, para, res.ProximoStatus)
		assert.Equal(t, de, res.Evento.DeStatus)
		assert.Equal(t, para, res.Evento.ParaStatus)
	}
}

func TestTransicionar_ReverterProibido(t *testing.T) {
	for _, status := range []Status{StatusSolicitado, StatusConcluido, StatusRecusado} {
		_, err := Transicionar(status, AcaoReverter, Contexto{})
		var errTrans *ErroTransicaoInvalida
		assert.ErrorAs(t, err, &errTrans, string(status))
	}
}

func TestTransicionar_TerminaisNaoAceitamNada(t *testing.T) {
	acoes := []Acao{AcaoIniciarAnalise, AcaoAprovar, AcaoRecusar, AcaoIniciarProcessamento, AcaoMarcarPago, AcaoReverter}
	for _, status := range []Status{StatusConcluido, StatusRecusado} {
		assert.Empty(t, AcoesDisponiveis(status))
		for _, acao := range acoes {
			res, err := Transicionar(status, acao, Contexto{ValorSolicitado: 1, ValorFinal: 1, MotivoRecusa: "x", TransacaoID: "x"})
			assert.Nil(t, res)
			assert.Error(t, err)
		}
	}
}

func TestTransicionar_StatusDesconhecido(t *testing.T) {
	_, err := Transicionar(Status("Nova"), AcaoAprovar, Contexto{ValorSolicitado: 1, ValorFinal: 1})
	var errTrans *ErroTransicaoInvalida
	assert.ErrorAs(t, err, &errTrans)
}

func TestTransicionar_EventoUnicoPorTransicao(t *testing.T) {
	res, err := Transicionar(StatusAprovado, AcaoReverter, Contexto{Ator: "agente", Descricao: "Reavaliação solicitada"})
	require.NoError(t, err)

	assert.Equal(t, AcaoReverter, res.Evento.Acao)
	assert.Equal(t, "Reavaliação solicitada", res.Evento.Descricao)
	assert.Equal(t, "agente", res.Evento.Ator)
}

func TestTransicionar_DescricaoEAtorPadrao(t *testing.T) {
	res, err := Transicionar(StatusAprovado, AcaoIniciarProcessamento, Contexto{})
	require.NoError(t, err)

	assert.Equal(t, "Status alterado para PROCESSANDO", res.Evento.Descricao)
	assert.Equal(t, "system", res.Evento.Ator)
}

func TestPodeExecutar_GatesDaUI(t *testing.T) {
	assert.True(t, PodeExecutar(StatusSolicitado, AcaoAprovar))
	assert.True(t, PodeExecutar(StatusEmAnalise, AcaoAprovar))
	assert.False(t, PodeExecutar(StatusProcessando, AcaoAprovar))
	assert.False(t, PodeExecutar(StatusConcluido, AcaoMarcarPago))

	assert.ElementsMatch(t, []Acao{AcaoIniciarAnalise, AcaoAprovar, AcaoRecusar}, AcoesDisponiveis(StatusSolicitado))
	assert.ElementsMatch(t, []Acao{AcaoRecusar, AcaoIniciarProcessamento, AcaoReverter}, AcoesDisponiveis(StatusAprovado))
}
