package devolucao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransicionar_FluxoCompleto(t *testing.T) {
	ctx := Contexto{Ator: "agente", CodigoRastreio: "BR123456789BR"}

	passos := []struct {
		de   Status
		acao Acao
		para Status
	}{
		{StatusNova, AcaoIniciarAnalise, StatusEmAnalise},
		{StatusEmAnalise, AcaoAprovar, StatusAprovada},
		{StatusAprovada, AcaoLiberarPostagem, StatusAguardandoPostagem},
		{StatusAguardandoPostagem, AcaoConfirmarRecebimento, StatusRecebidaCD},
		{StatusRecebidaCD, AcaoConcluir, StatusConcluida},
	}

	for _, passo := range passos {
		res, err := Transicionar(passo.de, passo.acao, ctx)
		require.NoError(t, err, string(passo.acao))
		assert.Equal(t, passo.para, res.ProximoStatus)
		assert.Equal(t, passo.de, res.Evento.DeStatus)
		assert.Equal(t, passo.para, res.Evento.ParaStatus)
	}
}

func TestTransicionar_RecusarExigeMotivo(t *testing.T) {
	_, err := Transicionar(StatusEmAnalise, AcaoRecusar, Contexto{})
	var errEvid *ErroEvidenciaAusente
	require.ErrorAs(t, err, &errEvid)
	assert.Equal(t, "motivo_recusa", errEvid.Campo)

	res, err := Transicionar(StatusEmAnalise, AcaoRecusar, Contexto{MotivoRecusa: "Produto sem defeito aparente"})
	require.NoError(t, err)
	assert.Equal(t, StatusRecusada, res.ProximoStatus)
}

func TestTransicionar_RecebimentoExigeRastreio(t *testing.T) {
	_, err := Transicionar(StatusAguardandoPostagem, AcaoConfirmarRecebimento, Contexto{})
	var errEvid *ErroEvidenciaAusente
	require.ErrorAs(t, err, &errEvid)
	assert.Equal(t, "codigo_rastreio", errEvid.Campo)
}

func TestTransicionar_ReverterVoltaUmPasso(t *testing.T) {
	casos := map[Status]Status{
		StatusEmAnalise:          StatusNova,
		StatusAprovada:           StatusEmAnalise,
		StatusAguardandoPostagem: StatusAprovada,
		StatusRecebidaCD:         StatusAguardandoPostagem,
	}
	for de, para := range casos {
		res, err := Transicionar(de, AcaoReverter, Contexto{})
		require.NoError(t, err, string(de))
		assert.Equal(t, para, res.ProximoStatus)
	}
}

func TestTransicionar_TerminaisEStatusInicial(t *testing.T) {
	for _, status := range []Status{StatusConcluida, StatusRecusada} {
		assert.Empty(t, AcoesDisponiveis(status))
	}

	// Nova não tem passo anterior
	_, err := Transicionar(StatusNova, AcaoReverter, Contexto{})
	var errTrans *ErroTransicaoInvalida
	assert.ErrorAs(t, err, &errTrans)
}

func TestTransicionar_VocabularioDeReembolsoRejeitado(t *testing.T) {
	// Status do fluxo de reembolso não existem aqui
	_, err := Transicionar(Status("APROVADO"), AcaoConcluir, Contexto{})
	var errTrans *ErroTransicaoInvalida
	require.ErrorAs(t, err, &errTrans)
}

func TestTransicionar_FalhaNaoProduzEvento(t *testing.T) {
	res, err := Transicionar(StatusConcluida, AcaoAprovar, Contexto{})
	assert.Nil(t, res)
	assert.Error(t, err)
}
