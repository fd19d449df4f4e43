package devolucao

import "fmt"

// Status de uma solicitação de troca/devolução. Vocabulário próprio,
// separado do fluxo de reembolso: uma ação de reembolso nunca opera
// sobre estes status e vice-versa.
type Status string

const (
	StatusNova               Status = "Nova"
	StatusEmAnalise          Status = "Em análise"
	StatusAprovada           Status = "Aprovada"
	StatusAguardandoPostagem Status = "Aguardando postagem"
	StatusRecebidaCD         Status = "Recebida em CD"
	StatusConcluida          Status = "Concluída"
	StatusRecusada           Status = "Recusada"
)

type Acao string

const (
	AcaoIniciarAnalise       Acao = "iniciar_analise"
	AcaoAprovar              Acao = "aprovar"
	AcaoRecusar              Acao = "recusar"
	AcaoLiberarPostagem      Acao = "liberar_postagem"
	AcaoConfirmarRecebimento Acao = "confirmar_recebimento"
	AcaoConcluir             Acao = "concluir"
	AcaoReverter             Acao = "reverter"
)

// Ordem canônica do fluxo feliz; Recusada é desvio terminal.
var ordemCanonica = []Status{
	StatusNova,
	StatusEmAnalise,
	StatusAprovada,
	StatusAguardandoPostagem,
	StatusRecebidaCD,
	StatusConcluida,
}

type ErroTransicaoInvalida struct {
	De   Status
	Acao Acao
}

func (e *ErroTransicaoInvalida) Error() string {
	return fmt.Sprintf("transição inválida: ação %s não permitida no status %q", e.Acao, e.De)
}

type ErroEvidenciaAusente struct {
	Campo string
}

func (e *ErroEvidenciaAusente) Error() string {
	return fmt.Sprintf("evidência obrigatória ausente: %s", e.Campo)
}

type Contexto struct {
	MotivoRecusa   string
	CodigoRastreio string
	Ator           string
	Descricao      string
}

type Evento struct {
	Acao       Acao
	Descricao  string
	Ator       string
	DeStatus   Status
	ParaStatus Status
}

type Resultado struct {
	ProximoStatus Status
	Evento        Evento
}

func StatusValido(s Status) bool {
	switch s {
	case StatusNova, StatusEmAnalise, StatusAprovada, StatusAguardandoPostagem, StatusRecebidaCD, StatusConcluida, StatusRecusada:
		return true
	}
	return false
}

func Terminal(s Status) bool {
	return s == StatusConcluida || s == StatusRecusada
}

func PodeExecutar(status Status, acao Acao) bool {
	if Terminal(status) {
		return false
	}
	switch acao {
	case AcaoIniciarAnalise:
		return status == StatusNova
	case AcaoAprovar:
		return status == StatusNova || status == StatusEmAnalise
	case AcaoRecusar:
		return status == StatusNova || status == StatusEmAnalise || status == StatusAprovada
	case AcaoLiberarPostagem:
		return status == StatusAprovada
	case AcaoConfirmarRecebimento:
		return status == StatusAguardandoPostagem
	case AcaoConcluir:
		return status == StatusRecebidaCD
	case AcaoReverter:
		return status != StatusNova
	}
	return false
}

func AcoesDisponiveis(status Status) []Acao {
	todas := []Acao{AcaoIniciarAnalise, AcaoAprovar, AcaoRecusar, AcaoLiberarPostagem, AcaoConfirmarRecebimento, AcaoConcluir, AcaoReverter}
	var legais []Acao
	for _, a := range todas {
		if PodeExecutar(status, a) {
			legais = append(legais, a)
		}
	}
	return legais
}

// Transicionar valida e executa uma ação sobre o status atual.
// Mesmo contrato do fluxo de reembolso: um evento por transição aceita,
// nenhuma mutação parcial em caso de erro.
func Transicionar(status Status, acao Acao, ctx Contexto) (*Resultado, error) {
	if !StatusValido(status) {
		return nil, &ErroTransicaoInvalida{De: status, Acao: acao}
	}
	if !PodeExecutar(status, acao) {
		return nil, &ErroTransicaoInvalida{De: status, Acao: acao}
	}

	var proximo Status
	switch acao {
	case AcaoIniciarAnalise:
		proximo = StatusEmAnalise
	case AcaoAprovar:
		proximo = StatusAprovada
	case AcaoRecusar:
		if ctx.MotivoRecusa == "" {
			return nil, &ErroEvidenciaAusente{Campo: "motivo_recusa"}
		}
		proximo = StatusRecusada
	case AcaoLiberarPostagem:
		proximo = StatusAguardandoPostagem
	case AcaoConfirmarRecebimento:
		// O CD só confirma recebimento de volume rastreado
		if ctx.CodigoRastreio == "" {
			return nil, &ErroEvidenciaAusente{Campo: "codigo_rastreio"}
		}
		proximo = StatusRecebidaCD
	case AcaoConcluir:
		proximo = StatusConcluida
	case AcaoReverter:
		proximo = statusAnterior(status)
	}

	descricao := ctx.Descricao
	if descricao == "" {
		descricao = fmt.Sprintf("Status alterado para %s", proximo)
	}
	ator := ctx.Ator
	if ator == "" {
		ator = "system"
	}

	return &Resultado{
		ProximoStatus: proximo,
		Evento: Evento{
			Acao:       acao,
			Descricao:  descricao,
			Ator:       ator,
			DeStatus:   status,
			ParaStatus: proximo,
		},
	}, nil
}

func statusAnterior(s Status) Status {
	for i, status := range ordemCanonica {
		if status == s && i > 0 {
			return ordemCanonica[i-1]
		}
	}
	return s
}
