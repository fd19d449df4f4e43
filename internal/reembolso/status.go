package reembolso

import "fmt"

// Status de um reembolso. CONCLUIDO e RECUSADO são terminais.
type Status string

const (
	StatusSolicitado  Status = "SOLICITADO"
	StatusEmAnalise   Status = "EM_ANALISE"
	StatusAprovado    Status = "APROVADO"
	StatusProcessando Status = "PROCESSANDO"
	StatusConcluido   Status = "CONCLUIDO"
	StatusRecusado    Status = "RECUSADO"
)

// Acao é uma operação sobre o fluxo de reembolso.
type Acao string

const (
	AcaoIniciarAnalise       Acao = "iniciar_analise"
	AcaoAprovar              Acao = "aprovar"
	AcaoRecusar              Acao = "recusar"
	AcaoIniciarProcessamento Acao = "iniciar_processamento"
	AcaoMarcarPago           Acao = "marcar_pago"
	AcaoReverter             Acao = "reverter"
)

// Ordem canônica do fluxo feliz. Reverter volta exatamente um passo
// nessa ordem; RECUSADO fica fora dela por ser desvio terminal.
var ordemCanonica = []Status{
	StatusSolicitado,
	StatusEmAnalise,
	StatusAprovado,
	StatusProcessando,
	StatusConcluido,
}

// ErroTransicaoInvalida indica ação ilegal para o status atual.
type ErroTransicaoInvalida struct {
	De   Status
	Acao Acao
}

func (e *ErroTransicaoInvalida) Error() string {
	return fmt.Sprintf("transição inválida: ação %s não permitida no status %s", e.Acao, e.De)
}

// ErroValorInvalido indica valor final fora da faixa aceita na aprovação.
type ErroValorInvalido struct {
	ValorFinal      float64
	ValorSolicitado float64
}

func (e *ErroValorInvalido) Error() string {
	return fmt.Sprintf("valor final R$ %.2f inválido (solicitado: R$ %.2f)", e.ValorFinal, e.ValorSolicitado)
}

// ErroEvidenciaAusente indica campo obrigatório vazio para a ação.
type ErroEvidenciaAusente struct {
	Campo string
}

func (e *ErroEvidenciaAusente) Error() string {
	return fmt.Sprintf("evidência obrigatória ausente: %s", e.Campo)
}

// Contexto carrega os dados que as ações validam. O motor não faz I/O:
// quem chama persiste o resultado.
type Contexto struct {
	ValorSolicitado float64
	ValorFinal      float64
	MotivoRecusa    string
	Metodo          Metodo
	TransacaoID     string
	CodigoVoucher   string
	Ator            string
	Descricao       string
}

// Evento é o registro de timeline produzido por uma transição bem-sucedida.
// Exatamente um por transição; transição recusada não produz evento.
type Evento struct {
	Acao       Acao
	Descricao  string
	Ator       string
	DeStatus   Status
	ParaStatus Status
}

// Resultado de uma transição aceita.
type Resultado struct {
	ProximoStatus Status
	Evento        Evento
}

// StatusValido informa se s pertence ao vocabulário do fluxo de reembolso.
func StatusValido(s Status) bool {
	switch s {
	case StatusSolicitado, StatusEmAnalise, StatusAprovado, StatusProcessando, StatusConcluido, StatusRecusado:
		return true
	}
	return false
}

// Terminal informa se nenhuma transição é mais possível a partir de s.
func Terminal(s Status) bool {
	return s == StatusConcluido || s == StatusRecusado
}

// PodeExecutar informa se a ação é legal a partir do status atual.
// Usado pela UI para habilitar/desabilitar botões.
func PodeExecutar(status Status, acao Acao) bool {
	if Terminal(status) {
		return false
	}
	switch acao {
	case AcaoIniciarAnalise:
		return status == StatusSolicitado
	case AcaoAprovar:
		return status == StatusSolicitado || status == StatusEmAnalise
	case AcaoRecusar:
		return status == StatusSolicitado || status == StatusEmAnalise || status == StatusAprovado
	case AcaoIniciarProcessamento:
		return status == StatusAprovado
	case AcaoMarcarPago:
		return status == StatusProcessando
	case AcaoReverter:
		return status == StatusEmAnalise || status == StatusAprovado || status == StatusProcessando
	}
	return false
}

// AcoesDisponiveis lista as ações legais a partir de um status.
func AcoesDisponiveis(status Status) []Acao {
	todas := []Acao{AcaoIniciarAnalise, AcaoAprovar, AcaoRecusar, AcaoIniciarProcessamento, AcaoMarcarPago, AcaoReverter}
	var legais []Acao
	for _, a := range todas {
		if PodeExecutar(status, a) {
			legais = append(legais, a)
		}
	}
	return legais
}

// Transicionar valida e executa uma ação sobre o status atual, devolvendo
// o próximo status e o evento de timeline correspondente. Em caso de erro
// nada é mutado e nenhum evento é produzido.
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
		// Aprovação parcial é permitida, nunca acima do solicitado
		if ctx.ValorFinal <= 0 || ctx.ValorFinal > ctx.ValorSolicitado {
			return nil, &ErroValorInvalido{ValorFinal: ctx.ValorFinal, ValorSolicitado: ctx.ValorSolicitado}
		}
		proximo = StatusAprovado

	case AcaoRecusar:
		if ctx.MotivoRecusa == "" {
			return nil, &ErroEvidenciaAusente{Campo: "motivo_recusa"}
		}
		proximo = StatusRecusado

	case AcaoIniciarProcessamento:
		proximo = StatusProcessando

	case AcaoMarcarPago:
		// A prova exigida depende do método de estorno
		if ctx.Metodo == MetodoVoucher {
			if ctx.CodigoVoucher == "" {
				return nil, &ErroEvidenciaAusente{Campo: "codigo_voucher"}
			}
		} else {
			if ctx.TransacaoID == "" {
				return nil, &ErroEvidenciaAusente{Campo: "transacao_id"}
			}
		}
		proximo = StatusConcluido

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
