package models

import (
	"time"

	"github.com/gocql/gocql"
)

// TimelineEvent é um registro imutável na linha do tempo de uma solicitação.
// Um evento é gravado na criação e a cada mudança de status; nunca é
// atualizado nem removido depois.
type TimelineEvent struct {
	SolicitacaoID gocql.UUID `json:"solicitacao_id" db:"solicitacao_id"`
	EventoID      gocql.UUID `json:"evento_id" db:"evento_id"` // timeuuid, ordena a timeline
	Acao          string     `json:"acao" db:"acao"`
	Descricao     string     `json:"descricao" db:"descricao"`
	Ator          string     `json:"ator" db:"ator"` // system, cliente, agente
	DeStatus      string     `json:"de_status,omitempty" db:"de_status"`
	ParaStatus    string     `json:"para_status,omitempty" db:"para_status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
