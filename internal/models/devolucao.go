package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Devolucao é uma solicitação de troca ou devolução de mercadoria.
// O status só muda através do motor de transição (internal/devolucao);
// a solicitação nunca é apagada por este backend.
type Devolucao struct {
	ID             gocql.UUID `json:"id" db:"devolucao_id"`
	LojaID         gocql.UUID `json:"loja_id" db:"loja_id"`
	PedidoID       gocql.UUID `json:"pedido_id" db:"pedido_id"`
	ClienteNome    string     `json:"cliente_nome" db:"cliente_nome"`
	ClienteEmail   string     `json:"cliente_email" db:"cliente_email"`
	ClienteFone    string     `json:"cliente_fone" db:"cliente_fone"`
	Tipo           string     `json:"tipo" db:"tipo"` // troca, devolucao
	Motivo         string     `json:"motivo" db:"motivo"`
	Observacao     string     `json:"observacao" db:"observacao"`
	ValorSolicitado float64   `json:"valor_solicitado" db:"valor_solicitado"`
	Moeda          string     `json:"moeda" db:"moeda"`
	Anexos         []string   `json:"anexos" db:"anexos"`
	Status         string     `json:"status" db:"status"`
	CodigoRastreio string     `json:"codigo_rastreio,omitempty" db:"codigo_rastreio"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
