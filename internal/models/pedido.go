package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Pedido é um snapshot somente leitura vindo da plataforma de e-commerce
// (webhook da vitrine). Nunca é alterado por este backend.
type Pedido struct {
	ID              gocql.UUID   `json:"id" db:"pedido_id"`
	LojaID          gocql.UUID   `json:"loja_id" db:"loja_id"`
	NumeroExterno   string       `json:"numero_externo" db:"numero_externo"`
	ClienteNome     string       `json:"cliente_nome" db:"cliente_nome"`
	ClienteEmail    string       `json:"cliente_email" db:"cliente_email"`
	ClienteFone     string       `json:"cliente_fone" db:"cliente_fone"`
	PaymentIntentID string       `json:"payment_intent_id,omitempty" db:"payment_intent_id"`
	Itens           []ItemPedido `json:"itens" db:"itens"`
	ValorTotal      float64      `json:"valor_total" db:"valor_total"`
	DataPedido      time.Time    `json:"data_pedido" db:"data_pedido"`
	DataEntrega     *time.Time   `json:"data_entrega,omitempty" db:"data_entrega"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
}

type ItemPedido struct {
	ID            string  `json:"id"`
	Nome          string  `json:"nome"`
	Categoria     string  `json:"categoria"`
	PrecoUnitario float64 `json:"preco_unitario"`
	Quantidade    int     `json:"quantidade"`
}
