package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Reembolso struct {
	ID              gocql.UUID `json:"id" db:"reembolso_id"`
	LojaID          gocql.UUID `json:"loja_id" db:"loja_id"`
	PedidoID        gocql.UUID `json:"pedido_id" db:"pedido_id"`
	ClienteNome     string     `json:"cliente_nome" db:"cliente_nome"`
	ClienteEmail    string     `json:"cliente_email" db:"cliente_email"`
	Motivo          string     `json:"motivo" db:"motivo"`
	Observacao      string     `json:"observacao" db:"observacao"`
	ValorSolicitado float64    `json:"valor_solicitado" db:"valor_solicitado"`
	ValorFinal      float64    `json:"valor_final" db:"valor_final"`
	Moeda           string     `json:"moeda" db:"moeda"`
	Metodo          string     `json:"metodo" db:"metodo"` // cartao, pix, boleto, voucher
	ChavePix        string     `json:"chave_pix,omitempty" db:"chave_pix"`
	Status          string     `json:"status" db:"status"`
	MotivoRecusa    string     `json:"motivo_recusa,omitempty" db:"motivo_recusa"`
	TransacaoID     string     `json:"transacao_id,omitempty" db:"transacao_id"`
	CodigoVoucher   string     `json:"codigo_voucher,omitempty" db:"codigo_voucher"`
	StripeRefundID  string     `json:"stripe_refund_id,omitempty" db:"stripe_refund_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
