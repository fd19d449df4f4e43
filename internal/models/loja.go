package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Loja representa um cliente (tenant) da plataforma: uma loja virtual
// com suas próprias regras de elegibilidade e configuração de reembolso.
type Loja struct {
	ID        gocql.UUID `json:"id" db:"loja_id"`
	Nome      string     `json:"nome" db:"nome"`
	Dominio   string     `json:"dominio" db:"dominio"`
	Email     string     `json:"email" db:"email"`
	Ativa     bool       `json:"ativa" db:"ativa"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// RegrasElegibilidade define a política de trocas/devoluções por loja.
// Prazos em dias, por categoria de motivo (arrependimento x defeito).
type RegrasElegibilidade struct {
	LojaID                   gocql.UUID `json:"loja_id" db:"loja_id"`
	PrazoArrependimentoDias  int        `json:"prazo_arrependimento_dias" db:"prazo_arrependimento_dias"`
	PrazoDefeitoDias         int        `json:"prazo_defeito_dias" db:"prazo_defeito_dias"`
	ValorMinimo              float64    `json:"valor_minimo" db:"valor_minimo"`
	CategoriasBloqueadas     []string   `json:"categorias_bloqueadas" db:"categorias_bloqueadas"`
	FotosObrigatoriasDefeito bool       `json:"fotos_obrigatorias_defeito" db:"fotos_obrigatorias_defeito"`
	AprovacaoAutomatica      bool       `json:"aprovacao_automatica" db:"aprovacao_automatica"`
}

// ConfigReembolso define quais métodos de estorno a loja oferece
// e a política de voucher/chave PIX.
type ConfigReembolso struct {
	LojaID            gocql.UUID `json:"loja_id" db:"loja_id"`
	TetoAutoAprovacao float64    `json:"teto_auto_aprovacao" db:"teto_auto_aprovacao"`
	PriorizarVoucher  bool       `json:"priorizar_voucher" db:"priorizar_voucher"`
	BonusVoucher      float64    `json:"bonus_voucher" db:"bonus_voucher"` // percentual, ex: 20 = +20%
	CartaoHabilitado  bool       `json:"cartao_habilitado" db:"cartao_habilitado"`
	PixHabilitado     bool       `json:"pix_habilitado" db:"pix_habilitado"`
	BoletoHabilitado  bool       `json:"boleto_habilitado" db:"boleto_habilitado"`
	VoucherHabilitado bool       `json:"voucher_habilitado" db:"voucher_habilitado"`
	TipoChavePix      string     `json:"tipo_chave_pix" db:"tipo_chave_pix"` // any, cpf, cnpj, email, phone
}
