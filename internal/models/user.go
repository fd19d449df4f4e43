package models

import "time"

type User struct {
	ID        string     `json:"id" db:"user_id"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password"`
	Name      string     `json:"name" db:"name"`
	Role      string     `json:"role" db:"role"` // admin, lojista, cliente
	Provider  string     `json:"provider" db:"provider"`
	LojaID    *string    `json:"loja_id,omitempty" db:"loja_id"`
	LojaNome  string     `json:"loja_nome,omitempty" db:"loja_nome"`
	IsLojista *bool      `json:"is_lojista,omitempty" db:"is_lojista"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
