package models

import (
	"time"

	"github.com/gocql/gocql"
)

type AuditLog struct {
	ID         gocql.UUID `json:"id" db:"audit_id"`
	UserID     string     `json:"user_id" db:"user_id"`
	UserEmail  string     `json:"user_email" db:"user_email"`
	Action     string     `json:"action" db:"action"`
	Resource   string     `json:"resource" db:"resource"`
	ResourceID string     `json:"resource_id" db:"resource_id"`
	OldValue   string     `json:"old_value,omitempty" db:"old_value"`
	NewValue   string     `json:"new_value,omitempty" db:"new_value"`
	IPAddress  string     `json:"ip_address" db:"ip_address"`
	UserAgent  string     `json:"user_agent" db:"user_agent"`
	Success    bool       `json:"success" db:"success"`
	ErrorMsg   string     `json:"error_msg,omitempty" db:"error_msg"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
