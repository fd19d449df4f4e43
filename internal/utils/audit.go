package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/models"
)

// LogAction registra uma ação no log de auditoria
func LogAction(c *gin.Context, action, resource string, resourceID string, oldValue, newValue interface{}) {
	go func() {
		if err := logActionAsync(c, action, resource, resourceID, oldValue, newValue, true, ""); err != nil {
			log.Printf("❌ Erro ao gravar log de auditoria: %v", err)
		}
	}()
}

// LogFailedAction registra uma ação que falhou no log de auditoria
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	go func() {
		if err := logActionAsync(c, action, resource, resourceID, nil, nil, false, errorMsg); err != nil {
			log.Printf("❌ Erro ao gravar log de auditoria: %v", err)
		}
	}()
}

// logActionAsync grava de forma assíncrona
func logActionAsync(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}, success bool, errorMsg string) error {
	usersSession, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	userID, _ := c.Get("user_id")
	userEmail, _ := c.Get("email")

	var oldValueStr, newValueStr string
	if oldValue != nil {
		if oldBytes, err := json.Marshal(oldValue); err == nil {
			oldValueStr = string(oldBytes)
		}
	}
	if newValue != nil {
		if newBytes, err := json.Marshal(newValue); err == nil {
			newValueStr = string(newBytes)
		}
	}

	auditLog := models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     getStringValue(userID),
		UserEmail:  getStringValue(userEmail),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   oldValueStr,
		NewValue:   newValueStr,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		Success:    success,
		ErrorMsg:   errorMsg,
		CreatedAt:  time.Now(),
	}

	query := `
		INSERT INTO audit_logs (
			audit_id, user_id, user_email, action, resource, resource_id,
			old_value, new_value, ip_address, user_agent, success,
			error_msg, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	return usersSession.Query(query,
		auditLog.ID, auditLog.UserID, auditLog.UserEmail, auditLog.Action,
		auditLog.Resource, auditLog.ResourceID, auditLog.OldValue, auditLog.NewValue,
		auditLog.IPAddress, auditLog.UserAgent, auditLog.Success, auditLog.ErrorMsg,
		auditLog.CreatedAt,
	).Exec()
}

// getStringValue converte interface{} em string
func getStringValue(value interface{}) string {
	if value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return ""
}

// Ações de auditoria predefinidas
const (
	// Devoluções
	ACTION_DEVOLUCAO_CREATE     = "devolucao.create"
	ACTION_DEVOLUCAO_TRANSITION = "devolucao.transition"

	// Reembolsos
	ACTION_REEMBOLSO_CREATE     = "reembolso.create"
	ACTION_REEMBOLSO_TRANSITION = "reembolso.transition"

	// Lojas
	ACTION_LOJA_CREATE             = "loja.create"
	ACTION_LOJA_UPDATE             = "loja.update"
	ACTION_REGRAS_UPDATE           = "loja.regras_update"
	ACTION_CONFIG_REEMBOLSO_UPDATE = "loja.config_reembolso_update"

	// Usuários e sistema
	ACTION_USER_CREATE   = "user.create"
	ACTION_LOGIN_SUCCESS = "auth.login_success"
	ACTION_LOGIN_FAILED  = "auth.login_failed"
	ACTION_PEDIDO_INGEST = "pedido.ingest"
)

// Recursos de auditoria
const (
	RESOURCE_DEVOLUCAO = "devolucao"
	RESOURCE_REEMBOLSO = "reembolso"
	RESOURCE_LOJA      = "loja"
	RESOURCE_PEDIDO    = "pedido"
	RESOURCE_USER      = "user"
	RESOURCE_AUTH      = "auth"
)
