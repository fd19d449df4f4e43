package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"reversa_back_end/internal/utils"
)

// AuditValorReembolso audita aprovações em que o agente altera o valor
// final do reembolso (reembolso parcial). O valor solicitado fica no
// old_value e o valor concedido no new_value.
func AuditValorReembolso() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Capturar o body da requisição
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}

		// Devolver o body para os handlers seguintes
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		// Parsear o JSON para verificar se há valor final customizado
		var requestData map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &requestData); err != nil {
			c.Next()
			return
		}

		if valorFinal, exists := requestData["valor_final"]; exists {
			c.Set("audit_valor_final", true)
			c.Set("audit_reembolso_id", c.Param("id"))
			c.Set("audit_valor_concedido", valorFinal)
		}

		c.Next()

		// Após o handler, registrar o audit se necessário
		if shouldAudit, exists := c.Get("audit_valor_final"); exists && shouldAudit.(bool) {
			reembolsoID, _ := c.Get("audit_reembolso_id")
			valorConcedido, _ := c.Get("audit_valor_concedido")
			valorSolicitado, _ := c.Get("audit_valor_solicitado") // preenchido pelo handler

			// Verificar que a requisição deu certo (status 2xx)
			if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
				oldValue := map[string]interface{}{"valor_solicitado": valorSolicitado}
				newValue := map[string]interface{}{"valor_final": valorConcedido}

				utils.LogAction(c, utils.ACTION_REEMBOLSO_TRANSITION, utils.RESOURCE_REEMBOLSO,
					reembolsoID.(string), oldValue, newValue)

				log.Printf("💰 Alteração de valor auditada: reembolso %s", reembolsoID)
			}
		}
	}
}

// AuditCriticalActions audita todas as ações críticas
func AuditCriticalActions(action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID := c.Param("id")
		if resourceID == "" {
			resourceID = c.Param("loja_id")
		}

		c.Next()

		// Auditar após o handler se deu certo
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			utils.LogAction(c, action, resource, resourceID, nil, nil)
		} else {
			utils.LogFailedAction(c, action, resource, resourceID, "Ação falhou")
		}
	}
}
