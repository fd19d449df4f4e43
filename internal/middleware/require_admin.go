package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin verifica que o usuário tem o papel "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso restrito aos administradores"})
		c.Abort()
		return
	}
	c.Next()
}
