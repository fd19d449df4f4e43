package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireLojista verifica que o usuário é lojista (ou admin) e que está
// vinculado a uma loja. O loja_id do token é a fronteira de isolamento
// entre lojas: handlers de lojista só enxergam dados da própria loja.
func RequireLojista(c *gin.Context) {
	role, _ := c.Get("role")
	if role == "admin" {
		c.Next()
		return
	}

	isLojista, exists := c.Get("is_lojista")
	if !exists || isLojista != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Acesso restrito aos lojistas"})
		c.Abort()
		return
	}

	lojaID := c.GetString("loja_id")
	if lojaID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Usuário não vinculado a nenhuma loja"})
		c.Abort()
		return
	}

	c.Next()
}
