package middleware

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			log.Println("❌ Header Authorization ausente")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token ausente"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Printf("❌ Formato Authorization inválido: %v partes", len(parts))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Formato Authorization inválido"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})

		if err != nil {
			log.Printf("❌ Erro ao validar JWT: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
			// Verificar expiração
			if exp, ok := claims["exp"].(float64); ok {
				if time.Now().Unix() > int64(exp) {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expirado"})
					c.Abort()
					return
				}
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				log.Printf("❌ user_id ausente ou inválido nos claims: %+v", claims)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id ausente"})
				c.Abort()
				return
			}

			// ✅ Colocar os claims no context do Gin
			c.Set("user_id", userID)
			c.Set("email", claims["email"])
			c.Set("role", claims["role"])

			if lojaID, ok := claims["loja_id"].(string); ok {
				c.Set("loja_id", lojaID)
			}

			if isLojista, ok := claims["is_lojista"].(bool); ok {
				c.Set("is_lojista", isLojista)
			} else {
				c.Set("is_lojista", false)
			}

			c.Next()
		} else {
			log.Println("❌ Claims inválidos")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}
	}
}

func AuthJWT(c *gin.Context) {
	AuthRequired()(c)
}
