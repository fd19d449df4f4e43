package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"reversa_back_end/internal/models"
)

func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	isLojista := false
	if user.IsLojista != nil {
		isLojista = *user.IsLojista
	}

	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"role":       user.Role,
		"is_lojista": isLojista,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}
	if user.LojaID != nil {
		claims["loja_id"] = *user.LojaID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
