package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"

	"reversa_back_end/internal/database"
	"reversa_back_end/internal/models"
	"reversa_back_end/internal/utils"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nenhum provider especificado"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nenhum provider especificado"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := findOrCreateOAuthUser(provider, gothUser.UserID, gothUser.Email, gothUser.Name)
	if err != nil {
		log.Printf("❌ Erro ao resolver usuário OAuth: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao processar login"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar token"})
		return
	}

	redirectURI := os.Getenv("FRONTEND_URL")
	if redirectURI == "" {
		redirectURI = "http://localhost:3000"
	}

	sep := "?"
	if strings.Contains(redirectURI, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURI+sep+"token="+url.QueryEscape(token))
}

// findOrCreateOAuthUser procura o usuário pelo e-mail; se não existir,
// cria uma conta de cliente vinculada ao provider.
func findOrCreateOAuthUser(provider, providerID, email, name string) (*models.User, error) {
	var userID string
	err := database.GetPreparedGetUserByEmail().Bind(email).Scan(&userID)
	if err == nil {
		var (
			dbEmail, password, dbName, role, dbProvider, lojaID, lojaNome string
			isLojista                                                     bool
		)
		if err := database.GetPreparedGetUserByID().Bind(userID).Scan(
			&dbEmail, &password, &dbName, &role, &dbProvider, &lojaID, &lojaNome, &isLojista); err != nil {
			return nil, err
		}

		user := models.User{
			ID:        userID,
			Email:     dbEmail,
			Name:      dbName,
			Role:      role,
			Provider:  dbProvider,
			LojaNome:  lojaNome,
			IsLojista: &isLojista,
		}
		if lojaID != "" {
			user.LojaID = &lojaID
		}
		log.Printf("✅ Usuário OAuth existente: %s", email)
		return &user, nil
	}
	if err != gocql.ErrNotFound {
		return nil, err
	}

	// Cliente novo vindo do portal
	id := gocql.TimeUUID().String()
	isLojista := false
	user := models.User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      "cliente",
		Provider:  provider,
		IsLojista: &isLojista,
		CreatedAt: time.Now(),
	}

	if err := database.GetPreparedInsertUser().Bind(
		user.ID, user.Email, "", user.Name, user.Role, user.Provider,
		"", "", isLojista, user.CreatedAt, user.CreatedAt,
	).Exec(); err != nil {
		return nil, err
	}
	if err := database.GetPreparedInsertUserByEmail().Bind(user.Email, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Erro ao gravar índice users_by_email: %v", err)
	}

	log.Printf("🆕 Usuário OAuth criado (%s): %s", provider, email)
	return &user, nil
}
