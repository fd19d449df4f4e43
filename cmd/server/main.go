package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/stripe/stripe-go/v83"

	"reversa_back_end/internal/config"
	"reversa_back_end/internal/database"
	"reversa_back_end/internal/handlers"
	"reversa_back_end/internal/routes"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY ausente: estorno no cartão indisponível")
	} else {
		log.Println("✅ Stripe inicializado")
	}

	database.ConnectDatabases()

	// ✅ Prepared statements das consultas quentes
	database.InitPreparedStatements()

	// ✅ Pré-aquecer a conexão do Redis
	warmupRedisCache()

	initOAuthProviders()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Servidor Reversa no ar na porta", port)
	r.Run(":" + port)
}

func initOAuthProviders() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Println("⚠️ SESSION_SECRET ausente: login social desativado")
		return
	}

	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false em dev, true em produção
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	// O provider vem do path param, colocado no context pelo handler
	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider, ok := req.Context().Value(handlers.ProviderKey).(string); ok && provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	googleClientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")

	var providers []goth.Provider

	if googleClientID != "" && googleClientSecret != "" {
		providers = append(providers, google.New(
			googleClientID,
			googleClientSecret,
			baseURL+"/api/auth/google/callback",
			"email", "profile",
		))
		log.Println("✅ Google OAuth ativado")
	}

	if len(providers) == 0 {
		log.Println("⚠️ Nenhum provider OAuth configurado")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d provider(s) OAuth inicializado(s)", len(providers))
}

// warmupRedisCache estabelece a conexão do Redis antes da primeira requisição
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-aquecido")
	}
}
