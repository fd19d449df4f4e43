package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"reversa_back_end/internal/handlers"
	"reversa_back_end/internal/handlers/admin"
	"reversa_back_end/internal/handlers/devolucoes"
	"reversa_back_end/internal/handlers/pedidos"
	"reversa_back_end/internal/handlers/reembolsos"
	"reversa_back_end/internal/handlers/user"
	"reversa_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// CORS: origens do painel e do portal
	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		allowedOrigins = append(allowedOrigins, strings.Split(extra, ",")...)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Autenticação
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.CreateUser)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
		auth.GET("/:provider", handlers.BeginAuth)
		auth.GET("/:provider/callback", handlers.CallbackAuth)
	}

	// Pedidos: webhook da vitrine (sem JWT, validado por secret) + consulta
	api.POST("/pedidos/webhook", pedidos.IngestPedido)
	ped := api.Group("/pedidos", middleware.AuthRequired())
	{
		ped.GET("/:id", pedidos.GetPedido)
		ped.POST("/:id/elegibilidade", pedidos.VerificarElegibilidade)
	}

	// Devoluções
	dev := api.Group("/devolucoes", middleware.AuthRequired())
	{
		dev.POST("", middleware.SolicitacaoRateLimit(), devolucoes.CreateDevolucao)
		dev.GET("/minhas", devolucoes.ListMinhasDevolucoes)
		dev.GET("", middleware.RequireLojista, devolucoes.ListDevolucoes)
		dev.GET("/:id", devolucoes.GetDevolucao)
		dev.POST("/:id/transicao", devolucoes.TransitionDevolucao)
		dev.POST("/:id/anexos", devolucoes.UploadAnexos)
		dev.GET("/:id/anexos/url", devolucoes.GetAnexoURL)
		dev.GET("/:id/postagem", devolucoes.CalcularPostagem)
		dev.POST("/:id/etiqueta", middleware.RequireLojista, devolucoes.EmitirEtiqueta)
	}

	// Reembolsos
	re := api.Group("/reembolsos", middleware.AuthRequired())
	{
		re.POST("", middleware.SolicitacaoRateLimit(), reembolsos.CreateReembolso)
		re.GET("/meus", reembolsos.ListMeusReembolsos)
		re.GET("", middleware.RequireLojista, reembolsos.ListReembolsos)
		re.GET("/:id", reembolsos.GetReembolso)
		re.POST("/:id/transicao", middleware.AuditValorReembolso(), reembolsos.TransitionReembolso)
		re.GET("/:id/pix", middleware.RequireLojista, reembolsos.GetPixQR)
	}

	// Lojas: configuração multi-tenant e painel
	lojas := api.Group("/lojas", middleware.AuthRequired())
	{
		lojas.GET("", middleware.RequireAdmin, admin.ListLojas)
		lojas.POST("", middleware.RequireAdmin, admin.CreateLoja)
		lojas.GET("/:id", middleware.RequireLojista, admin.GetLoja)
		lojas.PUT("/:id", middleware.RequireLojista, admin.UpdateLoja)
		lojas.PUT("/:id/regras", middleware.RequireLojista, admin.UpdateRegras)
		lojas.PUT("/:id/config-reembolso", middleware.RequireLojista, admin.UpdateConfigReembolso)
		lojas.GET("/:id/metodos", reembolsos.PreviewMetodos)
		lojas.GET("/:id/dashboard", middleware.RequireLojista, admin.GetDashboard)
		lojas.GET("/:id/busca", middleware.RequireLojista, middleware.SearchRateLimit(), admin.SearchSolicitacoes)
	}

	// Feed de status em tempo real para o painel
	api.GET("/ws/status", middleware.AuthRequired(), middleware.RequireLojista, user.StatusWebSocket)

	// Auditoria (admin)
	adm := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adm.GET("/audit", admin.GetAuditLogs)
		adm.GET("/audit/:resource/:resource_id", admin.GetAuditLogsByResource)
	}
}
