// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aniefioke/intellectual-property/internal/config"
	"github.com/aniefioke/intellectual-property/internal/database"
	"github.com/aniefioke/intellectual-property/internal/events"
	"github.com/aniefioke/intellectual-property/internal/handlers"
	"github.com/aniefioke/intellectual-property/internal/marketplace"
	"github.com/aniefioke/intellectual-property/internal/metrics"
	"github.com/aniefioke/intellectual-property/internal/middleware"
	"github.com/aniefioke/intellectual-property/internal/services"
	"github.com/aniefioke/intellectual-property/internal/utils"
)

// Deps carries the long-lived components the HTTP surface exposes. Store may
// be nil when the database is disabled.
type Deps struct {
	Config  *config.Config
	Ledger  *marketplace.Ledger
	Store   *database.Store
	Feed    *events.Feed
	Hub     *events.Hub
	Metrics *metrics.Metrics
}

func Initialize(deps Deps) (*gin.Engine, error) {
	documentService, err := services.NewDocumentService(deps.Config)
	if err != nil {
		return nil, err
	}

	authHandler := handlers.NewAuthHandler(deps.Config)
	technologyHandler := handlers.NewTechnologyHandler(deps.Ledger, documentService, deps.Store, deps.Metrics)
	contractHandler := handlers.NewContractHandler(deps.Ledger, deps.Metrics)
	royaltyHandler := handlers.NewRoyaltyHandler(deps.Ledger, deps.Metrics)
	adminHandler := handlers.NewAdminHandler(deps.Ledger, deps.Metrics)
	eventsHandler := handlers.NewEventsHandler(deps.Feed, deps.Hub)

	// Set JWT secret
	utils.SetJWTSecret(deps.Config.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		agg := deps.Ledger.Metrics()
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"version":     "1.0.0",
			"operational": agg.Operational,
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.TokenRateLimit())
		{
			auth.POST("/token", authHandler.IssueToken)
		}

		technologies := v1.Group("/technologies")
		{
			technologies.GET("/:id", technologyHandler.Get)
			technologies.GET("/:id/documents", technologyHandler.ListDocuments)

			protected := technologies.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", technologyHandler.Register)
				protected.PATCH("/:id", technologyHandler.ModifyTerms)
				protected.POST("/:id/documents", middleware.DocumentRateLimit(), technologyHandler.UploadDocument)
				protected.DELETE("/:id/documents", technologyHandler.DeleteDocument)
				protected.GET("/:id/documents/link", technologyHandler.DocumentLink)
			}
		}

		contracts := v1.Group("/contracts")
		{
			contracts.GET("/:id", contractHandler.Get)
			contracts.GET("/:id/access", middleware.OptionalAuth(), contractHandler.CheckAccess)

			protected := contracts.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", contractHandler.Create)
				protected.DELETE("/:id", contractHandler.Revoke)
			}
		}

		royalties := v1.Group("/royalties")
		{
			royalties.GET("/quote", royaltyHandler.Quote)
			royalties.POST("", middleware.AuthRequired(), royaltyHandler.Process)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("/:id", royaltyHandler.GetTransaction)
		}

		eventsGroup := v1.Group("/events")
		{
			eventsGroup.GET("", eventsHandler.Recent)
			eventsGroup.GET("/ws", eventsHandler.Stream)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/metrics", adminHandler.GetMetrics)
			admin.PUT("/commission", adminHandler.ConfigureCommission)
			admin.POST("/operational", adminHandler.ToggleOperational)
		}
	}

	return r, nil
}
