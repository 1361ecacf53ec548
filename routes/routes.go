package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/codaisseur/eventup-backend/config"
	"github.com/codaisseur/eventup-backend/internal/auditlog"
	"github.com/codaisseur/eventup-backend/internal/auth"
	"github.com/codaisseur/eventup-backend/internal/category"
	"github.com/codaisseur/eventup-backend/internal/event"
	"github.com/codaisseur/eventup-backend/middleware"

	_ "github.com/codaisseur/eventup-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires repositories, services and handlers and returns the router.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// Repositories & services
	authRepo := auth.NewRepository(db)
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	categoryRepo := category.NewRepository(db)

	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, categoryRepo, auditSvc)
	eventHandler := event.NewHandler(eventSvc)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.RateLimiter())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.AuthMiddleware(cfg, authRepo)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg, authRepo)

	api := r.Group("/api/v1")
	{
		events := api.Group("/events")
		{
			// Reads are public
			events.GET("", eventHandler.ListEvents)
			events.GET("/export", eventHandler.ExportEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/guests", eventHandler.GetGuests)

			// Writes need the acting user; destroy stays public but records
			// the actor when one is authenticated
			events.POST("", requireAuth, eventHandler.CreateEvent)
			events.PUT("/:id", requireAuth, eventHandler.UpdateEvent)
			events.PATCH("/:id", requireAuth, eventHandler.UpdateEvent)
			events.DELETE("/:id", optionalAuth, eventHandler.DeleteEvent)
		}

		api.GET("/auditlogs", requireAuth, auditHandler.GetAuditLogs)
	}

	return r
}
