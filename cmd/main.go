package main

import (
	"fmt"
	"log"

	"github.com/codaisseur/eventup-backend/config"
	"github.com/codaisseur/eventup-backend/database"
	"github.com/codaisseur/eventup-backend/internal/auditlog"
	"github.com/codaisseur/eventup-backend/internal/auth"
	"github.com/codaisseur/eventup-backend/internal/category"
	"github.com/codaisseur/eventup-backend/internal/event"
	"github.com/codaisseur/eventup-backend/routes"
	"github.com/codaisseur/eventup-backend/utils"
)

// @title EventUp API
// @version 1.0
// @description Event-management backend
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (optional, rate-limiter store)
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka (optional, audit stream)
	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&category.Category{},
		&event.Event{},
		&event.Registration{},
		&event.Photo{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	router := routes.Setup(cfg, db)

	log.Printf("🚀 Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}
