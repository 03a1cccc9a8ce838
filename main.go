package main

import (
	"log"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/controllers"
	"github.com/Govind-619/BillSphere/routes"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}
	config.AppConfig = cfg

	// Initialize logger
	if err := utils.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	if err := config.InitDB(cfg); err != nil {
		utils.LogError("Failed to initialize database: %v", err)
		log.Fatal("Failed to initialize database:", err)
	}

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	if cfg.SeedDemo {
		if err := controllers.SeedDemoData(config.DB); err != nil {
			utils.LogError("Failed to seed demo data: %v", err)
			log.Fatal("Failed to seed demo data:", err)
		}
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	router := routes.SetupRouter()

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
