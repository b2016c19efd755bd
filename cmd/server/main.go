package main

import (
	"log"

	"fleet-management-backend/internal/api/routes"
	"fleet-management-backend/internal/auth"
	"fleet-management-backend/internal/bootstrap"
	"fleet-management-backend/internal/config"
	"fleet-management-backend/internal/database"
	"fleet-management-backend/internal/logger"
	"fleet-management-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "fleet-management-backend/docs" // This is needed for swag
)

//	@title			Fleet Management Backend API
//	@version		1.0
//	@description	Multi-tenant fleet management API: companies, user accounts, vehicles, drivers, tow records and expenses, with role- and company-scoped permissions.

//	@contact.name	API Support

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:7010
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	logger.Setup(cfg.LogLevel, cfg.LogFile)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}

	// Initialize token service
	jwtService, err := auth.NewService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		logrus.Fatal("Failed to initialize token service:", err)
	}

	// Seed admin accounts
	if err := bootstrap.SeedAdmins(repository.NewUserRepository(db), cfg.SeedFile, logger.New()); err != nil {
		logrus.Fatal("Failed to seed admin accounts:", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := routes.SetupRoutes(db, cfg, jwtService)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "7010"
	}

	logrus.Infof("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server:", err)
	}
}
