package routes

import (
	"fleet-management-backend/internal/api/handlers"
	"fleet-management-backend/internal/api/middleware"
	"fleet-management-backend/internal/auth"
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/config"
	"fleet-management-backend/internal/logger"
	"fleet-management-backend/internal/repository"
	"fleet-management-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, jwtService *auth.Service) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	// Initialize validator and the permission evaluator
	validator := validator.New()
	evaluator := authz.NewEvaluator()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	towRepo := repository.NewTowRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// Initialize services
	mailer := service.NewLogMailer(logger.New())
	authService := service.NewAuthService(userRepo, tokenRepo, jwtService, evaluator, mailer, validator)
	userService := service.NewUserService(userRepo, evaluator, validator)
	companyService := service.NewCompanyService(companyRepo, evaluator, validator)
	vehicleService := service.NewVehicleService(vehicleRepo, evaluator, validator)
	driverService := service.NewDriverService(driverRepo, evaluator, validator)
	towService := service.NewTowService(towRepo, evaluator, validator)
	expenseService := service.NewExpenseService(expenseRepo, evaluator, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	driverHandler := handlers.NewDriverHandler(driverService)
	towHandler := handlers.NewTowHandler(towService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	// Health check route
	router.GET("/health", healthHandler.Health)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := auth.RequireAuth(jwtService)

	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", requireAuth, authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/reset-password", authHandler.ResetPassword)
			authRoutes.GET("/logout", requireAuth, authHandler.Logout)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
		}

		// User routes
		users := v1.Group("/users", requireAuth)
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.List)
			users.GET("/drivers", userHandler.ListDrivers)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Update)
			users.POST("/:id/profile", userHandler.UpdateProfile)
			users.DELETE("/:id", userHandler.Delete)
		}

		// Company routes
		companies := v1.Group("/companies", requireAuth)
		{
			companies.POST("", companyHandler.Create)
			companies.GET("", companyHandler.List)
			companies.GET("/:id", companyHandler.Get)
			companies.PUT("/:id", companyHandler.Update)
			companies.DELETE("/:id", companyHandler.Delete)
		}

		// Vehicle routes
		vehicles := v1.Group("/vehicles", requireAuth)
		{
			vehicles.POST("", vehicleHandler.Create)
			vehicles.GET("", vehicleHandler.List)
			vehicles.GET("/:id", vehicleHandler.Get)
			vehicles.PUT("/:id", vehicleHandler.Update)
			vehicles.DELETE("/:id", vehicleHandler.Delete)
		}

		// Driver roster routes
		drivers := v1.Group("/drivers", requireAuth)
		{
			drivers.POST("", driverHandler.Create)
			drivers.GET("", driverHandler.List)
			drivers.GET("/:id", driverHandler.Get)
			drivers.PUT("/:id", driverHandler.Update)
			drivers.DELETE("/:id", driverHandler.Delete)
		}

		// Tow record routes
		tows := v1.Group("/tows", requireAuth)
		{
			tows.POST("", towHandler.Create)
			tows.GET("", towHandler.List)
			tows.GET("/:id", towHandler.Get)
			tows.PUT("/:id", towHandler.Update)
			tows.DELETE("/:id", towHandler.Delete)
		}

		// Expense routes
		expenses := v1.Group("/expenses", requireAuth)
		{
			expenses.POST("", expenseHandler.Create)
			expenses.GET("", expenseHandler.List)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}
	}

	return router
}
