package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"jobportal_backend/database"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/routes"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/workers"
)

func Run() {
	// .env не обязателен; продакшен конфигурируется напрямую окружением
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает полный HTTP-роутер со всеми зависимостями.
// Фоновые воркеры привязаны к переданному контексту.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	emailProvider := initializeEmailProvider(cfg)

	tokenManager, err := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", "error", err)
	}

	serviceContainer := initializeServices(ctx, cfg, gormDB, emailProvider, tokenManager)

	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeEmailProvider(cfg *config.Config) email.Provider {
	renderer, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}

	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, renderer)
}

func initializeServices(
	ctx context.Context,
	cfg *config.Config,
	gormDB *gorm.DB,
	emailProvider email.Provider,
	tokenManager *auth.TokenManager,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	resetTokenRepo := repositories.NewResetTokenRepository(gormDB)
	employeeRepo := repositories.NewEmployeeRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)

	denyList := services.NewTokenDenyList()
	workers.NewDenyListWorker(denyList, 0).Start(ctx)

	var feedbackGenerator services.ResumeFeedbackGenerator
	aiClient, err := services.NewGoogleAIFeedbackService(ctx, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		logger.Fatal("Failed to initialize AI client", "error", err)
	}
	if aiClient != nil {
		feedbackGenerator = aiClient
	}

	authService := services.NewAuthService(userRepo, resetTokenRepo, employeeRepo, emailProvider, tokenManager, denyList)
	userService := services.NewUserService(userRepo)
	employeeService := services.NewEmployeeService(employeeRepo, feedbackGenerator)
	jobService := services.NewJobService(jobRepo, userRepo, employeeRepo, applicationRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo)

	return &services.ServiceContainer{
		AuthService:        authService,
		UserService:        userService,
		EmployeeService:    employeeService,
		JobService:         jobService,
		ApplicationService: applicationService,
		EmailService:       emailProvider,
		DenyList:           denyList,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler()

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:        handlers.NewUserHandler(baseHandler, container.UserService, container.AuthService),
		EmployeeHandler:    handlers.NewEmployeeHandler(baseHandler, container.EmployeeService, container.AuthService),
		JobHandler:         handlers.NewJobHandler(baseHandler, container.JobService, container.AuthService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, container.ApplicationService, container.AuthService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	return router
}

// seedFirstAdmin создает первого администратора из окружения.
// Без FIRST_ADMIN_EMAIL / FIRST_ADMIN_PASSWORD шаг пропускается.
func seedFirstAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("FIRST_ADMIN_EMAIL")
	adminPassword := os.Getenv("FIRST_ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now()
	admin := models.User{
		Name:              "Administrator",
		Email:             adminEmail,
		PasswordHash:      &passwordHash,
		Role:              models.UserRoleAdmin,
		Status:            models.UserStatusActive,
		PasswordChangedAt: &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
