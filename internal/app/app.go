package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"gigwork_backend/database"
	"gigwork_backend/internal/auth"
	"gigwork_backend/internal/config"
	"gigwork_backend/internal/handlers"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/middleware"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/pkg/email"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/routes"
	"gigwork_backend/internal/services"
	"gigwork_backend/internal/validator"
	"gigwork_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
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
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ginRouter := SetupRouter(cfg, gormDB, ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, workers and handlers onto a
// gin engine. The context bounds the background workers' lifetime.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, ctx context.Context) *gin.Engine {
	container := initializeServices(cfg, gormDB)

	workers.NewDigestWorker(container.NotificationService, cfg.App.DigestHour).Start(ctx)
	workers.NewNewsletterWorker(container.NotificationService, cfg.App.NewsletterHour).Start(ctx)
	workers.NewContentWorker(container.JobService, cfg.App.ContentSlotsPerDay).Start(ctx)

	appHandlers := initializeHandlers(container)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

// ServiceContainer groups the constructed services for wiring.
type ServiceContainer struct {
	AuthService         services.AuthService
	JobService          services.JobService
	ApplicationService  services.ApplicationService
	NotificationService services.NotificationService
	ProposalService     services.ProposalService
	FollowService       services.FollowService
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	referenceRepo := repositories.NewReferenceRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	proposalRepo := repositories.NewProposalRepository(gormDB)
	followRepo := repositories.NewFollowRepository(gormDB)

	sender := email.NewSMTPSender(email.Config{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if !sender.IsConfigured() {
		logger.Warn("SMTP is not configured; outgoing email will be dropped")
	}

	renderer, err := email.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to initialize email templates", "error", err)
	}

	notificationService := services.NewNotificationService(
		notificationRepo, userRepo, jobRepo, followRepo, sender, renderer, cfg.App.BaseURL)
	jobService := services.NewJobService(jobRepo, userRepo, referenceRepo, notificationService)

	return &ServiceContainer{
		AuthService:         services.NewAuthService(userRepo),
		JobService:          jobService,
		ApplicationService:  services.NewApplicationService(applicationRepo, jobRepo, userRepo, notificationService),
		NotificationService: notificationService,
		ProposalService:     services.NewProposalService(proposalRepo, userRepo, jobService, sender, renderer, cfg.App.BaseURL),
		FollowService:       services.NewFollowService(followRepo, referenceRepo, jobRepo),
	}
}

func initializeHandlers(container *ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(base, container.AuthService),
		JobHandler:          handlers.NewJobHandler(base, container.JobService, container.ApplicationService, container.FollowService),
		ProposalHandler:     handlers.NewProposalHandler(base, container.ProposalService),
		NotificationHandler: handlers.NewNotificationHandler(base, container.NotificationService, container.FollowService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	return ginRouter
}

// seedFirstAdmin creates the bootstrap admin account on first start.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.App.AdminEmail == "" || cfg.App.AdminPassword == "" {
		logger.Warn("Admin credentials not configured; skipping admin seed")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.App.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.App.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.App.AdminEmail,
		PasswordHash: hash,
		AccountType:  models.AccountTypeAdmin,
		Language:     "en",
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded first admin user", "email", cfg.App.AdminEmail)
	return nil
}
