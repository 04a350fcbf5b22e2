package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/config"
	"github.com/placement-cell/placetrack-api/internal/database"
	"github.com/placement-cell/placetrack-api/internal/handler"
	"github.com/placement-cell/placetrack-api/internal/middleware"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/observability"
	"github.com/placement-cell/placetrack-api/internal/repository"
	"github.com/placement-cell/placetrack-api/internal/router"
	"github.com/placement-cell/placetrack-api/internal/service"
	"github.com/placement-cell/placetrack-api/pkg/ai"
	cloud "github.com/placement-cell/placetrack-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	observability.RegisterMetrics()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.Drive{},
		&models.Application{},
		&models.Announcement{},
		&models.Notification{},
		&models.Resource{},
		&models.Note{},
		&models.Alumni{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	var advisor ai.Advisor
	if cfg.OpenAIAPIKey != "" {
		openAIAdvisor, err := ai.NewOpenAIAdvisor(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai advisor: %v", err)
		}
		advisor = openAIAdvisor
	} else {
		logger.Warn().Msg("openai api key not set, advisor endpoints disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	driveRepo := repository.NewDriveRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	alumniRepo := repository.NewAlumniRepository(db)
	statsRepo := repository.NewAdminStatsRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, logger)
	authService := service.NewAuthService(userRepo, validate, service.TokenConfig{
		Secret:        cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}, cfg.BcryptCost, logger)
	studentService := service.NewStudentService(studentRepo, driveRepo, validate, logger)
	resumeService := service.NewResumeService(uploader, studentRepo, cfg.ResumeMaxSizeMB, logger)
	driveService := service.NewDriveService(driveRepo, studentRepo, applicationRepo, redisClient, cfg.DriveCacheTTL, validate, logger)
	applicationService := service.NewApplicationService(applicationRepo, driveRepo, studentRepo, notificationService, validate, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, userRepo, notificationService, redisClient, cfg.AnnouncementCacheTTL, validate, logger)
	prepService := service.NewPrepService(resourceRepo, noteRepo, validate, logger)
	alumniService := service.NewAlumniService(alumniRepo, validate, logger)
	adminService := service.NewAdminService(statsRepo, applicationRepo, driveRepo, logger)
	scheduleService := service.NewScheduleService(driveRepo, applicationRepo, logger)
	advisorService := service.NewAdvisorService(advisor, studentRepo, driveRepo, cfg.OpenAIModel, validate, logger)
	tickerService := service.NewTickerService(redisClient, cfg.TickerMaxEntries, validate, logger)

	runCtx, stopServices := context.WithCancel(context.Background())
	defer stopServices()
	tickerService.Start(runCtx)

	seedService := service.NewSeedService(userRepo, studentRepo, driveRepo, announcementRepo, resourceRepo, alumniRepo, cfg.DemoMode, logger)
	if cfg.DemoMode {
		if err := seedService.Run(runCtx); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.ResumeMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:              handler.NewAuthHandler(authService, logger),
		StudentHandler:           handler.NewStudentHandler(studentService, resumeService, logger),
		DriveHandler:             handler.NewDriveHandler(driveService, logger),
		AdminDriveHandler:        handler.NewAdminDriveHandler(driveService, logger),
		ApplicationHandler:       handler.NewApplicationHandler(applicationService, logger),
		AdminApplicationHandler:  handler.NewAdminApplicationHandler(applicationService, logger),
		AnnouncementHandler:      handler.NewAnnouncementHandler(announcementService, logger),
		AdminAnnouncementHandler: handler.NewAdminAnnouncementHandler(announcementService, logger),
		NotificationHandler:      handler.NewNotificationHandler(notificationService, logger),
		PrepHandler:              handler.NewPrepHandler(prepService, logger),
		AdminPrepHandler:         handler.NewAdminPrepHandler(prepService, logger),
		AlumniHandler:            handler.NewAlumniHandler(alumniService, logger),
		AdminAnalyticsHandler:    handler.NewAdminAnalyticsHandler(adminService, logger),
		ScheduleHandler:          handler.NewScheduleHandler(scheduleService, logger),
		AdvisorHandler:           handler.NewAdvisorHandler(advisorService, logger),
		TickerHandler:            handler.NewTickerHandler(tickerService, logger),
		SeedHandler:              handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:            middleware.JWTProtected(cfg.JWTSecret),
		AdvisorRateLimit:         middleware.RateLimit("advisor", 20, time.Minute),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
