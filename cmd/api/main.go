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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/arcana-edu/tarot-lms-api/internal/config"
	"github.com/arcana-edu/tarot-lms-api/internal/database"
	"github.com/arcana-edu/tarot-lms-api/internal/handler"
	"github.com/arcana-edu/tarot-lms-api/internal/middleware"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
	"github.com/arcana-edu/tarot-lms-api/internal/repository"
	"github.com/arcana-edu/tarot-lms-api/internal/router"
	"github.com/arcana-edu/tarot-lms-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseTA{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Feedback{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, caching and event forwarding via redis disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, event forwarding via nats disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	identityService := service.NewIdentityService(userRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	courseService := service.NewCourseService(courseRepo, userRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, userRepo, validate, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, submissionRepo, userRepo, validate, logger)
	notificationService := service.NewNotificationService(notificationRepo, redisClient, cfg.EventChannel, natsConn, validate, logger)
	dashboardService := service.NewStudentDashboardService(assignmentRepo, submissionRepo, redisClient, cfg.DashboardCacheTTL, logger)

	userHandler := handler.NewUserHandler(userService, identityService, logger)
	courseHandler := handler.NewCourseHandler(courseService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)
	studentDashboardHandler := handler.NewStudentDashboardHandler(dashboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		UserHandler:             userHandler,
		CourseHandler:           courseHandler,
		AssignmentHandler:       assignmentHandler,
		SubmissionHandler:       submissionHandler,
		FeedbackHandler:         feedbackHandler,
		NotificationHandler:     notificationHandler,
		StudentDashboardHandler: studentDashboardHandler,
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
		RateLimiter:             middleware.RateLimit("api", cfg.RateLimitMax, cfg.RateLimitWindow),
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
