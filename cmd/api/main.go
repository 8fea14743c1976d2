package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gatherly/gatherly-backend/internal/config"
	"github.com/gatherly/gatherly-backend/internal/handler"
	"github.com/gatherly/gatherly-backend/internal/middleware"
	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/realtime"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/database"
	"github.com/gatherly/gatherly-backend/pkg/email"
	"github.com/gatherly/gatherly-backend/pkg/jwt"
	"github.com/gatherly/gatherly-backend/pkg/logger"
	"github.com/gatherly/gatherly-backend/pkg/push"
	"github.com/gatherly/gatherly-backend/pkg/storage"
	"github.com/gatherly/gatherly-backend/pkg/utils"
)

func main() {
	// .env is optional outside local development.
	godotenv.Load()

	cfg := config.LoadConfig()

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Message{},
		&models.Review{},
		&models.Notification{},
	); err != nil {
		zapLogger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Infrastructure
	tokenManager := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	emailService := email.NewEmailService(cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.FromName, cfg.FrontendURL, zapLogger)

	objectStorage, err := storage.NewS3Storage(storage.S3Config{
		Endpoint:        cfg.S3.Endpoint,
		Region:          cfg.S3.Region,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Bucket:          cfg.S3.Bucket,
		PublicURL:       cfg.S3.PublicURL,
	})
	if err != nil {
		zapLogger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	var pushSender push.Sender = &push.NopSender{Logger: zapLogger}
	if cfg.FirebaseCredentialsFile != "" {
		fcm, err := push.NewFCMService(context.Background(), cfg.FirebaseCredentialsFile, zapLogger)
		if err != nil {
			zapLogger.Fatal("failed to initialize push delivery", zap.Error(err))
		}
		pushSender = fcm
	}

	// Services
	notificationService := service.NewNotificationService(notificationRepo, pushSender, zapLogger)
	authService := service.NewAuthService(userRepo, emailService, tokenManager, zapLogger)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, attendanceRepo, notificationService, emailService, objectStorage, zapLogger)
	admissionService := service.NewAdmissionService(db, eventRepo, attendanceRepo, userRepo, notificationService, zapLogger)
	messageService := service.NewMessageService(messageRepo, eventRepo, attendanceRepo, notificationService, zapLogger)
	ratingService := service.NewRatingService(reviewRepo, eventRepo, userRepo, zapLogger)
	reviewService := service.NewReviewService(reviewRepo, eventRepo, attendanceRepo, ratingService)
	adminService := service.NewAdminService(userRepo, eventRepo, messageRepo, reviewRepo)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, reviewService, validator)
	eventHandler := handler.NewEventHandler(eventService, admissionService, validator)
	messageHandler := handler.NewMessageHandler(messageService, validator)
	reviewHandler := handler.NewReviewHandler(reviewService, validator)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	adminHandler := handler.NewAdminHandler(adminService, validator)

	hub := realtime.NewHub(zapLogger)

	app := fiber.New(fiber.Config{
		AppName: "gatherly-backend",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New())
	app.Use(handler.ErrorVisibility(cfg.Env != "production"))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authRequired := middleware.AuthMiddleware(tokenManager, userRepo)

	// Websocket channel; the upgrade carries the token as a query param.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", authRequired, websocket.New(func(conn *websocket.Conn) {
		realtime.NewClient(hub, conn, zapLogger).Serve()
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/google", authHandler.GoogleAuth)

	api.Get("/events", eventHandler.ListEvents)
	api.Get("/events/:id", eventHandler.GetEvent)
	api.Get("/reviews/events/:id", reviewHandler.GetEventReviews)

	// Protected routes
	api.Use(authRequired)
	{
		auth.Get("/profile", userHandler.GetMe)
		auth.Put("/profile", userHandler.UpdateProfile)
		auth.Put("/fcm-token", userHandler.UpdateFCMToken)

		users := api.Group("/users")
		users.Get("/:id", userHandler.GetProfile)

		api.Get("/reviews/users/:id", userHandler.GetUserReviews)

		events := api.Group("/events")
		events.Post("/", eventHandler.CreateEvent)
		events.Put("/:id", eventHandler.UpdateEvent)
		events.Delete("/:id", eventHandler.DeleteEvent)
		events.Post("/:id/join", eventHandler.JoinEvent)
		events.Delete("/:id/leave", eventHandler.LeaveEvent)
		events.Get("/:id/attendees", eventHandler.GetAttendees)
		events.Post("/:id/attendees/:userId/approve", eventHandler.ApproveAttendee)
		events.Post("/:id/attendees/:userId/reject", eventHandler.RejectAttendee)
		events.Post("/:id/like", eventHandler.LikeEvent)
		events.Post("/:id/images", eventHandler.UploadImage)

		api.Post("/reviews/events/:id", reviewHandler.CreateReview)

		messages := api.Group("/messages")
		messages.Post("/events/:id", messageHandler.SendMessage)
		messages.Get("/events/:id", messageHandler.GetMessages)
		messages.Put("/:id", messageHandler.EditMessage)
		messages.Delete("/:id", messageHandler.DeleteMessage)

		notifications := api.Group("/notifications")
		notifications.Get("/", notificationHandler.GetNotifications)
		notifications.Get("/unread-count", notificationHandler.GetUnreadCount)
		notifications.Put("/mark-all-read", notificationHandler.MarkAllRead)
		notifications.Put("/:id/read", notificationHandler.MarkRead)
		notifications.Delete("/:id", notificationHandler.DeleteNotification)

		admin := api.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
		admin.Get("/dashboard/stats", adminHandler.GetDashboard)
		admin.Get("/users", adminHandler.GetUsers)
		admin.Put("/users/:id/status", adminHandler.UpdateUserStatus)
		admin.Get("/events", adminHandler.GetEvents)
		admin.Delete("/events/:id", adminHandler.DeleteEvent)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		zapLogger.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zapLogger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
