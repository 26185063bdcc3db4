package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	api "recruiting-portal-backend/internal/api/grpc"
	"recruiting-portal-backend/internal/api/grpc/interceptor"
	httpapi "recruiting-portal-backend/internal/api/http"
	"recruiting-portal-backend/internal/config"
	"recruiting-portal-backend/internal/db"
	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/logger"
	"recruiting-portal-backend/internal/ratelimit"
	"recruiting-portal-backend/internal/repository/postgres"
	"recruiting-portal-backend/internal/security"
	"recruiting-portal-backend/internal/service"
	"recruiting-portal-backend/internal/storage"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", false, "Apply database migrations before serving")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Recruiting Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "grpc_address", cfg.GetServerAddress(), "http_address", cfg.GetHTTPAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "provider", cfg.Email.Provider)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	sqlDB, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	// Test database connection
	if err := sqlDB.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if *migrate {
		if err := db.Migrate(context.Background(), sqlDB, db.Migrations); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(sqlDB)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	authInterceptor := interceptor.NewAuthInterceptor(tokenManager)

	// Initialize Storage Service
	if cfg.Storage.Type != "" && cfg.Storage.Type != "mock" {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}
	logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
	objectStore, err := storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize mock storage", "error", err)
		log.Fatalf("Failed to initialize mock storage: %v", err)
	}

	// Save throttle: Redis when configured, otherwise per-process
	var limiter ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.Autosave.MaxSaves, cfg.Autosave.SaveWindow(), "ratelimit:")
		logger.Info("Using Redis save throttle", "addr", cfg.Redis.Addr, "max_saves", cfg.Autosave.MaxSaves)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.Autosave.MaxSaves, cfg.Autosave.SaveWindow())
		logger.Warn("Redis not configured, using in-memory save throttle")
	}

	// Initialize Notifications
	emailQueue := service.NewEmailQueue(newEmailSender(cfg), service.QueueOptions{
		Workers:    cfg.Notifications.Workers,
		Size:       cfg.Notifications.QueueSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		Backoff:    time.Second,
	})
	notifier := service.NewDispatcher(store.NotificationRepository, emailQueue, cfg.Email.BaseURL)
	policy := domain.TransitionPolicy{Strict: cfg.Review.StrictTransitions}

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	orgSvc := service.NewOrganizationService(store.OrganizationRepository, store.UserRepository)
	cycleSvc := service.NewCycleService(store.CycleRepository, store.OrganizationRepository)
	catalogSvc := service.NewCatalogService(store.QuestionRepository, store.CycleRepository, store.OrganizationRepository)
	appSvc := service.NewApplicationService(
		store.ApplicationRepository,
		store.CycleRepository,
		store.QuestionRepository,
		store.OrganizationRepository,
		store.UserRepository,
		limiter,
		notifier,
	)
	reviewSvc := service.NewReviewService(
		store.ApplicationRepository,
		store.ReviewRepository,
		store.UserRepository,
		store.CycleRepository,
		store.OrganizationRepository,
		notifier,
		policy,
	)
	dashboardSvc := service.NewDashboardService(store.CycleRepository, store.ApplicationRepository, store.ReviewRepository, store.UserRepository)
	interviewSvc := service.NewInterviewService(
		store.InterviewRepository,
		store.ApplicationRepository,
		store.UserRepository,
		store.CycleRepository,
		store.OrganizationRepository,
		notifier,
		policy,
	)
	resumeSvc := service.NewResumeService(store.UserRepository, objectStore, cfg.Storage.MaxFileSize, cfg.Storage.AllowedTypes)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up gRPC server
	lis, err := net.Listen("tcp", cfg.GetServerAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetServerAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	s := grpc.NewServer(
		grpc.UnaryInterceptor(authInterceptor.Unary()),
	)

	// Register services
	api.Handlers{
		Auth:         api.NewAuthHandler(authSvc),
		Organization: api.NewOrganizationHandler(orgSvc),
		Cycle:        api.NewCycleHandler(cycleSvc),
		Catalog:      api.NewCatalogHandler(catalogSvc),
		Application:  api.NewApplicationHandler(appSvc, cfg.Autosave.QuietPeriod()),
		Review:       api.NewReviewHandler(reviewSvc, dashboardSvc),
		Interview:    api.NewInterviewHandler(interviewSvc),
		Resume:       api.NewResumeHandler(resumeSvc),
		Notification: api.NewNotificationHandler(noteSvc),
	}.Register(s)

	// Register reflection service for grpcurl
	reflection.Register(s)

	// HTTP server for mock storage, health and metrics
	httpServer := &http.Server{
		Addr:              cfg.GetHTTPAddress(),
		Handler:           httpapi.NewRouter(store, objectStore, cfg.Storage.MaxFileSize*1024*1024),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC server listening", "address", cfg.GetServerAddress())
		return s.Serve(lis)
	})
	g.Go(func() error {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		s.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown error", "error", err)
		}
		if err := emailQueue.Close(shutdownCtx); err != nil {
			logger.Warn("Email queue did not drain", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("Server stopped. Goodbye!")
}

func newEmailSender(cfg *config.Config) service.EmailSender {
	switch cfg.Email.Provider {
	case "sendgrid":
		return service.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	case "disabled":
		return service.NewDisabledSender()
	default:
		return service.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ReplyTo)
	}
}
