package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/deringirish/PHMS/config"
	deliveryHttp "github.com/deringirish/PHMS/internal/delivery/http"
	"github.com/deringirish/PHMS/internal/delivery/http/handler"
	"github.com/deringirish/PHMS/internal/delivery/http/middleware"
	"github.com/deringirish/PHMS/internal/infrastructure/cache"
	"github.com/deringirish/PHMS/internal/infrastructure/database"
	"github.com/deringirish/PHMS/internal/infrastructure/messaging"
	"github.com/deringirish/PHMS/internal/infrastructure/storage"
	"github.com/deringirish/PHMS/internal/repository"
	"github.com/deringirish/PHMS/internal/service"
	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/internal/worker"
	"github.com/deringirish/PHMS/pkg/jwt"
	"github.com/deringirish/PHMS/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Storage     storage.ObjectStorage
	Publisher   *messaging.Publisher
	Sweeper     *worker.UploadSweeper
	Server      *http.Server
}

// New loads configuration, sets up logging and connects to the database.
// CLI commands that only touch the database stop here; Serve wires the rest.
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App)
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, gormLogLevel(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Info("Database connected successfully")

	return app, nil
}

// setupLogger configures a JSON logrus logger at the configured level
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func gormLogLevel(cfg *config.Config) logger.LogLevel {
	if cfg.IsProduction() {
		return logger.Warn
	}
	return logger.Info
}

// Serve connects the remaining infrastructure, builds the HTTP server and
// blocks until shutdown.
func (app *App) Serve(ctx context.Context) error {
	cfg := app.Config

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Log.Info("Redis connected successfully")

	// Initialize object storage
	objectStorage, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	app.Storage = objectStorage
	app.Log.Infof("Object storage ready (%s)", cfg.Storage.Driver)

	// Alert events are optional
	var messagePublisher service.MessagePublisher
	if cfg.RabbitMQ.URL != "" {
		publisher, err := messaging.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.AlertQueue)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		app.Publisher = publisher
		messagePublisher = publisher
		app.Log.Info("RabbitMQ connected successfully")
	} else {
		app.Log.Info("RabbitMQ not configured, critical alerts are logged only")
	}

	app.Server = app.initializeServer(messagePublisher)
	app.Sweeper.Start(ctx)

	app.Run()
	return nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(messagePublisher service.MessagePublisher) *http.Server {
	cfg, db, log := app.Config, app.DB, app.Log

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	adminRepo := repository.NewAdminRepository()
	patientRepo := repository.NewPatientRepository()
	recordRepo := repository.NewHealthRecordRepository()
	visitRepo := repository.NewVisitRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	medicationRepo := repository.NewMedicationRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	uploadRepo := repository.NewPendingUploadRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	analyticsRepo := repository.NewAnalyticsRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	alertPublisher := service.NewAlertPublisher(messagePublisher, log)
	extractor := service.NewGeminiService(cfg.Gemini, log)
	lockService := service.NewLockService(app.RedisClient, log)
	chartRenderer := service.NewChartRenderer()
	pdfService := service.NewPDFService()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, adminRepo, jwtService, app.RedisClient)
	adminUsecase := usecase.NewAdminUsecase(db, log, adminRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, recordRepo, visitRepo, prescriptionRepo, appointmentRepo, uploadRepo, app.Storage, auditService)
	recordUsecase := usecase.NewHealthRecordUsecase(db, log, patientRepo, recordRepo, auditService, alertPublisher, chartRenderer)
	uploadUsecase := usecase.NewReportUploadUsecase(db, log, cfg.Upload, patientRepo, recordRepo, uploadRepo, app.Storage, extractor, auditService, alertPublisher)
	visitUsecase := usecase.NewVisitUsecase(db, log, patientRepo, adminRepo, visitRepo, recordRepo, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, patientRepo, visitRepo, prescriptionRepo, medicationRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, patientRepo, adminRepo, appointmentRepo, auditService)
	analyticsUsecase := usecase.NewAnalyticsUsecase(db, log, analyticsRepo)
	exportUsecase := usecase.NewExportUsecase(db, log, patientRepo, recordRepo, prescriptionRepo, visitRepo, pdfService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Background jobs
	app.Sweeper = worker.NewUploadSweeper(log, cfg.Worker.SweepCronSpec, lockService, uploadUsecase)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		Admin:        handler.NewAdminHandler(adminUsecase, customValidator),
		Patient:      handler.NewPatientHandler(patientUsecase, customValidator),
		HealthRecord: handler.NewHealthRecordHandler(recordUsecase),
		ReportUpload: handler.NewReportUploadHandler(uploadUsecase, cfg.Upload.MaxBytes),
		Visit:        handler.NewVisitHandler(visitUsecase, customValidator),
		Prescription: handler.NewPrescriptionHandler(prescriptionUsecase, customValidator),
		Appointment:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Analytics:    handler.NewAnalyticsHandler(analyticsUsecase),
		Export:       handler.NewExportHandler(exportUsecase),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.RedisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, log, cfg.App.LoginRateLimit)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Let an in-flight sweep finish
	if app.Sweeper != nil {
		app.Sweeper.Stop()
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, broker)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.Publisher != nil {
		app.Publisher.Close()
	}
}
