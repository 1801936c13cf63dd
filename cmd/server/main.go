package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crowdfund.backend/internal/config"
	"crowdfund.backend/internal/infrastructure/jobs"
	"crowdfund.backend/internal/infrastructure/migrations"
	"crowdfund.backend/internal/infrastructure/notifications"
	"crowdfund.backend/internal/infrastructure/repositories"
	"crowdfund.backend/internal/infrastructure/storage"
	"crowdfund.backend/internal/interfaces/http/handlers"
	"crowdfund.backend/internal/interfaces/http/middleware"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/internal/usecases"
	"crowdfund.backend/pkg/jwt"
	"crowdfund.backend/pkg/logger"
	"crowdfund.backend/pkg/metrics"
	"crowdfund.backend/pkg/redis"
	"crowdfund.backend/pkg/verification"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	openMigrationDB = func(dsn string) (*sql.DB, error) { return sql.Open("postgres", dsn) }
	runMigrations   = migrations.Run
	newSessionStore = redis.NewSessionStore
	newBlobStore    = storage.New
	connectBus      = notifications.Connect
	newScheduler    = jobs.NewScheduler
	runServer       = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownSignal  = func() <-chan os.Signal {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		return quit
	}
)

// campaignCloseStore joins the project and transaction repositories for the close job.
type campaignCloseStore struct {
	*repositories.ProjectRepository
	transactions *repositories.TransactionRepository
}

func (s campaignCloseStore) SumCompleted(ctx context.Context, projectID uuid.UUID) (float64, error) {
	return s.transactions.SumCompleted(ctx, projectID)
}

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	ctx := context.Background()

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLog(cfg.Server.Env)
	defer func() { _ = logger.Sync() }()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))
	response.SetDebug(cfg.Server.IsDevelopment())

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to PostgreSQL via GORM")
	}

	if cfg.Server.RunMigrations {
		if err := migrate(ctx, dsn); err != nil {
			return err
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	verifier := verification.NewService(cfg.Security.VerificationSecret, cfg.Security.VerificationTTL)

	userRepo := repositories.NewUserRepository(db)
	investorRepo := repositories.NewInvestorProfileRepository(db)
	companyRepo := repositories.NewCompanyProfileRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	teamRepo := repositories.NewProjectTeamRepository(db)
	faqRepo := repositories.NewProjectFAQRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	blobs, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}
	logger.Info(ctx, "Document storage ready", zap.String("driver", cfg.Storage.Driver))

	var notifier usecases.Notifier = notifications.LogPublisher{}
	if cfg.NATS.URL != "" {
		publisher, conn, err := connectBus(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer func() {
			if err := conn.Drain(); err != nil {
				logger.Warn(context.Background(), "Failed to drain NATS connection", zap.Error(err))
			}
		}()
		notifier = publisher
		logger.Info(ctx, "NATS publisher connected", zap.String("prefix", cfg.NATS.SubjectPrefix))
	}

	appMetrics := metrics.New()

	authUsecase := usecases.NewAuthUsecase(uow, userRepo, investorRepo, companyRepo, jwtService, verifier)
	authUsecase.SetSessionStore(sessionStore, cfg.Security.SessionTTL)
	authUsecase.SetNotifier(notifier)
	authUsecase.SetMetrics(appMetrics)
	authUsecase.SetAppURL(cfg.AppURL)

	profileUsecase := usecases.NewProfileUsecase(userRepo, investorRepo, companyRepo)

	projectUsecase := usecases.NewProjectUsecase(projectRepo, companyRepo, userRepo, documentRepo, teamRepo, faqRepo)
	projectUsecase.SetNotifier(notifier)
	projectUsecase.SetMetrics(appMetrics)

	adminUsecase := usecases.NewAdminUsecase(projectRepo, companyRepo, userRepo, documentRepo, transactionRepo, teamRepo, faqRepo)

	documentUsecase := usecases.NewDocumentUsecase(documentRepo, projectRepo, companyRepo, blobs)
	documentUsecase.SetMetrics(appMetrics)

	scheduler, err := newScheduler()
	if err != nil {
		return err
	}
	closeJob := jobs.NewCampaignCloseJob(
		campaignCloseStore{ProjectRepository: projectRepo, transactions: transactionRepo},
		cfg.Jobs.CampaignCloseInterval,
		cfg.Jobs.CampaignCloseBatch,
	)
	closeJob.SetNotifier(notifier)
	closeJob.SetMetrics(appMetrics)
	if err := scheduler.RegisterCampaignClose(closeJob); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(appMetrics))

	applyCORSMiddleware(r, cfg.Server.CORSOrigin)
	registerHealthRoute(r)
	registerMetricsRoute(r, appMetrics.Handler())
	registerAPIRoutes(r, routeDeps{
		authHandler:     handlers.NewAuthHandler(authUsecase, !cfg.Server.IsDevelopment()),
		profileHandler:  handlers.NewProfileHandler(profileUsecase),
		projectHandler:  handlers.NewProjectHandler(projectUsecase),
		documentHandler: handlers.NewDocumentHandler(documentUsecase),
		adminHandler:    handlers.NewAdminHandler(adminUsecase, projectUsecase),
		authMiddleware:  middleware.AuthMiddleware(jwtService, authUsecase),
		optionalAuth:    middleware.OptionalAuth(jwtService, authUsecase),
		maxUploadBytes:  cfg.Server.MaxUploadBytes,
	})
	logger.Debug(ctx, "Routes registered", zap.Int("count", len(r.Routes())))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Crowdfund backend starting", zap.String("port", cfg.Server.Port))
		serverErr <- runServer(srv)
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-shutdownSignal():
		logger.Info(ctx, "Shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func migrate(ctx context.Context, dsn string) error {
	mdb, err := openMigrationDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer mdb.Close()

	if err := runMigrations(ctx, mdb); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info(ctx, "Database migrations applied")
	return nil
}
