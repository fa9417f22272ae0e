package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lalith-99/lawdesk/internal/api"
	"github.com/lalith-99/lawdesk/internal/config"
	"github.com/lalith-99/lawdesk/internal/db"
	"github.com/lalith-99/lawdesk/internal/middleware"
	"github.com/lalith-99/lawdesk/internal/observ"
	"github.com/lalith-99/lawdesk/internal/repository/postgres"
	"github.com/lalith-99/lawdesk/internal/service"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Load config
	// ---------------------------------------------------------------
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// ---------------------------------------------------------------
	// 2. Create logger
	// ---------------------------------------------------------------
	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// ---------------------------------------------------------------
	// 3. Connect to Postgres and migrate
	// ---------------------------------------------------------------
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
	}, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	// ---------------------------------------------------------------
	// 4. Auth rate limiter: Redis when configured, else in-process
	// ---------------------------------------------------------------
	var limiter middleware.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		limiter = middleware.NewRedisLimiter(rdb, cfg.AuthRateLimitPerMin)
		logger.Info("auth rate limiter backed by redis", zap.String("addr", opts.Addr))
	} else {
		limiter = middleware.NewMemoryLimiter(cfg.AuthRateLimitPerMin)
		logger.Info("auth rate limiter in memory")
	}

	// ---------------------------------------------------------------
	// 5. Repositories and services
	//
	// Every store shares the pool. Stores that run inside a
	// TxManager callback pick the transaction up from ctx.
	// ---------------------------------------------------------------
	pool := database.Pool()
	metrics := observ.NewMetrics()

	var (
		userStore      = postgres.NewUserStore(pool)
		clientStore    = postgres.NewClientStore(pool)
		matterStore    = postgres.NewMatterStore(pool)
		invoiceStore   = postgres.NewInvoiceStore(pool)
		entryStore     = postgres.NewTimeEntryStore(pool)
		taskStore      = postgres.NewTaskStore(pool)
		documentStore  = postgres.NewDocumentStore(pool)
		commStore      = postgres.NewCommunicationStore(pool)
		calendarStore  = postgres.NewCalendarStore(pool)
		conflictStore  = postgres.NewConflictStore(pool)
		partyStore     = postgres.NewPartyStore(pool)
		activityStore  = postgres.NewActivityStore(pool)
		reportStore    = postgres.NewReportStore(pool)
		txManager      = postgres.NewTxManager(pool)
		recorder       = service.NewRecorder(activityStore, metrics, logger)
		authService    = service.NewAuthService(userStore, recorder, cfg.JWTSecret, cfg.JWTTTL, logger)
		userService    = service.NewUserService(userStore, recorder)
		clientService  = service.NewClientService(clientStore, invoiceStore, recorder)
		matterService  = service.NewMatterService(matterStore, recorder)
		invoiceService = service.NewInvoiceService(invoiceStore, txManager, recorder, metrics)
		entryService   = service.NewTimeEntryService(entryStore, userStore, recorder)
		taskService    = service.NewTaskService(taskStore, recorder)
		documentSvc    = service.NewDocumentService(documentStore, recorder)
		commService    = service.NewCommunicationService(commStore, recorder)
		calendarSvc    = service.NewCalendarService(calendarStore, recorder)
		conflictSvc    = service.NewConflictService(conflictStore, partyStore, recorder)
		reportService  = service.NewReportService(reportStore)
		activitySvc    = service.NewActivityService(activityStore)
	)

	// ---------------------------------------------------------------
	// 6. HTTP server
	// ---------------------------------------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigin:  cfg.FrontendURL,
		RequestTimeout: cfg.RequestTimeout,
		AuthLimiter:    limiter,
		Metrics:        metrics,
	}, api.Handlers{
		Health:         api.NewHealthHandler(database, version, logger),
		Auth:           api.NewAuthHandler(authService, logger),
		Users:          api.NewUserHandler(userService, logger),
		Clients:        api.NewClientHandler(clientService, matterService, logger),
		Matters:        api.NewMatterHandler(matterService, entryService, documentSvc, taskService, commService, logger),
		Invoices:       api.NewInvoiceHandler(invoiceService, logger),
		TimeEntries:    api.NewTimeEntryHandler(entryService, logger),
		Tasks:          api.NewTaskHandler(taskService, logger),
		Documents:      api.NewDocumentHandler(documentSvc, logger),
		Communications: api.NewCommunicationHandler(commService, logger),
		Calendar:       api.NewCalendarHandler(calendarSvc, logger),
		Conflicts:      api.NewConflictHandler(conflictSvc, logger),
		Reports:        api.NewReportHandler(reportService, logger),
		Activities:     api.NewActivityHandler(activitySvc, logger),
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting lawdesk",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// ---------------------------------------------------------------
	// 7. Graceful shutdown on SIGINT / SIGTERM
	// ---------------------------------------------------------------
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
