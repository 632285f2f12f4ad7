package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/notice-management/internal"
	"github.com/frahmantamala/notice-management/internal/auth"
	authPostgres "github.com/frahmantamala/notice-management/internal/auth/postgres"
	"github.com/frahmantamala/notice-management/internal/dashboard"
	dashboardPostgres "github.com/frahmantamala/notice-management/internal/dashboard/postgres"
	"github.com/frahmantamala/notice-management/internal/department"
	departmentPostgres "github.com/frahmantamala/notice-management/internal/department/postgres"
	"github.com/frahmantamala/notice-management/internal/notice"
	noticePostgres "github.com/frahmantamala/notice-management/internal/notice/postgres"
	"github.com/frahmantamala/notice-management/internal/notifier"
	"github.com/frahmantamala/notice-management/internal/transport/rest"
	"github.com/frahmantamala/notice-management/internal/user"
	userPostgres "github.com/frahmantamala/notice-management/internal/user/postgres"
	"github.com/frahmantamala/notice-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the sqlx pool; both see the same connection limits.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	authRepo := authPostgres.NewRepository(gormDB)
	userRepo := userPostgres.NewRepository(gormDB)
	departmentRepo := departmentPostgres.NewRepository(gormDB)
	noticeRepo := noticePostgres.NewNoticeRepository(gormDB)
	dashboardRepo := dashboardPostgres.NewDashboardRepository(gormDB)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost, log)
	userService := user.NewService(userRepo, authService)
	departmentService := department.NewService(departmentRepo, log)

	emailSender := notifier.NewSMTPEmailSender(config.Notifier.SMTP, log)
	smsSender := notifier.NewGatewaySMSSender(config.Notifier.SMS, log)
	pushSender := notifier.NewFCMPushSender(config.Notifier.Push, log)

	// No device token registry exists yet, so the push channel reports a
	// skip on every approval instead of inventing recipients.
	noticeService := notice.NewService(
		noticeRepo,
		departmentService,
		userService,
		emailSender,
		smsSender,
		pushSender,
		nil,
		log,
	)
	dashboardService := dashboard.NewService(dashboardRepo, departmentService, log)

	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	departmentHandler := department.NewHandler(departmentService)
	noticeHandler := notice.NewHandler(noticeService)
	notifierHandler := notifier.NewHandler(emailSender, smsSender, pushSender)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		db.DB,
		authHandler,
		userHandler,
		departmentHandler,
		noticeHandler,
		notifierHandler,
		dashboardHandler,
		log,
	)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: log,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
