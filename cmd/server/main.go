package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"taskpilot/internal/config"
	apphttp "taskpilot/internal/http"
	"taskpilot/internal/repository/sqlstore"
	"taskpilot/internal/sentiment"
	"taskpilot/internal/service"
	"taskpilot/pkg/apierrors"
	"taskpilot/pkg/translator"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "taskpilot",
		Short:        "Task management HTTP service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, toml or json)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Create tables if needed and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(configPath)
		},
	}

	root.AddCommand(serve, migrate)
	root.RunE = serve.RunE
	return root
}

func setup(configPath string) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	return cfg, logger, nil
}

func openStore(ctx context.Context, cfg config.Config) (*sqlx.DB, *sqlstore.AccountRepository, *sqlstore.TaskRepository, error) {
	db, err := sqlstore.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	accountRepo := sqlstore.NewAccountRepository(db)
	taskRepo := sqlstore.NewTaskRepository(db)

	// tasks reference users, so users goes first
	if err := accountRepo.Init(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("init account repository: %w", err)
	}
	if err := taskRepo.Init(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("init task repository: %w", err)
	}
	return db, accountRepo, taskRepo, nil
}

func runMigrate(configPath string) error {
	cfg, logger, err := setup(configPath)
	if err != nil {
		return err
	}

	db, _, _, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Infof("schema ready (%s)", cfg.Database.Driver)
	return nil
}

func runServe(configPath string) error {
	cfg, logger, err := setup(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, accountRepo, taskRepo, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	hasher := service.NewArgon2Hasher(service.HashParams{
		Memory:      cfg.Auth.Argon2.Memory,
		Iterations:  cfg.Auth.Argon2.Iterations,
		Parallelism: cfg.Auth.Argon2.Parallelism,
	})
	accountService := service.NewAccountService(accountRepo, hasher, cfg.Auth.MinPasswordLength)
	taskService := service.NewTaskService(taskRepo, accountRepo, nil)

	analyzer, err := sentiment.NewHuggingFaceClient(sentiment.Config{
		Endpoint: cfg.Sentiment.Endpoint,
		Token:    cfg.Sentiment.Token,
		Timeout:  cfg.Sentiment.Timeout,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("setup sentiment client: %w", err)
	}
	if cfg.Sentiment.Token == "" {
		logger.Warn("sentiment token is empty, the inference API may reject requests")
	}

	bundle, err := translator.Default()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		accountService,
		taskService,
		analyzer,
		db,
		apierrors.NewCatalog(bundle, logger),
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
	return nil
}
