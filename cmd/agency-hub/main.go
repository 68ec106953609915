package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"agency-hub/internal/adapter/notification"
	"agency-hub/internal/adapter/storage"
	"agency-hub/internal/api/router"
	"agency-hub/internal/pkg/config"
	"agency-hub/internal/pkg/database"
	"agency-hub/internal/pkg/logger"
	"agency-hub/internal/repository"
	"agency-hub/internal/scheduler"
	"agency-hub/internal/service"

	_ "agency-hub/docs" // Swagger docs
)

// @title Agency Hub API
// @version 1.0
// @description Agency project management API
// @description Clients, projects, tasks, invoices, files, messages and the client portal

// @contact.name API Support
// @contact.email support@example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

var (
	configFile = flag.String("config", "", "config file path (e.g. -config=configs/config.yaml)")
	version    = flag.Bool("version", false, "print version and exit")
)

const (
	appVersion = "1.0.0"
	appName    = "agency-hub"
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}

	// init config logger
	var cfg *config.Config
	{
		// flag > env > default path
		configPath := getConfigPath()

		c, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("load config failed: %v\n", err)
			fmt.Println("\nUsage:")
			fmt.Println("  1. flag:")
			fmt.Println("     ./agency-hub -config=configs/config.yaml")
			fmt.Println("  2. environment:")
			fmt.Println("     export CONFIG_FILE=configs/config.yaml")
			fmt.Println("     ./agency-hub")
			fmt.Println("  3. default:")
			fmt.Println("     ./agency-hub  (reads configs/config.yaml)")
			os.Exit(1)
		}
		cfg = c

		if err := logger.Init(&cfg.Log); err != nil {
			fmt.Printf("init logger failed: %v\n", err)
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("Load config file: %s of %s", configPath, getConfigSource()))

		defer func() {
			_ = logger.Close()
		}()
	}

	logger.Info(fmt.Sprintf("%s starting...", appName), zap.String("version", appVersion))

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("init database failed", zap.Error(err))
	}
	defer func() {
		_ = database.Close()
	}()

	logger.Info(fmt.Sprintf("database connected %s:%v", cfg.Database.Host, cfg.Database.Port),
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.Database))

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.NewS3Store(initCtx, cfg.Storage, logger.Named("storage"))
	initCancel()
	if err != nil {
		logger.Fatal("init object storage failed", zap.Error(err))
	}

	notifier := notification.New(cfg.Notification, logger.Named("notification"))

	invoiceService := service.NewInvoiceService(
		repository.NewInvoiceRepository(database.GetDB()),
		repository.NewClientRepository(database.GetDB()),
		repository.NewProjectRepository(database.GetDB()),
		notifier,
		logger.Log,
	)

	taskScheduler := scheduler.NewScheduler(invoiceService, logger.Named("scheduler"))
	if err := taskScheduler.Start(&cfg.Scheduler); err != nil {
		logger.Warn("start scheduler failed", zap.Error(err))
	}

	r := router.Setup(cfg, database.GetDB(), store, notifier, logger.Log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("%s listening", cfg.Server.Name),
			zap.String("address", addr),
			zap.String("mode", cfg.Server.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	taskScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}

// getConfigPath flag > CONFIG_FILE > configs/config.yaml
func getConfigPath() string {
	if *configFile != "" {
		return *configFile
	}

	if envConfig := os.Getenv("CONFIG_FILE"); envConfig != "" {
		return envConfig
	}

	return "configs/config.yaml"
}

func getConfigSource() string {
	if *configFile != "" {
		return "flag"
	}
	if os.Getenv("CONFIG_FILE") != "" {
		return "environment"
	}
	return "default"
}
