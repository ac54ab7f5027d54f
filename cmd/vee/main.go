package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/api"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/client"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/config"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/i18n"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/repository"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/service"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database (chat state and client preferences only;
	// incident reports never touch local storage)
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	stateRepo := repository.NewStateRepository(db, i18n.Normalize(cfg.Chat.DefaultLanguage), logger)

	// Remote support-platform backend
	backend := client.NewBackend(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	// Initialize services
	manager := service.NewSessionManager(stateRepo, logger)
	exchange := service.NewExchange(backend, cfg.Chat.HistoryWindow, logger)
	chatService := service.NewChatService(manager, exchange)
	reportService := service.NewReportService(backend)
	incidentService := service.NewIncidentService(backend)
	adminService := service.NewAdminService(backend)

	// Setup router
	router := api.SetupRouter(manager, chatService, reportService, incidentService, adminService, api.RouterConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting Vee gateway",
			zap.String("address", cfg.Address()),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
