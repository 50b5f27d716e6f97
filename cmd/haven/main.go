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

	"github.com/havenchat/haven/internal/api"
	"github.com/havenchat/haven/internal/config"
	"github.com/havenchat/haven/internal/llm"
	"github.com/havenchat/haven/internal/pipeline"
	"github.com/havenchat/haven/internal/search"
	"github.com/havenchat/haven/internal/service"
	"github.com/havenchat/haven/internal/session"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// .env is optional; collaborator keys often live there in development
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

	ctx := context.Background()

	// Language-model collaborator
	llmClient, err := llm.NewClient(ctx, cfg.LLM, pipeline.SystemInstruction)
	if err != nil {
		logger.Fatal("Failed to initialize language model client", zap.Error(err))
	}
	defer llmClient.Close()

	// Web-search collaborator (nil when unconfigured; the pipeline reports
	// that through a placeholder resource rather than failing)
	searchClient := search.NewClientFromConfig(cfg.Search)
	if searchClient == nil {
		logger.Warn("Search collaborator not configured, resource lookups will return a placeholder")
	}

	// Core pipeline
	routerStage := pipeline.NewRouterStage(llmClient, cfg.LLM.Timeout, logger)
	searchStage := pipeline.NewSearchStage(searchClient, cfg.Search.Timeout, logger)
	controller := pipeline.NewController(routerStage, searchStage)

	// Session store and orchestrator
	store := session.NewMemoryStore()
	conversations := service.NewConversationService(store, controller, logger)

	// Setup router
	router := api.SetupRouter(conversations, logger, api.RouterConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
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
		logger.Info("Starting Haven server",
			zap.String("address", cfg.Address()),
			zap.String("llm_provider", cfg.LLM.Provider),
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
