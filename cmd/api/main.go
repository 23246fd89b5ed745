package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-relay/config"
	_ "chat-relay/docs" // Swagger docs
	chatHTTP "chat-relay/internal/chat/delivery/http"
	"chat-relay/internal/chat/repository"
	memoryRepo "chat-relay/internal/chat/repository/memory"
	sqliteRepo "chat-relay/internal/chat/repository/sqlite"
	"chat-relay/internal/chat/usecase"
	"chat-relay/internal/httpserver"
	"chat-relay/pkg/llmprovider"
	"chat-relay/pkg/log"
)

// @title       Chat Relay API
// @description Relays chat exchanges to LLM completion providers and persists conversation history.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Chat Relay...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Completion providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize providers: ", err)
		return
	}
	for _, p := range providers {
		logger.Infof(ctx, "Provider registered: %s (%s)", p.Name(), p.Model())
	}

	maxTotalTimeout := 2 * time.Minute
	if cfg.LLM.MaxTotalTimeout != "" {
		if d, perr := time.ParseDuration(cfg.LLM.MaxTotalTimeout); perr == nil {
			maxTotalTimeout = d
		} else {
			logger.Warnf(ctx, "Invalid llm.max_total_timeout %q, using default: %v", cfg.LLM.MaxTotalTimeout, perr)
		}
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		MaxTotalTimeout: maxTotalTimeout,
	}, logger)

	// 4. Conversation store
	var chatRepo repository.Repository
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn(ctx, "Using in-memory conversation store, history is lost on restart")
		chatRepo = memoryRepo.New()
	default:
		db, dbErr := sqliteRepo.OpenDB(cfg.Storage.SQLitePath)
		if dbErr != nil {
			logger.Error(ctx, "Failed to open conversation store: ", dbErr)
			return
		}
		defer db.Close()
		if schemaErr := sqliteRepo.InitSchema(db); schemaErr != nil {
			logger.Error(ctx, "Failed to init conversation store schema: ", schemaErr)
			return
		}
		logger.Infof(ctx, "Conversation store ready at %s", cfg.Storage.SQLitePath)
		chatRepo = sqliteRepo.New(db, logger)
	}

	// 5. Chat domain
	chatUC := usecase.New(logger, manager, chatRepo, usecase.Config{
		Temperature:     cfg.Chat.Temperature,
		MaxOutputTokens: cfg.Chat.MaxOutputTokens,
	})
	chatHandler := chatHTTP.New(logger, chatUC)

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ChatHandler:     chatHandler,
		RateLimitPerMin: cfg.Chat.RateLimitPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
