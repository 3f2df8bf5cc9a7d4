package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/identity-service/internal/adapter/handler"
	"github.com/marcos-nsantos/identity-service/internal/container"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/config"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/observability"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Identity core, constructed once in dependency order.
	registry := container.New(cfg)
	userSvc := registry.UserService()

	// Handlers and middleware
	userHandler := handler.NewUserHandler(userSvc)
	authMiddleware := middleware.NewAuthMiddleware(registry.TokenService(), userSvc)

	// Router
	router := server.NewRouter(server.RouterConfig{
		UserHandler:    userHandler,
		AuthMiddleware: authMiddleware,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.Engine(),
		Logger:       logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
