package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"kam-store/internal/config"
	"kam-store/internal/database"
	"kam-store/internal/identity"
	"kam-store/internal/logger"
	"kam-store/internal/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting KAM store API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	// Initialize database when the cart backend needs it
	var dbService *database.Service
	if cfg.Cart.Backend == "postgres" {
		dbService, err = database.New(cfg.Database)
		if err != nil {
			log.Fatal("Failed to open database", zap.Error(err))
		}

		health := dbService.Health(ctx)
		log.Info("Database health check", zap.Any("health", health))

		if err := database.MigrateUp(dbService.DB(), log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Redis backs the rate limiter and the optional redis cart backend
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, continuing without it", zap.Error(err))
			redisClient.Close()
			redisClient = nil
		}
	}

	// Identity is delegated to Firebase; without a project id the auth
	// endpoints report the service as unavailable
	var idAdapter identity.Adapter
	if cfg.Firebase.ProjectID != "" {
		fbAdapter, err := identity.NewFirebaseAdapter(
			ctx,
			cfg.Firebase.ProjectID,
			cfg.Firebase.CredentialsFile,
			cfg.Firebase.WebAPIKey,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize identity adapter", zap.Error(err))
		}
		idAdapter = fbAdapter
	} else {
		log.Warn("No Firebase project configured, auth endpoints are disabled")
		idAdapter = identity.NewDisabledAdapter()
	}

	var db *sql.DB
	if dbService != nil {
		db = dbService.DB()
	}

	// Create server
	srv := server.NewServer(cfg, log, db, redisClient, idAdapter)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
