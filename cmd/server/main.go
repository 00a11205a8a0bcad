package main

// @title           Campusnet API
// @version         1.0
// @description     A RESTful API for a campus social network: profiles, posts, friendships, notifications and direct messages.
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusnet/internal/config"
	"campusnet/internal/database"
	"campusnet/internal/events"
	"campusnet/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting campusnet server")

	db, err := database.NewMySQLDB(
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)
	if err != nil {
		slog.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	images, err := database.NewMinIOClient(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
	)
	if err != nil {
		slog.Error("Failed to connect to MinIO", "error", err)
		os.Exit(1)
	}

	// Notification events are best-effort: a missing broker degrades
	// to store-only notifications instead of refusing to boot.
	var publisher events.Publisher
	publisher, err = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		slog.Warn("Kafka unavailable, notification events disabled", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	r := router.NewRouter(cfg, db, redisClient, images, publisher)
	r.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r.StopHub()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
