package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/app"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/config"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/metrics"
	"github.com/Nazarious-ucu/blog-newsletter-api/pkg/logger"
)

// @title Blog & Newsletter API
// @version 1.0
// @description Blog posts and newsletter subscription management
// @host localhost:8080
// @BasePath /
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, "blog-newsletter-api", cfg.LogLevel)
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	application := app.New(*cfg, l, metrics.NewMetrics("blog"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		l.Error().Err(err).Msg("application stopped with error")
		stop()
		log.Panic(err)
	}
}
