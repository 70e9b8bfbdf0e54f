package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"loyalty-admin/app"
	"loyalty-admin/app/router"
	"loyalty-admin/config"
	"loyalty-admin/logger"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	envPath := ".env"
	var envErr error
	if os.Getenv("ENV") != config.EnvProduction {
		// Use Overload to ensure .env values override system environment variables
		envErr = godotenv.Overload(envPath)
	}

	cfg, err := config.Load()
	if err != nil {
		router.ReportError(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		router.ReportError(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.IsProduction() {
		if envErr != nil {
			log.Debug(".env file not found, using system environment variables", zap.String("path", envPath), zap.Error(envErr))
		} else {
			log.Debug("loaded environment variables from .env", zap.String("path", envPath))
		}
	}

	// Initialize application
	cliApp, err := app.Initialize(cfg, log)
	if err != nil {
		log.Error("failed to initialize", zap.Error(err))
		router.ReportError(os.Stderr, err)
		os.Exit(1)
	}

	if err := cliApp.Run(os.Args); err != nil {
		router.ReportError(os.Stderr, err)
		_ = log.Sync()
		os.Exit(1)
	}
}

