package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Jinu86/YouTube-summary-service/config"
	"github.com/Jinu86/YouTube-summary-service/db"
	"github.com/Jinu86/YouTube-summary-service/handlers"
	"github.com/Jinu86/YouTube-summary-service/logger"
	"github.com/Jinu86/YouTube-summary-service/summarize"
)

func main() {
	// Load .env if present; real env vars win.
	godotenv.Load()

	cfg := config.LoadConfig()
	if err := config.ValidateConfig(cfg); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	if err := logger.Init(cfg.LogDir, config.GetEnv("DEBUG", "") != ""); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}

	if cfg.GeminiAPIKey == "" {
		logrus.Fatal("GEMINI_API_KEY is required")
	}

	if err := db.InitializeDB(cfg.DBPath); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		if err := db.DB.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close database")
		}
	}()

	generator, err := summarize.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.ModelName)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize model client")
	}

	handlers.InitHandlers(cfg, generator)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/summarize", handlers.SummarizeHandler)
	mux.HandleFunc("/api/export", handlers.ExportHandler)
	mux.HandleFunc("/health", handlers.HealthCheckHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logrus.WithField("port", cfg.ServerPort).Info("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down the server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("Server shutdown failed")
	}
}
