package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/api"
	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/config"
	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/notify"
	"github.com/chasecurtis1991/vynlo-ai-dashboard/internal/store"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	flag.Parse()

	// Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}

	// Logger
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// SQLite
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Stores
	taskStore := store.NewTaskStore(db)
	metricsStore := store.NewMetricsStore(db)

	if cfg.SeedData {
		if err := metricsStore.SeedIfEmpty(); err != nil {
			logger.Error("failed to seed metrics", "error", err)
			os.Exit(1)
		}
		if err := taskStore.SeedIfEmpty(); err != nil {
			logger.Error("failed to seed tasks", "error", err)
			os.Exit(1)
		}
	}

	// Telegram relay (optional)
	var notifier *notify.Client
	if cfg.TelegramConfigured() {
		notifier = notify.NewClient(cfg.TelegramAPIBase, cfg.TelegramToken, cfg.TelegramChatID)
	} else {
		logger.Info("telegram credentials not set, notification relay disabled")
	}

	// Router
	router := api.NewRouter(db, taskStore, metricsStore, notifier, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("dashboard backend starting", "addr", addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
