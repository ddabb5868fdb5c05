package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/oaksoe19620-creator/Webapp/internal/config"
	"github.com/oaksoe19620-creator/Webapp/internal/handlers"
	"github.com/oaksoe19620-creator/Webapp/internal/notify"
	"github.com/oaksoe19620-creator/Webapp/internal/store"
)

func main() {
	// Configure slog as early as possible in main
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Setup Handlers
	notifier := notify.New(cfg.BotToken, cfg.TelegramAPIURL)
	productHandler := &handlers.ProductHandler{
		Store: db,
		Cfg:   cfg,
	}
	orderHandler := &handlers.OrderHandler{
		Store:    db,
		Notifier: notifier,
		Cfg:      cfg,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(handlers.LoggingMiddleware)
	productHandler.Register(r)
	orderHandler.Register(r)

	// 4. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
