package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/palette/internal/logger"
	"github.com/existflow/palette/internal/remote/postgres"
	"github.com/existflow/palette/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://localhost:5432/palette?sslmode=disable"
	}

	err := logger.Init(logger.Config{
		Level:   logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		Console: true,
		JSON:    os.Getenv("LOG_FORMAT") == "json",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Close()

	var repo server.Repository
	if dbURL == "memory" {
		logger.Warn("Using in-memory repository; data is lost on exit")
		repo = server.NewMemoryRepository()
	} else {
		pg, err := postgres.Open(dbURL)
		if err != nil {
			logger.Error("Failed to open database", logger.F("error", err))
			os.Exit(1)
		}
		repo = pg
	}

	srv := server.New(repo)
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error closing server", logger.F("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Palette server starting", logger.F("port", port))
		if err := srv.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", logger.F("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", logger.F("error", err))
	}
}
