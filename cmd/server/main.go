package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mverhey/confidant/internal/api"
	"github.com/mverhey/confidant/internal/config"
	"github.com/mverhey/confidant/internal/export"
	"github.com/mverhey/confidant/internal/logger"
	"github.com/mverhey/confidant/internal/repository/file"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	if err := logger.Setup(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("memory_dir", cfg.Storage.MemoryDir).
		Msg("Starting confidant server")

	// Initialize storage. A writable working directory is the only fatal
	// precondition.
	sessions, err := file.NewSessionStore(cfg.Storage.MemoryDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session storage")
	}
	profiles, err := file.NewProfileStore(cfg.Storage.ConfigDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open profile storage")
	}
	exporter, err := export.NewHTMLExporter(cfg.Storage.ExportDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open export directory")
	}

	// Initialize router
	router := api.NewRouter(cfg, sessions, profiles, exporter)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
