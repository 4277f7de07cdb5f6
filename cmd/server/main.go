package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mobility-network-backend/api"
	"mobility-network-backend/config"
	"mobility-network-backend/pkg/analysis"
	"mobility-network-backend/pkg/loader"
	"mobility-network-backend/pkg/louvain"
	"mobility-network-backend/service"
)

func main() {
	// Initialize structured logging with zerolog
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().Msg("Starting Mobility Network Community Detection service")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("address", cfg.Server.Address).
		Str("data_path", cfg.Data.Path).
		Int("max_rows", cfg.Data.MaxRows).
		Msg("Configuration loaded")

	// Wire services
	analyzer := analysis.NewAnalyzer(louvain.NewConfig())
	networkService := service.NewNetworkService(analyzer)

	// Load the graph data on startup. A failed load is not fatal: the
	// service starts anyway and /analyze reports data unavailable, the
	// same way the graph-less state is handled at runtime.
	loadOpts := loader.Options{
		SourceColumn: cfg.Data.SourceColumn,
		TargetColumn: cfg.Data.TargetColumn,
		WeightColumn: cfg.Data.WeightColumn,
		MaxRows:      cfg.Data.MaxRows,
	}
	if err := networkService.Load(cfg.Data.Path, loadOpts); err != nil {
		log.Error().Err(err).Str("path", cfg.Data.Path).Msg("Failed to load graph data")
	}

	// Setup router
	handlers := api.NewHandlers(networkService)
	router := mux.NewRouter()
	api.SetupRoutes(router, handlers)

	router.Use(api.RequestIDMiddleware)
	router.Use(api.LoggingMiddleware)
	router.Use(api.RecoveryMiddleware)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}).Handler(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	networkService.Clear()
	log.Info().Msg("Server exited")
}
