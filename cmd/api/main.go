package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"inkfolio/internal/handlers"
	"inkfolio/internal/repositories"
	"inkfolio/internal/services"
	"inkfolio/internal/shared"
	"inkfolio/pkg/auth"
)

func main() {
	config := shared.LoadConfig()
	logger := shared.NewLogger(config.Environment)

	registry := prometheus.NewRegistry()
	metrics := shared.NewAppMetrics(registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.StartSystemMetrics(ctx)

	db, err := repositories.Open(config.DatabaseDriver, config.DatabaseDSN, config.MigrationsPath, logger)

	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}

	defer db.Close()

	userStore := repositories.NewSQLUserStore(db, config.DatabaseDriver)
	tattooStore := repositories.NewSQLTattooStore(db, config.DatabaseDriver)

	tokens := auth.NewJWT(config.JWTSecret)
	hasher := auth.NewBcryptHasher()

	authService := services.NewAuthService(userStore, hasher, tokens)
	userService := services.NewUserService(userStore, tattooStore, metrics)
	tattooService := services.NewTattooService(userStore, tattooStore, metrics)

	router := handlers.SetupRouter(handlers.HandlersConfig{
		AuthHandler:   handlers.NewAuthHandler(authService),
		UserHandler:   handlers.NewUserHandler(userService, metrics),
		TattooHandler: handlers.NewTattooHandler(tattooService, metrics),
	}, metrics, registry, config)

	server := &http.Server{
		Addr:    ":" + config.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", config.Port).Str("env", config.Environment).Msg("Server starting")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server error")
			stop()
		}
	}()

	<-ctx.Done()

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
		os.Exit(1)
	}

	log.Info().Msg("Server stopped")
}
