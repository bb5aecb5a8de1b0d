package main

import (
	"fmt"
	"os"

	"fleet-tracker/internal/auth"
	"fleet-tracker/internal/config"
	"fleet-tracker/internal/db"
	httphandler "fleet-tracker/internal/http"
	"fleet-tracker/internal/http/middleware"
	"fleet-tracker/internal/logger"
	"fleet-tracker/internal/repository"
	"fleet-tracker/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	vehicleRepo := repository.NewVehicleRepository(database)
	statusRepo := repository.NewStatusRepository(database)
	vehicleService := service.NewVehicleService(vehicleRepo, statusRepo, appLogger)
	reportService := service.NewReportService(vehicleRepo, statusRepo, cfg.Report, appLogger)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	stop := make(chan struct{})
	defer close(stop)
	go limiter.Run(stop)

	handler := httphandler.NewHandler(vehicleService, reportService, appLogger)
	router := httphandler.NewRouter(handler, appLogger,
		httphandler.RouterConfig{Environment: cfg.Environment, CORSOrigin: cfg.HTTP.CORSOrigin},
		middleware.RateLimit(limiter),
		middleware.Auth(tokenParser),
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet tracker")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
