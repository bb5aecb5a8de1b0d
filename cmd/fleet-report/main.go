package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fleet-tracker/internal/config"
	"fleet-tracker/internal/db"
	"fleet-tracker/internal/logger"
	"fleet-tracker/internal/repository"
	"fleet-tracker/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fleet-report",
		Short: "Offline vehicle activity reports",
		Long: `Builds the same vehicle activity reports the fleet tracker API serves,
straight from the database. Configuration is read from app.env and the
environment.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(exportCmd(openApp))
	rootCmd.AddCommand(summaryCmd(openApp))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	vehicles *service.VehicleService
	reports  *service.ReportService
}

type opener func() (*app, error)

func openApp() (*app, error) {
	cfg, err := config.LoadReporting()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// stdout carries command output
	log := logger.NewWithWriter(cfg.Environment, os.Stderr)

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	vehicleRepo := repository.NewVehicleRepository(database)
	statusRepo := repository.NewStatusRepository(database)
	return &app{
		vehicles: service.NewVehicleService(vehicleRepo, statusRepo, log),
		reports:  service.NewReportService(vehicleRepo, statusRepo, cfg.Report, log),
	}, nil
}
