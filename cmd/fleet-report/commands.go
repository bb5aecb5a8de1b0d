package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fleet-tracker/internal/model"
)

func exportCmd(open opener) *cobra.Command {
	var (
		start, end, out string
		vehicleID       int64
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the vehicle report workbook (xlsx)",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := reportFilter(start, end, vehicleID)
			if err != nil {
				return err
			}

			a, err := open()
			if err != nil {
				return err
			}

			data, filename, err := a.reports.GenerateReport(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First report date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last report date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&vehicleID, "vehicle", 0, "Restrict the report to one vehicle id")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to vehicle-report-<range>.xlsx)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func summaryCmd(open opener) *cobra.Command {
	var (
		start, end string
		vehicleID  int64
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print one vehicle's activity summary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if vehicleID <= 0 {
				return errors.New("--vehicle must be a positive integer")
			}
			filter, err := dateFilter(start, end)
			if err != nil {
				return err
			}

			a, err := open()
			if err != nil {
				return err
			}

			report, err := a.vehicles.GetVehicleStatus(cmd.Context(), vehicleID, filter)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Vehicle model.Vehicle `json:"vehicle"`
				Samples int           `json:"samples"`
				Summary model.Summary `json:"summary"`
			}{report.Vehicle, len(report.Statuses), report.Summary})
		},
	}

	cmd.Flags().Int64Var(&vehicleID, "vehicle", 0, "Vehicle id")
	cmd.Flags().StringVar(&start, "start", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("vehicle")
	return cmd
}

func reportFilter(start, end string, vehicleID int64) (model.ReportFilter, error) {
	rng, err := model.NewDateRange(start, end)
	if err != nil {
		return model.ReportFilter{}, err
	}
	if rng.Reversed() {
		return model.ReportFilter{}, errors.New("--start must be before or equal to --end")
	}

	filter := model.ReportFilter{Range: rng}
	if vehicleID < 0 {
		return model.ReportFilter{}, errors.New("--vehicle must be a positive integer")
	}
	if vehicleID > 0 {
		filter.VehicleID = &vehicleID
	}
	return filter, nil
}

// dateFilter leaves a missing bound open.
func dateFilter(start, end string) (model.DateFilter, error) {
	var filter model.DateFilter
	if start != "" {
		parsed, err := model.ParseDate(start)
		if err != nil {
			return model.DateFilter{}, fmt.Errorf("--start: %w", err)
		}
		filter.Start = &parsed
	}
	if end != "" {
		parsed, err := model.ParseDate(end)
		if err != nil {
			return model.DateFilter{}, fmt.Errorf("--end: %w", err)
		}
		filter.End = &parsed
	}
	return filter, nil
}
