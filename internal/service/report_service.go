package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"fleet-tracker/internal/config"
	"fleet-tracker/internal/export"
	"fleet-tracker/internal/metrics"
	"fleet-tracker/internal/model"
	"fleet-tracker/internal/timeline"
)

type ReportService struct {
	vehicles     VehicleStore
	statuses     StatusStore
	log          zerolog.Logger
	maxVehicles  int
	workers      int
	maxRangeDays int
}

func NewReportService(vehicles VehicleStore, statuses StatusStore, cfg config.ReportConfig, log zerolog.Logger) *ReportService {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &ReportService{
		vehicles:     vehicles,
		statuses:     statuses,
		log:          log,
		maxVehicles:  cfg.MaxVehicles,
		workers:      workers,
		maxRangeDays: cfg.MaxRangeDays,
	}
}

func (s *ReportService) GetReportData(ctx context.Context, filter model.ReportFilter) ([]model.ReportRow, error) {
	start := time.Now()
	defer func() {
		metrics.ReportDuration.WithLabelValues("json").Observe(time.Since(start).Seconds())
	}()

	return s.buildRows(ctx, filter)
}

// GenerateReport renders the report as an xlsx workbook and returns its bytes
// together with the download file name.
func (s *ReportService) GenerateReport(ctx context.Context, filter model.ReportFilter) ([]byte, string, error) {
	start := time.Now()
	defer func() {
		metrics.ReportDuration.WithLabelValues("xlsx").Observe(time.Since(start).Seconds())
	}()

	rows, err := s.buildRows(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrNoData
	}

	var buf bytes.Buffer
	if err := export.WriteVehicleReport(&buf, rows); err != nil {
		return nil, "", fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), filter.Filename(), nil
}

func (s *ReportService) buildRows(ctx context.Context, filter model.ReportFilter) ([]model.ReportRow, error) {
	if err := s.validateRange(filter.Range); err != nil {
		return nil, err
	}

	ids, err := s.vehicleIDs(ctx, filter.VehicleID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.ReportRow{}, nil
	}

	samples, err := s.statuses.FindForReport(ctx, ids, filter.Range)
	if err != nil {
		return nil, fmt.Errorf("load samples: %w", err)
	}
	metrics.ReportSamples.Add(float64(len(samples)))

	groups := timeline.GroupByVehicle(samples)
	if len(groups) == 0 {
		return []model.ReportRow{}, nil
	}

	groupIDs := make([]int64, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.VehicleID
	}
	vehicles, err := s.vehicles.FindByIDs(ctx, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}

	summaries, err := s.summarize(ctx, groups)
	if err != nil {
		return nil, err
	}

	rows := timeline.AssembleRows(vehicles, groups, summaries)
	s.log.Debug().
		Str("range", filter.Range.String()).
		Int("samples", len(samples)).
		Int("rows", len(rows)).
		Msg("report assembled")
	return rows, nil
}

// summarize runs one summarization per vehicle on a bounded worker pool.
// summaries[i] always belongs to groups[i].
func (s *ReportService) summarize(ctx context.Context, groups []model.VehicleSamples) ([]model.Summary, error) {
	summaries := make([]model.Summary, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range groups {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := timeline.CheckOrdered(groups[i].Samples); err != nil {
				metrics.UnorderedSequences.Inc()
				s.log.Warn().Err(err).Int64("vehicle_id", groups[i].VehicleID).Msg("summarizing unordered samples")
			}
			summaries[i] = timeline.Summarize(groups[i].Samples)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *ReportService) vehicleIDs(ctx context.Context, vehicleID *int64) ([]int64, error) {
	if vehicleID != nil {
		if _, err := findVehicle(ctx, s.vehicles, *vehicleID); err != nil {
			return nil, err
		}
		return []int64{*vehicleID}, nil
	}

	ids, err := s.vehicles.ListIDs(ctx, s.maxVehicles)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return ids, nil
}

func (s *ReportService) validateRange(rng model.DateRange) error {
	if rng.From.IsZero() || rng.To.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}
	if rng.Reversed() {
		return fmt.Errorf("%w: start date must be before or equal to end date", ErrInvalidRange)
	}
	if s.maxRangeDays > 0 && rng.Days() > s.maxRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, s.maxRangeDays)
	}
	return nil
}
