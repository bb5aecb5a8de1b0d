package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fleet-tracker/internal/model"
	"fleet-tracker/internal/timeline"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type VehicleService struct {
	vehicles VehicleStore
	statuses StatusStore
	log      zerolog.Logger
}

func NewVehicleService(vehicles VehicleStore, statuses StatusStore, log zerolog.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, statuses: statuses, log: log}
}

func (s *VehicleService) ListVehicles(ctx context.Context, filter model.VehicleFilter) (*model.VehiclePage, error) {
	if filter.Page <= 0 {
		filter.Page = defaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}

	vehicles, total, err := s.vehicles.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &model.VehiclePage{
		Vehicles:   vehicles,
		Pagination: model.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id int64) (*model.VehicleWithLatestStatus, error) {
	vehicle, err := findVehicle(ctx, s.vehicles, id)
	if err != nil {
		return nil, err
	}

	latest, err := s.statuses.FindLatestByVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.VehicleWithLatestStatus{Vehicle: *vehicle, LatestStatus: latest}, nil
}

// GetVehicleStatus returns the samples selected by filter and the summary of
// exactly those samples.
func (s *VehicleService) GetVehicleStatus(ctx context.Context, id int64, filter model.DateFilter) (*model.VehicleStatusReport, error) {
	if filter.Date == nil && filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return nil, fmt.Errorf("%w: start date must be before or equal to end date", ErrInvalidRange)
	}

	vehicle, err := findVehicle(ctx, s.vehicles, id)
	if err != nil {
		return nil, err
	}

	samples, err := s.statuses.FindByVehicle(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	if err := timeline.CheckOrdered(samples); err != nil {
		s.log.Warn().Err(err).Int64("vehicle_id", id).Msg("summarizing unordered samples")
	}
	if samples == nil {
		samples = []model.Sample{}
	}

	return &model.VehicleStatusReport{
		Vehicle:  *vehicle,
		Statuses: samples,
		Summary:  timeline.Summarize(samples),
	}, nil
}
