package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleet-tracker/internal/model"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrNoData          = errors.New("no data found for the specified criteria")
	ErrInvalidRange    = errors.New("invalid date range")
)

type VehicleStore interface {
	FindByID(ctx context.Context, id int64) (*model.Vehicle, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Vehicle, error)
	ListIDs(ctx context.Context, limit int) ([]int64, error)
	List(ctx context.Context, filter model.VehicleFilter) ([]model.VehicleWithLatestStatus, int64, error)
}

type StatusStore interface {
	FindByVehicle(ctx context.Context, vehicleID int64, filter model.DateFilter) ([]model.Sample, error)
	FindLatestByVehicle(ctx context.Context, vehicleID int64) (*model.Sample, error)
	FindForReport(ctx context.Context, vehicleIDs []int64, rng model.DateRange) ([]model.Sample, error)
}

func findVehicle(ctx context.Context, vehicles VehicleStore, id int64) (*model.Vehicle, error) {
	vehicle, err := vehicles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}
