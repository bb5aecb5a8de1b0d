package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fleet-tracker/internal/model"
)

const statusColumns = "id, vehicle_id, status, latitude, longitude, speed, fuel_level, engine_temp, timestamp, created_at"

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) FindByVehicle(ctx context.Context, vehicleID int64, filter model.DateFilter) ([]model.Sample, error) {
	var samples []model.Sample
	if err := r.vehicleQuery(ctx, vehicleID, filter).Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *StatusRepository) FindLatestByVehicle(ctx context.Context, vehicleID int64) (*model.Sample, error) {
	var samples []model.Sample
	err := r.db.WithContext(ctx).
		Select(statusColumns).
		Where("vehicle_id = ?", vehicleID).
		Order("timestamp DESC").
		Limit(1).
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, nil
	}
	return &samples[0], nil
}

// FindForReport returns samples of the given vehicles (all vehicles when ids
// is empty) ordered by vehicle, then timestamp.
func (r *StatusRepository) FindForReport(ctx context.Context, vehicleIDs []int64, rng model.DateRange) ([]model.Sample, error) {
	var samples []model.Sample
	if err := r.reportQuery(ctx, vehicleIDs, rng).Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *StatusRepository) vehicleQuery(ctx context.Context, vehicleID int64, filter model.DateFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Select(statusColumns).
		Where("vehicle_id = ?", vehicleID)
	from, to := filter.Bounds()
	return applyTimestampBounds(query, from, to).Order("timestamp ASC, id ASC")
}

func (r *StatusRepository) reportQuery(ctx context.Context, vehicleIDs []int64, rng model.DateRange) *gorm.DB {
	query := r.db.WithContext(ctx).Select(statusColumns)
	if len(vehicleIDs) > 0 {
		query = query.Where("vehicle_id IN ?", vehicleIDs)
	}
	from, to := rng.Bounds()
	return applyTimestampBounds(query, &from, &to).Order("vehicle_id ASC, timestamp ASC, id ASC")
}

// applyTimestampBounds filters on the half-open interval [from, to) so that
// calendar-date ranges stay index friendly.
func applyTimestampBounds(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("timestamp >= ?", *from)
	}
	if to != nil {
		query = query.Where("timestamp < ?", *to)
	}
	return query
}
