package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"fleet-tracker/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Vehicle, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) ListIDs(ctx context.Context, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Vehicle{}).
		Order("created_at DESC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *VehicleRepository) List(ctx context.Context, filter model.VehicleFilter) ([]model.VehicleWithLatestStatus, int64, error) {
	var total int64
	if err := r.searchQuery(ctx, filter.Search).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	type row struct {
		model.Vehicle
		StatusID        *int64
		Status          *string
		Latitude        *float64
		Longitude       *float64
		Speed           *float64
		FuelLevel       *float64
		EngineTemp      *int
		StatusTimestamp *time.Time
		StatusCreatedAt *time.Time
	}
	var rows []row

	query := r.searchQuery(ctx, filter.Search).
		Select(`v.id, v.license_plate, v.brand, v.model, v.year, v.color, v.fuel_type,
			v.created_at, v.updated_at,
			vs.id AS status_id, vs.status, vs.latitude, vs.longitude, vs.speed,
			vs.fuel_level, vs.engine_temp,
			vs.timestamp AS status_timestamp, vs.created_at AS status_created_at`).
		Joins(`LEFT JOIN LATERAL (
			SELECT * FROM vehicle_statuses
			WHERE vehicle_id = v.id
			ORDER BY timestamp DESC
			LIMIT 1
		) vs ON true`).
		Order("v.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset())

	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]model.VehicleWithLatestStatus, 0, len(rows))
	for _, row := range rows {
		item := model.VehicleWithLatestStatus{Vehicle: row.Vehicle}
		if row.StatusID != nil {
			item.LatestStatus = &model.Sample{
				ID:         *row.StatusID,
				VehicleID:  row.Vehicle.ID,
				Status:     model.StatusKind(deref(row.Status)),
				Latitude:   deref(row.Latitude),
				Longitude:  deref(row.Longitude),
				Speed:      deref(row.Speed),
				FuelLevel:  deref(row.FuelLevel),
				EngineTemp: deref(row.EngineTemp),
				Timestamp:  deref(row.StatusTimestamp),
				CreatedAt:  deref(row.StatusCreatedAt),
			}
		}
		result = append(result, item)
	}

	return result, total, nil
}

func (r *VehicleRepository) searchQuery(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).Table("vehicles v")
	if term := strings.TrimSpace(search); term != "" {
		pattern := "%" + term + "%"
		query = query.Where("(v.license_plate ILIKE ? OR v.brand ILIKE ? OR v.model ILIKE ?)", pattern, pattern, pattern)
	}
	return query
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
