package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-tracker/internal/config"
	"fleet-tracker/internal/model"
)

var day = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

type fakeVehicles struct {
	vehicles []model.Vehicle
	err      error
}

func (f *fakeVehicles) FindByID(_ context.Context, id int64) (*model.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.vehicles {
		if f.vehicles[i].ID == id {
			v := f.vehicles[i]
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVehicles) FindByIDs(_ context.Context, ids []int64) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range f.vehicles {
		for _, id := range ids {
			if v.ID == id {
				out = append(out, v)
			}
		}
	}
	return out, f.err
}

func (f *fakeVehicles) ListIDs(_ context.Context, limit int) ([]int64, error) {
	var ids []int64
	for _, v := range f.vehicles {
		if len(ids) == limit {
			break
		}
		ids = append(ids, v.ID)
	}
	return ids, f.err
}

func (f *fakeVehicles) List(_ context.Context, filter model.VehicleFilter) ([]model.VehicleWithLatestStatus, int64, error) {
	var out []model.VehicleWithLatestStatus
	for i, v := range f.vehicles {
		if i >= filter.Offset() && len(out) < filter.Limit {
			out = append(out, model.VehicleWithLatestStatus{Vehicle: v})
		}
	}
	return out, int64(len(f.vehicles)), f.err
}

type fakeStatuses struct {
	mu       sync.Mutex
	samples  []model.Sample
	err      error
	lastIDs  []int64
	lastDate model.DateFilter
}

func (f *fakeStatuses) FindByVehicle(_ context.Context, vehicleID int64, filter model.DateFilter) ([]model.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastDate = filter
	var out []model.Sample
	for _, s := range f.samples {
		if s.VehicleID == vehicleID {
			out = append(out, s)
		}
	}
	return out, f.err
}

func (f *fakeStatuses) FindLatestByVehicle(_ context.Context, vehicleID int64) (*model.Sample, error) {
	var latest *model.Sample
	for i := range f.samples {
		if f.samples[i].VehicleID == vehicleID {
			latest = &f.samples[i]
		}
	}
	return latest, f.err
}

func (f *fakeStatuses) FindForReport(_ context.Context, vehicleIDs []int64, _ model.DateRange) ([]model.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastIDs = vehicleIDs
	var out []model.Sample
	for _, s := range f.samples {
		for _, id := range vehicleIDs {
			if s.VehicleID == id {
				out = append(out, s)
			}
		}
	}
	return out, f.err
}

var errStore = errors.New("store unavailable")

func reportConfig() config.ReportConfig {
	return config.ReportConfig{MaxVehicles: 100, Workers: 2, MaxRangeDays: 31}
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func at(vehicleID int64, minutes int, status model.StatusKind, lat, lng, speed float64) model.Sample {
	return model.Sample{
		VehicleID: vehicleID,
		Status:    status,
		Latitude:  lat,
		Longitude: lng,
		Speed:     speed,
		Timestamp: day.Add(8*time.Hour + time.Duration(minutes)*time.Minute),
	}
}
