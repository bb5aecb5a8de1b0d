package model

import "time"

type StatusKind string

const (
	StatusTrip    StatusKind = "trip"
	StatusIdle    StatusKind = "idle"
	StatusStopped StatusKind = "stopped"
)

func (s StatusKind) Valid() bool {
	switch s {
	case StatusTrip, StatusIdle, StatusStopped:
		return true
	default:
		return false
	}
}

// Sample is one recorded observation of a vehicle. Rows are read-only once
// persisted.
type Sample struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	VehicleID  int64      `json:"vehicleId"`
	Status     StatusKind `json:"status"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Speed      float64    `json:"speed"`
	FuelLevel  float64    `json:"fuelLevel"`
	EngineTemp int        `json:"engineTemp"`
	Timestamp  time.Time  `json:"timestamp"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (Sample) TableName() string {
	return "vehicle_statuses"
}

// VehicleSamples is the ordered sample sequence of a single vehicle.
type VehicleSamples struct {
	VehicleID int64
	Samples   []Sample
}
