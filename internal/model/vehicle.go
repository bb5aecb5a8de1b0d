package model

import "time"

type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

type Vehicle struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	LicensePlate string    `json:"licensePlate"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Color        string    `json:"color"`
	FuelType     FuelType  `json:"fuelType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// DisplayName is the "Brand Model" label used in report listings.
func (v Vehicle) DisplayName() string {
	return v.Brand + " " + v.Model
}

type VehicleWithLatestStatus struct {
	Vehicle
	LatestStatus *Sample `json:"latestStatus,omitempty"`
}

type VehicleStatusReport struct {
	Vehicle  Vehicle  `json:"vehicle"`
	Statuses []Sample `json:"statuses"`
	Summary  Summary  `json:"summary"`
}
