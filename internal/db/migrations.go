package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGSERIAL PRIMARY KEY,
		license_plate VARCHAR(20) UNIQUE NOT NULL,
		brand VARCHAR(50) NOT NULL,
		model VARCHAR(50) NOT NULL,
		year INTEGER NOT NULL,
		color VARCHAR(30) NOT NULL,
		fuel_type VARCHAR(20) NOT NULL CHECK (fuel_type IN ('gasoline', 'diesel', 'electric', 'hybrid')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicle_statuses (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		status VARCHAR(10) NOT NULL CHECK (status IN ('trip', 'idle', 'stopped')),
		latitude NUMERIC(10, 8) NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude NUMERIC(11, 8) NOT NULL CHECK (longitude BETWEEN -180 AND 180),
		speed NUMERIC(6, 2) NOT NULL DEFAULT 0 CHECK (speed >= 0),
		fuel_level NUMERIC(5, 2) NOT NULL CHECK (fuel_level BETWEEN 0 AND 100),
		engine_temp INTEGER NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_statuses_vehicle_timestamp ON vehicle_statuses (vehicle_id, timestamp);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_statuses_timestamp ON vehicle_statuses (timestamp);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles (created_at DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
