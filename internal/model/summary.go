package model

// Summary is derived from a sample sequence on every request and is never
// stored. Durations are whole minutes, distance and speed carry two decimals.
type Summary struct {
	TotalTrips       int     `json:"totalTrips"`
	TotalIdleTime    int     `json:"totalIdleTime"`
	TotalStoppedTime int     `json:"totalStoppedTime"`
	TotalDistance    float64 `json:"totalDistance"`
	AverageSpeed     float64 `json:"averageSpeed"`
}

type ReportRow struct {
	Vehicle  Vehicle  `json:"vehicle"`
	Statuses []Sample `json:"statuses"`
	Summary  Summary  `json:"summary"`
}
