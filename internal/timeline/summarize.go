package timeline

import (
	"math"
	"time"

	"fleet-tracker/internal/model"
)

// Summarize folds a single vehicle's samples, ordered by ascending timestamp,
// into trip/idle/stopped totals. It never fails: an empty sequence yields the
// zero Summary and out-of-order timestamps contribute zero-length intervals.
func Summarize(samples []model.Sample) model.Summary {
	var acc accumulator
	for i := range samples {
		var next *model.Sample
		if i+1 < len(samples) {
			next = &samples[i+1]
		}
		acc.step(samples[i], next)
	}
	return acc.result()
}

type position struct {
	lat, lng float64
}

type accumulator struct {
	trips        int
	idleMinutes  float64
	stopMinutes  float64
	distanceKm   float64
	speedSum     float64
	speedCount   int
	inTrip       bool
	lastPosition *position
}

func (a *accumulator) step(cur model.Sample, next *model.Sample) {
	if cur.Status == model.StatusTrip {
		if !a.inTrip {
			a.inTrip = true
			a.trips++
		}
		if cur.Speed > 0 {
			a.speedSum += cur.Speed
			a.speedCount++
		}
		// Distance counts from the previous position whatever its status.
		if a.lastPosition != nil {
			a.distanceKm += Haversine(a.lastPosition.lat, a.lastPosition.lng, cur.Latitude, cur.Longitude)
		}
	} else {
		a.inTrip = false
		if next != nil {
			minutes := intervalMinutes(cur.Timestamp, next.Timestamp)
			switch cur.Status {
			case model.StatusIdle:
				a.idleMinutes += minutes
			case model.StatusStopped:
				a.stopMinutes += minutes
			}
		}
	}

	a.lastPosition = &position{lat: cur.Latitude, lng: cur.Longitude}
}

func (a *accumulator) result() model.Summary {
	summary := model.Summary{
		TotalTrips:       a.trips,
		TotalIdleTime:    int(math.Round(a.idleMinutes)),
		TotalStoppedTime: int(math.Round(a.stopMinutes)),
		TotalDistance:    round2(a.distanceKm),
	}
	if a.speedCount > 0 {
		summary.AverageSpeed = round2(a.speedSum / float64(a.speedCount))
	}
	return summary
}

// intervalMinutes clamps reversed intervals to zero.
func intervalMinutes(from, to time.Time) float64 {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return d.Minutes()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
