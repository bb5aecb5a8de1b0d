package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-tracker/internal/model"
)

func vehicleSamples(vehicleID int64, n int) []model.Sample {
	out := make([]model.Sample, n)
	for i := range out {
		out[i] = model.Sample{
			ID:        vehicleID*100 + int64(i),
			VehicleID: vehicleID,
			Status:    model.StatusTrip,
			Timestamp: t0.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func TestGroupByVehicle_RoundTrip(t *testing.T) {
	first := vehicleSamples(7, 3)
	second := vehicleSamples(2, 4)

	input := append(append([]model.Sample{}, first...), second...)
	groups := GroupByVehicle(input)

	require.Len(t, groups, 2)
	assert.Equal(t, int64(7), groups[0].VehicleID)
	assert.Equal(t, first, groups[0].Samples)
	assert.Equal(t, int64(2), groups[1].VehicleID)
	assert.Equal(t, second, groups[1].Samples)
}

func TestGroupByVehicle_Interleaved(t *testing.T) {
	a := vehicleSamples(1, 2)
	b := vehicleSamples(2, 2)

	groups := GroupByVehicle([]model.Sample{a[0], b[0], a[1], b[1]})

	require.Len(t, groups, 2)
	assert.Equal(t, a, groups[0].Samples)
	assert.Equal(t, b, groups[1].Samples)
}

func TestGroupByVehicle_Empty(t *testing.T) {
	assert.Empty(t, GroupByVehicle(nil))
}

func TestBuildReportRows(t *testing.T) {
	groups := GroupByVehicle(append(vehicleSamples(3, 2), vehicleSamples(9, 1)...))
	vehicles := []model.Vehicle{
		{ID: 9, LicensePlate: "B 9 XYZ"},
		{ID: 4, LicensePlate: "unused"},
	}

	rows := BuildReportRows(vehicles, groups)

	require.Len(t, rows, 1)
	assert.Equal(t, "B 9 XYZ", rows[0].Vehicle.LicensePlate)
	assert.Equal(t, groups[1].Samples, rows[0].Statuses)
	assert.Equal(t, Summarize(groups[1].Samples), rows[0].Summary)
	assert.Equal(t, 1, rows[0].Summary.TotalTrips)
}

func TestBuildReportRows_KeepsGroupOrder(t *testing.T) {
	groups := GroupByVehicle(append(vehicleSamples(5, 1), vehicleSamples(1, 1)...))
	vehicles := []model.Vehicle{{ID: 1}, {ID: 5}}

	rows := BuildReportRows(vehicles, groups)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(5), rows[0].Vehicle.ID)
	assert.Equal(t, int64(1), rows[1].Vehicle.ID)
}

func TestCheckOrdered(t *testing.T) {
	ordered := vehicleSamples(1, 3)
	assert.NoError(t, CheckOrdered(ordered))
	assert.NoError(t, CheckOrdered(nil))

	dup := append(append([]model.Sample{}, ordered...), ordered[2])
	assert.NoError(t, CheckOrdered(dup))

	reversed := []model.Sample{ordered[2], ordered[0]}
	err := CheckOrdered(reversed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnordered))
}
