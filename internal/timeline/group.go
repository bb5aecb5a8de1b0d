package timeline

import "fleet-tracker/internal/model"

// GroupByVehicle partitions samples per vehicle. Groups appear in the order
// their vehicle is first seen and keep the input order of their samples.
func GroupByVehicle(samples []model.Sample) []model.VehicleSamples {
	index := make(map[int64]int)
	groups := make([]model.VehicleSamples, 0)
	for _, s := range samples {
		i, ok := index[s.VehicleID]
		if !ok {
			i = len(groups)
			index[s.VehicleID] = i
			groups = append(groups, model.VehicleSamples{VehicleID: s.VehicleID})
		}
		groups[i].Samples = append(groups[i].Samples, s)
	}
	return groups
}
