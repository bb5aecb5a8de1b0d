package timeline

import "fleet-tracker/internal/model"

// BuildReportRows pairs each group with its vehicle and summary. Groups whose
// vehicle is unknown are skipped.
func BuildReportRows(vehicles []model.Vehicle, groups []model.VehicleSamples) []model.ReportRow {
	summaries := make([]model.Summary, len(groups))
	for i, g := range groups {
		summaries[i] = Summarize(g.Samples)
	}
	return AssembleRows(vehicles, groups, summaries)
}

// AssembleRows is BuildReportRows for callers that computed the summaries
// themselves; summaries[i] belongs to groups[i].
func AssembleRows(vehicles []model.Vehicle, groups []model.VehicleSamples, summaries []model.Summary) []model.ReportRow {
	byID := make(map[int64]model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}

	rows := make([]model.ReportRow, 0, len(groups))
	for i, g := range groups {
		vehicle, ok := byID[g.VehicleID]
		if !ok {
			continue
		}
		rows = append(rows, model.ReportRow{
			Vehicle:  vehicle,
			Statuses: g.Samples,
			Summary:  summaries[i],
		})
	}
	return rows
}
