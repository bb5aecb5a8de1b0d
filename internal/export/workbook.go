package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fleet-tracker/internal/model"
)

const (
	summarySheet    = "Summary"
	timestampLayout = "2006-01-02 15:04:05"
	headerFill      = "E0E0E0"
)

type column struct {
	header string
	width  float64
}

var summaryColumns = []column{
	{"Vehicle", 20},
	{"License Plate", 15},
	{"Brand", 15},
	{"Model", 15},
	{"Total Trips", 12},
	{"Total Distance (km)", 18},
	{"Average Speed (km/h)", 18},
	{"Idle Time (min)", 15},
	{"Stopped Time (min)", 18},
}

var detailColumns = []column{
	{"Timestamp", 20},
	{"Status", 10},
	{"Latitude", 12},
	{"Longitude", 12},
	{"Speed (km/h)", 12},
	{"Fuel Level (%)", 15},
	{"Engine Temp (°C)", 16},
}

// WriteVehicleReport renders one summary sheet plus one detail sheet per row
// and writes the xlsx document to w.
func WriteVehicleReport(w io.Writer, rows []model.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeHeader(f, summarySheet, summaryColumns, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		values := []interface{}{
			row.Vehicle.DisplayName(),
			row.Vehicle.LicensePlate,
			row.Vehicle.Brand,
			row.Vehicle.Model,
			row.Summary.TotalTrips,
			row.Summary.TotalDistance,
			row.Summary.AverageSpeed,
			row.Summary.TotalIdleTime,
			row.Summary.TotalStoppedTime,
		}
		if err := writeRow(f, summarySheet, i+2, values); err != nil {
			return err
		}
	}

	namer := newSheetNamer(summarySheet)
	for i, row := range rows {
		name := namer.next(row.Vehicle.LicensePlate, i)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeHeader(f, name, detailColumns, headerStyle); err != nil {
			return err
		}
		for j, s := range row.Statuses {
			values := []interface{}{
				s.Timestamp.Format(timestampLayout),
				string(s.Status),
				s.Latitude,
				s.Longitude,
				s.Speed,
				s.FuelLevel,
				s.EngineTemp,
			}
			if err := writeRow(f, name, j+2, values); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []column, style int) error {
	headers := make([]interface{}, len(columns))
	for i, c := range columns {
		headers[i] = c.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("set width %s!%s: %w", sheet, name, err)
		}
	}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return fmt.Errorf("style header %s: %w", sheet, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}
