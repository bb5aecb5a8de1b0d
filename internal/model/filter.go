package model

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseDate parses a calendar date. Dates carry no zone and are anchored at
// UTC midnight.
func ParseDate(value string) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("%q: %w", value, ErrInvalidDate)
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", value, ErrInvalidDate)
	}
	return parsed, nil
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func NewDateRange(from, to string) (DateRange, error) {
	start, err := ParseDate(from)
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{From: start, To: end}, nil
}

func (r DateRange) Reversed() bool {
	return r.To.Before(r.From)
}

// Days is the number of calendar dates covered, both ends included.
func (r DateRange) Days() int {
	return int(math.Round(r.To.Sub(r.From).Hours()/24)) + 1
}

// Bounds converts the range to a half-open timestamp interval
// [From 00:00, To+1d 00:00).
func (r DateRange) Bounds() (time.Time, time.Time) {
	return startOfDay(r.From), startOfDay(r.To).AddDate(0, 0, 1)
}

func (r DateRange) String() string {
	return r.From.Format(DateLayout) + "-to-" + r.To.Format(DateLayout)
}

// DateFilter selects samples of one vehicle. Date wins over Start/End; either
// bound of Start/End may be open.
type DateFilter struct {
	Date  *time.Time
	Start *time.Time
	End   *time.Time
}

func (f DateFilter) Bounds() (from, to *time.Time) {
	if f.Date != nil {
		lo := startOfDay(*f.Date)
		hi := lo.AddDate(0, 0, 1)
		return &lo, &hi
	}
	if f.Start != nil {
		lo := startOfDay(*f.Start)
		from = &lo
	}
	if f.End != nil {
		hi := startOfDay(*f.End).AddDate(0, 0, 1)
		to = &hi
	}
	return from, to
}

type ReportFilter struct {
	Range     DateRange
	VehicleID *int64
}

func (f ReportFilter) Filename() string {
	return "vehicle-report-" + f.Range.String() + ".xlsx"
}

type VehicleFilter struct {
	Page   int
	Limit  int
	Search string
}

func (f VehicleFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

type VehiclePage struct {
	Vehicles   []VehicleWithLatestStatus `json:"vehicles"`
	Pagination Pagination                `json:"pagination"`
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
