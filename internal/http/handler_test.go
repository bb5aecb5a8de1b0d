package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fleet-tracker/internal/auth"
	"fleet-tracker/internal/config"
	"fleet-tracker/internal/http/middleware"
	"fleet-tracker/internal/model"
	"fleet-tracker/internal/service"
)

const testSecret = "handler-secret"

var base = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

type stubVehicles struct {
	vehicles []model.Vehicle
}

func (s *stubVehicles) FindByID(_ context.Context, id int64) (*model.Vehicle, error) {
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			v := s.vehicles[i]
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubVehicles) FindByIDs(_ context.Context, ids []int64) ([]model.Vehicle, error) {
	var out []model.Vehicle
	for _, v := range s.vehicles {
		for _, id := range ids {
			if v.ID == id {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func (s *stubVehicles) ListIDs(_ context.Context, _ int) ([]int64, error) {
	ids := make([]int64, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		ids = append(ids, v.ID)
	}
	return ids, nil
}

func (s *stubVehicles) List(_ context.Context, _ model.VehicleFilter) ([]model.VehicleWithLatestStatus, int64, error) {
	out := make([]model.VehicleWithLatestStatus, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, model.VehicleWithLatestStatus{Vehicle: v})
	}
	return out, int64(len(out)), nil
}

type stubStatuses struct {
	samples []model.Sample
}

func (s *stubStatuses) byVehicle(id int64) []model.Sample {
	var out []model.Sample
	for _, smp := range s.samples {
		if smp.VehicleID == id {
			out = append(out, smp)
		}
	}
	return out
}

func (s *stubStatuses) FindByVehicle(_ context.Context, id int64, _ model.DateFilter) ([]model.Sample, error) {
	return s.byVehicle(id), nil
}

func (s *stubStatuses) FindLatestByVehicle(_ context.Context, id int64) (*model.Sample, error) {
	samples := s.byVehicle(id)
	if len(samples) == 0 {
		return nil, nil
	}
	return &samples[len(samples)-1], nil
}

func (s *stubStatuses) FindForReport(_ context.Context, ids []int64, _ model.DateRange) ([]model.Sample, error) {
	var out []model.Sample
	for _, id := range ids {
		out = append(out, s.byVehicle(id)...)
	}
	return out, nil
}

func newTestRouter(t *testing.T, samples []model.Sample) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	vehicles := &stubVehicles{vehicles: []model.Vehicle{
		{ID: 1, LicensePlate: "B1234ABC", Brand: "Toyota", Model: "Avanza", FuelType: model.FuelGasoline},
		{ID: 2, LicensePlate: "D5678XY", Brand: "Honda", Model: "Jazz", FuelType: model.FuelHybrid},
	}}
	statuses := &stubStatuses{samples: samples}
	log := zerolog.Nop()

	handler := NewHandler(
		service.NewVehicleService(vehicles, statuses, log),
		service.NewReportService(vehicles, statuses, config.ReportConfig{MaxVehicles: 10, Workers: 2, MaxRangeDays: 31}, log),
		log,
	)
	return NewRouter(handler, log, RouterConfig{Environment: "test", CORSOrigin: "http://localhost:5173"},
		middleware.Auth(auth.NewParser(testSecret)))
}

func tripSamples() []model.Sample {
	return []model.Sample{
		{VehicleID: 1, Status: model.StatusTrip, Latitude: 0, Longitude: 0, Speed: 60, Timestamp: base},
		{VehicleID: 1, Status: model.StatusTrip, Latitude: 0, Longitude: 1, Speed: 40, Timestamp: base.Add(10 * time.Minute)},
		{VehicleID: 1, Status: model.StatusIdle, Latitude: 0, Longitude: 1, Timestamp: base.Add(20 * time.Minute)},
		{VehicleID: 1, Status: model.StatusStopped, Latitude: 0, Longitude: 1, Timestamp: base.Add(50 * time.Minute)},
	}
}

func bearer(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID: 1,
		Role:   model.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func do(t *testing.T, r *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", bearer(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetReportData(t *testing.T) {
	r := newTestRouter(t, tripSamples())

	w := do(t, r, "/api/reports/data?startDate=2024-01-01&endDate=2024-01-31")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data []model.ReportRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "B1234ABC", body.Data[0].Vehicle.LicensePlate)
	assert.Len(t, body.Data[0].Statuses, 4)
	assert.Equal(t, model.Summary{TotalTrips: 1, TotalIdleTime: 30, TotalDistance: 111.19, AverageSpeed: 50}, body.Data[0].Summary)
}

func TestGetReportData_Validation(t *testing.T) {
	r := newTestRouter(t, tripSamples())

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing dates", "", http.StatusBadRequest},
		{"bad format", "?startDate=01-01-2024&endDate=2024-01-31", http.StatusBadRequest},
		{"reversed", "?startDate=2024-02-01&endDate=2024-01-01", http.StatusBadRequest},
		{"bad vehicle id", "?startDate=2024-01-01&endDate=2024-01-31&vehicleId=0", http.StatusBadRequest},
		{"range too long", "?startDate=2024-01-01&endDate=2024-06-01", http.StatusBadRequest},
		{"unknown vehicle", "?startDate=2024-01-01&endDate=2024-01-31&vehicleId=99", http.StatusNotFound},
		{"vehicle without samples", "?startDate=2024-01-01&endDate=2024-01-31&vehicleId=2", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, "/api/reports/data"+tt.query)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestDownloadReport(t *testing.T) {
	r := newTestRouter(t, tripSamples())

	w := do(t, r, "/api/reports/download?startDate=2024-01-01&endDate=2024-01-31")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="vehicle-report-2024-01-01-to-2024-01-31.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.NotZero(t, w.Body.Len())
}

func TestDownloadReport_NoData(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, "/api/reports/download?startDate=2024-01-01&endDate=2024-01-31")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"no data found for the specified criteria"}`, w.Body.String())
}

func TestVehicleEndpoints(t *testing.T) {
	r := newTestRouter(t, tripSamples())

	w := do(t, r, "/api/vehicles?page=1&limit=10")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data       []model.VehicleWithLatestStatus `json:"data"`
		Pagination model.Pagination                `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 2)
	assert.Equal(t, int64(2), list.Pagination.Total)

	w = do(t, r, "/api/vehicles?limit=101")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, "/api/vehicles/1")
	require.Equal(t, http.StatusOK, w.Code)
	var single struct {
		Data model.VehicleWithLatestStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &single))
	require.NotNil(t, single.Data.LatestStatus)
	assert.Equal(t, model.StatusStopped, single.Data.LatestStatus.Status)

	w = do(t, r, "/api/vehicles/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, "/api/vehicles/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVehicleStatus(t *testing.T) {
	r := newTestRouter(t, tripSamples())

	w := do(t, r, "/api/vehicles/1/status?date=2024-01-10")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data model.VehicleStatusReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Statuses, 4)
	assert.Equal(t, 1, body.Data.Summary.TotalTrips)

	w = do(t, r, "/api/vehicles/1/status?startDate=2024-01-10&endDate=2024-01-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, "/api/vehicles/1/status?date=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnauthenticated(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reports/data?startDate=2024-01-01&endDate=2024-01-31", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
