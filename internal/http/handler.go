package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-tracker/internal/model"
	"fleet-tracker/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxPageLimit    = 100
)

type Handler struct {
	vehicles *service.VehicleService
	reports  *service.ReportService
	log      zerolog.Logger
}

func NewHandler(vehicles *service.VehicleService, reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{vehicles: vehicles, reports: reports, log: log}
}

func (h *Handler) Register(r *gin.Engine, middlewares ...gin.HandlerFunc) {
	protected := r.Group("/api")
	protected.Use(middlewares...)

	protected.GET("/vehicles", h.listVehicles)
	protected.GET("/vehicles/:id", h.getVehicle)
	protected.GET("/vehicles/:id/status", h.getVehicleStatus)
	protected.GET("/reports/data", h.getReportData)
	protected.GET("/reports/download", h.downloadReport)
}

func (h *Handler) listVehicles(c *gin.Context) {
	filter, err := parseVehicleFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	page, err := h.vehicles.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page.Vehicles, "pagination": page.Pagination})
}

func (h *Handler) getVehicle(c *gin.Context) {
	id, err := parseID(c.Param("id"), "vehicle id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicles.GetVehicle(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) getVehicleStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"), "vehicle id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	filter, err := parseDateFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	report, err := h.vehicles.GetVehicleStatus(c.Request.Context(), id, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) getReportData(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	rows, err := h.reports.GetReportData(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(rows))
}

func (h *Handler) downloadReport(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	data, filename, err := h.reports.GenerateReport(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func parseReportFilter(c *gin.Context) (model.ReportFilter, error) {
	startStr := strings.TrimSpace(c.Query("startDate"))
	endStr := strings.TrimSpace(c.Query("endDate"))
	if startStr == "" || endStr == "" {
		return model.ReportFilter{}, errors.New("startDate and endDate are required")
	}

	rng, err := model.NewDateRange(startStr, endStr)
	if err != nil {
		return model.ReportFilter{}, err
	}
	if rng.Reversed() {
		return model.ReportFilter{}, errors.New("start date must be before or equal to end date")
	}

	filter := model.ReportFilter{Range: rng}
	if idStr := strings.TrimSpace(c.Query("vehicleId")); idStr != "" {
		id, err := parseID(idStr, "vehicleId")
		if err != nil {
			return model.ReportFilter{}, err
		}
		filter.VehicleID = &id
	}
	return filter, nil
}

func parseDateFilter(c *gin.Context) (model.DateFilter, error) {
	var filter model.DateFilter
	params := []struct {
		key string
		dst **time.Time
	}{
		{"date", &filter.Date},
		{"startDate", &filter.Start},
		{"endDate", &filter.End},
	}
	for _, p := range params {
		value := strings.TrimSpace(c.Query(p.key))
		if value == "" {
			continue
		}
		parsed, err := model.ParseDate(value)
		if err != nil {
			return model.DateFilter{}, fmt.Errorf("%s: %w", p.key, err)
		}
		*p.dst = &parsed
	}
	return filter, nil
}

func parseVehicleFilter(c *gin.Context) (model.VehicleFilter, error) {
	filter := model.VehicleFilter{
		Page:   1,
		Limit:  10,
		Search: strings.TrimSpace(c.Query("search")),
	}

	if pageStr := strings.TrimSpace(c.Query("page")); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			return model.VehicleFilter{}, errors.New("page must be greater than 0")
		}
		filter.Page = page
	}
	if limitStr := strings.TrimSpace(c.Query("limit")); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > maxPageLimit {
			return model.VehicleFilter{}, fmt.Errorf("limit must be between 1 and %d", maxPageLimit)
		}
		filter.Limit = limit
	}
	return filter, nil
}

func parseID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", field)
	}
	return id, nil
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVehicleNotFound), errors.Is(err, service.ErrNoData):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidRange), errors.Is(err, model.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
