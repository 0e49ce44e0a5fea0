package handler

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-power-scheduler/internal/config"
	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/allocation"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/demand"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/schedule"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/supply"
)

const formatCSV = "csv"

type scheduleRequest struct {
	Date      string                `json:"date"`
	Plants    []domain.PlantSamples `json:"plants"`
	PlantURLs []string              `json:"plant_urls"`
	Demands   []demand.Spec         `json:"demands"`
}

type scheduleResponse struct {
	RunID       string                  `json:"run_id"`
	Date        string                  `json:"date"`
	SupplyCurve []*domain.SupplyInstant `json:"supply_curve"`
	Demands     []*domain.PowerDemand   `json:"demands"`
	Summary     allocation.Summary      `json:"summary"`
}

type supplyResponse struct {
	Date        string                  `json:"date"`
	SupplyCurve []*domain.SupplyInstant `json:"supply_curve"`
}

type ScheduleHandler struct {
	scheduleService *schedule.Service
	location        *time.Location
}

func NewScheduleHandler(scheduleService *schedule.Service, cfg *config.Config) *ScheduleHandler {
	loc := time.UTC
	if cfg != nil && cfg.Schedule != nil {
		loc = cfg.Schedule.Date.Location()
	}
	return &ScheduleHandler{
		scheduleService: scheduleService,
		location:        loc,
	}
}

// HandleSchedule runs one allocation pass. The body is optional; omitted
// fields use the configured plants and the sample demand dataset.
func (h *ScheduleHandler) HandleSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	var body scheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req, err := h.toServiceRequest(body.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	req.Plants = body.Plants
	req.PlantURLs = body.PlantURLs
	req.Demands = body.Demands

	result, err := h.scheduleService.Run(ctx, req)
	if err != nil {
		status := statusForError(err)
		slog.WarnContext(ctx, "schedule request failed",
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		respondError(c, status, err.Error())
		return
	}

	c.Header("X-Run-ID", result.RunID)

	if c.Query("format") == formatCSV {
		writeCurveCSV(c, result.Instants)
		return
	}

	c.JSON(http.StatusOK, scheduleResponse{
		RunID:       result.RunID,
		Date:        result.Date.Format(time.DateOnly),
		SupplyCurve: result.Instants,
		Demands:     result.Demands,
		Summary:     result.Summary,
	})
}

// HandleSupply returns the aggregated supply curve without allocating it.
func (h *ScheduleHandler) HandleSupply(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.toServiceRequest(c.Query("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.scheduleService.BuildSupply(ctx, req)
	if err != nil {
		status := statusForError(err)
		slog.WarnContext(ctx, "supply request failed",
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		respondError(c, status, err.Error())
		return
	}

	if c.Query("format") == formatCSV {
		writeCurveCSV(c, result.Instants)
		return
	}

	c.JSON(http.StatusOK, supplyResponse{
		Date:        result.Date.Format(time.DateOnly),
		SupplyCurve: result.Instants,
	})
}

func (h *ScheduleHandler) toServiceRequest(rawDate string) (schedule.Request, error) {
	if rawDate == "" {
		return schedule.Request{}, nil
	}

	date, err := config.ParseScheduleDate(rawDate, h.location)
	if err != nil {
		return schedule.Request{}, err
	}

	return schedule.Request{Date: date}, nil
}

// statusForError maps malformed input to 400, upstream telemetry failures to
// 502 and everything else, including invariant violations, to 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, schedule.ErrPlantFetch):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrSupplyOversold),
		errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidLocalTime),
		errors.Is(err, domain.ErrNegativeQuantity),
		errors.Is(err, domain.ErrMinTargetAboveMax),
		errors.Is(err, domain.ErrCapacityAboveMax),
		errors.Is(err, domain.ErrEmptyDemandID),
		errors.Is(err, domain.ErrDuplicateDemandID),
		errors.Is(err, domain.ErrSampleLengthMismatch),
		errors.Is(err, domain.ErrUnorderedCurve),
		errors.Is(err, schedule.ErrPlantNotConfigured),
		errors.Is(err, supply.ErrInvalidGrid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeCurveCSV(c *gin.Context, instants []*domain.SupplyInstant) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"time", "power_output", "fulfilled_demand"})
	for _, instant := range instants {
		_ = w.Write([]string{
			instant.Time.Format(time.RFC3339),
			strconv.FormatInt(instant.PowerOutput, 10),
			strconv.FormatInt(instant.FulfilledDemand, 10),
		})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		slog.WarnContext(c.Request.Context(), "failed to write csv response",
			slog.String("error", err.Error()),
		)
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
