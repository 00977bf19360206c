package handler

import (
	"net/http"
	"strconv"

	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/pkg/response"
)

type AnalyticsHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUsecase: analyticsUsecase,
	}
}

func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsUsecase.Overview(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load overview")
		return
	}

	response.Success(w, http.StatusOK, "Overview retrieved successfully", stats)
}

func (h *AnalyticsHandler) Demographics(w http.ResponseWriter, r *http.Request) {
	demographics, err := h.analyticsUsecase.Demographics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load demographics")
		return
	}

	response.Success(w, http.StatusOK, "Demographics retrieved successfully", demographics)
}

func (h *AnalyticsHandler) AppointmentMetrics(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	metrics, err := h.analyticsUsecase.AppointmentMetrics(r.Context(), days)
	if err != nil {
		response.InternalServerError(w, "Failed to load appointment metrics")
		return
	}

	response.Success(w, http.StatusOK, "Appointment metrics retrieved successfully", metrics)
}

func (h *AnalyticsHandler) VisitStatistics(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	stats, err := h.analyticsUsecase.VisitStatistics(r.Context(), days)
	if err != nil {
		response.InternalServerError(w, "Failed to load visit statistics")
		return
	}

	response.Success(w, http.StatusOK, "Visit statistics retrieved successfully", stats)
}

func (h *AnalyticsHandler) PrescriptionAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsUsecase.PrescriptionAnalytics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load prescription analytics")
		return
	}

	response.Success(w, http.StatusOK, "Prescription analytics retrieved successfully", stats)
}

// HealthTrends takes ?metric= (a metric key, default sugarFasting) and ?days=.
func (h *AnalyticsHandler) HealthTrends(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	days, _ := strconv.Atoi(query.Get("days"))

	trend, err := h.analyticsUsecase.HealthTrends(r.Context(), query.Get("metric"), days)
	if err != nil {
		switch err {
		case usecase.ErrUnknownMetric:
			response.BadRequest(w, "Unknown metric")
		default:
			response.InternalServerError(w, "Failed to load health trends")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health trends retrieved successfully", trend)
}

func (h *AnalyticsHandler) CriticalAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.analyticsUsecase.CriticalAlerts(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load critical alerts")
		return
	}

	response.Success(w, http.StatusOK, "Critical alerts retrieved successfully", alerts)
}
