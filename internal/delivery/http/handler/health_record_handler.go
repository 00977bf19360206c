package handler

import (
	"net/http"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/pkg/response"

	"github.com/gorilla/mux"
)

type HealthRecordHandler struct {
	recordUsecase usecase.HealthRecordUsecase
}

func NewHealthRecordHandler(recordUsecase usecase.HealthRecordUsecase) *HealthRecordHandler {
	return &HealthRecordHandler{
		recordUsecase: recordUsecase,
	}
}

// CreateRecord stores a manually entered reading. The body is a flat object
// of metric values plus optional "timestamp" and "notes".
// @Summary Add a health record
// @Tags Health Records
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id}/records [post]
func (h *HealthRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	values, timestamp, err := recordPayload(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.recordUsecase.CreateManualRecord(r.Context(), patientID, &dto.RecordInput{
		Values:    values,
		Timestamp: timestamp,
	})
	if err != nil {
		switch err {
		case usecase.ErrMissingMetric:
			response.BadRequest(w, "Please enter at least one health metric")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to add health record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Health record added successfully", record)
}

func (h *HealthRecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	filter, err := recordFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid date range, use YYYY-MM-DD")
		return
	}

	records, err := h.recordUsecase.ListRecords(r.Context(), patientID, filter)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDateRange:
			response.BadRequest(w, "The end date must not be before the start date")
		default:
			response.InternalServerError(w, "Failed to get health records")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health records retrieved successfully", records)
}

func (h *HealthRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "recordId")
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	record, err := h.recordUsecase.GetRecord(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrHealthRecordNotFound:
			response.NotFound(w, "Health record not found")
		default:
			response.InternalServerError(w, "Failed to get health record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health record retrieved successfully", record)
}

// DeleteRecord answers with the owning patient so clients can navigate back.
func (h *HealthRecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "recordId")
	if err != nil {
		response.BadRequest(w, "Invalid record ID")
		return
	}

	patientID, err := h.recordUsecase.DeleteRecord(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrHealthRecordNotFound:
			response.NotFound(w, "Health record not found")
		default:
			response.InternalServerError(w, "Failed to delete health record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health record deleted successfully", dto.DeleteRecordResponse{PatientID: patientID})
}

func (h *HealthRecordHandler) GetChartData(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	data, err := h.recordUsecase.GetChartData(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to build chart data")
		}
		return
	}

	response.Success(w, http.StatusOK, "Chart data retrieved successfully", data)
}

// GetChartHTML streams one chart group as an HTML page, or 204 when the
// group has nothing to plot.
func (h *HealthRecordHandler) GetChartHTML(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	page, err := h.recordUsecase.GetChartHTML(r.Context(), patientID, mux.Vars(r)["group"])
	if err != nil {
		switch err {
		case usecase.ErrUnknownChartGroup:
			response.NotFound(w, "Unknown chart group")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrNoChartData:
			w.WriteHeader(http.StatusNoContent)
		default:
			response.InternalServerError(w, "Failed to render chart")
		}
		return
	}

	response.File(w, "text/html; charset=utf-8", "", page)
}
