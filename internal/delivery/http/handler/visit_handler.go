package handler

import (
	"net/http"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/pkg/response"
	"github.com/deringirish/PHMS/pkg/validator"

	"github.com/google/uuid"
)

type VisitHandler struct {
	visitUsecase usecase.VisitUsecase
	validator    *validator.CustomValidator
}

func NewVisitHandler(visitUsecase usecase.VisitUsecase, validator *validator.CustomValidator) *VisitHandler {
	return &VisitHandler{
		visitUsecase: visitUsecase,
		validator:    validator,
	}
}

func (h *VisitHandler) CreateVisit(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.CreateVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visit, err := h.visitUsecase.CreateVisit(r.Context(), patientID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create visit")
		return
	}

	response.Success(w, http.StatusCreated, "Visit recorded successfully", visit)
}

func (h *VisitHandler) ListPatientVisits(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	visits, err := h.visitUsecase.ListPatientVisits(r.Context(), patientID)
	if err != nil {
		h.writeError(w, err, "Failed to get visits")
		return
	}

	response.Success(w, http.StatusOK, "Visits retrieved successfully", visits)
}

func (h *VisitHandler) GetVisit(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid visit ID")
		return
	}

	visit, err := h.visitUsecase.GetVisit(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get visit")
		return
	}

	response.Success(w, http.StatusOK, "Visit retrieved successfully", visit)
}

func (h *VisitHandler) UpdateVisit(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid visit ID")
		return
	}

	var req dto.UpdateVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visit, err := h.visitUsecase.UpdateVisit(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update visit")
		return
	}

	response.Success(w, http.StatusOK, "Visit updated successfully", visit)
}

func (h *VisitHandler) LinkHealthRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid visit ID")
		return
	}

	var req dto.LinkHealthRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visit, err := h.visitUsecase.LinkHealthRecord(r.Context(), id, uuid.MustParse(req.HealthRecordID))
	if err != nil {
		h.writeError(w, err, "Failed to link health record")
		return
	}

	response.Success(w, http.StatusOK, "Health record linked successfully", visit)
}

func (h *VisitHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrVisitNotFound:
		response.NotFound(w, "Visit not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrHealthRecordNotFound:
		response.NotFound(w, "Health record not found")
	case usecase.ErrDoctorNotFound:
		response.BadRequest(w, "Doctor not found")
	case usecase.ErrRecordPatientMismatch:
		response.BadRequest(w, "Health record belongs to another patient")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	default:
		response.InternalServerError(w, fallback)
	}
}
