package handler

import (
	"net/http"

	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/pkg/response"
)

type ExportHandler struct {
	exportUsecase usecase.ExportUsecase
}

func NewExportHandler(exportUsecase usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{
		exportUsecase: exportUsecase,
	}
}

// HealthSummaryPDF accepts optional ?from= and ?to= dates.
func (h *ExportHandler) HealthSummaryPDF(w http.ResponseWriter, r *http.Request) {
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

	doc, err := h.exportUsecase.HealthSummaryPDF(r.Context(), patientID, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.File(w, doc.ContentType, doc.Filename, doc.Body)
}

func (h *ExportHandler) PrescriptionPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid prescription ID")
		return
	}

	doc, err := h.exportUsecase.PrescriptionPDF(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.File(w, doc.ContentType, doc.Filename, doc.Body)
}

func (h *ExportHandler) VisitSummaryPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid visit ID")
		return
	}

	doc, err := h.exportUsecase.VisitSummaryPDF(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.File(w, doc.ContentType, doc.Filename, doc.Body)
}

func (h *ExportHandler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrPrescriptionNotFound:
		response.NotFound(w, "Prescription not found")
	case usecase.ErrVisitNotFound:
		response.NotFound(w, "Visit not found")
	case usecase.ErrInvalidDateRange:
		response.BadRequest(w, "The end date must not be before the start date")
	default:
		response.InternalServerError(w, "Failed to generate PDF")
	}
}
