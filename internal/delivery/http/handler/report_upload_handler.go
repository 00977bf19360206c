package handler

import (
	"errors"
	"net/http"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/service"
	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/pkg/response"

	"github.com/google/uuid"
)

const multipartMemory = 8 << 20

type ReportUploadHandler struct {
	uploadUsecase usecase.ReportUploadUsecase
	maxBytes      int64
}

func NewReportUploadHandler(uploadUsecase usecase.ReportUploadUsecase, maxBytes int64) *ReportUploadHandler {
	return &ReportUploadHandler{
		uploadUsecase: uploadUsecase,
		maxBytes:      maxBytes,
	}
}

// UploadReport accepts a lab report as multipart field "file" and returns
// the extracted values for review.
// @Summary Upload a lab report for extraction
// @Tags Reports
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Patient ID"
// @Param file formData file true "Report (pdf, png, jpg, jpeg)"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /patients/{id}/reports [post]
func (h *ReportUploadHandler) UploadReport(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	if h.maxBytes > 0 {
		// room for the multipart envelope around the file
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartMemory)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "File is too large", nil)
			return
		}
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file selected")
		return
	}
	defer file.Close()

	upload, err := h.uploadUsecase.UploadReport(r.Context(), patientID, &dto.UploadReportRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoFileSelected):
			response.BadRequest(w, "No file selected")
		case errors.Is(err, usecase.ErrInvalidFileType):
			response.BadRequest(w, "Invalid file type. Please upload PDF, PNG or JPG files")
		case errors.Is(err, usecase.ErrFileTooLarge):
			response.Error(w, http.StatusRequestEntityTooLarge, "File is too large", nil)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrUnauthenticated):
			response.Unauthorized(w, "")
		case errors.Is(err, service.ErrExtractorNotConfigured):
			response.Error(w, http.StatusServiceUnavailable, "Report extraction is not configured", nil)
		case errors.Is(err, service.ErrExtractionFailed),
			errors.Is(err, service.ErrMalformedExtraction):
			response.BadGateway(w, "Failed to extract data from the report")
		case errors.Is(err, usecase.ErrStorageFailed):
			response.BadGateway(w, "Failed to store the report")
		default:
			response.InternalServerError(w, "Failed to process report")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Report processed, please review the extracted values", upload)
}

func (h *ReportUploadHandler) GetPendingUpload(w http.ResponseWriter, r *http.Request) {
	patientID, uploadID, ok := h.uploadIDs(w, r)
	if !ok {
		return
	}

	upload, err := h.uploadUsecase.GetPendingUpload(r.Context(), patientID, uploadID)
	if err != nil {
		h.writeUploadError(w, err, "Failed to get pending upload")
		return
	}

	response.Success(w, http.StatusOK, "Pending upload retrieved successfully", upload)
}

// ConfirmUpload commits the reviewed values as a record. The body has the
// same shape as a manual record.
func (h *ReportUploadHandler) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	patientID, uploadID, ok := h.uploadIDs(w, r)
	if !ok {
		return
	}

	values, timestamp, err := recordPayload(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.uploadUsecase.ConfirmUpload(r.Context(), patientID, uploadID, &dto.RecordInput{
		Values:    values,
		Timestamp: timestamp,
	})
	if err != nil {
		h.writeUploadError(w, err, "Failed to save health record")
		return
	}

	response.Success(w, http.StatusCreated, "Health record saved successfully", record)
}

func (h *ReportUploadHandler) DiscardUpload(w http.ResponseWriter, r *http.Request) {
	patientID, uploadID, ok := h.uploadIDs(w, r)
	if !ok {
		return
	}

	if err := h.uploadUsecase.DiscardUpload(r.Context(), patientID, uploadID); err != nil {
		h.writeUploadError(w, err, "Failed to discard upload")
		return
	}

	response.Success(w, http.StatusOK, "Upload discarded", nil)
}

func (h *ReportUploadHandler) uploadIDs(w http.ResponseWriter, r *http.Request) (patientID, uploadID uuid.UUID, ok bool) {
	pid, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return patientID, uploadID, false
	}
	uid, err := pathUUID(r, "uploadId")
	if err != nil {
		response.BadRequest(w, "Invalid upload ID")
		return patientID, uploadID, false
	}
	return pid, uid, true
}

func (h *ReportUploadHandler) writeUploadError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrUploadNotFound:
		response.NotFound(w, "Pending upload not found or expired")
	case usecase.ErrMissingMetric:
		response.BadRequest(w, "Please enter at least one health metric")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrUnauthenticated:
		response.Unauthorized(w, "")
	default:
		response.InternalServerError(w, fallback)
	}
}
