package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UploadReportRequest is a lab report read from a multipart form.
type UploadReportRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Response DTOs

type PendingUploadResponse struct {
	UploadID         uuid.UUID              `json:"upload_id"`
	PatientID        uuid.UUID              `json:"patient_id"`
	OriginalFilename string                 `json:"original_filename"`
	Extracted        map[string]interface{} `json:"extracted"`
	ReportTimestamp  *time.Time             `json:"report_timestamp,omitempty"`
	ExpiresAt        time.Time              `json:"expires_at"`
}
