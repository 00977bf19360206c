package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// RecordInput is a raw metric payload as submitted. Keys outside the metric
// whitelist are dropped during sanitization.
type RecordInput struct {
	Values    map[string]interface{}
	Timestamp string
}

// Response DTOs

type HealthRecordResponse struct {
	ID         uuid.UUID          `json:"id"`
	PatientID  uuid.UUID          `json:"patient_id"`
	Timestamp  time.Time          `json:"timestamp"`
	SourceType string             `json:"source_type"`
	Notes      string             `json:"notes,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
	CreatedAt  time.Time          `json:"created_at"`
}

type HealthRecordListResponse struct {
	Records []HealthRecordResponse `json:"records"`
	Total   int                    `json:"total"`
}

type DeleteRecordResponse struct {
	PatientID uuid.UUID `json:"patient_id"`
}
