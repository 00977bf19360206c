package dto

import (
	"time"

	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/google/uuid"
)

// Request DTOs

type PatientRequest struct {
	FullName          string   `json:"full_name" validate:"required,max=255"`
	Age               *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender            string   `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	ContactNumber     string   `json:"contact_number" validate:"omitempty,max=30"`
	Email             string   `json:"email" validate:"omitempty,emailaddr"`
	Address           string   `json:"address"`
	MedicalConditions []string `json:"medical_conditions"`
	EmergencyContact  string   `json:"emergency_contact" validate:"omitempty,max=255"`
}

type CreatePatientRequest = PatientRequest

type UpdatePatientRequest = PatientRequest

// Response DTOs

type PatientResponse struct {
	ID                uuid.UUID `json:"id"`
	FullName          string    `json:"full_name"`
	Age               *int      `json:"age,omitempty"`
	Gender            string    `json:"gender,omitempty"`
	ContactNumber     string    `json:"contact_number,omitempty"`
	Email             string    `json:"email,omitempty"`
	Address           string    `json:"address,omitempty"`
	MedicalConditions []string  `json:"medical_conditions"`
	EmergencyContact  string    `json:"emergency_contact,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

// PatientDetailResponse is the patient page: records newest first plus the
// chart series built from them.
type PatientDetailResponse struct {
	Patient      PatientResponse        `json:"patient"`
	Records      []HealthRecordResponse `json:"records"`
	LatestRecord *HealthRecordResponse  `json:"latest_record"`
	ChartData    metric.ChartData       `json:"chart_data"`
}
