package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type VitalSignsRequest struct {
	BPSystolic  *int     `json:"bp_systolic" validate:"omitempty,gte=0,lte=400"`
	BPDiastolic *int     `json:"bp_diastolic" validate:"omitempty,gte=0,lte=300"`
	HeartRate   *int     `json:"heart_rate" validate:"omitempty,gte=0,lte=400"`
	Temperature *float64 `json:"temperature" validate:"omitempty,gte=0,lte=120"`
}

// CreateVisitRequest takes the diagnosis as a comma separated list.
type CreateVisitRequest struct {
	DoctorID       string             `json:"doctor_id" validate:"omitempty,uuid"`
	VisitDate      string             `json:"visit_date" validate:"omitempty,yyyymmdd"`
	ChiefComplaint string             `json:"chief_complaint"`
	Diagnosis      string             `json:"diagnosis"`
	TreatmentPlan  string             `json:"treatment_plan"`
	FollowUpDate   string             `json:"follow_up_date" validate:"omitempty,yyyymmdd"`
	Notes          string             `json:"notes"`
	VitalSigns     *VitalSignsRequest `json:"vital_signs"`
}

type UpdateVisitRequest struct {
	ChiefComplaint string `json:"chief_complaint"`
	Diagnosis      string `json:"diagnosis"`
	TreatmentPlan  string `json:"treatment_plan"`
	FollowUpDate   string `json:"follow_up_date" validate:"omitempty,yyyymmdd"`
	Notes          string `json:"notes"`
}

type LinkHealthRecordRequest struct {
	HealthRecordID string `json:"health_record_id" validate:"required,uuid"`
}

// Response DTOs

type VitalSignsResponse struct {
	BPSystolic  *int     `json:"bp_systolic,omitempty"`
	BPDiastolic *int     `json:"bp_diastolic,omitempty"`
	HeartRate   *int     `json:"heart_rate,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type VisitResponse struct {
	ID              uuid.UUID              `json:"id"`
	PatientID       uuid.UUID              `json:"patient_id"`
	PatientName     string                 `json:"patient_name,omitempty"`
	DoctorID        *uuid.UUID             `json:"doctor_id,omitempty"`
	DoctorName      string                 `json:"doctor_name,omitempty"`
	VisitDate       string                 `json:"visit_date"`
	ChiefComplaint  string                 `json:"chief_complaint,omitempty"`
	Diagnosis       []string               `json:"diagnosis"`
	TreatmentPlan   string                 `json:"treatment_plan,omitempty"`
	FollowUpDate    *string                `json:"follow_up_date,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	VitalSigns      VitalSignsResponse     `json:"vital_signs"`
	PrescriptionIDs []uuid.UUID            `json:"prescription_ids"`
	HealthRecordIDs []uuid.UUID            `json:"health_record_ids"`
	Prescriptions   []PrescriptionResponse `json:"prescriptions,omitempty"`
	HealthRecords   []HealthRecordResponse `json:"health_records,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type VisitListResponse struct {
	Visits []VisitResponse `json:"visits"`
	Total  int             `json:"total"`
}
