package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MedicationItem struct {
	MedicationName string `json:"medication_name" validate:"required,max=255"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	Duration       string `json:"duration"`
	Instructions   string `json:"instructions"`
	Quantity       string `json:"quantity"`
}

type CreatePrescriptionRequest struct {
	VisitID     string           `json:"visit_id" validate:"omitempty,uuid"`
	Medications []MedicationItem `json:"medications" validate:"required,min=1,dive"`
	Notes       string           `json:"notes"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID               uuid.UUID        `json:"id"`
	PatientID        uuid.UUID        `json:"patient_id"`
	PatientName      string           `json:"patient_name,omitempty"`
	VisitID          *uuid.UUID       `json:"visit_id,omitempty"`
	DoctorID         *uuid.UUID       `json:"doctor_id,omitempty"`
	DoctorName       string           `json:"doctor_name,omitempty"`
	PrescriptionDate time.Time        `json:"prescription_date"`
	Medications      []MedicationItem `json:"medications"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}

type MedicationResponse struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	GenericName   string   `json:"generic_name"`
	Category      string   `json:"category"`
	CommonDosages []string `json:"common_dosages"`
}
