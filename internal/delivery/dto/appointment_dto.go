package dto

import (
	"time"

	"github.com/google/uuid"
)

// Appointment list windows.
const (
	AppointmentFilterToday    = "today"
	AppointmentFilterWeek     = "week"
	AppointmentFilterMonth    = "month"
	AppointmentFilterUpcoming = "upcoming"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id" validate:"required,uuid"`
	DoctorID        string `json:"doctor_id" validate:"omitempty,uuid"`
	AppointmentDate string `json:"appointment_date" validate:"required,yyyymmdd"`
	AppointmentTime string `json:"appointment_time" validate:"required,hhmm"`
	Duration        int    `json:"duration" validate:"omitempty,gte=5,lte=480"`
	Type            string `json:"type" validate:"omitempty,oneof=CONSULTATION FOLLOW_UP CHECKUP PROCEDURE"`
	Notes           string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" validate:"required,yyyymmdd"`
	AppointmentTime string `json:"appointment_time" validate:"required,hhmm"`
}

type CheckConflictRequest struct {
	DoctorID        string `json:"doctor_id" validate:"omitempty,uuid"`
	AppointmentDate string `json:"appointment_date" validate:"required,yyyymmdd"`
	AppointmentTime string `json:"appointment_time" validate:"required,hhmm"`
	Duration        int    `json:"duration" validate:"omitempty,gte=5,lte=480"`
}

type AppointmentListQuery struct {
	Filter   string `validate:"omitempty,oneof=today week month upcoming"`
	Status   string `validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED NO_SHOW"`
	DoctorID string `validate:"omitempty,uuid"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	PatientID       uuid.UUID  `json:"patient_id"`
	PatientName     string     `json:"patient_name,omitempty"`
	DoctorID        *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName      string     `json:"doctor_name,omitempty"`
	AppointmentDate string     `json:"appointment_date"`
	AppointmentTime string     `json:"appointment_time"`
	Duration        int        `json:"duration"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Filter       string                `json:"filter,omitempty"`
	Total        int                   `json:"total"`
}

// CalendarResponse groups a month of appointments by YYYY-MM-DD.
type CalendarResponse struct {
	Month string                           `json:"month"`
	Days  map[string][]AppointmentResponse `json:"days"`
	Total int                              `json:"total"`
}

type ConflictResponse struct {
	HasConflict bool `json:"has_conflict"`
}
