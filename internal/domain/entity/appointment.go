package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

// AppointmentType classifies the reason for an appointment
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "CONSULTATION"
	AppointmentTypeFollowUp     AppointmentType = "FOLLOW_UP"
	AppointmentTypeCheckup      AppointmentType = "CHECKUP"
	AppointmentTypeProcedure    AppointmentType = "PROCEDURE"
)

const (
	DefaultAppointmentDuration = 30
	MinutesPerDay              = 24 * 60
)

type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        *uuid.UUID        `gorm:"type:uuid;index:idx_appointments_doctor_date,priority:1" json:"doctor_id,omitempty"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index:idx_appointments_doctor_date,priority:2;index" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(5);not null" json:"appointment_time"`
	Duration        int               `gorm:"not null;default:30" json:"duration"`
	Type            AppointmentType   `gorm:"type:varchar(20);not null;default:'CONSULTATION'" json:"type"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Doctor  *Admin   `gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

func (a *Appointment) Complete() {
	a.Status = AppointmentStatusCompleted
}

func (a *Appointment) MarkNoShow() {
	a.Status = AppointmentStatusNoShow
}

// Window returns the start and end minute-of-day of the appointment.
func (a *Appointment) Window() (start, end int, err error) {
	start, err = ParseClock(a.AppointmentTime)
	if err != nil {
		return 0, 0, err
	}
	duration := a.Duration
	if duration <= 0 {
		duration = DefaultAppointmentDuration
	}
	return start, start + duration, nil
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
