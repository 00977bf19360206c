package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	From     *time.Time // inclusive
	To       *time.Time // inclusive
	Status   AppointmentStatus
	DoctorID *uuid.UUID
	Limit    int
}

// RecordFilter bounds a health record query by timestamp.
type RecordFilter struct {
	From *time.Time
	To   *time.Time
}
