package repository

import (
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	// FindActiveOnDate returns non-cancelled appointments of a doctor on a date,
	// optionally excluding one appointment.
	FindActiveOnDate(db *gorm.DB, doctorID *uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
}
