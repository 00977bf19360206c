package repository

import (
	"errors"
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"
	domainRepo "github.com/deringirish/PHMS/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindAll supports optional filters: date range, status and doctor.
func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Model(&entity.Appointment{})

	if filter != nil {
		if filter.From != nil {
			query = query.Where("appointment_date >= ?", filter.From.Format("2006-01-02"))
		}
		if filter.To != nil {
			query = query.Where("appointment_date <= ?", filter.To.Format("2006-01-02"))
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
	}

	err := query.
		Preload("Patient").Preload("Doctor").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveOnDate(db *gorm.DB, doctorID *uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Where("appointment_date = ? AND status != ?", date.Format("2006-01-02"), entity.AppointmentStatusCancelled)
	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	} else {
		query = query.Where("doctor_id IS NULL")
	}
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	err := query.Order("appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}

// UpdateStatus moves an appointment to a new status only if it is currently in
// the expected one. Returns affected rows: 0 means the transition was refused.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.Appointment{}).Error
}
