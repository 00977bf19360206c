package repository

import (
	"errors"

	"github.com/deringirish/PHMS/internal/domain/entity"
	domainRepo "github.com/deringirish/PHMS/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type visitRepository struct{}

func NewVisitRepository() domainRepo.VisitRepository {
	return &visitRepository{}
}

func (r *visitRepository) Create(db *gorm.DB, visit *entity.Visit) error {
	return db.Omit("Patient", "Doctor", "Prescriptions", "HealthRecords").Create(visit).Error
}

func (r *visitRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Visit, error) {
	var visit entity.Visit
	err := db.
		Preload("Patient").
		Preload("Doctor").
		Preload("Prescriptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("prescription_date DESC")
		}).
		Preload("HealthRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp DESC")
		}).
		Where("id = ?", id).
		First(&visit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("visit_date DESC, created_at DESC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) Update(db *gorm.DB, visit *entity.Visit) error {
	return db.Omit("Patient", "Doctor", "Prescriptions", "HealthRecords").Save(visit).Error
}

func (r *visitRepository) LinkHealthRecord(db *gorm.DB, visit *entity.Visit, record *entity.HealthRecord) error {
	return db.Model(visit).Omit("HealthRecords.*").Association("HealthRecords").Append(record)
}

func (r *visitRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	if err := db.Exec(
		"DELETE FROM visit_health_records WHERE visit_id IN (SELECT id FROM visits WHERE patient_id = ?)",
		patientID,
	).Error; err != nil {
		return err
	}
	return db.Where("patient_id = ?", patientID).Delete(&entity.Visit{}).Error
}
