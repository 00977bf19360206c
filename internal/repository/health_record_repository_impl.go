package repository

import (
	"errors"

	"github.com/deringirish/PHMS/internal/domain/entity"
	domainRepo "github.com/deringirish/PHMS/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type healthRecordRepository struct{}

func NewHealthRecordRepository() domainRepo.HealthRecordRepository {
	return &healthRecordRepository{}
}

func (r *healthRecordRepository) Create(db *gorm.DB, record *entity.HealthRecord) error {
	return db.Omit("Patient").Create(record).Error
}

func (r *healthRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.HealthRecord, error) {
	var record entity.HealthRecord
	err := db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *healthRecordRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.RecordFilter) ([]entity.HealthRecord, error) {
	var records []entity.HealthRecord
	query := db.Where("patient_id = ?", patientID)

	if filter != nil {
		if filter.From != nil {
			query = query.Where("timestamp >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("timestamp <= ?", *filter.To)
		}
	}

	err := query.Order("timestamp DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *healthRecordRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.HealthRecord{})
	return result.RowsAffected, result.Error
}

func (r *healthRecordRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.HealthRecord{}).Error
}
