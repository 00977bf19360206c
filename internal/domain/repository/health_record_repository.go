package repository

import (
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthRecordRepository interface {
	Create(db *gorm.DB, record *entity.HealthRecord) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.HealthRecord, error)
	// FindByPatientID returns records newest first.
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.RecordFilter) ([]entity.HealthRecord, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
}
