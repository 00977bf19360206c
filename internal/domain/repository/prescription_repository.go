package repository

import (
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
}

type MedicationRepository interface {
	Search(db *gorm.DB, query string, limit int) ([]entity.Medication, error)
	// CreateIfMissing inserts catalog entries, skipping names that already exist.
	CreateIfMissing(db *gorm.DB, medications []entity.Medication) (int64, error)
}
