package repository

import (
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisitRepository interface {
	Create(db *gorm.DB, visit *entity.Visit) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Visit, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Visit, error)
	Update(db *gorm.DB, visit *entity.Visit) error
	LinkHealthRecord(db *gorm.DB, visit *entity.Visit, record *entity.HealthRecord) error
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
}
