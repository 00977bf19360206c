package repository

import (
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PendingUploadRepository interface {
	Create(db *gorm.DB, upload *entity.PendingUpload) error
	// FindOwned looks an upload up by its full key (admin, patient, upload id).
	FindOwned(db *gorm.DB, adminID, patientID, id uuid.UUID) (*entity.PendingUpload, error)
	FindExpired(db *gorm.DB, now time.Time, limit int) ([]entity.PendingUpload, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PendingUpload, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
}
