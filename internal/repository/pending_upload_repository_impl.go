package repository

import (
	"errors"
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"
	domainRepo "github.com/deringirish/PHMS/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type pendingUploadRepository struct{}

func NewPendingUploadRepository() domainRepo.PendingUploadRepository {
	return &pendingUploadRepository{}
}

func (r *pendingUploadRepository) Create(db *gorm.DB, upload *entity.PendingUpload) error {
	return db.Omit("Patient").Create(upload).Error
}

func (r *pendingUploadRepository) FindOwned(db *gorm.DB, adminID, patientID, id uuid.UUID) (*entity.PendingUpload, error) {
	var upload entity.PendingUpload
	err := db.Where("id = ? AND admin_id = ? AND patient_id = ?", id, adminID, patientID).First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &upload, nil
}

func (r *pendingUploadRepository) FindExpired(db *gorm.DB, now time.Time, limit int) ([]entity.PendingUpload, error) {
	var uploads []entity.PendingUpload
	err := db.Where("expires_at <= ?", now).Order("expires_at ASC").Limit(limit).Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *pendingUploadRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PendingUpload, error) {
	var uploads []entity.PendingUpload
	err := db.Where("patient_id = ?", patientID).Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

func (r *pendingUploadRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.PendingUpload{})
	return result.RowsAffected, result.Error
}

func (r *pendingUploadRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.PendingUpload{}).Error
}
