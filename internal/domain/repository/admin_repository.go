package repository

import (
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(db *gorm.DB, admin *entity.Admin) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Admin, error)
	FindByUserID(db *gorm.DB, userID string) (*entity.Admin, error)
	FindAll(db *gorm.DB) ([]entity.Admin, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
