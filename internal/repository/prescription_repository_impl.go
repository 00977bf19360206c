package repository

import (
	"errors"
	"strings"

	"github.com/deringirish/PHMS/internal/domain/entity"
	domainRepo "github.com/deringirish/PHMS/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Patient", "Visit", "Doctor").Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("prescription_date DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.Prescription{}).Error
}

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

// Search matches the brand or generic name, prefix matches first.
func (r *medicationRepository) Search(db *gorm.DB, query string, limit int) ([]entity.Medication, error) {
	var medications []entity.Medication
	q := strings.TrimSpace(query)
	tx := db.Model(&entity.Medication{})
	if q != "" {
		pattern := containsPattern(q)
		tx = tx.Where("name ILIKE ? OR generic_name ILIKE ?", pattern, pattern).
			Order(clause.OrderBy{Expression: clause.Expr{
				SQL:                "CASE WHEN name ILIKE ? THEN 0 ELSE 1 END, name ASC",
				Vars:               []interface{}{escapeLike(q) + "%"},
				WithoutParentheses: true,
			}})
	} else {
		tx = tx.Order("name ASC")
	}
	err := tx.Limit(limit).Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) CreateIfMissing(db *gorm.DB, medications []entity.Medication) (int64, error) {
	if len(medications) == 0 {
		return 0, nil
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&medications)
	return result.RowsAffected, result.Error
}
