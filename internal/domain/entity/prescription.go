package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PrescribedMedication is one line of a prescription.
type PrescribedMedication struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage,omitempty"`
	Frequency      string `json:"frequency,omitempty"`
	Duration       string `json:"duration,omitempty"`
	Instructions   string `json:"instructions,omitempty"`
	Quantity       string `json:"quantity,omitempty"`
}

type Prescription struct {
	ID               uuid.UUID                                 `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID        uuid.UUID                                 `gorm:"type:uuid;not null;index" json:"patient_id"`
	VisitID          *uuid.UUID                                `gorm:"type:uuid;index" json:"visit_id,omitempty"`
	DoctorID         *uuid.UUID                                `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	PrescriptionDate time.Time                                 `gorm:"not null;index" json:"prescription_date"`
	Medications      datatypes.JSONSlice[PrescribedMedication] `gorm:"type:jsonb;not null" json:"medications"`
	Notes            string                                    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time                                 `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Visit   *Visit   `gorm:"foreignKey:VisitID;constraint:OnDelete:SET NULL" json:"visit,omitempty"`
	Doctor  *Admin   `gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
