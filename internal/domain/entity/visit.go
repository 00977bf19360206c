package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VitalSigns captured at the start of a consultation.
type VitalSigns struct {
	BPSystolic  *int     `gorm:"column:vital_bp_systolic" json:"bp_systolic,omitempty"`
	BPDiastolic *int     `gorm:"column:vital_bp_diastolic" json:"bp_diastolic,omitempty"`
	HeartRate   *int     `gorm:"column:vital_heart_rate" json:"heart_rate,omitempty"`
	Temperature *float64 `gorm:"column:vital_temperature" json:"temperature,omitempty"`
}

// Visit is one consultation. Prescriptions point back to it by VisitID;
// health records are linked through visit_health_records.
type Visit struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID                   `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID       *uuid.UUID                  `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	VisitDate      time.Time                   `gorm:"type:date;not null;index" json:"visit_date"`
	ChiefComplaint string                      `gorm:"type:text" json:"chief_complaint,omitempty"`
	Diagnosis      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"diagnosis"`
	TreatmentPlan  string                      `gorm:"type:text" json:"treatment_plan,omitempty"`
	FollowUpDate   *time.Time                  `gorm:"type:date" json:"follow_up_date,omitempty"`
	Notes          string                      `gorm:"type:text" json:"notes,omitempty"`
	VitalSigns     VitalSigns                  `gorm:"embedded" json:"vital_signs"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient       *Patient       `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Doctor        *Admin         `gorm:"foreignKey:DoctorID;constraint:OnDelete:SET NULL" json:"doctor,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:VisitID" json:"prescriptions,omitempty"`
	HealthRecords []HealthRecord `gorm:"many2many:visit_health_records;constraint:OnDelete:CASCADE" json:"health_records,omitempty"`
}

func (Visit) TableName() string {
	return "visits"
}
