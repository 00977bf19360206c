package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Patient holds identity and demographics. Owned by the clinic staff
// collectively; deleting a patient removes everything recorded against it.
type Patient struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName          string                      `gorm:"type:varchar(255);not null;index" json:"full_name"`
	Age               *int                        `gorm:"type:smallint" json:"age,omitempty"`
	Gender            string                      `gorm:"type:varchar(20);index" json:"gender,omitempty"`
	ContactNumber     string                      `gorm:"type:varchar(30)" json:"contact_number,omitempty"`
	Email             string                      `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address           string                      `gorm:"type:text" json:"address,omitempty"`
	MedicalConditions datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"medical_conditions"`
	EmergencyContact  string                      `gorm:"type:varchar(255)" json:"emergency_contact,omitempty"`
	CreatedAt         time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender values accepted on intake.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)
