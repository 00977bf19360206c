package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Medication is a catalog entry used to autocomplete prescriptions.
type Medication struct {
	ID            int                         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	GenericName   string                      `gorm:"type:varchar(255);index" json:"generic_name,omitempty"`
	Category      string                      `gorm:"type:varchar(100)" json:"category,omitempty"`
	CommonDosages datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"common_dosages"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime" json:"created_at"`
}

func (Medication) TableName() string {
	return "medications"
}
