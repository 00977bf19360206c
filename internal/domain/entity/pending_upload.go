package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PendingUpload holds AI-extracted report values until the admin who
// uploaded them confirms or discards. One row per (admin, patient, upload).
type PendingUpload struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_pending_uploads_owner,priority:1" json:"admin_id"`
	PatientID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_pending_uploads_owner,priority:2" json:"patient_id"`
	ObjectKey        string         `gorm:"type:text;not null" json:"object_key"`
	OriginalFilename string         `gorm:"type:varchar(255)" json:"original_filename"`
	ContentType      string         `gorm:"type:varchar(100)" json:"content_type"`
	Extracted        datatypes.JSON `gorm:"type:jsonb" json:"extracted"`
	ReportTimestamp  *time.Time     `json:"report_timestamp,omitempty"`
	ExpiresAt        time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PendingUpload) TableName() string {
	return "pending_uploads"
}

func (p *PendingUpload) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
