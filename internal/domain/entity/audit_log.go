package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID   *uuid.UUID        `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Admin *Admin `gorm:"foreignKey:AdminID;constraint:OnDelete:SET NULL" json:"admin,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionAdminCreate        = "admin.create"
	AuditActionAdminDelete        = "admin.delete"
	AuditActionPatientCreate      = "patient.create"
	AuditActionPatientUpdate      = "patient.update"
	AuditActionPatientDelete      = "patient.delete"
	AuditActionRecordCreate       = "record.create"
	AuditActionRecordDelete       = "record.delete"
	AuditActionUploadConfirm      = "upload.confirm"
	AuditActionUploadDiscard      = "upload.discard"
	AuditActionVisitCreate        = "visit.create"
	AuditActionVisitUpdate        = "visit.update"
	AuditActionPrescriptionCreate = "prescription.create"
	AuditActionAppointmentCreate  = "appointment.create"
	AuditActionAppointmentUpdate  = "appointment.update"
)
