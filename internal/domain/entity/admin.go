package entity

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a clinic staff account. Admins also act as the doctor on visits,
// prescriptions and appointments.
type Admin struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"user_id"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash       string    `gorm:"type:text;not null" json:"-"`
	SecretPasswordHash string    `gorm:"type:text;not null" json:"-"`
	IsActive           *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// Active treats a missing flag as active.
func (a *Admin) Active() bool {
	return a.IsActive == nil || *a.IsActive
}
