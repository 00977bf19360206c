package dto

// Request DTOs

type CreateAdminRequest struct {
	UserID         string `json:"user_id" validate:"required,min=3,max=100"`
	Name           string `json:"name" validate:"required,max=255"`
	Password       string `json:"password" validate:"required,strongpassword"`
	SecretPassword string `json:"secret_password" validate:"required"`
}

// DeleteAdminRequest carries the acting admin's own secret password.
type DeleteAdminRequest struct {
	SecretPassword string `json:"secret_password" validate:"required"`
}

// Response DTOs

type AdminListResponse struct {
	Admins []AdminResponse `json:"admins"`
	Total  int             `json:"total"`
}
