package converter

import (
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/samber/lo"
)

// AdminToResponse converts an Admin entity to AdminResponse DTO. Password
// hashes never leave this layer.
func AdminToResponse(admin *entity.Admin) *dto.AdminResponse {
	if admin == nil {
		return nil
	}

	return &dto.AdminResponse{
		ID:        admin.ID,
		UserID:    admin.UserID,
		Name:      admin.Name,
		IsActive:  admin.Active(),
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}

func AdminsToResponses(admins []entity.Admin) []dto.AdminResponse {
	return lo.Map(admins, func(a entity.Admin, _ int) dto.AdminResponse {
		return *AdminToResponse(&a)
	})
}
