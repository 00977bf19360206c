package handler

import (
	"net/http"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/pkg/response"
	"github.com/deringirish/PHMS/pkg/validator"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminUsecase.ListAdmins(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get admins")
		return
	}

	response.Success(w, http.StatusOK, "Admins retrieved successfully", admins)
}

func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admin, err := h.adminUsecase.CreateAdmin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserIDAlreadyExists:
			response.Conflict(w, "User ID already exists")
		case usecase.ErrWeakPassword:
			response.BadRequest(w, "Password is too weak")
		default:
			response.InternalServerError(w, "Failed to create admin")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Admin created successfully", admin)
}

// DeleteAdmin removes another admin after checking the caller's secret password.
func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid admin ID")
		return
	}

	var req dto.DeleteAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.adminUsecase.DeleteAdmin(r.Context(), id, &req); err != nil {
		switch err {
		case usecase.ErrAdminNotFound:
			response.NotFound(w, "Admin not found")
		case usecase.ErrCannotDeleteSelf:
			response.BadRequest(w, "You cannot delete your own account")
		case usecase.ErrInvalidSecretPassword:
			response.Forbidden(w, "Invalid secret password")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to delete admin")
		}
		return
	}

	response.Success(w, http.StatusOK, "Admin deleted successfully", nil)
}
