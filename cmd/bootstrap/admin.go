package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/deringirish/PHMS/internal/infrastructure/database"
	"github.com/deringirish/PHMS/internal/repository"
	"github.com/deringirish/PHMS/internal/usecase"
	"github.com/deringirish/PHMS/pkg/validator"
)

var (
	ErrAdminExists  = errors.New("user id already exists")
	ErrWeakPassword = errors.New("password must be at least 8 characters and contain upper and lower case letters, a number and a special character")
)

// Migrate creates or updates the schema.
func (app *App) Migrate() error {
	if err := database.Migrate(app.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	app.Log.Info("Database migrated successfully")
	return nil
}

// CreateAdmin provisions an admin account from the command line.
func (app *App) CreateAdmin(ctx context.Context, userID, name, password, secretPassword string) error {
	if !validator.IsStrongPassword(password) {
		return ErrWeakPassword
	}
	if secretPassword == "" {
		return errors.New("secret password is required")
	}

	adminRepo := repository.NewAdminRepository()
	db := app.DB.WithContext(ctx)

	existing, err := adminRepo.FindByUserID(db, userID)
	if err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return ErrAdminExists
	}

	admin, err := usecase.NewAdmin(userID, name, password, secretPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := adminRepo.Create(db, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	app.Log.Infof("Admin %s created", admin.UserID)
	return nil
}
