package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/deringirish/PHMS/internal/converter"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/delivery/http/middleware"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/repository"
	"github.com/deringirish/PHMS/internal/service"
	"github.com/deringirish/PHMS/pkg/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound         = errors.New("admin not found")
	ErrUserIDAlreadyExists   = errors.New("user id already exists")
	ErrWeakPassword          = errors.New("password must be at least 8 characters and contain upper and lower case letters, a number and a special character")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own account")
	ErrInvalidSecretPassword = errors.New("invalid secret password")
	ErrUnauthenticated       = errors.New("no authenticated admin in context")
)

type AdminUsecase interface {
	ListAdmins(ctx context.Context) (*dto.AdminListResponse, error)
	CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.AdminResponse, error)
	DeleteAdmin(ctx context.Context, id uuid.UUID, req *dto.DeleteAdminRequest) error
}

type adminUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	auditService service.AuditService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		db:           db,
		log:          log,
		adminRepo:    adminRepo,
		auditService: auditService,
	}
}

func (u *adminUsecase) ListAdmins(ctx context.Context) (*dto.AdminListResponse, error) {
	admins, err := u.adminRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find admins: %+v", err)
		return nil, err
	}

	return &dto.AdminListResponse{
		Admins: converter.AdminsToResponses(admins),
		Total:  len(admins),
	}, nil
}

func (u *adminUsecase) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	if !validator.IsStrongPassword(req.Password) {
		return nil, ErrWeakPassword
	}

	admin, err := NewAdmin(req.UserID, req.Name, req.Password, req.SecretPassword)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.adminRepo.Create(tx, admin); err != nil {
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrUserIDAlreadyExists
		}
		u.log.Warnf("Failed to create admin: %+v", err)
		return nil, err
	}

	response := converter.AdminToResponse(admin)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionAdminCreate, "admin", admin.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *adminUsecase) DeleteAdmin(ctx context.Context, id uuid.UUID, req *dto.DeleteAdminRequest) error {
	currentID, ok := middleware.GetAdminIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	if currentID == id {
		return ErrCannotDeleteSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	current, err := u.adminRepo.FindByID(tx, currentID)
	if err != nil {
		u.log.Warnf("Failed to find current admin: %+v", err)
		return err
	}
	if current == nil {
		return ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(current.SecretPasswordHash), []byte(req.SecretPassword)); err != nil {
		return ErrInvalidSecretPassword
	}

	target, err := u.adminRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find admin: %+v", err)
		return err
	}
	if target == nil {
		return ErrAdminNotFound
	}

	rows, err := u.adminRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete admin: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrAdminNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &currentID, entity.AuditActionAdminDelete, "admin", id.String(), converter.AdminToResponse(target)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// NewAdmin builds an active admin with bcrypt-hashed passwords.
func NewAdmin(userID, name, password, secretPassword string) (*entity.Admin, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	secretHash, err := bcrypt.GenerateFromPassword([]byte(secretPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &entity.Admin{
		UserID:             strings.TrimSpace(userID),
		Name:               strings.TrimSpace(name),
		PasswordHash:       string(passwordHash),
		SecretPasswordHash: string(secretHash),
		IsActive:           lo.ToPtr(true),
	}, nil
}

// actorID returns the acting admin for audit rows, nil outside a request.
func actorID(ctx context.Context) *uuid.UUID {
	id, ok := middleware.GetAdminIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &id
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// on a constraint containing the given name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
