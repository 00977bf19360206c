package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deringirish/PHMS/internal/converter"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/repository"
	"github.com/deringirish/PHMS/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid user id or password")
	ErrAccountInactive    = errors.New("account has been deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, adminID uuid.UUID, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*dto.AdminResponse, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	adminRepo   repository.AdminRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		adminRepo:   adminRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func accessTokenKey(adminID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", adminID.String(), tokenID)
}

func refreshTokenKey(adminID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", adminID.String(), tokenID)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := u.adminRepo.FindByUserID(u.db.WithContext(ctx), strings.TrimSpace(req.UserID))
	if err != nil {
		u.log.Warnf("Failed to find admin by user id: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !admin.Active() {
		return nil, ErrAccountInactive
	}

	return u.issueTokens(ctx, admin)
}

func (u *authUsecase) issueTokens(ctx context.Context, admin *entity.Admin) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(admin.ID, admin.UserID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(admin.ID, admin.UserID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, accessTokenKey(admin.ID, accessTokenID), "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshTokenKey(admin.ID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// Logout revokes the presented access token and every refresh token of the
// admin, so a leaked refresh token cannot outlive the session.
func (u *authUsecase) Logout(ctx context.Context, adminID uuid.UUID, accessTokenID string) error {
	if err := u.redisClient.Del(ctx, accessTokenKey(adminID, accessTokenID)).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	refreshKeys, err := u.redisClient.Keys(ctx, fmt.Sprintf("refresh_token:%s:*", adminID.String())).Result()
	if err != nil {
		u.log.Warnf("Failed to get refresh token keys: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh token: %+v", err)
			return err
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := refreshTokenKey(claims.AdminID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Delete old refresh token
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), claims.AdminID)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidToken
	}
	if !admin.Active() {
		return nil, ErrAccountInactive
	}

	return u.issueTokens(ctx, admin)
}

func (u *authUsecase) GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*dto.AdminResponse, error) {
	admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), adminID)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	return converter.AdminToResponse(admin), nil
}
