package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktrack/internal/auth"
	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and token issuance.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*model.User, error)
	Login(ctx context.Context, name, password string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a user with a hashed password. Uniqueness of email and
// name is enforced by the database indexes alone; the duplicate-key error is
// the only conflict signal, so concurrent registrations cannot both slip
// past a pre-check.
func (s *authService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The constraint already fired; a read here only picks the
			// right message and cannot race.
			_, lookupErr := s.userRepo.FindByEmail(ctx, email)
			switch {
			case lookupErr == nil:
				return nil, apperrors.ErrEmailTaken
			case errors.Is(lookupErr, gorm.ErrRecordNotFound):
				return nil, apperrors.ErrNameTaken
			default:
				return nil, fmt.Errorf("check email conflict: %w", lookupErr)
			}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates by name and password and returns a token pair. The
// error never distinguishes an unknown name from a wrong password.
func (s *authService) Login(ctx context.Context, name, password string) (accessToken, refreshToken string, err error) {
	user, err := s.userRepo.FindByName(ctx, name)
	if err != nil {
		return "", "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.Name)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err = s.jwtService.GenerateRefreshToken(user.Name)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// Refresh validates a refresh token and mints a new access token. The
// subject must still resolve to a user.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByName(ctx, claims.Subject)
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.Name)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}
