package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"github.com/yigit/lecturehub/internal/pkg/auth"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
	hashCost   int
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hashCost:   auth.BcryptCost,
		logger:     logger,
	}
}

// WithHashCost overrides the bcrypt cost used for new passwords
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an instructor account. Admin accounts only come from seeding.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Name, email and password are required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPasswordWithCost(req.Password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleInstructor,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Instructor registered")
	return user, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("email", user.Email).Msg("Login rejected: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User:      user,
	}, nil
}

// Profile returns the account of userID
func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// ListInstructors returns every instructor ordered by name
func (s *AuthService) ListInstructors(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.ListByRole(ctx, models.RoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("error listing instructors: %w", err)
	}
	return users, nil
}
