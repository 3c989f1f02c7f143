package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/repositories"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"github.com/yigit/lecturehub/internal/pkg/logger"
)

// Authorization errors
var (
	ErrNotScheduleManager = apperrors.NewForbiddenError("Only admins can manage courses and lectures")
	ErrAccountGone        = apperrors.NewForbiddenError("Account no longer exists")
)

// AuthorizationService decides what an authenticated account may do. Roles are read
// from the store, not the token, so a changed or removed account loses access at once.
type AuthorizationService struct {
	userRepo repositories.UserRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.UserRepository) *AuthorizationService {
	return &AuthorizationService{userRepo: userRepo}
}

// RoleOf returns the stored role of userID
func (s *AuthorizationService) RoleOf(ctx context.Context, userID int64) (models.Role, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrAccountGone
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in RoleOf")
		return "", fmt.Errorf("error loading user: %w", err)
	}
	return user.Role, nil
}

// CanManageSchedule checks whether the user may create, change or delete courses and lectures
func (s *AuthorizationService) CanManageSchedule(ctx context.Context, userID int64) (bool, error) {
	role, err := s.RoleOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return role.CanManageSchedule(), nil
}

// ValidateScheduleManager returns ErrNotScheduleManager unless the user may manage the schedule
func (s *AuthorizationService) ValidateScheduleManager(ctx context.Context, userID int64) error {
	ok, err := s.CanManageSchedule(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotScheduleManager
	}
	return nil
}
