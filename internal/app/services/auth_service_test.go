package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/app/repositories/memory"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"github.com/yigit/lecturehub/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (*AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "lecturehub",
	})
	repos := memory.NewRepositories()
	return NewAuthService(repos.Users, jwtService, zerolog.Nop()).WithHashCost(bcrypt.MinCost), jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwtService := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, dto.RegisterRequest{Name: "Priya", Email: " Priya@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", user.Email)
	assert.Equal(t, models.RoleInstructor, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Other", Email: "PRIYA@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "priya@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := jwtService.ValidateAndExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "instructor", claims.Role)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "priya@example.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Priya", Email: "priya@example.com", Password: "123"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: " ", Email: "priya@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestProfileAndInstructors(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	neha, err := svc.Register(ctx, dto.RegisterRequest{Name: "Neha", Email: "neha@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Amit", Email: "amit@example.com", Password: "secret1"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, neha.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neha", profile.Name)

	_, err = svc.Profile(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	instructors, err := svc.ListInstructors(ctx)
	require.NoError(t, err)
	require.Len(t, instructors, 2)
	assert.Equal(t, "Amit", instructors[0].Name)
}
