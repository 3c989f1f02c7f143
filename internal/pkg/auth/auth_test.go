package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWT(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "lecturehub-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWT(time.Hour)
	user := &models.User{ID: 7, Email: "priya@example.com", Role: models.RoleInstructor}

	token, expiresIn, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "priya@example.com", claims.Email)
	assert.Equal(t, "instructor", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWT(-time.Minute)
	token, _, err := svc.GenerateAccessToken(&models.User{ID: 1, Email: "a@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_WrongSecretOrIssuer(t *testing.T) {
	token, _, err := newTestJWT(time.Hour).GenerateAccessToken(&models.User{ID: 1, Email: "a@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "lecturehub-test"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	otherIssuer := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "someone-else"})
	_, err = otherIssuer.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateToken_Malformed(t *testing.T) {
	_, err := newTestJWT(time.Hour).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}

func TestValidateAndExtractClaims_RejectsUnknownRole(t *testing.T) {
	svc := newTestJWT(time.Hour)
	claims := &Claims{
		UserID: 3,
		Email:  "x@example.com",
		Role:   "student",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "lecturehub-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, bad := range []string{"", "Bearer ", "Basic dXNlcjpwYXNz", "token"} {
		_, err := ExtractBearerToken(bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFormat, "header %q", bad)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPasswordWithCost("instructor123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.True(t, CheckPassword(hash, "instructor123"))
	assert.False(t, CheckPassword(hash, "instructor124"))
	assert.False(t, CheckPassword("not-a-hash", "instructor123"))
}
