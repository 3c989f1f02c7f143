package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appAuth "github.com/yigit/lecturehub/internal/app/auth"
	"github.com/yigit/lecturehub/internal/app/models"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"github.com/yigit/lecturehub/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	authz      *appAuth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authz *appAuth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		authz:      authz,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeTokenNotFound, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				code = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			} else if errors.Is(err, apperrors.ErrInvalidFormat) {
				details = "Invalid token format"
			}
			abortUnauthorized(c, code, details)
			return
		}

		// ValidateAndExtractClaims already rejected unknown roles
		role, _ := models.ParseRole(claims.Role)

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, role)

		c.Next()
	}
}

// ScheduleManagerRequired lets through only accounts allowed to change courses and lectures
func (m *AuthMiddleware) ScheduleManagerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}
		if !role.CanManageSchedule() {
			HandleAPIError(c, appAuth.ErrNotScheduleManager)
			c.Abort()
			return
		}

		userID, _ := GetUserID(c)
		if err := m.authz.ValidateScheduleManager(c.Request.Context(), userID); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user id set by JWTAuth
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

// GetRole returns the authenticated role set by JWTAuth
func GetRole(c *gin.Context) (models.Role, bool) {
	v, exists := c.Get(ContextRole)
	if !exists {
		return "", false
	}
	role, ok := v.(models.Role)
	return role, ok
}
