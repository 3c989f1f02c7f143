package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/pkg/apperrors"
	"github.com/yigit/lecturehub/internal/pkg/logger"
)

// HandleAPIError maps an application error to its status code and writes the error envelope.
// Messages carried by apperrors.CustomError reach the client; anything unrecognized is
// logged and answered with a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		detail.WithDetails(custom.Details)
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("requestID", c.GetString(ContextRequestID)).
			Msg("Unhandled error")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.Message(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.Message(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrConflict):
		code := dto.ErrorCodeScheduleConflict
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			code = dto.ErrorCodeResourceAlreadyExists
		}
		return http.StatusConflict, dto.NewErrorDetail(code, apperrors.Message(err, "Conflict"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, apperrors.Message(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleBindingError answers a request whose body or query failed to bind
func HandleBindingError(c *gin.Context, err error) {
	detail := dto.HandleValidationError(err)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
