package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/logger"
)

// HandleAPIError translates service errors into the standard error envelope.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, notFoundMessage(err)),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	case errors.Is(err, apperrors.ErrUsernameAlreadyTaken):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Username already taken"),
		})
	case errors.Is(err, apperrors.ErrNoFileUploaded):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "No file uploaded"),
		})
	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "File exceeds the size limit"),
		})
	case errors.Is(err, apperrors.ErrUnsupportedFileType):
		c.JSON(http.StatusUnsupportedMediaType, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "File type is not allowed"),
		})
	case errors.Is(err, apperrors.ErrMediaHostFailure):
		c.JSON(http.StatusBadGateway, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Media host is unavailable"),
		})
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, badRequestMessage(err)),
		})
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// notFoundMessage keeps the entity name in the response when the sentinel
// carries one.
func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return "Course not found"
	case errors.Is(err, apperrors.ErrMaterialNotFound):
		return "Material not found"
	case errors.Is(err, apperrors.ErrPublicationNotFound):
		return "Publication not found"
	case errors.Is(err, apperrors.ErrTalkNotFound):
		return "Talk not found"
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return "Account not found"
	default:
		return "Resource not found"
	}
}

// badRequestMessage surfaces a custom message when the error provides one.
func badRequestMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return "Validation failed"
}
