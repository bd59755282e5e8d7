package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/services"
	"github.com/ozank/lectern/internal/middleware"
	"github.com/ozank/lectern/internal/pkg/validation"
)

// ProfileController handles the site owner's profile
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile returns the public profile
// @Summary Get profile
// @Description Returns the site owner's profile, creating a default one on first access
// @Tags profile
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.Profile} "The profile"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	profile, err := c.profileService.GetProfile(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}

// UpdateProfile replaces the profile fields
// @Summary Update profile
// @Description Writes the submitted profile fields to the singleton row
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := validation.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}

// UploadPhoto replaces the profile photo
// @Summary Upload profile photo
// @Description Accepts an image in the multipart field "photo" and replaces the stored photo
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Profile photo (jpeg or png)"
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "No file uploaded"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 415 {object} dto.ErrorResponse "Unsupported file type"
// @Router /profile/upload-photo [put]
func (c *ProfileController) UploadPhoto(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		fileHeader = nil
	}

	profile, err := c.profileService.UpdatePhoto(ctx.Request.Context(), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}
