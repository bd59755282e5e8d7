package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/services"
	"github.com/ozank/lectern/internal/middleware"
	"github.com/ozank/lectern/internal/pkg/validation"
)

// TalkController handles talk/event operations
type TalkController struct {
	talkService services.TalkService
}

// NewTalkController creates a new TalkController
func NewTalkController(talkService services.TalkService) *TalkController {
	return &TalkController{talkService: talkService}
}

// GetAllTalks lists every talk
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Talk} "Talks in chronological order"
// @Router /events [get]
func (c *TalkController) GetAllTalks(ctx *gin.Context) {
	talks, err := c.talkService.GetAllTalks(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: talks})
}

// GetTalkByID returns one talk
// @Summary Get event
// @Tags events
// @Produce json
// @Param id path int true "Talk ID"
// @Success 200 {object} dto.APIResponse{data=models.Talk} "The talk"
// @Failure 404 {object} dto.ErrorResponse "Talk not found"
// @Router /events/{id} [get]
func (c *TalkController) GetTalkByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	talk, err := c.talkService.GetTalkByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: talk})
}

// CreateTalk inserts a talk with an optional flyer
// @Summary Create event
// @Description Multipart request: JSON metadata in the field "data", optional flyer image in the field "flyer"
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param data formData string true "Talk metadata as JSON"
// @Param flyer formData file false "Flyer image"
// @Success 201 {object} dto.APIResponse{data=models.Talk} "Created talk"
// @Failure 400 {object} dto.ErrorResponse "Invalid metadata"
// @Router /events [post]
func (c *TalkController) CreateTalk(ctx *gin.Context) {
	var req dto.CreateTalkRequest
	if !bindMultipartData(ctx, &req) {
		return
	}

	flyerHeader, err := ctx.FormFile("flyer")
	if err != nil {
		flyerHeader = nil
	}

	talk, err := c.talkService.CreateTalk(ctx.Request.Context(), &req, flyerHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: talk})
}

// UpdateTalk replaces a talk's fields
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Talk ID"
// @Param request body dto.UpdateTalkRequest true "Talk fields"
// @Success 200 {object} dto.APIResponse{data=models.Talk} "Updated talk"
// @Failure 404 {object} dto.ErrorResponse "Talk not found"
// @Router /events/{id} [put]
func (c *TalkController) UpdateTalk(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTalkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid talk data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := validation.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	talk, err := c.talkService.UpdateTalk(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: talk})
}

// UploadFlyer attaches or replaces the talk flyer
// @Summary Upload event flyer
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Talk ID"
// @Param flyer formData file true "Flyer image"
// @Success 200 {object} dto.APIResponse{data=models.Talk} "Updated talk"
// @Failure 404 {object} dto.ErrorResponse "Talk not found"
// @Failure 415 {object} dto.ErrorResponse "Unsupported file type"
// @Router /events/{id}/flyer [put]
func (c *TalkController) UploadFlyer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	flyerHeader, err := ctx.FormFile("flyer")
	if err != nil {
		flyerHeader = nil
	}

	talk, err := c.talkService.UploadFlyer(ctx.Request.Context(), id, flyerHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: talk})
}

// DeleteTalk removes a talk
// @Summary Delete event
// @Description Responds 204 even when the talk is already gone
// @Tags events
// @Param id path int true "Talk ID"
// @Success 204 "Talk deleted"
// @Router /events/{id} [delete]
func (c *TalkController) DeleteTalk(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.talkService.DeleteTalk(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
