package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/services"
	"github.com/ozank/lectern/internal/middleware"
	"github.com/ozank/lectern/internal/pkg/validation"
)

// PublicationController handles publication operations
type PublicationController struct {
	publicationService services.PublicationService
}

// NewPublicationController creates a new PublicationController
func NewPublicationController(publicationService services.PublicationService) *PublicationController {
	return &PublicationController{publicationService: publicationService}
}

// GetAllPublications lists every publication
// @Summary List publications
// @Tags publications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Publication} "Publications, most recent year first"
// @Router /publications [get]
func (c *PublicationController) GetAllPublications(ctx *gin.Context) {
	publications, err := c.publicationService.GetAllPublications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: publications})
}

// GetPublicationByID returns one publication
// @Summary Get publication
// @Tags publications
// @Produce json
// @Param id path int true "Publication ID"
// @Success 200 {object} dto.APIResponse{data=models.Publication} "The publication"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id} [get]
func (c *PublicationController) GetPublicationByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	publication, err := c.publicationService.GetPublicationByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: publication})
}

// CreatePublication inserts a publication with an optional PDF
// @Summary Create publication
// @Description Multipart request: JSON metadata in the field "data", optional PDF in the field "pdf"
// @Tags publications
// @Accept multipart/form-data
// @Produce json
// @Param data formData string true "Publication metadata as JSON"
// @Param pdf formData file false "Publication PDF"
// @Success 201 {object} dto.APIResponse{data=models.Publication} "Created publication"
// @Failure 400 {object} dto.ErrorResponse "Invalid metadata"
// @Router /publications [post]
func (c *PublicationController) CreatePublication(ctx *gin.Context) {
	var req dto.CreatePublicationRequest
	if !bindMultipartData(ctx, &req) {
		return
	}

	pdfHeader, err := ctx.FormFile("pdf")
	if err != nil {
		pdfHeader = nil
	}

	publication, err := c.publicationService.CreatePublication(ctx.Request.Context(), &req, pdfHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: publication})
}

// UpdatePublication replaces a publication's fields and author list
// @Summary Update publication
// @Tags publications
// @Accept json
// @Produce json
// @Param id path int true "Publication ID"
// @Param request body dto.UpdatePublicationRequest true "Publication fields"
// @Success 200 {object} dto.APIResponse{data=models.Publication} "Updated publication"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id} [put]
func (c *PublicationController) UpdatePublication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePublicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid publication data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := validation.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	publication, err := c.publicationService.UpdatePublication(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: publication})
}

// UploadPdf attaches or replaces the publication PDF
// @Summary Upload publication PDF
// @Tags publications
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Publication ID"
// @Param pdf formData file true "Publication PDF"
// @Success 200 {object} dto.APIResponse{data=models.Publication} "Updated publication"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Failure 415 {object} dto.ErrorResponse "Unsupported file type"
// @Router /publications/{id}/pdf [put]
func (c *PublicationController) UploadPdf(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	pdfHeader, err := ctx.FormFile("pdf")
	if err != nil {
		pdfHeader = nil
	}

	publication, err := c.publicationService.UploadPdf(ctx.Request.Context(), id, pdfHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: publication})
}

// DownloadPdf streams the stored PDF
// @Summary Download publication PDF
// @Tags publications
// @Produce octet-stream
// @Param id path int true "Publication ID"
// @Success 200 {file} binary "The PDF"
// @Failure 404 {object} dto.ErrorResponse "Publication or PDF not found"
// @Failure 502 {object} dto.ErrorResponse "Media host unavailable"
// @Router /publications/{id}/download [get]
func (c *PublicationController) DownloadPdf(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	download, err := c.publicationService.DownloadPdf(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer download.Object.Body.Close()

	streamDownload(ctx, download)
}

// DeletePublication removes a publication
// @Summary Delete publication
// @Description Responds 204 even when the publication is already gone
// @Tags publications
// @Param id path int true "Publication ID"
// @Success 204 "Publication deleted"
// @Router /publications/{id} [delete]
func (c *PublicationController) DeletePublication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.publicationService.DeletePublication(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// bindMultipartData decodes the JSON carried in the multipart field "data"
// and validates it. On failure it writes the 400 response and reports false.
func bindMultipartData(ctx *gin.Context, target interface{}) bool {
	raw := ctx.PostForm("data")
	if raw == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing metadata")
		errorDetail = errorDetail.WithDetails("The multipart field \"data\" must carry the JSON metadata")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Malformed metadata")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	if err := validation.Struct(target); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
