package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/app/services"
	"github.com/ozank/lectern/internal/middleware"
	"github.com/ozank/lectern/internal/pkg/validation"
)

// MaterialController handles course material operations
type MaterialController struct {
	materialService services.MaterialService
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(materialService services.MaterialService) *MaterialController {
	return &MaterialController{materialService: materialService}
}

// GetCourseMaterials lists the materials of a course
// @Summary List course materials
// @Tags materials
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseMaterial} "Materials, newest first"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/materials [get]
func (c *MaterialController) GetCourseMaterials(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	materials, err := c.materialService.GetCourseMaterials(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: materials})
}

// CreateMaterial uploads a file and records it against a course
// @Summary Upload course material
// @Description Form fields title/type/dueDate plus the file in the multipart field "file"
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Course ID"
// @Param title formData string true "Material title"
// @Param type formData string true "notes, tutorial or assignment"
// @Param dueDate formData string false "Assignment deadline (YYYY-MM-DD)"
// @Param file formData file true "The material file"
// @Success 201 {object} dto.APIResponse{data=models.CourseMaterial} "Created material"
// @Failure 400 {object} dto.ErrorResponse "Invalid metadata or no file"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 415 {object} dto.ErrorResponse "Unsupported file type"
// @Router /courses/{id}/materials/upload [post]
func (c *MaterialController) CreateMaterial(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateMaterialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid material data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if err := validation.Struct(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		fileHeader = nil
	}

	material, err := c.materialService.CreateMaterial(ctx.Request.Context(), courseID, &req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: material})
}

// DownloadMaterial streams the stored file
// @Summary Download material
// @Description Proxies the file from the media host with a Content-Disposition attachment header
// @Tags materials
// @Produce octet-stream
// @Param id path int true "Material ID"
// @Success 200 {file} binary "The file"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 502 {object} dto.ErrorResponse "Media host unavailable"
// @Router /materials/{id}/download [get]
func (c *MaterialController) DownloadMaterial(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	download, err := c.materialService.DownloadMaterial(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer download.Object.Body.Close()

	streamDownload(ctx, download)
}

// DeleteMaterial removes a material and its stored file
// @Summary Delete material
// @Description Responds 204 even when the material is already gone
// @Tags materials
// @Param id path int true "Material ID"
// @Success 204 "Material deleted"
// @Router /materials/{id} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.materialService.DeleteMaterial(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// streamDownload writes a proxied media object as an attachment.
func streamDownload(ctx *gin.Context, download *services.FileDownload) {
	contentType := download.Object.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", download.Filename),
	}
	ctx.DataFromReader(http.StatusOK, download.Object.Size, contentType, download.Object.Body, extraHeaders)
}
