package dto

// CreateMaterialRequest is the metadata half of a material upload; the file
// itself arrives as the multipart part named "file". DueDate is meaningful
// only for the assignment type and is ignored otherwise.
type CreateMaterialRequest struct {
	Title   string `form:"title" validate:"required,min=2,max=255"`
	Type    string `form:"type" validate:"required,oneof=notes tutorial assignment"`
	DueDate string `form:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}
