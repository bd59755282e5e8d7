package dto

// CreateCourseRequest is the insertable shape of a course.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=255" example:"Calculus I"`
	Code        string `json:"code" validate:"required,min=2,max=32" example:"MTH101"`
	Description string `json:"description" validate:"max=4096"`
	Semester    string `json:"semester" validate:"required,max=32" example:"Fall"`
	Session     string `json:"session" validate:"required,max=32" example:"2024/2025"`
}

// UpdateCourseRequest carries a full replacement of the mutable fields.
type UpdateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=255"`
	Code        string `json:"code" validate:"required,min=2,max=32"`
	Description string `json:"description" validate:"max=4096"`
	Semester    string `json:"semester" validate:"required,max=32"`
	Session     string `json:"session" validate:"required,max=32"`
}
