package models

import "time"

// MaterialType is the closed set of course material kinds.
type MaterialType string

const (
	MaterialNotes      MaterialType = "notes"
	MaterialTutorial   MaterialType = "tutorial"
	MaterialAssignment MaterialType = "assignment"
)

// CourseMaterial is a file attached to a course. The course reference is an
// application-level invariant only; deleting a course leaves its materials
// in place (retrievable by id, unreachable through the course listing).
type CourseMaterial struct {
	ID         int64        `json:"id" db:"id"`
	CourseID   int64        `json:"courseId" db:"course_id"`
	Title      string       `json:"title" db:"title" example:"Week 5 Lecture Notes"`
	Type       MaterialType `json:"type" db:"material_type" example:"notes"`
	FileURL    string       `json:"fileUrl" db:"file_url"`
	UploadedAt time.Time    `json:"uploadedAt" db:"uploaded_at"`
	DueAt      *time.Time   `json:"dueAt,omitempty" db:"due_at"` // Assignment submission deadline (nullable)
}
