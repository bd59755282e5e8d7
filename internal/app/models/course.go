package models

import "time"

// Course represents a taught course shown on the teaching page.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" example:"Calculus I"`
	Code        string    `json:"code" db:"code" example:"MTH101"`
	Description string    `json:"description" db:"description"`
	Semester    string    `json:"semester" db:"semester" example:"Fall"`
	Session     string    `json:"session" db:"session_label" example:"2024/2025"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
