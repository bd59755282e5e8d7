package models

import "time"

// Profile is the site owner's public profile. The table holds at most one
// row: reads create a default row lazily and updates target the first row.
type Profile struct {
	ID          int64     `json:"id" db:"id"`
	DisplayName string    `json:"displayName" db:"display_name" example:"Dr. Jane Roe"`
	Title       string    `json:"title" db:"title" example:"Professor of Mathematics"`
	Biography   string    `json:"biography" db:"biography"`
	PhotoURL    *string   `json:"photoUrl,omitempty" db:"photo_url"` // Media host reference (nullable)
	Contact     Contact   `json:"contact"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Contact is the profile's contact sub-record. Email is required; the rest
// is optional.
type Contact struct {
	Email  string  `json:"email" db:"contact_email" example:"jane.roe@university.edu"`
	Phone  *string `json:"phone,omitempty" db:"contact_phone"`
	Office *string `json:"office,omitempty" db:"contact_office"`
}
