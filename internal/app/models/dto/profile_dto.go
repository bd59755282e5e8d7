package dto

// ContactRequest is the nested contact sub-record of a profile update.
type ContactRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Office *string `json:"office,omitempty" validate:"omitempty,max=128"`
}

// UpdateProfileRequest is the insertable shape of the profile singleton.
// The photo reference is managed by the upload endpoint, not here.
type UpdateProfileRequest struct {
	DisplayName string         `json:"displayName" validate:"required,min=2,max=128"`
	Title       string         `json:"title" validate:"required,min=2,max=128"`
	Biography   string         `json:"biography" validate:"max=8192"`
	Contact     ContactRequest `json:"contact" validate:"required"`
}
