package dto

// RegisterRequest is the payload for creating a new account. Accounts
// created through registration are never administrators.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest is the credential pair for session establishment.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateCredentialsRequest rotates the admin credentials. The current
// password must re-validate before any change is applied; username and
// password are each optional but at least one must be present.
type UpdateCredentialsRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewUsername     string `json:"newUsername" validate:"omitempty,min=3,max=64"`
	NewPassword     string `json:"newPassword" validate:"omitempty,min=6,max=128"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"admin"`
	IsAdmin  bool   `json:"isAdmin" example:"true"`
}
