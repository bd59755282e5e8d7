package models

import "time"

// Account defines an account row from the 'accounts' table.
type Account struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Username     string    `json:"username" db:"username" example:"admin"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hashed password, excluded from JSON
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" example:"true"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
