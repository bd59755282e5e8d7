package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared sentinel for a missing row. Entity-specific
// errors in apperrors wrap around it at the service layer.
var ErrNotFound = errors.New("record not found")

// Repositories aggregates all data access objects for dependency injection.
type Repositories struct {
	AccountRepository     *AccountRepository
	ProfileRepository     *ProfileRepository
	CourseRepository      *CourseRepository
	MaterialRepository    *MaterialRepository
	PublicationRepository *PublicationRepository
	TalkRepository        *TalkRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:     NewAccountRepository(db),
		ProfileRepository:     NewProfileRepository(db),
		CourseRepository:      NewCourseRepository(db),
		MaterialRepository:    NewMaterialRepository(db),
		PublicationRepository: NewPublicationRepository(db),
		TalkRepository:        NewTalkRepository(db),
	}
}
