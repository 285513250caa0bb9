package ports

import (
	"github.com/google/uuid"
	"github.com/votingapp/api/internal/core/domain"
)

type SessionStore interface {
	Create(session domain.Session) error
	Get(id uuid.UUID) (domain.Session, error)
	Delete(id uuid.UUID) error
}

// AuthService gates the dashboard behind a single shared password.
type AuthService interface {
	Login(password string) (domain.Session, error)
	Authenticated(id uuid.UUID) bool
	Logout(id uuid.UUID) error
}
