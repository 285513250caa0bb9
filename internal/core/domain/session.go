package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind a dashboard login. It carries a
// single authenticated flag; there is no per-user identity in this system.
type Session struct {
	ID            uuid.UUID `json:"id"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
