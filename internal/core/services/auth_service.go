package services

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/votingapp/api/internal/core/domain"
	"github.com/votingapp/api/internal/core/ports"
)

type authService struct {
	password     []byte
	sessionStore ports.SessionStore
	sessionTTL   time.Duration
}

func NewAuthService(password string, sessionStore ports.SessionStore, sessionTTL time.Duration) ports.AuthService {
	return &authService{
		password:     []byte(password),
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Login checks the supplied password against the shared secret and, on match,
// creates an authenticated session. The comparison is constant-time.
func (s *authService) Login(password string) (domain.Session, error) {
	if !hmac.Equal([]byte(password), s.password) {
		return domain.Session{}, domain.ErrNotAuthorized
	}

	now := time.Now()
	session := domain.Session{
		ID:            uuid.New(),
		Authenticated: true,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.sessionTTL),
	}

	if err := s.sessionStore.Create(session); err != nil {
		return domain.Session{}, fmt.Errorf("creating session: %w", err)
	}

	return session, nil
}

func (s *authService) Authenticated(id uuid.UUID) bool {
	session, err := s.sessionStore.Get(id)
	if err != nil {
		return false
	}
	return session.Authenticated
}

func (s *authService) Logout(id uuid.UUID) error {
	err := s.sessionStore.Delete(id)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}
