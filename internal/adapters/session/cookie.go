package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const cookieName = "votingapp_session"

// CookieManager reads and writes the session cookie. The cookie value is the
// session ID plus an HMAC-SHA256 signature over it, so a client cannot forge
// or swap IDs without the signing secret. Session state itself stays server
// side.
type CookieManager struct {
	secret []byte
}

func NewCookieManager(secret string) *CookieManager {
	return &CookieManager{secret: []byte(secret)}
}

func (m *CookieManager) sign(id string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(id))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// Set attaches a signed session cookie to the response.
func (m *CookieManager) Set(w http.ResponseWriter, id uuid.UUID) {
	value := id.String() + "." + m.sign(id.String())
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie on the client.
func (m *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Read extracts and verifies the session ID from the request cookie. Missing,
// malformed, or tampered cookies all read as no session.
func (m *CookieManager) Read(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return uuid.Nil, false
	}

	id, sig, found := strings.Cut(cookie.Value, ".")
	if !found {
		return uuid.Nil, false
	}

	if !hmac.Equal([]byte(sig), []byte(m.sign(id))) {
		return uuid.Nil, false
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}

	return parsed, true
}
