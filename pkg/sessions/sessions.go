// Package sessions implements signed-cookie browser sessions. The session
// token is an HS256 JWT carrying the authenticated username, so the server
// keeps no per-session state and the platform's signature check guarantees
// cookie integrity.
package sessions

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultTTL is the default session lifetime.
	DefaultTTL = 24 * time.Hour

	sessionCookie = "playerdash_session"
)

var (
	ErrNoSession      = errors.New("sessions: no active session")
	ErrInvalidSession = errors.New("sessions: invalid or expired session token")
)

// Claims are the session-token claims. Subject holds the username.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and verifies signed session cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager creates a Manager signing with secret. TTL falls back to
// DefaultTTL when zero. secure controls the cookie Secure flag and should be
// true whenever the service is served over HTTPS.
func NewManager(secret []byte, ttl time.Duration, secure bool) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: secret, ttl: ttl, secure: secure}
}

// Issue signs a new session token for username and sets it as a cookie.
func (m *Manager) Issue(w http.ResponseWriter, username string) error {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current returns the username bound to the request's session cookie.
// It returns ErrNoSession when no cookie is present and ErrInvalidSession
// when the token fails signature or expiry checks.
func (m *Manager) Current(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", ErrNoSession
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(cookie.Value, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}

	return claims.Subject, nil
}

// Clear expires the session cookie. Clearing an absent session is a no-op,
// so logout stays idempotent.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
