package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pixelforge/playerdash/internal/playerdash/domain"
	"github.com/pixelforge/playerdash/internal/playerdash/store"
	"github.com/pixelforge/playerdash/pkg/cryptox"
	"github.com/pixelforge/playerdash/pkg/slogx"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var (
	// Validation failures: recoverable, each surfaced with a specific message.
	ErrMissingFields    = errors.New("missing username or password")
	ErrUsernameTooShort = errors.New("username too short")
	ErrPasswordTooShort = errors.New("password too short")
	ErrUsernameTaken    = errors.New("username already exists")

	// ErrInvalidCredentials covers both unknown-user and wrong-password so
	// responses cannot be used to enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Identity is the authenticated username bound to a client for a session.
type Identity struct {
	Username string
}

// AuthService implements registration and login on top of a store.Users.
type AuthService struct {
	Store store.Users

	// mu serializes the check-then-append-then-persist sequence in Register.
	// Without it two concurrent registrations could interleave their
	// load/append/save and silently drop a user.
	mu sync.Mutex
}

// Register validates the pair, hashes the password, appends the new record
// and persists the full store. Checks run in order and the first failure
// wins. A persistence failure is returned to the caller; the user was NOT
// durably created in that case.
func (s *AuthService) Register(ctx context.Context, username, password string) (Identity, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Identity{}, ErrMissingFields
	}
	if utf8.RuneCountInString(username) < minUsernameLen {
		return Identity{}, ErrUsernameTooShort
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return Identity{}, ErrPasswordTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.Store.FindByUsername(ctx, username)
	if err == nil {
		return Identity{}, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return Identity{}, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", "err", err)
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	users, err := s.Store.LoadAll(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("load users: %w", err)
	}
	users = append(users, domain.User{Username: username, PasswordHash: hash})

	if err := s.Store.SaveAll(ctx, users); err != nil {
		log.Error("failed to persist new user", "username", username, "err", err)
		return Identity{}, fmt.Errorf("persist users: %w", err)
	}

	log.Info("user registered", "username", username)
	return Identity{Username: username}, nil
}

// Login verifies the pair against the stored hash. Unknown usernames and
// wrong passwords both come back as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (Identity, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Identity{}, ErrMissingFields
	}

	user, err := s.Store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("lookup username: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			// Stored hash is malformed. Still answer with the generic
			// failure, but leave a trail for the operator.
			log.Error("stored password hash is malformed", "username", username, "err", err)
		}
		return Identity{}, ErrInvalidCredentials
	}

	log.Info("user logged in", "username", username)
	return Identity{Username: user.Username}, nil
}
