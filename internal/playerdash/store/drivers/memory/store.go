// Package memory is an in-memory store.Users implementation for tests.
package memory

import (
	"context"
	"sync"

	"github.com/pixelforge/playerdash/internal/playerdash/domain"
	"github.com/pixelforge/playerdash/internal/playerdash/store"
)

type Store struct {
	mu    sync.RWMutex
	users []domain.User

	// SaveErr, when set, makes SaveAll fail. Lets tests exercise the
	// persistence-failure path.
	SaveErr error
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadAll(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Store) SaveAll(ctx context.Context, records []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}

	s.users = make([]domain.User, len(records))
	copy(s.users, records)
	return nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }
