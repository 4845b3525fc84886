// Package jsonfile persists users as a flat JSON file of the shape
// {"users": [{"username": ..., "password_hash": ...}, ...]}. Every read
// loads the file fresh and every mutation rewrites it whole; the dataset is
// assumed small enough that this stays cheap.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pixelforge/playerdash/internal/playerdash/domain"
	"github.com/pixelforge/playerdash/internal/playerdash/store"
)

type usersFile struct {
	Users []domain.User `json:"users"`
}

type Store struct {
	path   string
	logger *slog.Logger
}

func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: filepath.Clean(path), logger: logger}
}

// LoadAll reads the whole users file. A missing file means no users yet. A
// file that exists but does not parse is logged and treated as empty rather
// than propagated, so a corrupted store behaves as "no users registered".
func (s *Store) LoadAll(ctx context.Context) ([]domain.User, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.User{}, nil
		}
		s.logger.Error("failed to read users file", "path", s.path, "err", err)
		return []domain.User{}, nil
	}

	var f usersFile
	if err := json.Unmarshal(raw, &f); err != nil {
		s.logger.Error("failed to decode users file", "path", s.path, "err", err)
		return []domain.User{}, nil
	}

	if f.Users == nil {
		return []domain.User{}, nil
	}
	return f.Users, nil
}

// SaveAll overwrites the users file with records. The write goes through a
// temp file and rename so a crash mid-write cannot leave a torn file behind.
func (s *Store) SaveAll(ctx context.Context, records []domain.User) error {
	if records == nil {
		records = []domain.User{}
	}

	raw, err := json.MarshalIndent(usersFile{Users: records}, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode users file", "err", err)
		return fmt.Errorf("jsonfile: encode users: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		s.logger.Error("failed to write users file", "path", s.path, "err", err)
		return fmt.Errorf("jsonfile: write users: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("failed to replace users file", "path", s.path, "err", err)
		return fmt.Errorf("jsonfile: replace users: %w", err)
	}
	return nil
}

// FindByUsername loads the full store and scans for an exact match. O(n) per
// lookup, acceptable while the dataset stays small.
func (s *Store) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	users, err := s.LoadAll(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

// Ping verifies the directory holding the users file is accessible.
func (s *Store) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

func (s *Store) Close() error { return nil }
