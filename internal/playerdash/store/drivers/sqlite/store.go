// Package sqlite is the database-backed store.Users binding. It keeps the
// same load-all/save-all contract as the flat-file driver; SaveAll replaces
// the table contents in one transaction. The position column preserves
// registration order across reloads.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pixelforge/playerdash/internal/playerdash/domain"
	"github.com/pixelforge/playerdash/internal/playerdash/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) LoadAll(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, password_hash FROM users ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Username, &u.PasswordHash); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) SaveAll(ctx context.Context, records []domain.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return err
	}
	for i, u := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, password_hash, position) VALUES (?, ?, ?)`,
			u.Username, u.PasswordHash, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password_hash FROM users WHERE username = ?`, username,
	).Scan(&u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, store.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
