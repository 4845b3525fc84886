package jsonfile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixelforge/playerdash/internal/playerdash/domain"
	"github.com/pixelforge/playerdash/internal/playerdash/store"
	"github.com/pixelforge/playerdash/internal/playerdash/store/drivers/jsonfile"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*jsonfile.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.json")
	return jsonfile.New(path, nil), path
}

func TestLoadAll_MissingFile(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)

	users, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestLoadAll_CorruptFile(t *testing.T) {
	t.Parallel()

	s, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	users, err := s.LoadAll(context.Background())
	require.NoError(t, err, "corrupt store must fail open to empty, not error")
	require.Empty(t, users)
}

func TestSaveAllLoadAll_RoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)
	ctx := context.Background()

	records := []domain.User{
		{Username: "ann", PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{Username: "bob", PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdB$aGFzaB"},
	}
	require.NoError(t, s.SaveAll(ctx, records))

	loaded, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, records, loaded, "insertion order must be preserved")

	// saveAll(loadAll()) is a no-op on contents.
	require.NoError(t, s.SaveAll(ctx, loaded))
	again, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, records, again)
}

func TestSaveAll_WireFormat(t *testing.T) {
	t.Parallel()

	s, path := newStore(t)
	require.NoError(t, s.SaveAll(context.Background(), []domain.User{
		{Username: "ann", PasswordHash: "hash"},
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// The on-disk shape is a compatibility contract.
	var decoded map[string][]map[string]string
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded["users"], 1)
	require.Equal(t, "ann", decoded["users"][0]["username"])
	require.Equal(t, "hash", decoded["users"][0]["password_hash"])
}

func TestSaveAll_NilBecomesEmptyList(t *testing.T) {
	t.Parallel()

	s, path := newStore(t)
	require.NoError(t, s.SaveAll(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"users": []}`, string(raw))
}

func TestSaveAll_UnwritablePathPropagates(t *testing.T) {
	t.Parallel()

	s := jsonfile.New(filepath.Join(t.TempDir(), "missing-dir", "users.json"), nil)

	err := s.SaveAll(context.Background(), []domain.User{{Username: "ann"}})
	require.Error(t, err, "persistence failures must be reported to the caller")
}

func TestFindByUsername(t *testing.T) {
	t.Parallel()

	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAll(ctx, []domain.User{
		{Username: "ann", PasswordHash: "h1"},
		{Username: "Bob", PasswordHash: "h2"},
	}))

	u, err := s.FindByUsername(ctx, "ann")
	require.NoError(t, err)
	require.Equal(t, "h1", u.PasswordHash)

	// Exact case-sensitive match only.
	_, err = s.FindByUsername(ctx, "bob")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}
