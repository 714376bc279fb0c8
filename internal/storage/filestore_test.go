package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kenziemed/medclient/internal/logging"
	"github.com/kenziemed/medclient/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path, logging.NewSafeLogger(zap.NewNop()))
	require.NoError(t, err)

	return store
}

func testRecord() *Record {
	return &Record{
		User: models.User{
			ID:    7,
			Name:  "Maria da Silva Souza",
			Email: "maria@example.com",
			CPF:   "52998224725",
		},
		UserID: "7",
		Token:  "opaque-token",
	}
}

func TestFileStore_ReadMissing(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.Read(context.Background())
	assert.True(t, errors.Is(err, models.ErrSessionNotFound))
}

func TestFileStore_WriteRead(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, testRecord()))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", got.Token)
	assert.Equal(t, "7", got.UserID)
	assert.Equal(t, "maria@example.com", got.User.Email)
}

func TestFileStore_ReadCorrupt(t *testing.T) {
	store := newTestFileStore(t)

	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, err := store.Read(context.Background())
	assert.True(t, errors.Is(err, models.ErrCorruptSession))
}

func TestFileStore_ReadTokenless(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	// A record without a token is not a session
	require.NoError(t, store.Write(ctx, &Record{UserID: "7"}))

	_, err := store.Read(ctx)
	assert.True(t, errors.Is(err, models.ErrSessionNotFound))
}

func TestFileStore_Clear(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, testRecord()))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Read(ctx)
	assert.True(t, errors.Is(err, models.ErrSessionNotFound))

	// Clearing an already-empty store is fine
	assert.NoError(t, store.Clear(ctx))
}

func TestFileStore_WriteReplacesPrevious(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, testRecord()))

	updated := testRecord()
	updated.Token = "new-token"
	require.NoError(t, store.Write(ctx, updated))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-token", got.Token)
}

func TestFileStore_FilePermissions(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, testRecord()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
