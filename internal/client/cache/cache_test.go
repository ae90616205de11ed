package cache

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *SQLiteCache {
	t.Helper()
	c, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSetAndGet(t *testing.T) {
	c := openMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, KeyAccessToken, []byte("tok")))

	v, err := c.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), v)
}

func TestGet_Missing(t *testing.T) {
	c := openMemory(t)

	v, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	c := openMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("old")))
	require.NoError(t, c.Set(ctx, "k", []byte("new")))

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestDeleteListClear(t *testing.T) {
	c := openMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Set(ctx, "b", []byte("2")))
	require.NoError(t, c.Delete(ctx, "a"))

	all, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"b": []byte("2")}, all)

	require.NoError(t, c.Clear(ctx))
	all, err = c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	c, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, KeyAdminKey, []byte("secret")))
	require.NoError(t, c.Close())

	c, err = Open(ctx, path)
	require.NoError(t, err)
	defer c.Close()

	v, err := c.Get(ctx, KeyAdminKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), v)
}

func TestOpen_MigrationError(t *testing.T) {
	orig := migrate
	t.Cleanup(func() { migrate = orig })
	migrate = func(context.Context, *sql.DB) error { return errors.New("boom") }

	_, err := Open(context.Background(), ":memory:")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache migration error")
}
