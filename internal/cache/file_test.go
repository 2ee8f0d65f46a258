package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

func TestFileEntityCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileEntityCache(Config{Dir: t.TempDir(), Version: 1})
	require.NoError(t, err)

	key := Key("war movies from the 90s")

	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	rec := &entities.Entities{Genre: []string{"war"}, YearStart: entities.Int(1990), YearEnd: entities.Int(1999)}
	require.NoError(t, c.Set(ctx, key, rec))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.EntryCount)
	assert.Positive(t, stats.TotalSize)

	require.NoError(t, c.Delete(ctx, key))
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, key), "deleting a missing entry is not an error")
}

func TestFileEntityCache_VersionIsolation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	key := Key("heat")

	v1, err := NewFileEntityCache(Config{Dir: dir, Version: 1})
	require.NoError(t, err)
	require.NoError(t, v1.Set(ctx, key, &entities.Entities{Movie: []string{"Heat"}}))

	v2, err := NewFileEntityCache(Config{Dir: dir, Version: 2})
	require.NoError(t, err)
	_, err = v2.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestFileEntityCache_TTL(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileEntityCache(Config{Dir: t.TempDir(), Version: 1, TTL: time.Hour})
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	key := Key("alien")
	require.NoError(t, c.Set(ctx, key, &entities.Entities{Movie: []string{"Alien"}}))

	_, err = c.Get(ctx, key)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestFileEntityCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileEntityCache(Config{Dir: t.TempDir(), Version: 1})
	require.NoError(t, err)

	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, Key(q), &entities.Entities{Movie: []string{q}}))
	}
	assert.Equal(t, int64(3), c.Stats().EntryCount)

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, int64(0), c.Stats().EntryCount)

	require.NoError(t, c.Set(ctx, Key("d"), &entities.Entities{Movie: []string{"d"}}))
}
