package themestore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "nested", "themes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "u1", []byte("hello")))
	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	require.NoError(t, s.Delete(ctx, "u1"))
	_, err = s.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting a missing key is not an error in bbolt
	assert.NoError(t, s.Delete(ctx, "u1"))
}

func TestThemeStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ts := New(openTestStore(t))
	ts.Now = func() time.Time { return now }

	saved, err := ts.Save(ctx, "u1", Entry{
		Version:  42,
		Username: "sara",
		Active:   true,
		Theme:    json.RawMessage(`{"name":"Ocean"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, saved.Version)
	assert.Equal(t, now, saved.SavedAt)

	got, err := ts.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "sara", got.Username)
	assert.True(t, got.Active)
	assert.JSONEq(t, `{"name":"Ocean"}`, string(got.Theme))
	assert.True(t, now.Equal(got.SavedAt))
}

func TestThemeStoreDiscardsStaleEntries(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
	}{
		{"old version", `{"version":0,"username":"sara","active":true}`},
		{"future version", `{"version":99,"username":"sara"}`},
		{"corrupt", `{"version":1,`},
		{"not an object", `"custom-ai-theme"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			ts := New(s)
			require.NoError(t, s.Set(ctx, "u1", []byte(tt.raw)))

			_, err := ts.Load(ctx, "u1")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = s.Get(ctx, "u1")
			assert.ErrorIs(t, err, ErrNotFound, "stale entry should be removed")
		})
	}
}

func TestThemeStoreClearMissing(t *testing.T) {
	ts := New(openTestStore(t))
	assert.NoError(t, ts.Clear(context.Background(), "nobody"))
}
