package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	source string
	body   string
	err    error
	calls  int
}

func (s *stubFetcher) Source() string { return s.source }

func (s *stubFetcher) Fetch(ctx context.Context) (string, error) {
	s.calls++
	return s.body, s.err
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_PutGet(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	_, ok, err := store.Get("https://example.com/")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put("https://example.com/", "<R/>"))

	entry, ok, err := store.Get("https://example.com/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<R/>", entry.Body)
	assert.True(t, entry.FetchedAt.Equal(fixed))

	sources, err := store.Sources()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/"}, sources)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("s3://b/", "<A/>"))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	entry, ok, err := store.Get("s3://b/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<A/>", entry.Body)
}

func TestFetcher_OnlineStoresDocument(t *testing.T) {
	store := openTestStore(t)
	next := &stubFetcher{source: "s3://bucket/", body: "<ListBucketResult/>"}

	f := NewFetcher(next, store, false)
	assert.Equal(t, "s3://bucket/", f.Source())

	body, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<ListBucketResult/>", body)

	entry, ok, err := store.Get("s3://bucket/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "<ListBucketResult/>", entry.Body)
}

func TestFetcher_OnlineErrorNotStored(t *testing.T) {
	store := openTestStore(t)
	next := &stubFetcher{source: "s3://bucket/", err: errors.New("boom")}

	_, err := NewFetcher(next, store, false).Fetch(context.Background())
	require.Error(t, err)

	_, ok, err := store.Get("s3://bucket/")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetcher_Offline(t *testing.T) {
	store := openTestStore(t)
	next := &stubFetcher{source: "s3://bucket/", body: "fresh"}
	f := NewFetcher(next, store, true)

	_, err := f.Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrNotCached))

	require.NoError(t, store.Put("s3://bucket/", "cached"))
	body, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", body)
	assert.Equal(t, 0, next.calls)
}
