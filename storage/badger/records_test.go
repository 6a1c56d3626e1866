package badger

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mataconnect/communitypipe/core"
	"github.com/mataconnect/communitypipe/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommunity(name string) *core.Community {
	return &core.Community{
		Name:    name,
		Website: "https://" + name + ".example.org",
		Tags:    []string{"Community"},
	}
}

func TestExists_EmptyStore(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	found, err := store.Exists(ctx, "https://nowhere.example.org")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExists_EmptyURL(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	_, err = store.Exists(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrEmptyURL)
}

func TestUpsert_ThenExists(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	url := "https://femgineers.example.org"

	record, err := store.Upsert(ctx, url, testCommunity("femgineers"))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, url, record.URL)
	assert.NotEmpty(t, record.Payload)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)

	found, err := store.Exists(ctx, url)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestExists_VerbatimKeyOnly(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	_, err = store.Upsert(ctx, "https://femgineers.example.org", testCommunity("femgineers"))
	require.NoError(t, err)

	// Key matching is exact; no normalization of scheme or trailing slash
	for _, variant := range []string{
		"http://femgineers.example.org",
		"https://femgineers.example.org/",
		"https://www.femgineers.example.org",
	} {
		found, err := store.Exists(ctx, variant)
		require.NoError(t, err)
		assert.False(t, found, "variant %q should not match", variant)
	}
}

func TestUpsert_PreservesCreatedAt(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	url := "https://femgineers.example.org"

	first, err := store.Upsert(ctx, url, testCommunity("femgineers"))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	second, err := store.Upsert(ctx, url, testCommunity("femgineers-updated"))
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	// Only one record remains and it carries the new payload
	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	community, err := store.Get(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "femgineers-updated", community.Name)
}

func TestGet_RoundTrip(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	url := "https://codefirstgirls.example.org"

	city := "London"
	original := testCommunity("codefirstgirls")
	original.City = &city
	original.Language = []string{"English"}

	_, err = store.Upsert(ctx, url, original)
	require.NoError(t, err)

	parsed, err := store.Get(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, original.Name, parsed.Name)
	assert.Equal(t, "London", *parsed.City)
	assert.Equal(t, []string{"English"}, parsed.Language)
}

func TestGet_NotFound(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	_, err = store.Get(context.Background(), "https://missing.example.org")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListAll_Empty(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListAll_ReturnsEveryRecord(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	urls := []string{
		"https://a.example.org",
		"https://b.example.org",
		"https://c.example.org",
	}
	for _, url := range urls {
		_, err := store.Upsert(ctx, url, testCommunity("test"))
		require.NoError(t, err)
	}

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	seen := make(map[string]bool)
	for _, record := range all {
		seen[record.URL] = true
		assert.NotEmpty(t, record.Payload)
	}
	for _, url := range urls {
		assert.True(t, seen[url])
	}
}

func TestListAll_SkipsUndecodableEnvelope(t *testing.T) {
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	_, err = store.Upsert(ctx, "https://healthy.example.org", testCommunity("healthy"))
	require.NoError(t, err)
	_, err = store.Upsert(ctx, "https://intact.example.org", testCommunity("intact"))
	require.NoError(t, err)

	// Plant a value that is not a record envelope under a record key
	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRecordKey("https://corrupt.example.org"), []byte("not an envelope")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	// The scan skips the corrupt row and still returns every healthy one
	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	urls := make(map[string]bool)
	for _, record := range all {
		urls[record.URL] = true
	}
	assert.True(t, urls["https://healthy.example.org"])
	assert.True(t, urls["https://intact.example.org"])
	assert.False(t, urls["https://corrupt.example.org"])
}

func TestNewRecordStore_FileSystem(t *testing.T) {
	store, err := NewRecordStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.Upsert(ctx, "https://persisted.example.org", testCommunity("persisted"))
	require.NoError(t, err)

	require.NoError(t, store.Close())
}

func TestMakeRecordKey(t *testing.T) {
	key := makeRecordKey("https://test.example.org")
	assert.Equal(t, "comrec:https://test.example.org", string(key))
	assert.Equal(t, "https://test.example.org", recordKeyURL(key))
}
