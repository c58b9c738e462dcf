package recorder

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/restcheck/rest-api-tests/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	store, err := Open(filepath.Join(t.TempDir(), "calls.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func fakeRecord(method, url string, status int) apiclient.RequestRecord {
	return apiclient.RequestRecord{
		StartedAt:       time.Now(),
		Method:          method,
		URL:             url,
		RequestHeaders:  http.Header{"Accept": {"application/json"}},
		Status:          status,
		ResponseHeaders: http.Header{"Content-Type": {"application/json"}},
		ResponseBody:    []byte(`{}`),
		ElapsedMS:       12.5,
	}
}

func TestEntriesAreListedMostRecentFirst(t *testing.T) {
	store := openTestStore(t)

	store.Record(fakeRecord("GET", "https://example.test/posts", 200))
	store.Record(fakeRecord("POST", "https://example.test/posts", 201))
	store.Record(fakeRecord("DELETE", "https://example.test/posts/1", 200))

	entries, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "DELETE", entries[0].Method)
	assert.Equal(t, "POST", entries[1].Method)
	assert.Equal(t, "GET", entries[2].Method)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestListHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		store.Record(fakeRecord("GET", "https://example.test/posts", 200))
	}

	entries, err := store.List(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEntriesShareARunIDAndHaveUniqueIDs(t *testing.T) {
	store := openTestStore(t)
	store.Record(fakeRecord("GET", "https://example.test/a", 200))
	store.Record(fakeRecord("GET", "https://example.test/b", 200))

	entries, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEmpty(t, store.RunID())
	assert.Equal(t, store.RunID(), entries[0].RunID)
	assert.Equal(t, store.RunID(), entries[1].RunID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestGetByID(t *testing.T) {
	store := openTestStore(t)
	store.Record(fakeRecord("PATCH", "https://example.test/posts/1", 200))

	entries, err := store.List(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	found, err := store.Get(entries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "PATCH", found.Method)
	assert.Equal(t, 12.5, found.ElapsedMS)

	_, err = store.Get("no-such-id")
	assert.Error(t, err)
}

func TestTransportFailuresAreRecordedWithErrorText(t *testing.T) {
	store := openTestStore(t)
	rec := fakeRecord("GET", "https://example.test/posts", 0)
	rec.Error = "connection refused"
	store.Record(rec)

	entries, err := store.List(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "connection refused", entries[0].Error)
	assert.Zero(t, entries[0].Status)
}

func TestDeleteAll(t *testing.T) {
	store := openTestStore(t)
	store.Record(fakeRecord("GET", "https://example.test/posts", 200))
	require.NoError(t, store.DeleteAll())

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
