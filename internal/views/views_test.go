package views

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/userboard/internal/db"
	"github.com/ziadkadry99/userboard/internal/users"
)

type failingLister struct{}

func (failingLister) List(context.Context) ([]users.User, error) {
	return nil, errors.New("database is locked")
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	header http.Header
}

func (b *brokenWriter) Header() http.Header {
	if b.header == nil {
		b.header = http.Header{}
	}
	return b.header
}

func (b *brokenWriter) WriteHeader(int) {}

func (b *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func setupTest(t *testing.T) (chi.Router, *users.Store) {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err, "opening test db")
	t.Cleanup(func() { database.Close() })

	store := users.NewStore(database)
	v, err := New(store)
	require.NoError(t, err)
	r := chi.NewRouter()
	v.RegisterRoutes(r)
	return r, store
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndexPage(t *testing.T) {
	r, _ := setupTest(t)

	w := get(r, "/htmx-index")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))

	body := w.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `hx-get="/htmx-users"`, "page should load the users fragment")
}

func TestUsersFragmentEmpty(t *testing.T) {
	r, _ := setupTest(t)

	w := get(r, "/htmx-users")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "No users yet.")
	assert.NotContains(t, body, "<html", "fragment should not be a full document")
}

func TestUsersFragmentRows(t *testing.T) {
	r, store := setupTest(t)
	ctx := context.Background()

	for _, n := range []string{"alice", "bob", "alice"} {
		_, err := store.Create(ctx, n)
		require.NoError(t, err)
	}

	body := get(r, "/htmx-users").Body.String()
	assert.Equal(t, 3, strings.Count(body, "<li data-user-id="), body)
	assert.Less(t, strings.Index(body, ">alice<"), strings.Index(body, ">bob<"), "rows should be in insertion order")
	assert.NotContains(t, body, "No users yet.")
}

func TestUsersFragmentEscapesUsernames(t *testing.T) {
	r, store := setupTest(t)

	_, err := store.Create(context.Background(), `<script>alert("x")</script>`)
	require.NoError(t, err)

	body := get(r, "/htmx-users").Body.String()
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestUsersFragmentStorageFailure(t *testing.T) {
	v, err := New(failingLister{})
	require.NoError(t, err)
	r := chi.NewRouter()
	v.RegisterRoutes(r)

	w := get(r, "/htmx-users")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "locked", "internal cause leaked to client")
}

func TestRenderLogsWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(prev) })

	r, _ := setupTest(t)
	req := httptest.NewRequest(http.MethodGet, "/htmx-index", nil)
	r.ServeHTTP(&brokenWriter{}, req)

	assert.Contains(t, logs.String(), "/htmx-index")
	assert.Contains(t, logs.String(), "broken pipe")
}
