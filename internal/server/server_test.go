package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/userboard/internal/db"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return New(cfg, database), database
}

func TestGreeting(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello world", w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t, Config{})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	srv, database := newTestServer(t, Config{})
	database.Close()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t, Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"), "expected CORS Allow-Origin header")
}

func TestCORSRestricted(t *testing.T) {
	srv, _ := newTestServer(t, Config{AllowAll: false})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), "foreign origin should not be allowed")

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdownBeforeStart(t *testing.T) {
	srv, _ := newTestServer(t, Config{})
	assert.NoError(t, srv.Shutdown(context.Background()))
}
