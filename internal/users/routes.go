package users

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziadkadry99/userboard/internal/httperr"
)

// RegisterRoutes mounts the JSON user API.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/users", func(r chi.Router) {
		r.Method(http.MethodGet, "/", handleList(store))
		r.With(middleware.AllowContentType("application/json")).
			Method(http.MethodPost, "/", handleCreate(store))
	})
}

func handleList(store *Store) httperr.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		users, err := store.List(r.Context())
		if err != nil {
			return httperr.Internal(err)
		}
		httperr.WriteJSON(w, r, http.StatusOK, users)
		return nil
	}
}

func handleCreate(store *Store) httperr.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req createRequest
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			return httperr.BadRequest("invalid request body", err)
		}
		// The body must hold exactly one JSON value.
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return httperr.BadRequest("invalid request body", err)
		}
		if req.Username == nil {
			return httperr.BadRequest("username is required", nil)
		}

		created, err := store.Create(r.Context(), *req.Username)
		if err != nil {
			return httperr.Internal(err)
		}

		httperr.WriteJSON(w, r, http.StatusCreated, created)
		return nil
	}
}
