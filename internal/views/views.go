// Package views renders the server-side HTML pages consumed by htmx.
package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/userboard/internal/httperr"
	"github.com/ziadkadry99/userboard/internal/users"
)

//go:embed templates/*.html
var templateFS embed.FS

// UserLister is the subset of the user store the views need.
type UserLister interface {
	List(ctx context.Context) ([]users.User, error)
}

// Views serves the landing page and the user-list fragment.
type Views struct {
	users UserLister
	tmpl  *template.Template
}

// New parses the embedded templates.
func New(lister UserLister) (*Views, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Views{users: lister, tmpl: tmpl}, nil
}

// RegisterRoutes mounts the HTML routes onto the given router.
func (v *Views) RegisterRoutes(r chi.Router) {
	r.Method(http.MethodGet, "/htmx-index", httperr.Handler(v.handleIndex))
	r.Method(http.MethodGet, "/htmx-users", httperr.Handler(v.handleUsers))
}

type indexData struct {
	Title string
}

type usersData struct {
	Users []users.User
}

func (v *Views) handleIndex(w http.ResponseWriter, r *http.Request) error {
	return v.render(w, r, "index.html", indexData{Title: "Users"})
}

func (v *Views) handleUsers(w http.ResponseWriter, r *http.Request) error {
	list, err := v.users.List(r.Context())
	if err != nil {
		return httperr.Internal(err)
	}
	return v.render(w, r, "users.html", usersData{Users: list})
}

// render buffers the output so a failed template never leaves a half-written page.
func (v *Views) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return httperr.Internal(fmt.Errorf("rendering %s: %w", name, err))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		httperr.LogWriteError(r, err)
	}
	return nil
}
