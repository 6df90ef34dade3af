// Package httperr maps handler errors to HTTP responses in one place.
package httperr

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// Error is a handler failure that carries the status code to send.
// Message is shown to the client; Err is only logged.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest reports a malformed client request.
func BadRequest(msg string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg, Err: err}
}

// Internal reports a server-side failure. The cause is never sent to clients.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// Handler is an http.HandlerFunc that reports failure by returning an error
// instead of writing the response itself.
type Handler func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP runs h and writes the mapped error response, if any.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h(w, r)
	if err == nil {
		return
	}

	var he *Error
	if !errors.As(err, &he) {
		he = Internal(err)
	}
	if he.Status >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, he)
	}
	WriteJSON(w, r, he.Status, map[string]string{"error": he.Message})
}

// WriteJSON writes v as a JSON response with the given status. Encoding or
// write failures can no longer change the response, so they are only logged.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		LogWriteError(r, err)
	}
}

// LogWriteError records a failure to send a response body that has already
// been started.
func LogWriteError(r *http.Request, err error) {
	log.Printf("[%s] %s %s: writing response: %v", middleware.GetReqID(r.Context()), r.Method, r.URL.Path, err)
}
