package users

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ziadkadry99/userboard/internal/db"
)

// Store manages persistence of users.
type Store struct {
	db *db.DB
}

// NewStore creates a new user store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a user and returns it with the id the database assigned.
func (s *Store) Create(ctx context.Context, username string) (*User, error) {
	u := User{Username: username}
	err := s.db.WithConn(ctx, func(conn *sqlx.Conn) error {
		result, err := conn.ExecContext(ctx, `INSERT INTO users (username) VALUES (?)`, username)
		if err != nil {
			return fmt.Errorf("inserting user: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading inserted id: %w", err)
		}
		u.ID = uint64(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user in insertion order. The result is never nil.
func (s *Store) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := s.db.WithConn(ctx, func(conn *sqlx.Conn) error {
		if err := conn.SelectContext(ctx, &users, `SELECT id, username FROM users ORDER BY id`); err != nil {
			return fmt.Errorf("listing users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
