package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrAcquireTimeout is returned by WithConn when no pooled connection became
// free within the acquire timeout.
var ErrAcquireTimeout = errors.New("timed out acquiring database connection")

// Options controls the connection pool.
type Options struct {
	MaxConns       int
	AcquireTimeout time.Duration
}

// DefaultOptions returns the pool settings used when none are configured.
func DefaultOptions() Options {
	return Options{MaxConns: 5, AcquireTimeout: 5 * time.Second}
}

// DB wraps a pooled sqlx.DB with userboard-specific helpers.
type DB struct {
	*sqlx.DB
	path           string
	acquireTimeout time.Duration
}

// Open ensures a SQLite database file exists at the given path, opens a
// bounded pool over it and creates the schema if missing.
func Open(path string, opts Options) (*DB, error) {
	if err := ensureFile(path); err != nil {
		return nil, err
	}

	sqlDB, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := newDB(sqlDB, path, opts)
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
// Every connection to ":memory:" sees its own database, so the pool is pinned
// to a single connection.
func OpenMemory() (*DB, error) {
	return OpenMemoryWithOptions(Options{MaxConns: 1, AcquireTimeout: DefaultOptions().AcquireTimeout})
}

// OpenMemoryWithOptions is OpenMemory with a custom acquire timeout.
// MaxConns is always forced to 1, and that connection never expires or idles
// out: a replacement connection would open a new, empty database.
func OpenMemoryWithOptions(opts Options) (*DB, error) {
	sqlDB, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	opts.MaxConns = 1
	d := newDB(sqlDB, ":memory:", opts)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

func newDB(sqlDB *sqlx.DB, path string, opts Options) *DB {
	def := DefaultOptions()
	if opts.MaxConns <= 0 {
		opts.MaxConns = def.MaxConns
	}
	if opts.AcquireTimeout <= 0 {
		opts.AcquireTimeout = def.AcquireTimeout
	}
	sqlDB.SetMaxOpenConns(opts.MaxConns)
	sqlDB.SetMaxIdleConns(opts.MaxConns)
	return &DB{DB: sqlDB, path: path, acquireTimeout: opts.AcquireTimeout}
}

// Path returns the database file path, or ":memory:".
func (d *DB) Path() string { return d.path }

// WithConn checks a connection out of the pool, waiting at most the acquire
// timeout, and runs fn on it. The connection is returned to the pool when fn
// returns, whether or not it failed.
func (d *DB) WithConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, d.acquireTimeout)
	conn, err := d.Connx(acquireCtx)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return ErrAcquireTimeout
		}
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// Check verifies that a pooled connection can reach the database.
func (d *DB) Check(ctx context.Context) error {
	return d.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.PingContext(ctx)
	})
}

// ensureFile creates an empty database file (and its directory) if none exists.
func ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("accessing database file %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("creating database file: %w", err)
	}
	return f.Close()
}

// migrate runs the schema migration. It is safe to run repeatedly.
func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

// schema contains the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY NOT NULL,
    username VARCHAR(255) NOT NULL
);
`
