package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// migrations[i] upgrades a database from user_version i to i+1. The base
// schema is applied first, so every step must be idempotent.
var migrations = []func(tx *sql.Tx) error{
	// v1: kind index used by CountByKind.
	func(tx *sql.Tx) error {
		_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_timeline_kind ON timeline_events(kind)`)
		return err
	},
}

// schemaVersion is the user_version a fully migrated database reports.
var schemaVersion = len(migrations)

// Store is a SQLite-backed component timeline. It implements core.Recorder
// for writers and the Read* queries for the trace command.
//
// Thread-safety: safe for concurrent use; writes are serialised on a single
// connection.
type Store struct {
	db       *sql.DB
	readOnly bool
}

// OpenOption configures Open.
type OpenOption func(*openConfig)

type openConfig struct {
	readOnly bool
}

// ReadOnly opens an existing database without creating or migrating it.
func ReadOnly() OpenOption {
	return func(c *openConfig) {
		c.readOnly = true
	}
}

// Open opens the timeline database at path, creating and migrating it
// unless ReadOnly is given.
//
// Connections run with WAL journaling, NORMAL synchronous mode, a 5s busy
// timeout and foreign keys on. Opening the same path repeatedly is safe.
func Open(path string, opts ...OpenOption) (*Store, error) {
	var cfg openConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sql.Open("sqlite3", dsn(path, cfg.readOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: SQLite has a single writer and the pragmas in the DSN
	// then hold for every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, readOnly: cfg.readOnly}
	if cfg.readOnly {
		err = s.checkVersion()
	} else {
		err = s.migrate()
	}
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// dsn builds a go-sqlite3 URI. Underscore parameters are read by the
// driver and applied to each new connection.
func dsn(path string, readOnly bool) string {
	q := url.Values{}
	q.Set("_busy_timeout", "5000")
	q.Set("_foreign_keys", "on")
	if readOnly {
		q.Set("mode", "ro")
	} else {
		q.Set("_journal_mode", "WAL")
		q.Set("_synchronous", "NORMAL")
	}
	return "file:" + path + "?" + q.Encode()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for ad hoc queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ReadOnly reports whether the store was opened with ReadOnly.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

func (s *Store) userVersion() (int, error) {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

// migrate applies the base schema, then every migration the database has
// not seen, each in its own transaction.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	version, err := s.userVersion()
	if err != nil {
		return err
	}
	for v := version; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
		if err := migrations[v](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("set user_version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
	}
	return nil
}

// checkVersion rejects databases that were never migrated by a writer.
func (s *Store) checkVersion() error {
	version, err := s.userVersion()
	if err != nil {
		return err
	}
	if version < schemaVersion {
		return fmt.Errorf("timeline schema v%d is older than v%d; open it for writing once to migrate", version, schemaVersion)
	}
	return nil
}
