package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var ErrNotFound = errors.New("not found")

// Driver is the database/sql driver name the store opens.
const Driver = "sqlite"

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	conn, err := sql.Open(Driver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: sqlite has a single writer, and :memory: databases
	// are per-connection.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// ParseTime reads a timestamp column written by datetime('now').
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateTime, s, time.UTC)
}

func now() string {
	return time.Now().UTC().Format(time.DateTime)
}
