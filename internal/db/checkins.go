package db

import (
	"database/sql"
	"fmt"

	"github.com/chris/timely/internal/domain"
)

type CheckIn struct {
	ID         int64  `json:"id"`
	Intent     string `json:"intent"`
	Response   string `json:"response"`
	Fallback   bool   `json:"fallback"`
	TokensUsed *int   `json:"tokens_used,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// RecordCheckIn stores an assistant result under the intent that produced it.
func (d *DB) RecordCheckIn(intent string, res domain.Result) (int64, error) {
	var tokens any
	if res.TokensUsed != nil {
		tokens = *res.TokensUsed
	}
	r, err := d.conn.Exec(
		"INSERT INTO check_ins (intent, response, fallback, tokens_used, created_at) VALUES (?, ?, ?, ?, ?)",
		intent, res.Response, res.Fallback, tokens, now(),
	)
	if err != nil {
		return 0, fmt.Errorf("recording check-in: %w", err)
	}
	return r.LastInsertId()
}

// ListCheckIns returns the most recent check-ins, newest first.
func (d *DB) ListCheckIns(limit int) ([]CheckIn, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(
		`SELECT id, intent, response, fallback, tokens_used, created_at
		FROM check_ins ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying check-ins: %w", err)
	}
	defer rows.Close()

	checkIns := []CheckIn{}
	for rows.Next() {
		var c CheckIn
		var tokens sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Intent, &c.Response, &c.Fallback, &tokens, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning check-in: %w", err)
		}
		if tokens.Valid {
			n := int(tokens.Int64)
			c.TokensUsed = &n
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}
