package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gnomegl/ulpdb/pkg/ulp"
)

// Entry is a stored credential row. IDs are assigned by the database and
// restart at 1 after DeleteAllEntries.
type Entry struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarizes the credential table for the UI.
type Stats struct {
	Total       int        `json:"total"`
	LastUpdate  *time.Time `json:"lastUpdate"`
	UniqueUsers int        `json:"uniqueUsers"`
}

// searchableFields whitelists the columns SearchEntries may filter on.
var searchableFields = map[string]bool{
	"url":      true,
	"username": true,
	"password": true,
	"notes":    true,
	"id":       true,
}

// AddEntries bulk-inserts records in a single transaction and returns the
// number of rows actually written. That count is authoritative; the
// extraction report's Added counts acceptance before persistence and the
// two can diverge.
func (s *Store) AddEntries(records []ulp.Record) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO ulp_entries (url, username, password, notes) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, rec := range records {
		res, err := stmt.Exec(rec.URL, rec.Username, rec.Password, rec.Notes)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert entry for %s: %w", rec.URL, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return added, nil
}

// AllEntries returns every stored credential, newest first.
func (s *Store) AllEntries() ([]Entry, error) {
	rows, err := s.db.Query("SELECT id, url, username, password, notes, created_at FROM ulp_entries ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// SearchEntries substring-matches one field, or every field when field is
// "all". Matching is case-insensitive (sqlite LIKE). An empty query returns
// all entries.
func (s *Store) SearchEntries(query, field string) ([]Entry, error) {
	if query == "" {
		return s.AllEntries()
	}

	pattern := "%" + query + "%"
	var rows *sql.Rows
	var err error
	switch {
	case field == "all":
		rows, err = s.db.Query(
			"SELECT id, url, username, password, notes, created_at FROM ulp_entries "+
				"WHERE url LIKE ? OR username LIKE ? OR password LIKE ? OR notes LIKE ? "+
				"ORDER BY created_at DESC, id DESC",
			pattern, pattern, pattern, pattern)
	case searchableFields[field]:
		rows, err = s.db.Query(
			"SELECT id, url, username, password, notes, created_at FROM ulp_entries "+
				"WHERE "+field+" LIKE ? ORDER BY created_at DESC, id DESC",
			pattern)
	default:
		return nil, fmt.Errorf("unknown search field %q", field)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// DeleteAllEntries drops and recreates the credential table so that the id
// sequence restarts at 1.
func (s *Store) DeleteAllEntries() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("DROP TABLE IF EXISTS ulp_entries"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to drop entries table: %w", err)
	}
	if _, err := tx.Exec(`CREATE TABLE ulp_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT,
		username TEXT,
		password TEXT,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to recreate entries table: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Stats reports the total entry count, the most recent insert time and the
// number of distinct usernames.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		"SELECT COUNT(*), COUNT(DISTINCT username) FROM ulp_entries",
	).Scan(&st.Total, &st.UniqueUsers)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}

	var last time.Time
	err = s.db.QueryRow(
		"SELECT created_at FROM ulp_entries ORDER BY created_at DESC, id DESC LIMIT 1",
	).Scan(&last)
	switch {
	case err == nil:
		st.LastUpdate = &last
	case !errors.Is(err, sql.ErrNoRows):
		return Stats{}, fmt.Errorf("failed to query last update: %w", err)
	}
	return st, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &e.URL, &e.Username, &e.Password, &notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Notes = notes.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}
