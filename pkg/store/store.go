// Package store persists credential entries and website/technology
// associations in an embedded sqlite database. A Store handle owns one
// database file; callers create as many independent stores as they need.
// Mutating operations run inside a transaction and roll back completely on
// failure. The store is designed for one mutating caller at a time.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS websites (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT UNIQUE,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS technologies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT UNIQUE
);

CREATE TABLE IF NOT EXISTS website_technologies (
	website_id INTEGER,
	technology_id INTEGER,
	PRIMARY KEY (website_id, technology_id),
	FOREIGN KEY (website_id) REFERENCES websites(id),
	FOREIGN KEY (technology_id) REFERENCES technologies(id)
);

CREATE TABLE IF NOT EXISTS ulp_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT,
	username TEXT,
	password TEXT,
	notes TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_ulp_url ON ulp_entries(url);
CREATE INDEX IF NOT EXISTS idx_ulp_username ON ulp_entries(username);
CREATE INDEX IF NOT EXISTS idx_ulp_password ON ulp_entries(password);
CREATE INDEX IF NOT EXISTS idx_ulp_notes ON ulp_entries(notes);
`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path and ensures the
// schema exists. There is no migration story beyond create-if-absent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
