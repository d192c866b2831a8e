package subject

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by DB.Get for unknown ids.
var ErrNotFound = errors.New("subject not found")

const schema = `
CREATE TABLE IF NOT EXISTS subjects (
	id         INTEGER PRIMARY KEY,
	kind       TEXT NOT NULL,
	level      INTEGER NOT NULL DEFAULT 0,
	characters TEXT NOT NULL DEFAULT '',
	data       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS subjects_level_kind ON subjects(level, kind);
CREATE INDEX IF NOT EXISTS subjects_characters ON subjects(characters);
`

// DB persists subjects in a SQLite database.
type DB struct {
	db *sql.DB
}

// OpenDB opens (and migrates) the SQLite database at path. Use ":memory:"
// for a throwaway database.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Put inserts or replaces s.
func (d *DB) Put(ctx context.Context, s *Subject) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling subject %d: %w", s.ID, err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO subjects (id, kind, level, characters, data) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, level = excluded.level,
		 characters = excluded.characters, data = excluded.data`,
		s.ID, string(s.Kind), s.Level, s.Characters, string(data))
	if err != nil {
		return fmt.Errorf("storing subject %d: %w", s.ID, err)
	}
	return nil
}

// PutAll stores every subject in one transaction.
func (d *DB) PutAll(ctx context.Context, subjects []*Subject) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO subjects (id, kind, level, characters, data) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range subjects {
		if err := s.Validate(); err != nil {
			return err
		}
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshaling subject %d: %w", s.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, s.ID, string(s.Kind), s.Level, s.Characters, string(data)); err != nil {
			return fmt.Errorf("storing subject %d: %w", s.ID, err)
		}
	}
	return tx.Commit()
}

// Get returns the subject with the given id.
func (d *DB) Get(ctx context.Context, id int) (*Subject, error) {
	var data string
	err := d.db.QueryRowContext(ctx, `SELECT data FROM subjects WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subject %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying subject %d: %w", id, err)
	}
	return decodeSubject(data)
}

// Filter narrows DB.List. Zero values match everything.
type Filter struct {
	Level int
	Kind  Kind
}

// List returns subjects matching f ordered by level, then id.
func (d *DB) List(ctx context.Context, f Filter) ([]*Subject, error) {
	query := `SELECT data FROM subjects WHERE 1 = 1`
	var args []any
	if f.Level > 0 {
		query += ` AND level = ?`
		args = append(args, f.Level)
	}
	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(f.Kind))
	}
	query += ` ORDER BY level, id`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying subjects: %w", err)
	}
	defer rows.Close()

	var out []*Subject
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		s, err := decodeSubject(data)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Store loads every subject into an in-memory Store.
func (d *DB) Store(ctx context.Context) (*Store, error) {
	subjects, err := d.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	st := NewStore()
	for _, s := range subjects {
		st.Add(s)
	}
	return st, nil
}

func decodeSubject(data string) (*Subject, error) {
	var s Subject
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("decoding subject: %w", err)
	}
	return &s, nil
}
