// Package store provides the in-memory SQLite session table dex searches
// species names in. Nothing is written to disk.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// memSeq gives every in-memory Open its own database.
var memSeq atomic.Uint64

// Store handles the session table. NOT an interface - concrete type.
// Methods are safe for concurrent use; writes serialize on mu.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Species is one row of the name index.
type Species struct {
	ID   int
	Name string
}

// Open creates a new Store. ":memory:" (or "") opens a private in-memory
// database; any other value is passed to the driver as a DSN.
func Open(dsn string) (*Store, error) {
	memory := dsn == "" || dsn == ":memory:"
	connStr := dsn
	if memory {
		// Shared cache so every pooled connection sees the same database,
		// named so separate Opens never do.
		connStr = fmt.Sprintf("file:dex-%d?mode=memory&cache=shared", memSeq.Add(1))
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS species (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lname TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_species_lname ON species(lname);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// ReplaceSpecies swaps the whole table for list in one transaction.
func (s *Store) ReplaceSpecies(list []Species) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM species"); err != nil {
		return fmt.Errorf("clear species: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO species (id, name, lname) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, sp := range list {
		if _, err := stmt.Exec(sp.ID, sp.Name, strings.ToLower(sp.Name)); err != nil {
			return fmt.Errorf("insert species %d: %w", sp.ID, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of species rows.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM species").Scan(&n)
	return n, err
}

// SearchSpecies returns up to limit species whose name contains term,
// case-insensitively. Prefix matches rank first, then shorter names, then
// lower IDs. An empty term matches nothing.
func (s *Store) SearchSpecies(term string, limit int) ([]Species, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name
		FROM species
		WHERE instr(lname, ?) > 0
		ORDER BY
			CASE WHEN instr(lname, ?) = 1 THEN 0 ELSE 1 END,
			length(name),
			id
		LIMIT ?
	`

	return s.querySpecies(query, term, term, limit)
}

// SpeciesByName looks up an exact, case-insensitive name.
func (s *Store) SpeciesByName(name string) (Species, bool, error) {
	return s.one("SELECT id, name FROM species WHERE lname = ?", strings.ToLower(strings.TrimSpace(name)))
}

// SpeciesByID looks up a species by ID.
func (s *Store) SpeciesByID(id int) (Species, bool, error) {
	return s.one("SELECT id, name FROM species WHERE id = ?", id)
}

func (s *Store) one(query string, args ...any) (Species, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sp Species
	err := s.db.QueryRow(query, args...).Scan(&sp.ID, &sp.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Species{}, false, nil
	}
	if err != nil {
		return Species{}, false, err
	}
	return sp, true, nil
}

// querySpecies executes a query and scans results into Species.
// Caller must hold s.mu (read lock is sufficient).
func (s *Store) querySpecies(query string, args ...any) ([]Species, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Species
	for rows.Next() {
		var sp Species
		if err := rows.Scan(&sp.ID, &sp.Name); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
