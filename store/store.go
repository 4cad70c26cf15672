// Package store persists compiled programs, content-addressed by the
// SHA-256 of their source text. The stored form is the program's canonical
// CBOR wire encoding, so a cache hit skips the front end entirely.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/chazu/infix/vm"
)

// ProgramStore is a SQLite-backed cache of compiled programs.
type ProgramStore struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the program store at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*ProgramStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening program store: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Create table if needed
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS programs (
		hash   TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		wire   BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating programs table: %w", err)
	}

	return &ProgramStore{db: db}, nil
}

// SourceHash returns the hex SHA-256 content hash of an expression source.
func SourceHash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Put stores the compiled program for the given source, replacing any
// previous entry with the same content hash.
func (s *ProgramStore) Put(source string, p vm.Program) error {
	wire, err := vm.MarshalProgram(p)
	if err != nil {
		return fmt.Errorf("encoding program: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO programs (hash, source, wire) VALUES (?, ?, ?)`,
		SourceHash(source), source, wire,
	)
	if err != nil {
		return fmt.Errorf("storing program: %w", err)
	}
	return nil
}

// Get returns the cached program for the given source. The second return
// value reports whether an entry was found.
func (s *ProgramStore) Get(source string) (vm.Program, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wire []byte
	err := s.db.QueryRow(
		`SELECT wire FROM programs WHERE hash = ?`, SourceHash(source),
	).Scan(&wire)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading program: %w", err)
	}

	p, err := vm.UnmarshalProgram(wire)
	if err != nil {
		return nil, false, fmt.Errorf("decoding program: %w", err)
	}
	return p, true, nil
}

// Count returns the number of cached programs.
func (s *ProgramStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM programs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting programs: %w", err)
	}
	return n, nil
}

// Close releases the underlying database handle.
func (s *ProgramStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
