// Package duckdb stores decoded ANN records in DuckDB for querying and
// aggregation.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-ann/internal/ann"
)

const table = "ann_records"

// Store manages a DuckDB connection holding decoded annotation records.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, "" for in-memory.
func (s *Store) Path() string {
	return s.path
}

// fieldColumns lists the annotation columns in schema order.
func fieldColumns() []string {
	fields := ann.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f)
	}
	return cols
}

// ensureSchema creates tables if they don't exist.
// Annotation columns are nullable: NULL is an absent field, '' an empty one.
func (s *Store) ensureSchema() error {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS " + table + " (\n")
	b.WriteString("\tchrom VARCHAR,\n\tpos BIGINT,\n\tref VARCHAR,\n\talt VARCHAR")
	for _, c := range fieldColumns() {
		b.WriteString(",\n\t" + c + " VARCHAR")
	}
	b.WriteString("\n)")

	_, err := s.db.Exec(b.String())
	return err
}
