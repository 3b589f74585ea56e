package engine

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

// TermsTable holds every term map of a SQLite bundle as (name, word, freq) rows.
const TermsTable = "term_frequencies"

// --- 3. SQLITE SOURCE ---

// sqliteSource reads each table from the SQLite table of the same name.
type sqliteSource struct {
	path string
	db   *sql.DB
}

func openSQLite(path string) (*sqliteSource, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, &MalformedInputError{Path: path, Reason: err.Error()}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: err.Error()}
	}
	return &sqliteSource{path: path, db: db}, nil
}

func (s *sqliteSource) Close() error { return s.db.Close() }

func (s *sqliteSource) location(name string) string {
	return s.path + "#" + name
}

func (s *sqliteSource) table(ctx context.Context, ts TableSource) (*Table, error) {
	loc := s.location(ts.Name)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", ts.Name))
	if err != nil {
		return nil, s.queryError(loc, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, &MalformedInputError{Path: loc, Reason: err.Error()}
	}

	records := [][]string{header}
	for rows.Next() {
		cells := make([]sql.NullString, len(header))
		ptrs := make([]any, len(header))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &MalformedInputError{Path: loc, Reason: err.Error()}
		}
		rec := make([]string, len(header))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &MalformedInputError{Path: loc, Reason: err.Error()}
	}

	return fromRecords(ts.Name, loc, records)
}

func (s *sqliteSource) terms(ctx context.Context, ts TermSource) (TermFrequencies, error) {
	loc := s.location(TermsTable + "/" + ts.Name)
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT word, freq FROM %s WHERE name = ?", TermsTable), ts.Name)
	if err != nil {
		return nil, s.queryError(loc, err)
	}
	defer rows.Close()

	tf := make(TermFrequencies)
	for rows.Next() {
		var word string
		var freq float64
		if err := rows.Scan(&word, &freq); err != nil {
			return nil, &MalformedInputError{Path: loc, Reason: err.Error()}
		}
		tf[word] += freq
	}
	if err := rows.Err(); err != nil {
		return nil, &MalformedInputError{Path: loc, Reason: err.Error()}
	}
	if len(tf) == 0 {
		return nil, &MissingInputError{Path: loc}
	}
	if err := checkTerms(tf); err != nil {
		return nil, &MalformedInputError{Path: loc, Reason: err.Error()}
	}
	return tf, nil
}

func (s *sqliteSource) queryError(loc string, err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return &MissingInputError{Path: loc}
	}
	return &MalformedInputError{Path: loc, Reason: errors.Cause(err).Error()}
}
