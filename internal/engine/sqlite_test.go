package engine

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
)

func writeSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE price_beds (date TEXT, price REAL, beds INTEGER)`,
		`INSERT INTO price_beds VALUES ('2020-01-01', 50.5, 1), ('2020-01-02', 60, NULL)`,
		`CREATE TABLE price_review (date TEXT, price REAL, review_scores_rating REAL)`,
		`CREATE TABLE term_frequencies (name TEXT, word TEXT, freq REAL)`,
		`INSERT INTO term_frequencies VALUES ('price_below_80', 'clean', 5), ('price_below_80', 'quiet', 2)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := writeSQLite(t)
	m := Manifest{
		SQLite: path,
		Tables: []TableSource{{Name: TablePriceBeds, Required: []string{"date", "price", "beds"}}},
		Terms:  []TermSource{{Name: TermsPriceBelow80}},
	}

	store, err := Load(context.Background(), m, logr.Discard())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	beds, ok := store.Table(TablePriceBeds)
	if !ok || beds.Len() != 2 {
		t.Fatalf("Expected 2 rows of price_beds")
	}
	price, _ := beds.Column("price")
	if v, _ := price.Float(0); v != 50.5 {
		t.Errorf("Expected 50.5, got %v", v)
	}
	col, _ := beds.Column("beds")
	if !col.Missing(1) {
		t.Error("NULL should be missing")
	}

	tf, _ := store.Terms(TermsPriceBelow80)
	if tf["clean"] != 5 {
		t.Errorf("Expected clean=5, got %v", tf["clean"])
	}
}

func TestLoadSQLiteMissingTable(t *testing.T) {
	path := writeSQLite(t)
	m := Manifest{
		SQLite: path,
		Tables: []TableSource{{Name: TableListings}},
	}

	_, err := Load(context.Background(), m, logr.Discard())
	var mie *MissingInputError
	if !errors.As(err, &mie) {
		t.Fatalf("Expected MissingInputError, got %v", err)
	}
}

func TestLoadSQLiteEmptyTable(t *testing.T) {
	path := writeSQLite(t)
	m := Manifest{
		SQLite: path,
		Tables: []TableSource{{Name: TablePriceReview, Required: []string{"date", "price", "review_scores_rating"}}},
	}

	store, err := Load(context.Background(), m, logr.Discard())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	review, ok := store.Table(TablePriceReview)
	if !ok || review.Len() != 0 {
		t.Fatalf("Expected an empty price_review table")
	}
	if len(review.Columns()) != 3 {
		t.Errorf("Expected 3 columns, got %v", review.Columns())
	}
}
