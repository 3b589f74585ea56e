package engine

import (
	"context"
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/go-logr/logr"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Table names of the bundled Berlin dataset.
const (
	TableListings          = "listings"
	TablePriceSuperhost    = "price_superhost"
	TablePriceBeds         = "price_beds"
	TablePriceNeighborhood = "price_neighborhood"
	TablePriceRoomType     = "price_roomtype"
	TablePriceAvailability = "price_availability"
	TablePriceReview       = "price_review"
	TableAvailability90    = "availability90"
)

// Term frequency map names.
const (
	TermsReviewAbove85       = "review_above_85"
	TermsReviewBelow85       = "review_below_85"
	TermsAvailabilityAbove60 = "availability90_above_60"
	TermsAvailabilityBelow20 = "availability90_below_20"
	TermsPriceAbove100       = "price_above_100"
	TermsPriceBelow80        = "price_below_80"
)

// TableSource names a tabular input and the columns every consumer relies on.
type TableSource struct {
	Name     string
	Path     string
	Required []string
}

// TermSource names a word -> frequency JSON input.
type TermSource struct {
	Name string
	Path string
}

// Manifest lists every input the store loads. When SQLite is set, tables and term maps
// are read from that database instead of the listed paths.
type Manifest struct {
	Tables []TableSource
	Terms  []TermSource
	SQLite string
}

// DefaultManifest returns the fourteen inputs of the dashboard, rooted at dir.
func DefaultManifest(dir string) Manifest {
	tbl := func(name, file string, required ...string) TableSource {
		return TableSource{Name: name, Path: filepath.Join(dir, file), Required: required}
	}
	trend := func(field string) []string { return []string{"date", "price", field} }
	return Manifest{
		Tables: []TableSource{
			tbl(TableListings, "price_listings.csv", "longitude", "latitude", "accommodates", "price", "neighbourhood_group_cleansed"),
			tbl(TablePriceSuperhost, "price_superhost.csv", trend("host_is_superhost")...),
			tbl(TablePriceBeds, "price_beds.csv", trend("beds")...),
			tbl(TablePriceNeighborhood, "price_neighborhood.csv", trend("neighbourhood_group_cleansed")...),
			tbl(TablePriceRoomType, "price_roomtype.csv", trend("room_type")...),
			tbl(TablePriceAvailability, "price_availability.csv", trend("availability_365")...),
			tbl(TablePriceReview, "price_review.csv", trend("review_scores_rating")...),
			tbl(TableAvailability90, "availability90.csv", "availability_90", "price", "review_scores_rating"),
		},
		Terms: []TermSource{
			{Name: TermsReviewAbove85, Path: filepath.Join(dir, "review_above_85.json")},
			{Name: TermsReviewBelow85, Path: filepath.Join(dir, "review_below_85.json")},
			{Name: TermsAvailabilityAbove60, Path: filepath.Join(dir, "availability90_above_60.json")},
			{Name: TermsAvailabilityBelow20, Path: filepath.Join(dir, "availability90_below_20.json")},
			{Name: TermsPriceAbove100, Path: filepath.Join(dir, "price_above_100.json")},
			{Name: TermsPriceBelow80, Path: filepath.Join(dir, "price_below_80.json")},
		},
	}
}

// --- 1. MAIN LOADER ---

// Load reads every input of m concurrently. Any missing or malformed input fails the
// whole load; a partial store is never returned.
func Load(ctx context.Context, m Manifest, log logr.Logger) (*Store, error) {
	start := time.Now()
	log.Info("loading datasets", "tables", len(m.Tables), "terms", len(m.Terms), "sqlite", m.SQLite)

	var src source = fileSource{}
	if m.SQLite != "" {
		db, err := openSQLite(m.SQLite)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		src = db
	}

	tables := make([]*Table, len(m.Tables))
	terms := make([]TermFrequencies, len(m.Terms))

	g, ctx := errgroup.WithContext(ctx)
	for i, ts := range m.Tables {
		g.Go(func() error {
			t, err := src.table(ctx, ts)
			if err != nil {
				return errors.Wrapf(err, "load table %s", ts.Name)
			}
			if col, missing := t.MissingColumn(ts.Required...); missing {
				return &MalformedInputError{Path: t.Source, Reason: "missing column " + col}
			}
			tables[i] = t
			log.V(1).Info("table loaded", "table", ts.Name, "rows", t.Len(), "columns", len(t.Columns()))
			return nil
		})
	}
	for i, ts := range m.Terms {
		g.Go(func() error {
			tf, err := src.terms(ctx, ts)
			if err != nil {
				return errors.Wrapf(err, "load terms %s", ts.Name)
			}
			terms[i] = tf
			log.V(1).Info("terms loaded", "terms", ts.Name, "words", len(tf))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	termMap := make(map[string]TermFrequencies, len(m.Terms))
	for i, ts := range m.Terms {
		termMap[ts.Name] = terms[i]
	}

	log.Info("load complete", "tables", len(tables), "terms", len(termMap), "elapsed", time.Since(start))
	return NewStore(tables, termMap), nil
}

// source abstracts where inputs are read from.
type source interface {
	table(ctx context.Context, ts TableSource) (*Table, error)
	terms(ctx context.Context, ts TermSource) (TermFrequencies, error)
}

// --- 2. FILE SOURCE ---

type fileSource struct{}

func (fileSource) table(_ context.Context, ts TableSource) (*Table, error) {
	f, err := openInput(ts.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &MalformedInputError{Path: ts.Path, Reason: err.Error()}
	}
	return fromRecords(ts.Name, ts.Path, records)
}

func (fileSource) terms(_ context.Context, ts TermSource) (TermFrequencies, error) {
	f, err := openInput(ts.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tf TermFrequencies
	if err := json.NewDecoder(f).Decode(&tf); err != nil {
		return nil, &MalformedInputError{Path: ts.Path, Reason: err.Error()}
	}
	if err := checkTerms(tf); err != nil {
		return nil, &MalformedInputError{Path: ts.Path, Reason: err.Error()}
	}
	return tf, nil
}

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingInputError{Path: path}
		}
		return nil, &MalformedInputError{Path: path, Reason: err.Error()}
	}
	return f, nil
}

// fromRecords converts text records, header first, into the column store.
// A header without rows is a valid empty table.
func fromRecords(name, path string, records [][]string) (*Table, error) {
	switch len(records) {
	case 0:
		return nil, &MalformedInputError{Path: path, Reason: "no header"}
	case 1:
		header := records[0]
		return NewTable(name, path, header, make([][]string, len(header))), nil
	}

	// Every column is read as text; numeric parsing happens in the column store
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, &MalformedInputError{Path: path, Reason: df.Err.Error()}
	}
	header := df.Names()
	columns := make([][]string, len(header))
	for i, h := range header {
		columns[i] = df.Col(h).Records()
	}
	return NewTable(name, path, header, columns), nil
}
