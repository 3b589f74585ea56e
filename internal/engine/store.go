package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Column holds one field in two encodings: dictionary-encoded text and parsed numbers.
type Column struct {
	Name string

	// Dictionary Encoded IDs (0..N), -1 marks a missing cell
	IDs  []int32
	Dict []string

	// Numeric view, NaN where the cell is missing or not a number
	Values []float64
}

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.IDs) }

// Missing reports whether row i has no value.
func (c *Column) Missing(i int) bool { return c.IDs[i] < 0 }

// Text returns row i as a string, "" when missing.
func (c *Column) Text(i int) string {
	if id := c.IDs[i]; id >= 0 {
		return c.Dict[id]
	}
	return ""
}

// Float returns row i as a number.
func (c *Column) Float(i int) (float64, bool) {
	v := c.Values[i]
	return v, !math.IsNaN(v)
}

// Amount is Float with a fallback to currency strings ("$1,234.50").
func (c *Column) Amount(i int) (float64, bool) {
	if v, ok := c.Float(i); ok {
		return v, true
	}
	if c.Missing(i) {
		return 0, false
	}
	v, err := ParseCurrency(c.Text(i))
	return v, err == nil
}

// Numeric reports whether every present cell parsed as a number.
func (c *Column) Numeric() bool {
	seen := false
	for i, id := range c.IDs {
		if id < 0 {
			continue
		}
		if math.IsNaN(c.Values[i]) {
			return false
		}
		seen = true
	}
	return seen
}

// Table is an immutable named dataset held in Struct-of-Arrays format.
type Table struct {
	Name   string
	Source string

	rows  int
	order []string
	cols  map[string]*Column
}

var missingMarkers = map[string]bool{
	"": true, "NA": true, "NaN": true, "nan": true, "null": true, "NULL": true, "None": true, "<nil>": true,
}

// NewTable builds a table from column-major text cells. All columns must have equal length.
func NewTable(name, source string, header []string, columns [][]string) *Table {
	t := &Table{
		Name:   name,
		Source: source,
		order:  make([]string, 0, len(header)),
		cols:   make(map[string]*Column, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		var cells []string
		if i < len(columns) {
			cells = columns[i]
		}
		if i == 0 {
			t.rows = len(cells)
		}
		t.order = append(t.order, h)
		t.cols[h] = encodeColumn(h, cells)
	}
	return t
}

// NewTableFromRows is NewTable for row-major records.
func NewTableFromRows(name, source string, header []string, rows [][]string) *Table {
	columns := make([][]string, len(header))
	for c := range header {
		columns[c] = make([]string, len(rows))
		for r, row := range rows {
			if c < len(row) {
				columns[c][r] = row[c]
			}
		}
	}
	return NewTable(name, source, header, columns)
}

func encodeColumn(name string, cells []string) *Column {
	col := &Column{
		Name:   name,
		IDs:    make([]int32, len(cells)),
		Values: make([]float64, len(cells)),
	}
	dict := make(map[string]int32)
	for i, raw := range cells {
		s := strings.TrimSpace(raw)
		if missingMarkers[s] {
			col.IDs[i] = -1
			col.Values[i] = math.NaN()
			continue
		}
		id, ok := dict[s]
		if !ok {
			id = int32(len(col.Dict))
			col.Dict = append(col.Dict, s)
			dict[s] = id
		}
		col.IDs[i] = id
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
			col.Values[i] = f
		} else {
			col.Values[i] = math.NaN()
		}
	}
	return col
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// NonEmpty returns an EmptyDatasetError when t has no rows.
func (t *Table) NonEmpty() error {
	if t.rows == 0 {
		return &EmptyDatasetError{Dataset: t.Name}
	}
	return nil
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string { return append([]string(nil), t.order...) }

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.cols[name]
	return c, ok
}

// MissingColumn returns the first of names the table lacks.
func (t *Table) MissingColumn(names ...string) (string, bool) {
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			return n, true
		}
	}
	return "", false
}

// Take returns a new table holding rows idx of t, in that order.
// Dictionaries are shared with t; they are never written after load.
func (t *Table) Take(idx []int) *Table {
	out := &Table{
		Name:   t.Name,
		Source: t.Source,
		rows:   len(idx),
		order:  t.order,
		cols:   make(map[string]*Column, len(t.cols)),
	}
	for name, c := range t.cols {
		nc := &Column{
			Name:   name,
			Dict:   c.Dict,
			IDs:    make([]int32, len(idx)),
			Values: make([]float64, len(idx)),
		}
		for j, i := range idx {
			nc.IDs[j] = c.IDs[i]
			nc.Values[j] = c.Values[i]
		}
		out.cols[name] = nc
	}
	return out
}

// Where returns the rows for which keep is true.
func (t *Table) Where(keep func(i int) bool) *Table {
	idx := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return t.Take(idx)
}

// DropMissing returns the rows where field has a value.
func (t *Table) DropMissing(field string) *Table {
	c, ok := t.cols[field]
	if !ok {
		return t
	}
	return t.Where(func(i int) bool { return !c.Missing(i) })
}

// TermFrequencies maps a word to how often it occurs.
type TermFrequencies map[string]float64

// Store holds every dataset for the process lifetime. It is read-only after Load.
type Store struct {
	tables map[string]*Table
	terms  map[string]TermFrequencies
}

// NewStore wraps already loaded tables and term maps.
func NewStore(tables []*Table, terms map[string]TermFrequencies) *Store {
	s := &Store{
		tables: make(map[string]*Table, len(tables)),
		terms:  make(map[string]TermFrequencies, len(terms)),
	}
	for _, t := range tables {
		s.tables[t.Name] = t
	}
	for name, tf := range terms {
		s.terms[name] = tf
	}
	return s
}

func (s *Store) Table(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

func (s *Store) Terms(name string) (TermFrequencies, bool) {
	tf, ok := s.terms[name]
	return tf, ok
}

// TableNames returns the sorted table names.
func (s *Store) TableNames() []string {
	names := make([]string, 0, len(s.tables))
	for n := range s.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
