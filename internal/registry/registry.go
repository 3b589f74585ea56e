// Package registry maps the labels offered to users onto the datasets and fields that
// back each chart.
package registry

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"dashboard/internal/engine"
)

// Kind tells the composer whether a field is drawn with discrete colours or on a
// continuous axis.
type Kind int

const (
	Categorical Kind = iota
	Quantitative
)

func (k Kind) String() string {
	if k == Quantitative {
		return "quantitative"
	}
	return "nominal"
}

// ParseKind accepts the encoding markers used by chart grammars.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nominal", "n", "ordinal", "o", "categorical":
		return Categorical, nil
	case "quantitative", "q":
		return Quantitative, nil
	}
	return Categorical, errors.Errorf("unknown field kind %q", s)
}

// TermGroup names a term-frequency map and the caption drawn under it.
type TermGroup struct {
	Terms   string
	Caption string
}

// Descriptor describes one selectable dimension.
type Descriptor struct {
	Label       string
	Dataset     string
	Field       string
	Kind        Kind
	DisplayName string

	// Distribution names the table counted by the distribution view; "" means Dataset.
	Distribution string

	// DropMissing removes rows without a Field value before composing.
	DropMissing bool

	// High and Low are the two term maps shown for a comment selection.
	High, Low TermGroup
}

// UnknownDimensionError reports a label with no registry entry.
type UnknownDimensionError struct {
	Explorer string
	Label    string
}

func (e *UnknownDimensionError) Error() string {
	return fmt.Sprintf("%s explorer has no dimension %q", e.Explorer, e.Label)
}

// Registry is an ordered, immutable set of descriptors with unique labels.
type Registry struct {
	explorer string
	descs    []Descriptor
	index    map[string]int
}

// New builds a registry. Labels must be unique and non-empty.
func New(explorer string, descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		explorer: explorer,
		descs:    append([]Descriptor(nil), descs...),
		index:    make(map[string]int, len(descs)),
	}
	for i, d := range descs {
		if d.Label == "" {
			return nil, errors.Errorf("%s explorer: descriptor %d has no label", explorer, i)
		}
		if _, dup := r.index[d.Label]; dup {
			return nil, errors.Errorf("%s explorer: duplicate label %q", explorer, d.Label)
		}
		r.index[d.Label] = i
	}
	return r, nil
}

// MustNew is New that panics; used for the built-in registries.
func MustNew(explorer string, descs ...Descriptor) *Registry {
	r, err := New(explorer, descs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the descriptor for label.
func (r *Registry) Resolve(label string) (Descriptor, error) {
	i, ok := r.index[label]
	if !ok {
		return Descriptor{}, &UnknownDimensionError{Explorer: r.explorer, Label: label}
	}
	return r.descs[i], nil
}

// Labels returns the labels in registry order.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.descs))
	for i, d := range r.descs {
		out[i] = d.Label
	}
	return out
}

// Validate checks every descriptor against a loaded store, so that a registry that
// drifted from the data fails at startup instead of on first use.
func (r *Registry) Validate(s *engine.Store) error {
	var problems []string
	for _, d := range r.descs {
		if d.Dataset != "" {
			if err := checkField(s, d.Dataset, d.Field); err != nil {
				problems = append(problems, fmt.Sprintf("%q: %v", d.Label, err))
			}
		}
		if d.Distribution != "" {
			if err := checkField(s, d.Distribution, d.Field); err != nil {
				problems = append(problems, fmt.Sprintf("%q distribution: %v", d.Label, err))
			}
		}
		for _, g := range []TermGroup{d.High, d.Low} {
			if g.Terms == "" {
				continue
			}
			if _, ok := s.Terms(g.Terms); !ok {
				problems = append(problems, fmt.Sprintf("%q: no term map %s", d.Label, g.Terms))
			}
		}
	}
	if len(problems) > 0 {
		return errors.Errorf("%s explorer: %s", r.explorer, strings.Join(problems, "; "))
	}
	return nil
}

func checkField(s *engine.Store, table, field string) error {
	t, ok := s.Table(table)
	if !ok {
		return errors.Errorf("no table %s", table)
	}
	if _, ok := t.Column(field); !ok {
		return errors.Errorf("table %s has no column %s", table, field)
	}
	return nil
}
