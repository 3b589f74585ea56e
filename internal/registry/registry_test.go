package registry

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"dashboard/internal/engine"
	"dashboard/internal/testutils"
)

func builtins() []struct {
	reg     *Registry
	choices []string
} {
	return []struct {
		reg     *Registry
		choices []string
	}{
		{Price(), PriceChoices},
		{Availability(), AvailabilityChoices},
		{Comments(), CommentChoices},
	}
}

// Every choice a selectbox offers must resolve, and every descriptor must be offered.
func TestChoicesMatchRegistries(t *testing.T) {
	for _, b := range builtins() {
		for _, label := range b.choices {
			d, err := b.reg.Resolve(label)
			if err != nil {
				t.Errorf("%s: Resolve(%q) failed: %v", b.reg.explorer, label, err)
				continue
			}
			if d.Label != label {
				t.Errorf("%s: Resolve(%q).Label = %q", b.reg.explorer, label, d.Label)
			}
		}

		offered := make(map[string]bool)
		for _, c := range b.choices {
			offered[c] = true
		}
		for _, l := range b.reg.Labels() {
			if !offered[l] {
				t.Errorf("%s: descriptor %q is not reachable from any choice", b.reg.explorer, l)
			}
		}
		if len(b.reg.Labels()) != len(b.choices) {
			t.Errorf("%s: %d descriptors for %d choices", b.reg.explorer, len(b.reg.Labels()), len(b.choices))
		}
	}
}

func TestRegistriesValidateAgainstStore(t *testing.T) {
	store := testutils.Store()
	for _, b := range builtins() {
		if err := b.reg.Validate(store); err != nil {
			t.Errorf("Validate: %v", err)
		}
	}
}

func TestValidateReportsDrift(t *testing.T) {
	r := MustNew("test", Descriptor{Label: "Beds", Dataset: engine.TablePriceBeds, Field: "bedrooms"})
	err := r.Validate(testutils.Store())
	if err == nil || !strings.Contains(err.Error(), "bedrooms") {
		t.Errorf("Expected missing column error, got %v", err)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Price().Resolve("Square Meters")
	var ude *UnknownDimensionError
	if !errors.As(err, &ude) {
		t.Fatalf("Expected UnknownDimensionError, got %v", err)
	}
	if ude.Explorer != ExplorerPrice || ude.Label != "Square Meters" {
		t.Errorf("Unexpected error fields %+v", ude)
	}
}

func TestNewRejectsDuplicateLabels(t *testing.T) {
	_, err := New("test", Descriptor{Label: "A"}, Descriptor{Label: "A"})
	if err == nil {
		t.Fatal("Expected duplicate label error")
	}
	if trace := fmt.Sprintf("%+v", err); !strings.Contains(trace, "registry.New") {
		t.Errorf("Expected a stack trace naming registry.New, got %s", trace)
	}
	_, err = New("test", Descriptor{})
	if err == nil {
		t.Error("Expected empty label error")
	}
}

func TestSelectIsPure(t *testing.T) {
	r := Availability()
	for _, label := range AvailabilityChoices {
		a, err := Select(r, label)
		if err != nil {
			t.Fatalf("Select(%q): %v", label, err)
		}
		b, _ := Select(r, label)
		if a != b {
			t.Errorf("Select(%q) returned %+v then %+v", label, a, b)
		}
	}
}

func TestSelectResolvesFields(t *testing.T) {
	v, err := Select(Availability(), "Host Acceptance Rate")
	if err != nil {
		t.Fatal(err)
	}
	if v.Dataset != engine.TableAvailability90 || v.Field != "host_acceptance_rate" || v.Kind != Quantitative {
		t.Errorf("Unexpected view %+v", v)
	}

	v, _ = Select(Price(), "Superhost")
	if v.DistributionDataset() != engine.TableListings {
		t.Errorf("Price distribution should count listings, got %s", v.DistributionDataset())
	}
	v, _ = Select(Availability(), "Superhost")
	if v.DistributionDataset() != engine.TableAvailability90 {
		t.Errorf("Default distribution should be the dataset, got %s", v.DistributionDataset())
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"nominal", Categorical},
		{"N", Categorical},
		{"ordinal", Categorical},
		{"Q", Quantitative},
		{"quantitative", Quantitative},
		{" q ", Quantitative},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if err != nil || got != tt.expected {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", tt.input, got, err, tt.expected)
		}
	}
	if _, err := ParseKind("temporal"); err == nil {
		t.Error("ParseKind(temporal) should fail")
	}
}

func TestBuiltinKinds(t *testing.T) {
	quantitative := map[string]bool{
		"Host Acceptance Rate": true,
		"Number of Reviews":    true,
		"Price":                true,
		"Review Score":         true,
	}
	r := Availability()
	for _, label := range r.Labels() {
		d, _ := r.Resolve(label)
		if got := d.Kind == Quantitative; got != quantitative[label] {
			t.Errorf("%s: unexpected kind %s", label, d.Kind)
		}
	}

	r = Price()
	for _, label := range r.Labels() {
		if d, _ := r.Resolve(label); d.Kind != Categorical {
			t.Errorf("%s: expected nominal, got %s", label, d.Kind)
		}
	}
}

func TestMustKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mustKind(T) should panic")
		}
	}()
	mustKind("T")
}
