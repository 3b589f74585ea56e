package compose

import (
	"math"
	"reflect"
	"testing"

	"dashboard/internal/models"
	"dashboard/internal/testutils"
)

func guestsPtr(n int) *int { return &n }

func TestAccommodates(t *testing.T) {
	got := Accommodates(testutils.Listings())
	if !reflect.DeepEqual(got, []int{2, 4}) {
		t.Errorf("Expected [2 4], got %v", got)
	}
}

func TestMapFiltersByGuests(t *testing.T) {
	// 1. Setup
	c := newComposer()

	// 2. Run
	view, err := c.Map(testutils.Listings(), guestsPtr(2))
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	// 3. Assertions
	chart := chartByID(t, view, ChartMap)
	if view.Stats.Rows != 2 {
		t.Errorf("Expected 2 listings for 2 guests, got %d", view.Stats.Rows)
	}
	if len(chart.Series) != 1 || chart.Series[0].Name != "Mitte" {
		t.Errorf("Expected only Mitte, got %+v", chart.Series)
	}
	if chart.Center == nil || math.Abs(chart.Center.X-13.395) > 1e-9 {
		t.Errorf("Expected centre on the mean position, got %+v", chart.Center)
	}
	if chart.Title != "2 listings for 2 guests" {
		t.Errorf("Unexpected title %q", chart.Title)
	}
}

func TestMapNoMatches(t *testing.T) {
	view, err := newComposer().Map(testutils.Listings(), guestsPtr(16))
	if err != nil {
		t.Fatalf("No matches should not fail, got %v", err)
	}
	if view.Charts[0].Mark != models.MarkPlaceholder {
		t.Errorf("Expected placeholder, got %s", view.Charts[0].Mark)
	}
}

func TestHistogramParsesCurrency(t *testing.T) {
	view, err := newComposer().Histogram(testutils.Listings(), nil)
	if err != nil {
		t.Fatalf("Histogram failed: %v", err)
	}

	pts := chartByID(t, view, ChartHistogram).Series[0].Points
	var total float64
	for _, p := range pts {
		total += p.Y
	}
	if total != 3 {
		t.Errorf("Expected 3 listings across bins, got %v", total)
	}
	if last := pts[len(pts)-1]; math.Abs(last.X2-1234.50) > 1e-6 {
		t.Errorf("Expected the top bin to end at 1234.50, got %v", last.X2)
	}
}
