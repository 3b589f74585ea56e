package compose

import (
	"testing"

	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/registry"
	"dashboard/internal/testutils"
)

func bound(v float64) *float64 { return &v }

func TestBrushFilter(t *testing.T) {
	f := NewBrushFilter(&models.Brush{PriceMin: bound(0), PriceMax: bound(100)})
	if !f.Active() {
		t.Fatal("Brush with bounds should be active")
	}
	if !f.Keep(100, 50) || f.Keep(150, 90) {
		t.Error("Price bounds are inclusive and the score is open")
	}
	if NewBrushFilter(nil).Active() || NewBrushFilter(&models.Brush{}).Active() {
		t.Error("Empty brush should be inactive")
	}
}

func TestLinkedBrushExcludesRows(t *testing.T) {
	// 1. Setup
	tbl := testutils.Availability()
	c := newComposer()

	// 2. Run
	open, err := c.LinkedDetailScatter(tbl, "host_is_superhost", "Superhost", registry.Categorical, nil)
	if err != nil {
		t.Fatalf("LinkedDetailScatter failed: %v", err)
	}
	brush := &models.Brush{PriceMin: bound(0), PriceMax: bound(100)}
	brushed, err := c.LinkedDetailScatter(tbl, "host_is_superhost", "Superhost", registry.Categorical, brush)
	if err != nil {
		t.Fatalf("LinkedDetailScatter failed: %v", err)
	}

	// 3. Assertions
	// Prices are 50, 80, 150 and 650: two rows fall outside [0, 100]
	if open.Stats.DetailRows != 4 {
		t.Errorf("Expected 4 detail rows without brush, got %d", open.Stats.DetailRows)
	}
	if got := open.Stats.DetailRows - brushed.Stats.DetailRows; got != 2 {
		t.Errorf("Expected the brush to remove 2 rows, removed %d", got)
	}
	if brushed.Brush != brush {
		t.Error("View should carry the brush")
	}

	scatter := chartByID(t, brushed, ChartScatter)
	if brushed.Stats.ScatterRows != 3 {
		t.Errorf("Expected listings under the price cap only, got %d", brushed.Stats.ScatterRows)
	}
	for _, p := range scatter.Series[0].Points {
		if p.Outside != (p.X > 100) {
			t.Errorf("Point at price %v: outside=%v", p.X, p.Outside)
		}
	}
}

func TestLinkedCategoricalDensity(t *testing.T) {
	view, err := newComposer().LinkedDetailScatter(testutils.Availability(),
		"neighbourhood_group_cleansed", "Neighborhood", registry.Categorical, nil)
	if err != nil {
		t.Fatalf("LinkedDetailScatter failed: %v", err)
	}

	detail := chartByID(t, view, ChartDetail)
	if detail.Mark != models.MarkArea {
		t.Errorf("Expected density area, got %s", detail.Mark)
	}
	if len(detail.Series) != 2 {
		t.Fatalf("Expected one density per neighbourhood, got %d", len(detail.Series))
	}
	for _, s := range detail.Series {
		if len(s.Points) != DefaultOptions().DensityPoints {
			t.Errorf("Expected %d grid points, got %d", DefaultOptions().DensityPoints, len(s.Points))
		}
		if s.Points[0].X != 0 || s.Points[len(s.Points)-1].X != 90 {
			t.Errorf("Grid should span 0..90, got %v..%v", s.Points[0].X, s.Points[len(s.Points)-1].X)
		}
	}
}

func TestLinkedQuantitativeScatter(t *testing.T) {
	view, err := newComposer().LinkedDetailScatter(testutils.Availability(),
		"number_of_reviews", "Number of Reviews", registry.Quantitative, nil)
	if err != nil {
		t.Fatalf("LinkedDetailScatter failed: %v", err)
	}

	detail := chartByID(t, view, ChartDetail)
	if detail.Mark != models.MarkCircle || len(detail.Series[0].Points) != 4 {
		t.Errorf("Expected 4 circles, got %s with %d points", detail.Mark, len(detail.Series[0].Points))
	}
}

func TestLinkedEmptyBrushSelection(t *testing.T) {
	brush := &models.Brush{PriceMin: bound(1000)}
	view, err := newComposer().LinkedDetailScatter(testutils.Availability(),
		"host_is_superhost", "Superhost", registry.Categorical, brush)
	if err != nil {
		t.Fatalf("Empty selection should not fail, got %v", err)
	}
	if chartByID(t, view, ChartDetail).Mark != models.MarkPlaceholder {
		t.Error("Expected placeholder detail chart")
	}
	if chartByID(t, view, ChartScatter).Mark != models.MarkCircle {
		t.Error("Scatter should still be drawn")
	}
}

func TestLinkedEmptyTable(t *testing.T) {
	empty := testutils.Availability().Where(func(int) bool { return false })
	view, err := newComposer().LinkedDetailScatter(empty, "price", "Price", registry.Quantitative, nil)
	if err != nil {
		t.Fatalf("Empty dataset should not fail, got %v", err)
	}
	for _, c := range view.Charts {
		if c.Mark != models.MarkPlaceholder {
			t.Errorf("Expected placeholder, got %s", c.Mark)
		}
	}
}

func TestBrushRowsKeepsAllWhenInactive(t *testing.T) {
	tbl := engine.NewTableFromRows("t", "memory", []string{"price", "review_scores_rating"},
		[][]string{{"NA", "90"}})
	rows, err := NewBrushFilter(nil).Rows(tbl)
	if err != nil || rows.Len() != 1 {
		t.Errorf("Expected 1 row, got %v (%v)", rows, err)
	}
}
