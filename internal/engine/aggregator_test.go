package engine

import (
	"math"
	"reflect"
	"testing"
)

func TestCategoriesOrder(t *testing.T) {
	tests := []struct {
		cells    []string
		expected []string
	}{
		{[]string{"f", "t", "f"}, []string{"f", "t"}},
		{[]string{"10", "2", "1", "NA"}, []string{"1", "2", "10"}},
		{[]string{"Pankow", "Mitte", "10"}, []string{"10", "Mitte", "Pankow"}},
		{[]string{"1.5", "1", "0.5"}, []string{"0.5", "1", "1.5"}},
	}

	for _, tt := range tests {
		tbl := NewTable("t", "memory", []string{"c"}, [][]string{tt.cells})
		c, _ := tbl.Column("c")
		got := Categories(c)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Categories(%v) = %v, want %v", tt.cells, got, tt.expected)
		}
	}
}

func TestCountBy(t *testing.T) {
	c, _ := sampleTable().Column("cat")
	counts := CountBy(c)
	if counts["A"] != 2 || counts["B"] != 1 || len(counts) != 2 {
		t.Errorf("Unexpected counts %v", counts)
	}
}

func TestDensityIntegratesToOne(t *testing.T) {
	samples := []float64{20, 25, 30, 45, 50, 52, 60}
	grid := Grid(-100, 200, 3001)
	dens := Density(samples, grid)

	step := grid[1] - grid[0]
	var area float64
	for _, d := range dens {
		area += d * step
	}
	if math.Abs(area-1) > 0.01 {
		t.Errorf("Expected density area ~1, got %f", area)
	}

	// Peak should be near the bulk of samples, not at the edges
	if dens[0] > dens[len(dens)/2] {
		t.Error("Density at the edge exceeds density at the centre")
	}
}

func TestDensityEmpty(t *testing.T) {
	for _, d := range Density(nil, Grid(0, 90, 10)) {
		if d != 0 {
			t.Fatal("Expected zero density for no samples")
		}
	}
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{1, 2, 2, 3, 9, 10}, 3)
	if len(bins) != 3 {
		t.Fatalf("Expected 3 bins, got %d", len(bins))
	}
	var total float64
	for _, b := range bins {
		total += b.Count
	}
	if total != 6 {
		t.Errorf("Expected 6 values in bins, got %v", total)
	}
	if bins[0].Min != 1 || bins[2].Max != 10 {
		t.Errorf("Unexpected bin range %v..%v", bins[0].Min, bins[2].Max)
	}
	if Histogram(nil, 3) != nil {
		t.Error("Expected no bins for no values")
	}
}
