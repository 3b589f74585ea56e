package engine

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

// Categories returns the distinct present values of the given columns in natural order.
func Categories(cols ...*Column) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range cols {
		if c == nil {
			continue
		}
		for i := range c.IDs {
			if c.Missing(i) {
				continue
			}
			s := c.Text(i)
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	SortCategories(out)
	return out
}

// SortCategories sorts ascending: numerically when every value is a number, else as strings.
func SortCategories(vals []string) {
	nums := make(map[string]float64, len(vals))
	for _, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			sort.Strings(vals)
			return
		}
		nums[v] = f
	}
	sort.SliceStable(vals, func(i, j int) bool {
		if nums[vals[i]] == nums[vals[j]] {
			return vals[i] < vals[j]
		}
		return nums[vals[i]] < nums[vals[j]]
	})
}

// CountBy counts rows per present value of c.
func CountBy(c *Column) map[string]int {
	counts := make(map[string]int)
	for i := range c.IDs {
		if !c.Missing(i) {
			counts[c.Text(i)]++
		}
	}
	return counts
}

// Grid returns n evenly spaced points from lo to hi inclusive.
func Grid(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Bandwidth is Scott's rule of thumb for a Gaussian kernel.
func Bandwidth(samples []float64) float64 {
	if len(samples) < 2 {
		return 1
	}
	_, sd := stat.MeanStdDev(samples, nil)
	h := 1.06 * sd * math.Pow(float64(len(samples)), -0.2)
	if h <= 0 || math.IsNaN(h) {
		return 1
	}
	return h
}

// Density evaluates a Gaussian kernel density estimate of samples at each grid point.
func Density(samples, grid []float64) []float64 {
	out := make([]float64, len(grid))
	if len(samples) == 0 {
		return out
	}
	h := Bandwidth(samples)
	norm := 1 / (float64(len(samples)) * h * math.Sqrt(2*math.Pi))
	for g, x := range grid {
		var sum float64
		for _, s := range samples {
			u := (x - s) / h
			sum += math.Exp(-0.5 * u * u)
		}
		out[g] = sum * norm
	}
	return out
}

// Bin is one histogram bucket [Min, Max).
type Bin struct {
	Min, Max float64
	Count    float64
}

// Histogram splits values into n equal-width bins.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	h, err := plotter.NewHist(plotter.Values(values), n)
	if err != nil {
		return nil
	}
	bins := make([]Bin, len(h.Bins))
	for i, b := range h.Bins {
		bins[i] = Bin{Min: b.Min, Max: b.Max, Count: b.Weight}
	}
	return bins
}
