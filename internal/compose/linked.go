package compose

import (
	"fmt"
	"math"

	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/registry"
)

// Chart IDs of the linked detail and scatter composition.
const (
	ChartDetail  = "detail"
	ChartScatter = "scatter"
)

const (
	fieldAvailability = "availability_90"
	fieldPrice        = "price"
	fieldScore        = "review_scores_rating"
)

// BrushFilter is the predicate a brush on the price / review score scatter implies.
type BrushFilter struct {
	priceMin, priceMax float64
	scoreMin, scoreMax float64
	active             bool
}

func NewBrushFilter(b *models.Brush) BrushFilter {
	f := BrushFilter{
		priceMin: math.Inf(-1), priceMax: math.Inf(1),
		scoreMin: math.Inf(-1), scoreMax: math.Inf(1),
	}
	if b.Empty() {
		return f
	}
	f.active = true
	if b.PriceMin != nil {
		f.priceMin = *b.PriceMin
	}
	if b.PriceMax != nil {
		f.priceMax = *b.PriceMax
	}
	if b.ScoreMin != nil {
		f.scoreMin = *b.ScoreMin
	}
	if b.ScoreMax != nil {
		f.scoreMax = *b.ScoreMax
	}
	return f
}

// Active reports whether any bound is set.
func (f BrushFilter) Active() bool { return f.active }

// Keep reports whether a point lies inside the brush. Bounds are inclusive.
func (f BrushFilter) Keep(price, score float64) bool {
	return price >= f.priceMin && price <= f.priceMax && score >= f.scoreMin && score <= f.scoreMax
}

// Rows returns the rows of t inside the brush. An inactive brush keeps every row; an
// active one drops rows without a price or score.
func (f BrushFilter) Rows(t *engine.Table) (*engine.Table, error) {
	if !f.active {
		return t, nil
	}
	cols, err := columns(t, fieldPrice, fieldScore)
	if err != nil {
		return nil, err
	}
	return t.Where(func(i int) bool {
		p, ok := cols[0].Amount(i)
		if !ok {
			return false
		}
		s, ok := cols[1].Float(i)
		return ok && f.Keep(p, s)
	}), nil
}

// LinkedDetailScatter draws availability in 90 days against field, restricted to the
// brushed rows, beside a price / review score scatter that carries the brush.
func (c *Composer) LinkedDetailScatter(t *engine.Table, field, display string, kind registry.Kind, brush *models.Brush) (models.View, error) {
	cols, err := columns(t, fieldAvailability, fieldPrice, fieldScore, field)
	if err != nil {
		return models.View{}, err
	}
	if err := t.NonEmpty(); err != nil {
		return c.empty(models.StrategyLinkedDetailScatter, display, err, ChartDetail, ChartScatter), nil
	}

	filter := NewBrushFilter(brush)
	scatter, scatterRows := c.scatter(cols[1], cols[2], filter)

	detail, err := filter.Rows(t)
	if err != nil {
		return models.View{}, err
	}

	var detailChart models.Chart
	switch {
	case detail.Len() == 0:
		detailChart = Placeholder(ChartDetail, display, "No listings inside the selection")
	case kind == registry.Categorical:
		detailChart = c.density(t, detail, field, display)
	default:
		detailChart = c.detailScatter(detail, field, display)
	}

	return models.View{
		Strategy: models.StrategyLinkedDetailScatter,
		Charts:   []models.Chart{detailChart, scatter},
		Brush:    brush,
		Stats: &models.ViewStats{
			Rows:        t.Len(),
			DetailRows:  detail.Len(),
			ScatterRows: scatterRows,
		},
	}, nil
}

func (c *Composer) scatter(prices, scores *engine.Column, filter BrushFilter) (models.Chart, int) {
	pts := []models.Point{}
	for i := 0; i < prices.Len(); i++ {
		p, ok := prices.Amount(i)
		if !ok || p >= c.opts.ScatterPriceCap {
			continue
		}
		s, ok := scores.Float(i)
		if !ok {
			continue
		}
		pts = append(pts, models.Point{
			X:       p,
			Y:       s,
			Tooltip: fmt.Sprintf("%s, review score %g", c.money(p), s),
			Outside: filter.Active() && !filter.Keep(p, s),
		})
	}
	return models.Chart{
		ID:    ChartScatter,
		Mark:  models.MarkCircle,
		Title: "Price and Review Score",
		X:     models.Axis{Field: fieldPrice, Title: "Price", Kind: models.AxisQuantitative},
		Y:     models.Axis{Field: fieldScore, Title: "Review Score", Kind: models.AxisQuantitative},
		Series: []models.Series{{
			Name:   "Listings",
			Color:  c.color(0),
			Points: pts,
		}},
	}, len(pts)
}

// density estimates availability per category. Categories come from the unfiltered
// table so colours stay put while brushing.
func (c *Composer) density(all, detail *engine.Table, field, display string) models.Chart {
	allCat, _ := all.Column(field)
	cat, _ := detail.Column(field)
	avail, _ := detail.Column(fieldAvailability)

	categories := engine.Categories(allCat)
	samples := make(map[string][]float64, len(categories))
	for i := 0; i < detail.Len(); i++ {
		if cat.Missing(i) {
			continue
		}
		if a, ok := avail.Float(i); ok {
			samples[cat.Text(i)] = append(samples[cat.Text(i)], a)
		}
	}

	grid := engine.Grid(0, 90, c.opts.DensityPoints)
	chart := models.Chart{
		ID:     ChartDetail,
		Mark:   models.MarkArea,
		Title:  "Availability in 90 Days by " + display,
		X:      models.Axis{Field: fieldAvailability, Title: "Availability in 90 Days", Kind: models.AxisQuantitative},
		Y:      models.Axis{Title: "Density", Kind: models.AxisQuantitative},
		Legend: display,
	}
	for i, name := range categories {
		s := samples[name]
		if len(s) == 0 {
			continue
		}
		dens := engine.Density(s, grid)
		pts := make([]models.Point, len(grid))
		for g, x := range grid {
			pts[g] = models.Point{X: x, Y: dens[g], Label: name}
		}
		chart.Series = append(chart.Series, models.Series{Name: name, Color: c.color(i), Points: pts})
	}
	return chart
}

func (c *Composer) detailScatter(detail *engine.Table, field, display string) models.Chart {
	x, _ := detail.Column(field)
	avail, _ := detail.Column(fieldAvailability)

	pts := []models.Point{}
	for i := 0; i < detail.Len(); i++ {
		v, ok := x.Amount(i)
		if !ok {
			continue
		}
		a, ok := avail.Float(i)
		if !ok {
			continue
		}
		pts = append(pts, models.Point{X: v, Y: a, Tooltip: fmt.Sprintf("%s %g, %g days", display, v, a)})
	}
	return models.Chart{
		ID:     ChartDetail,
		Mark:   models.MarkCircle,
		Title:  "Availability in 90 Days by " + display,
		X:      models.Axis{Field: field, Title: display, Kind: models.AxisQuantitative},
		Y:      models.Axis{Field: fieldAvailability, Title: "Availability in 90 Days", Kind: models.AxisQuantitative},
		Series: []models.Series{{Name: display, Color: c.color(0), Points: pts}},
	}
}
