package compose

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"dashboard/internal/engine"
	"dashboard/internal/models"
)

// Chart IDs of the listings sections.
const (
	ChartMap       = "map"
	ChartHistogram = "histogram"
)

const (
	fieldLongitude    = "longitude"
	fieldLatitude     = "latitude"
	fieldAccommodates = "accommodates"
	fieldNeighborhood = "neighbourhood_group_cleansed"
)

// Accommodates returns the distinct guest counts of the listings, ascending.
func Accommodates(listings *engine.Table) []int {
	col, ok := listings.Column(fieldAccommodates)
	if !ok {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	for _, v := range engine.Categories(col) {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func guests(n *int) string {
	if n == nil {
		return "any number of guests"
	}
	if *n == 1 {
		return "1 guest"
	}
	return fmt.Sprintf("%d guests", *n)
}

// byAccommodates keeps listings for exactly n guests; nil keeps all.
func byAccommodates(listings *engine.Table, n *int) (*engine.Table, error) {
	cols, err := columns(listings, fieldAccommodates)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return listings, nil
	}
	want := float64(*n)
	return listings.Where(func(i int) bool {
		v, ok := cols[0].Float(i)
		return ok && v == want
	}), nil
}

// Map places the listings accommodating the given number of guests, coloured by
// neighbourhood group.
func (c *Composer) Map(listings *engine.Table, accommodates *int) (models.View, error) {
	if _, err := columns(listings, fieldLongitude, fieldLatitude, fieldPrice, fieldNeighborhood); err != nil {
		return models.View{}, err
	}
	rows, err := byAccommodates(listings, accommodates)
	if err != nil {
		return models.View{}, err
	}
	if rows.Len() == 0 {
		return placeholderView(models.StrategyMap, "Listings", noData(guests(accommodates)), ChartMap), nil
	}

	all, _ := listings.Column(fieldNeighborhood)
	lon, _ := rows.Column(fieldLongitude)
	lat, _ := rows.Column(fieldLatitude)
	price, _ := rows.Column(fieldPrice)
	hood, _ := rows.Column(fieldNeighborhood)

	categories := engine.Categories(all)
	index := make(map[string]int, len(categories))
	for i, cat := range categories {
		index[cat] = i
	}

	points := make([][]models.Point, len(categories))
	var sumX, sumY float64
	placed := 0
	for i := 0; i < rows.Len(); i++ {
		x, okX := lon.Float(i)
		y, okY := lat.Float(i)
		if !okX || !okY || hood.Missing(i) {
			continue
		}
		pt := models.Point{X: x, Y: y, Label: hood.Text(i)}
		if p, ok := price.Amount(i); ok {
			pt.Tooltip = fmt.Sprintf("%s, %s", hood.Text(i), c.money(p))
		}
		k := index[hood.Text(i)]
		points[k] = append(points[k], pt)
		sumX += x
		sumY += y
		placed++
	}

	chart := models.Chart{
		ID:     ChartMap,
		Mark:   models.MarkGeo,
		Title:  fmt.Sprintf("%s listings for %s", humanize.Comma(int64(placed)), guests(accommodates)),
		X:      models.Axis{Field: fieldLongitude, Title: "Longitude", Kind: models.AxisQuantitative},
		Y:      models.Axis{Field: fieldLatitude, Title: "Latitude", Kind: models.AxisQuantitative},
		Legend: "Neighborhood",
	}
	if placed > 0 {
		chart.Center = &models.Point{X: sumX / float64(placed), Y: sumY / float64(placed)}
	}
	for i, cat := range categories {
		if len(points[i]) == 0 {
			continue
		}
		chart.Series = append(chart.Series, models.Series{Name: cat, Color: c.color(i), Points: points[i]})
	}

	return models.View{
		Strategy: models.StrategyMap,
		Charts:   []models.Chart{chart},
		Stats:    &models.ViewStats{Rows: placed},
	}, nil
}

// Histogram bins the prices of the listings accommodating the given number of guests.
func (c *Composer) Histogram(listings *engine.Table, accommodates *int) (models.View, error) {
	if _, err := columns(listings, fieldPrice); err != nil {
		return models.View{}, err
	}
	rows, err := byAccommodates(listings, accommodates)
	if err != nil {
		return models.View{}, err
	}
	price, _ := rows.Column(fieldPrice)

	var values []float64
	for i := 0; i < rows.Len(); i++ {
		if p, ok := price.Amount(i); ok {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return placeholderView(models.StrategyHistogram, "Price", noData(guests(accommodates)), ChartHistogram), nil
	}

	pts := []models.Point{}
	for _, b := range engine.Histogram(values, c.opts.HistogramBins) {
		pts = append(pts, models.Point{
			X:       b.Min,
			X2:      b.Max,
			Y:       b.Count,
			Tooltip: fmt.Sprintf("%s to %s: %s listings", c.money(b.Min), c.money(b.Max), humanize.Comma(int64(b.Count))),
		})
	}
	return models.View{
		Strategy: models.StrategyHistogram,
		Charts: []models.Chart{{
			ID:     ChartHistogram,
			Mark:   models.MarkHistogram,
			Title:  "Price for " + guests(accommodates),
			X:      models.Axis{Field: fieldPrice, Title: "Price", Kind: models.AxisQuantitative},
			Y:      models.Axis{Title: "Count of Records", Kind: models.AxisQuantitative},
			Series: []models.Series{{Name: "Listings", Color: c.color(0), Points: pts}},
		}},
		Stats: &models.ViewStats{Rows: len(values)},
	}, nil
}
