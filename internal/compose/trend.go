package compose

import (
	"fmt"
	"sort"
	"time"

	"dashboard/internal/engine"
	"dashboard/internal/models"
)

// Chart IDs of the trend and distribution composition.
const (
	ChartTrend        = "trend"
	ChartDistribution = "distribution"
)

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339, "01/02/2006"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type trendKey struct {
	cat int
	ts  int64
}

// TrendDistribution draws the average price over time per category of field next to
// the number of records per category. Counts come from dist, or from trend when dist
// is nil. A non-empty highlight mutes every other category in both charts.
func (c *Composer) TrendDistribution(trend, dist *engine.Table, field, display, highlight string) (models.View, error) {
	cols, err := columns(trend, "date", "price", field)
	if err != nil {
		return models.View{}, err
	}
	if err := trend.NonEmpty(); err != nil {
		return c.empty(models.StrategyTrendDistribution, display, err, ChartTrend, ChartDistribution), nil
	}
	dates, prices, cats := cols[0], cols[1], cols[2]

	countCol := cats
	if dist != nil {
		dc, err := columns(dist, field)
		if err != nil {
			return models.View{}, err
		}
		countCol = dc[0]
	}

	categories := engine.Categories(cats, countCol)
	index := make(map[string]int, len(categories))
	for i, cat := range categories {
		index[cat] = i
	}
	if _, ok := index[highlight]; !ok {
		highlight = ""
	}

	// --- 1. TREND: average duplicate (date, category) observations ---
	sums := make(map[trendKey]float64)
	counts := make(map[trendKey]int)
	skipped := 0
	for i := 0; i < trend.Len(); i++ {
		if cats.Missing(i) {
			skipped++
			continue
		}
		ts, ok := parseDate(dates.Text(i))
		if !ok {
			skipped++
			continue
		}
		p, ok := prices.Amount(i)
		if !ok {
			skipped++
			continue
		}
		k := trendKey{cat: index[cats.Text(i)], ts: ts.Unix()}
		sums[k] += p
		counts[k]++
	}
	if skipped > 0 {
		c.log.V(1).Info("trend rows skipped", "table", trend.Name, "field", field, "rows", skipped)
	}

	points := make([][]models.Point, len(categories))
	for k, sum := range sums {
		avg := sum / float64(counts[k])
		day := time.Unix(k.ts, 0).UTC().Format("2006-01-02")
		points[k.cat] = append(points[k.cat], models.Point{
			X:       float64(k.ts),
			Y:       avg,
			Label:   categories[k.cat],
			Tooltip: fmt.Sprintf("%s, %s: %s", day, categories[k.cat], c.money(avg)),
		})
	}

	trendChart := models.Chart{
		ID:     ChartTrend,
		Mark:   models.MarkLine,
		Title:  "Average Price by " + display,
		X:      models.Axis{Field: "date", Title: "Date", Kind: models.AxisTemporal},
		Y:      models.Axis{Field: "price", Title: "Price", Kind: models.AxisQuantitative},
		Legend: display,
	}
	for i, cat := range categories {
		pts := points[i]
		sort.Slice(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
		trendChart.Series = append(trendChart.Series, c.series(i, cat, highlight, pts))
	}

	// --- 2. DISTRIBUTION: records per category ---
	tally := engine.CountBy(countCol)
	distChart := models.Chart{
		ID:     ChartDistribution,
		Mark:   models.MarkBar,
		Title:  "Count of Records by " + display,
		X:      models.Axis{Field: field, Title: display, Kind: models.AxisNominal, Categories: categories},
		Y:      models.Axis{Title: "Count of Records", Kind: models.AxisQuantitative},
		Legend: display,
	}
	for i, cat := range categories {
		n := tally[cat]
		distChart.Series = append(distChart.Series, c.series(i, cat, highlight, []models.Point{{
			X:       float64(i),
			Y:       float64(n),
			Label:   cat,
			Tooltip: fmt.Sprintf("%s: %d", cat, n),
		}}))
	}

	return models.View{
		Strategy: models.StrategyTrendDistribution,
		Charts:   []models.Chart{trendChart, distChart},
		Stats:    &models.ViewStats{Rows: trend.Len()},
	}, nil
}

func (c *Composer) series(i int, name, highlight string, pts []models.Point) models.Series {
	s := models.Series{Name: name, Color: c.color(i), Points: pts}
	if highlight != "" && name != highlight {
		s.Color = MutedColor
		s.Muted = true
	}
	if s.Points == nil {
		s.Points = []models.Point{}
	}
	return s
}
