package render

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"dashboard/internal/models"
)

// trend draws a temporal line chart. Charts go-chart cannot range, such as a single
// observation, fall back to a placeholder.
func (r *Renderer) trend(w io.Writer, c models.Chart) error {
	var series []chart.Series
	for _, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		ts := chart.TimeSeries{
			Name:    s.Name,
			XValues: make([]time.Time, len(s.Points)),
			YValues: make([]float64, len(s.Points)),
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(s.Color, "#")),
				StrokeWidth: 2,
			},
		}
		if len(s.Points) == 1 {
			ts.Style.DotWidth = 4
			ts.Style.DotColor = ts.Style.StrokeColor
		}
		for i, pt := range s.Points {
			ts.XValues[i] = time.Unix(int64(pt.X), 0).UTC()
			ts.YValues[i] = pt.Y
		}
		series = append(series, ts)
	}
	if len(series) == 0 {
		return r.placeholder(w, r.width, r.height, c.Title, "No data for "+c.Title)
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           c.X.Title,
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis:  chart.YAxis{Name: c.Y.Title},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		r.log.V(1).Info("trend render failed, showing placeholder", "chart", c.ID, "error", err.Error())
		return r.placeholder(w, r.width, r.height, c.Title, "Not enough data to draw "+c.Title)
	}
	_, err := buf.WriteTo(w)
	return err
}
