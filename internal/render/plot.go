package render

import (
	"image/color"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"dashboard/internal/compose"
	"dashboard/internal/models"
)

// px converts pixels to plot lengths at the default PNG resolution.
func px(n int) vg.Length { return vg.Length(n) * vg.Inch / 96 }

func (r *Renderer) plot(w io.Writer, c models.Chart) error {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.X.Title
	p.Y.Label.Text = c.Y.Title
	p.Legend.Top = true

	var err error
	switch c.Mark {
	case models.MarkBar:
		err = addBars(p, c)
	case models.MarkHistogram:
		err = addHistogram(p, c)
	case models.MarkArea, models.MarkLine:
		err = addLines(p, c)
	case models.MarkCircle, models.MarkGeo:
		err = addScatter(p, c)
	}
	if err != nil {
		return errors.Wrapf(err, "plot %s", c.ID)
	}
	if c.Mark != models.MarkBar {
		p.Add(plotter.NewGrid())
	}

	wt, err := p.WriterTo(px(r.width), px(r.height), "png")
	if err != nil {
		return errors.Wrapf(err, "plot %s", c.ID)
	}
	_, err = wt.WriteTo(w)
	return err
}

func xys(pts []models.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i].X, out[i].Y = pt.X, pt.Y
	}
	return out
}

// addBars draws one bar per series at its category index.
func addBars(p *plot.Plot, c models.Chart) error {
	for i, s := range c.Series {
		var y float64
		if len(s.Points) > 0 {
			y = s.Points[0].Y
		}
		bars, err := plotter.NewBarChart(plotter.Values{y}, vg.Points(20))
		if err != nil {
			return err
		}
		bars.XMin = float64(i)
		bars.Color = ParseColor(s.Color)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
	}
	if len(c.X.Categories) > 0 {
		p.NominalX(c.X.Categories...)
	}
	p.Y.Min = 0
	return nil
}

func addHistogram(p *plot.Plot, c models.Chart) error {
	if len(c.Series) == 0 || len(c.Series[0].Points) == 0 {
		return errors.New("no bins")
	}
	s := c.Series[0]
	bins := make([]plotter.HistogramBin, len(s.Points))
	for i, pt := range s.Points {
		bins[i] = plotter.HistogramBin{Min: pt.X, Max: pt.X2, Weight: pt.Y}
	}
	h := &plotter.Histogram{
		Bins:      bins,
		Width:     bins[0].Max - bins[0].Min,
		FillColor: ParseColor(s.Color),
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(h)
	return nil
}

func addLines(p *plot.Plot, c models.Chart) error {
	for _, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys(s.Points))
		if err != nil {
			return err
		}
		col := ParseColor(s.Color)
		line.Color = col
		line.Width = vg.Points(2)
		if c.Mark == models.MarkArea {
			line.FillColor = color.NRGBA{R: col.R, G: col.G, B: col.B, A: 0x50}
		}
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	return nil
}

// addScatter draws circles; points outside the brush are drawn muted underneath.
func addScatter(p *plot.Plot, c models.Chart) error {
	muted := ParseColor(compose.MutedColor)
	for _, s := range c.Series {
		var in, out []models.Point
		for _, pt := range s.Points {
			if pt.Outside {
				out = append(out, pt)
			} else {
				in = append(in, pt)
			}
		}
		for _, group := range []struct {
			pts []models.Point
			col color.Color
		}{{out, muted}, {in, ParseColor(s.Color)}} {
			if len(group.pts) == 0 {
				continue
			}
			sc, err := plotter.NewScatter(xys(group.pts))
			if err != nil {
				return err
			}
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			sc.GlyphStyle.Color = group.col
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
			if group.col != muted && len(c.Series) > 1 {
				p.Legend.Add(s.Name, sc)
			}
		}
	}
	return nil
}
