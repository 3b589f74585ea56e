// Package compose turns a resolved selection and its dataset into declarative chart
// specifications.
package compose

import (
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dashboard/internal/engine"
	"dashboard/internal/models"
)

// Default color palette for categories, assigned by category index.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// MutedColor is used for de-emphasised series.
const MutedColor = "#D3D3D3"

// Options tunes the compositions.
type Options struct {
	Palette []string

	// ScatterPriceCap excludes listings priced at or above it from the brush scatter.
	ScatterPriceCap float64
	// DensityPoints is the number of grid points over availability 0..90.
	DensityPoints int

	CloudWidth  int
	CloudHeight int
	CloudWords  int
	MaxScale    int

	HistogramBins int
}

func DefaultOptions() Options {
	return Options{
		Palette:         defaultColors,
		ScatterPriceCap: 500,
		DensityPoints:   91,
		CloudWidth:      800,
		CloudHeight:     400,
		CloudWords:      200,
		MaxScale:        5,
		HistogramBins:   30,
	}
}

// Composer builds views. It holds no per-pass state.
type Composer struct {
	opts    Options
	log     logr.Logger
	printer *message.Printer
}

func New(opts Options, log logr.Logger) *Composer {
	if len(opts.Palette) == 0 {
		opts.Palette = defaultColors
	}
	return &Composer{
		opts:    opts,
		log:     log.WithName("compose"),
		printer: message.NewPrinter(language.English),
	}
}

func (c *Composer) color(i int) string {
	return c.opts.Palette[i%len(c.opts.Palette)]
}

func (c *Composer) money(v float64) string {
	return c.printer.Sprintf("$%.2f", v)
}

// Placeholder is the chart drawn in place of one that has no data.
func Placeholder(id, title, msg string) models.Chart {
	return models.Chart{ID: id, Mark: models.MarkPlaceholder, Title: title, Message: msg}
}

func placeholderView(strategy, title, msg string, ids ...string) models.View {
	v := models.View{Strategy: strategy, Stats: &models.ViewStats{}}
	for _, id := range ids {
		v.Charts = append(v.Charts, Placeholder(id, title, msg))
	}
	return v
}

// empty turns an empty dataset into placeholders instead of failing the section.
func (c *Composer) empty(strategy, title string, err error, ids ...string) models.View {
	c.log.V(1).Info("drawing placeholder", "strategy", strategy, "reason", err.Error())
	return placeholderView(strategy, title, err.Error(), ids...)
}

func noData(what string) string {
	return fmt.Sprintf("No data for %s", what)
}

func columns(t *engine.Table, names ...string) ([]*engine.Column, error) {
	if col, missing := t.MissingColumn(names...); missing {
		return nil, &engine.MalformedInputError{Path: t.Source, Reason: "missing column " + col}
	}
	out := make([]*engine.Column, len(names))
	for i, n := range names {
		out[i], _ = t.Column(n)
	}
	return out, nil
}
