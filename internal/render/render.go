// Package render draws composed views as PNG images.
package render

import (
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"dashboard/internal/models"
)

// Renderer draws charts and word clouds at a fixed size.
type Renderer struct {
	width, height int
	log           logr.Logger
}

func New(width, height int, log logr.Logger) *Renderer {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 400
	}
	return &Renderer{width: width, height: height, log: log.WithName("render")}
}

// Chart writes c as a PNG image.
func (r *Renderer) Chart(w io.Writer, c models.Chart) error {
	switch c.Mark {
	case models.MarkPlaceholder:
		return r.placeholder(w, r.width, r.height, c.Title, c.Message)
	case models.MarkLine:
		if c.X.Kind == models.AxisTemporal {
			return r.trend(w, c)
		}
		return r.plot(w, c)
	case models.MarkBar, models.MarkArea, models.MarkCircle, models.MarkGeo, models.MarkHistogram:
		return r.plot(w, c)
	}
	return errors.Errorf("unsupported mark %q", c.Mark)
}

// ParseColor reads a "#RRGGBB" colour. Malformed input yields grey.
func ParseColor(hex string) color.RGBA {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(hex, "#")) != 6 {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
