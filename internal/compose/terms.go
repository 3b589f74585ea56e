package compose

import (
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"dashboard/internal/engine"
	"dashboard/internal/models"
)

// Face is the base glyph face of word clouds. Scale multiplies its metrics.
var Face font.Face = basicfont.Face7x13

const cloudPadding = 4

type term struct {
	text string
	freq float64
}

// TermFrequency lays out the most frequent words of tf on a fixed canvas. Higher
// frequency never yields a smaller word. An empty map yields a cloud with a message and
// no words.
func (c *Composer) TermFrequency(id, caption string, tf engine.TermFrequencies) models.WordCloud {
	wc := models.WordCloud{
		ID:      id,
		Caption: caption,
		Width:   c.opts.CloudWidth,
		Height:  c.opts.CloudHeight,
		Words:   []models.Word{},
	}
	terms := c.topTerms(tf)
	if len(terms) == 0 {
		wc.Message = noData(caption)
		return wc
	}

	lo, hi := terms[len(terms)-1].freq, terms[0].freq
	lineHeight := Face.Metrics().Height.Ceil()

	x, y, rowH := cloudPadding, cloudPadding, 0
	ceiling := max(c.opts.MaxScale, 1)
	for rank, t := range terms {
		advance := font.MeasureString(Face, t.text).Ceil()
		if advance == 0 {
			continue
		}
		scale := min(c.scale(t.freq, lo, hi), ceiling)
		// Words wider than the canvas shrink, and every later word shrinks with them.
		if fit := (wc.Width - 2*cloudPadding) / advance; scale > fit {
			scale = fit
		}
		if scale < 1 {
			continue
		}
		ceiling = scale
		w, h := advance*scale, lineHeight*scale

		if x+w+cloudPadding > wc.Width {
			x, y, rowH = cloudPadding, y+rowH+cloudPadding, 0
		}
		if y+h+cloudPadding > wc.Height {
			continue
		}
		wc.Words = append(wc.Words, models.Word{
			Text:  t.text,
			Freq:  t.freq,
			Scale: scale,
			X:     x,
			Y:     y,
			W:     w,
			H:     h,
			Color: c.color(rank),
		})
		x += w + cloudPadding
		rowH = max(rowH, h)
	}
	if len(wc.Words) < len(terms) {
		c.log.V(1).Info("words dropped from cloud", "cloud", id, "placed", len(wc.Words), "terms", len(terms))
	}
	return wc
}

// scale maps freq linearly onto 1..MaxScale.
func (c *Composer) scale(freq, lo, hi float64) int {
	top := max(c.opts.MaxScale, 1)
	if hi <= lo {
		return (top + 1) / 2
	}
	return 1 + int(math.Round((freq-lo)/(hi-lo)*float64(top-1)))
}

// topTerms returns the positive-frequency words of tf by descending frequency, capped
// at CloudWords. Ties are broken by text.
func (c *Composer) topTerms(tf engine.TermFrequencies) []term {
	terms := make([]term, 0, len(tf))
	for w, f := range tf {
		if f > 0 && w != "" {
			terms = append(terms, term{text: w, freq: f})
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].freq == terms[j].freq {
			return terms[i].text < terms[j].text
		}
		return terms[i].freq > terms[j].freq
	})
	if k := c.opts.CloudWords; k > 0 && len(terms) > k {
		terms = terms[:k]
	}
	return terms
}
