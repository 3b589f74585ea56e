package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"dashboard/internal/compose"
	"dashboard/internal/models"
)

const captionHeight = 24

var textColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

func canvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

// text draws s centred on the line at baseline y.
func text(img *image.RGBA, s string, y int, col color.Color) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: compose.Face}
	x := (img.Bounds().Dx() - d.MeasureString(s).Ceil()) / 2
	d.Dot = fixed.Point26_6{X: fixed.I(max(x, 0)), Y: fixed.I(y)}
	d.DrawString(s)
}

func (r *Renderer) placeholder(w io.Writer, width, height int, title, msg string) error {
	img := canvas(width, height)
	text(img, title, height/2-10, textColor)
	text(img, msg, height/2+10, color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff})
	return png.Encode(w, img)
}

// Cloud writes a laid out word cloud with its caption underneath.
func (r *Renderer) Cloud(w io.Writer, wc models.WordCloud) error {
	if len(wc.Words) == 0 {
		msg := wc.Message
		if msg == "" {
			msg = "No words"
		}
		return r.placeholder(w, wc.Width, wc.Height+captionHeight, wc.Caption, msg)
	}

	img := canvas(wc.Width, wc.Height+captionHeight)
	ascent := compose.Face.Metrics().Ascent.Ceil()
	lineHeight := compose.Face.Metrics().Height.Ceil()
	for _, word := range wc.Words {
		// Draw at base size, then scale up without smoothing.
		advance := font.MeasureString(compose.Face, word.Text).Ceil()
		glyphs := image.NewRGBA(image.Rect(0, 0, advance, lineHeight))
		d := &font.Drawer{
			Dst:  glyphs,
			Src:  image.NewUniform(ParseColor(word.Color)),
			Face: compose.Face,
			Dot:  fixed.P(0, ascent),
		}
		d.DrawString(word.Text)
		dst := image.Rect(word.X, word.Y, word.X+word.W, word.Y+word.H)
		draw.NearestNeighbor.Scale(img, dst, glyphs, glyphs.Bounds(), draw.Over, nil)
	}
	text(img, wc.Caption, wc.Height+captionHeight-8, textColor)
	return png.Encode(w, img)
}
