package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/go-logr/logr"

	"dashboard/internal/compose"
	"dashboard/internal/models"
	"dashboard/internal/registry"
	"dashboard/internal/testutils"
)

func decode(t *testing.T, buf *bytes.Buffer) (int, int) {
	t.Helper()
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatalf("Expected a PNG, got %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestParseColor(t *testing.T) {
	c := ParseColor("#4F46E5")
	if c.R != 0x4F || c.G != 0x46 || c.B != 0xE5 || c.A != 0xff {
		t.Errorf("Unexpected colour %+v", c)
	}
	if g := ParseColor("nope"); g.R != 0x80 {
		t.Errorf("Expected grey fallback, got %+v", g)
	}
}

func TestRenderPlaceholder(t *testing.T) {
	r := New(320, 200, logr.Discard())
	var buf bytes.Buffer

	if err := r.Chart(&buf, compose.Placeholder("trend", "Superhost", "No data")); err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if w, h := decode(t, &buf); w != 320 || h != 200 {
		t.Errorf("Expected 320x200, got %dx%d", w, h)
	}
}

func TestRenderComposedCharts(t *testing.T) {
	// 1. Setup
	c := compose.New(compose.DefaultOptions(), logr.Discard())
	r := New(480, 320, logr.Discard())

	trend, err := c.TrendDistribution(testutils.Trend("t", "cat",
		[3]string{"2020-01-01", "50", "A"},
		[3]string{"2020-01-02", "70", "A"},
		[3]string{"2020-01-01", "60", "B"},
	), nil, "cat", "Category", "A")
	if err != nil {
		t.Fatal(err)
	}
	linked, err := c.LinkedDetailScatter(testutils.Availability(), "host_is_superhost", "Superhost", registry.Categorical, nil)
	if err != nil {
		t.Fatal(err)
	}
	geo, err := c.Map(testutils.Listings(), nil)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := c.Histogram(testutils.Listings(), nil)
	if err != nil {
		t.Fatal(err)
	}

	// 2. Run / 3. Assertions
	for _, v := range []models.View{trend, linked, geo, hist} {
		for _, chart := range v.Charts {
			var buf bytes.Buffer
			if err := r.Chart(&buf, chart); err != nil {
				t.Errorf("%s: %v", chart.ID, err)
				continue
			}
			if buf.Len() == 0 {
				t.Errorf("%s: empty image", chart.ID)
				continue
			}
			decode(t, &buf)
		}
	}
}

func TestRenderCloud(t *testing.T) {
	c := compose.New(compose.DefaultOptions(), logr.Discard())
	r := New(480, 320, logr.Discard())

	wc := c.TermFrequency(compose.CloudHigh, "Airbnb with Review >= 85", testutils.Terms())
	var buf bytes.Buffer
	if err := r.Cloud(&buf, wc); err != nil {
		t.Fatalf("Cloud failed: %v", err)
	}
	if w, h := decode(t, &buf); w != wc.Width || h != wc.Height+captionHeight {
		t.Errorf("Unexpected size %dx%d", w, h)
	}

	buf.Reset()
	empty := c.TermFrequency(compose.CloudLow, "low", nil)
	if err := r.Cloud(&buf, empty); err != nil {
		t.Fatalf("Empty cloud failed: %v", err)
	}
	decode(t, &buf)
}

func TestRenderUnknownMark(t *testing.T) {
	r := New(0, 0, logr.Discard())
	if err := r.Chart(&bytes.Buffer{}, models.Chart{Mark: "pie"}); err == nil {
		t.Error("Expected error for unknown mark")
	}
}
