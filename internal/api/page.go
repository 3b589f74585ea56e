package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"dashboard/internal/models"
)

//go:embed templates/index.html
var templates embed.FS

var indexTmpl = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"chartURL": func(q url.Values, section, id string) string {
		u := url.URL{Path: "/api/chart/" + section + "/" + id + ".png", RawQuery: q.Encode()}
		return u.String()
	},
	"selected": func(a, b string) bool { return a == b },
	"first":    func(v []int) int { return v[0] },
	"last":     func(v []int) int { return v[len(v)-1] },
	"deref": func(f *float64) any {
		if f == nil {
			return ""
		}
		return *f
	},
}).ParseFS(templates, "templates/index.html"))

type pageData struct {
	Page      models.Page
	Explorers models.Explorers
	Selection models.Selection
	Brush     models.Brush
	Guests    int
	Query     url.Values
}

// Index renders the whole dashboard as one HTML page. Charts are images served by
// GetChart for the same selection.
func (h *Handler) Index(c echo.Context) error {
	sel, err := parseSelection(c)
	if err != nil {
		return err
	}
	d := h.dash.Load()
	explorers := d.Explorers()
	// The slider has no "any" position, so the page starts at its first stop.
	if sel.Accommodates == nil && len(explorers.Accommodates) > 0 {
		first := explorers.Accommodates[0]
		sel.Accommodates = &first
	}
	data := pageData{
		Page:      d.Render(sel),
		Explorers: explorers,
		Selection: sel,
		Query:     encodeSelection(sel),
	}
	if sel.Brush != nil {
		data.Brush = *sel.Brush
	}
	if sel.Accommodates != nil {
		data.Guests = *sel.Accommodates
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		h.log.Error(err, "page render failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "page render failed")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
