package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"dashboard/internal/models"
)

// parseSelection reads the UI state from the query string. Empty parameters are unset.
func parseSelection(c echo.Context) (models.Selection, error) {
	sel := models.Selection{
		Price:        c.QueryParam("price"),
		Availability: c.QueryParam("availability"),
		Comments:     c.QueryParam("comments"),
		Highlight:    c.QueryParam("highlight"),
	}

	if v := c.QueryParam("accommodates"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return sel, echo.NewHTTPError(http.StatusBadRequest, "accommodates must be a guest count")
		}
		sel.Accommodates = &n
	}

	var b models.Brush
	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"priceMin", &b.PriceMin}, {"priceMax", &b.PriceMax},
		{"scoreMin", &b.ScoreMin}, {"scoreMax", &b.ScoreMax},
	} {
		v := c.QueryParam(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sel, echo.NewHTTPError(http.StatusBadRequest, p.name+" must be a number")
		}
		*p.dst = &f
	}
	if !b.Empty() {
		sel.Brush = &b
	}
	return sel, nil
}

// encodeSelection is the inverse of parseSelection.
func encodeSelection(sel models.Selection) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("price", sel.Price)
	set("availability", sel.Availability)
	set("comments", sel.Comments)
	set("highlight", sel.Highlight)
	if sel.Accommodates != nil {
		q.Set("accommodates", strconv.Itoa(*sel.Accommodates))
	}
	if b := sel.Brush; b != nil {
		for k, v := range map[string]*float64{
			"priceMin": b.PriceMin, "priceMax": b.PriceMax,
			"scoreMin": b.ScoreMin, "scoreMax": b.ScoreMax,
		} {
			if v != nil {
				q.Set(k, strconv.FormatFloat(*v, 'f', -1, 64))
			}
		}
	}
	return q
}
