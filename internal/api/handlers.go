package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/labstack/echo/v4"

	"dashboard/internal/compose"
	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/registry"
	"dashboard/internal/render"
)

type Handler struct {
	dash   atomic.Pointer[compose.Dashboard]
	render *render.Renderer
	log    logr.Logger
}

func NewHandler(r *render.Renderer, log logr.Logger) *Handler {
	return &Handler{render: r, log: log.WithName("api")}
}

// SetDashboard makes the loaded data live. Until then every data route answers 503.
func (h *Handler) SetDashboard(d *compose.Dashboard) {
	h.dash.Store(d)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	e.GET("/", h.Index, h.requireData)
	e.GET("/ws", h.Stream, h.requireData)

	api := e.Group("/api", h.requireData)
	api.GET("/explorers", h.GetExplorers)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/sections/:section", h.GetSection)
	api.GET("/chart/:section/:chart", h.GetChart)
	api.GET("/export/:table", h.ExportTable)
}

// --- MIDDLEWARE ---
func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.dash.Load() == nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "data is loading"})
		}
		return next(c)
	}
}

// --- HANDLERS ---
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "ready": h.dash.Load() != nil})
}

func (h *Handler) GetExplorers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dash.Load().Explorers())
}

// full page: every section, failures reported per section
func (h *Handler) GetDashboard(c echo.Context) error {
	sel, err := parseSelection(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.dash.Load().Render(sel))
}

func (h *Handler) GetSection(c echo.Context) error {
	sel, err := parseSelection(c)
	if err != nil {
		return err
	}
	sec, err := h.dash.Load().Section(c.Param("section"), sel)
	if err != nil {
		return h.sectionError(err)
	}
	return c.JSON(http.StatusOK, sec)
}

// one chart or word cloud of a section as PNG
func (h *Handler) GetChart(c echo.Context) error {
	sel, err := parseSelection(c)
	if err != nil {
		return err
	}
	sec, err := h.dash.Load().Section(c.Param("section"), sel)
	if err != nil {
		return h.sectionError(err)
	}
	id := strings.TrimSuffix(c.Param("chart"), ".png")

	var buf bytes.Buffer
	switch {
	case findChart(sec.View, id) != nil:
		err = h.render.Chart(&buf, *findChart(sec.View, id))
	case findCloud(sec.View, id) != nil:
		err = h.render.Cloud(&buf, *findCloud(sec.View, id))
	default:
		return echo.NewHTTPError(http.StatusNotFound, "no chart "+id+" in section "+sec.ID)
	}
	if err != nil {
		h.log.Error(err, "render failed", "section", sec.ID, "chart", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "render failed")
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// raw dataset as an Excel workbook
func (h *Handler) ExportTable(c echo.Context) error {
	name := strings.TrimSuffix(c.Param("table"), ".xlsx")
	t, ok := h.dash.Load().Store().Table(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no dataset "+name)
	}
	var buf bytes.Buffer
	if err := engine.WriteXLSX(t, &buf); err != nil {
		h.log.Error(err, "export failed", "table", name)
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) sectionError(err error) error {
	var unknown *registry.UnknownDimensionError
	if errors.As(err, &unknown) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if errors.Is(err, compose.ErrUnknownSection) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	h.log.Error(err, "section failed")
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func findChart(v *models.View, id string) *models.Chart {
	if v == nil {
		return nil
	}
	for i := range v.Charts {
		if v.Charts[i].ID == id {
			return &v.Charts[i]
		}
	}
	return nil
}

func findCloud(v *models.View, id string) *models.WordCloud {
	if v == nil {
		return nil
	}
	for i := range v.Clouds {
		if v.Clouds[i].ID == id {
			return &v.Clouds[i]
		}
	}
	return nil
}
