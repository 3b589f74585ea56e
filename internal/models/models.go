package models

// Page is the result of one full render pass over every explorer.
type Page struct {
	Sections []Section `json:"sections"`
}

// Section is one explorer on the page. Exactly one of View or Error is set.
type Section struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Prompt  string   `json:"prompt,omitempty"`
	Label   string   `json:"label,omitempty"`
	Choices []string `json:"choices,omitempty"`
	View    *View    `json:"view,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Composition strategies.
const (
	StrategyTrendDistribution   = "trend_distribution"
	StrategyLinkedDetailScatter = "linked_detail_scatter"
	StrategyTermFrequency       = "term_frequency"
	StrategyMap                 = "map"
	StrategyHistogram           = "histogram"
)

// View is a composed set of charts for one section.
type View struct {
	Strategy string      `json:"strategy"`
	Charts   []Chart     `json:"charts,omitempty"`
	Clouds   []WordCloud `json:"clouds,omitempty"`
	Brush    *Brush      `json:"brush,omitempty"`
	Stats    *ViewStats  `json:"stats,omitempty"`
}

// ViewStats reports row counts behind the charts.
type ViewStats struct {
	Rows        int `json:"rows"`
	DetailRows  int `json:"detailRows,omitempty"`
	ScatterRows int `json:"scatterRows,omitempty"`
}

// Chart marks.
const (
	MarkLine        = "line"
	MarkBar         = "bar"
	MarkArea        = "area"
	MarkCircle      = "circle"
	MarkGeo         = "geo"
	MarkHistogram   = "histogram"
	MarkPlaceholder = "placeholder"
)

// Axis kinds.
const (
	AxisTemporal     = "temporal"
	AxisQuantitative = "quantitative"
	AxisNominal      = "nominal"
)

// Chart is a declarative chart specification.
type Chart struct {
	ID      string   `json:"id"`
	Mark    string   `json:"mark"`
	Title   string   `json:"title"`
	X       Axis     `json:"x"`
	Y       Axis     `json:"y"`
	Legend  string   `json:"legend,omitempty"`
	Series  []Series `json:"series,omitempty"`
	Center  *Point   `json:"center,omitempty"`
	Message string   `json:"message,omitempty"`
}

type Axis struct {
	Field      string   `json:"field,omitempty"`
	Title      string   `json:"title,omitempty"`
	Kind       string   `json:"kind,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Series is one colour group of a chart.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Muted  bool    `json:"muted,omitempty"`
	Points []Point `json:"points"`
}

// Point is a single mark. X holds unix seconds on temporal axes and the category index on
// nominal axes. X2 is the right edge of histogram bins.
type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	X2      float64 `json:"x2,omitempty"`
	Label   string  `json:"label,omitempty"`
	Tooltip string  `json:"tooltip,omitempty"`
	Outside bool    `json:"outside,omitempty"` // outside the active brush
}

// WordCloud is a laid out term-frequency picture.
type WordCloud struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Words   []Word `json:"words"`
	Message string `json:"message,omitempty"`
}

// Word is one placed term. Scale multiplies the base glyph size.
type Word struct {
	Text  string  `json:"text"`
	Freq  float64 `json:"freq"`
	Scale int     `json:"scale"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	W     int     `json:"w"`
	H     int     `json:"h"`
	Color string  `json:"color"`
}

// Area is the number of pixels the word covers.
func (w Word) Area() int { return w.W * w.H }

// Brush is a rectangular selection on the price / review score scatter.
// Nil bounds are open.
type Brush struct {
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	ScoreMin *float64 `json:"scoreMin,omitempty"`
	ScoreMax *float64 `json:"scoreMax,omitempty"`
}

// Empty reports whether no bound is set.
func (b *Brush) Empty() bool {
	return b == nil || (b.PriceMin == nil && b.PriceMax == nil && b.ScoreMin == nil && b.ScoreMax == nil)
}

// Selection is the UI state of one render pass.
type Selection struct {
	Price        string `json:"price,omitempty"`
	Availability string `json:"availability,omitempty"`
	Comments     string `json:"comments,omitempty"`
	Highlight    string `json:"highlight,omitempty"`
	Accommodates *int   `json:"accommodates,omitempty"`
	Brush        *Brush `json:"brush,omitempty"`
}

// Explorers lists the choices each selectbox offers.
type Explorers struct {
	Price        []string `json:"price"`
	Availability []string `json:"availability"`
	Comments     []string `json:"comments"`
	Accommodates []int    `json:"accommodates"`
}
