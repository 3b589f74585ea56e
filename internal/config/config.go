// Package config holds the server settings, read from an optional YAML file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"dashboard/internal/compose"
	"dashboard/internal/engine"
)

// Config is the server configuration.
type Config struct {
	Addr        string  `json:"addr"`
	DataDir     string  `json:"dataDir"`
	SQLite      string  `json:"sqlite,omitempty"`
	LogLevel    string  `json:"logLevel"`
	Development bool    `json:"development"`
	RateLimit   float64 `json:"rateLimit"` // requests per second per client, 0 disables

	Chart Chart `json:"chart"`

	// Per-name path overrides for individual inputs, relative to DataDir.
	Tables map[string]string `json:"tables,omitempty"`
	Terms  map[string]string `json:"terms,omitempty"`
}

// Chart sizes the rendered images and the word cloud.
type Chart struct {
	Width          int `json:"width"`
	Height         int `json:"height"`
	CloudWidth     int `json:"cloudWidth"`
	CloudHeight    int `json:"cloudHeight"`
	WordCloudWords int `json:"wordCloudWords"`
	HistogramBins  int `json:"histogramBins"`
}

func Default() Config {
	opts := compose.DefaultOptions()
	return Config{
		Addr:      ":8080",
		DataDir:   "data",
		LogLevel:  "info",
		RateLimit: 20,
		Chart: Chart{
			Width:          640,
			Height:         400,
			CloudWidth:     opts.CloudWidth,
			CloudHeight:    opts.CloudHeight,
			WordCloudWords: opts.CloudWords,
			HistogramBins:  opts.HistogramBins,
		},
	}
}

// Load reads the YAML (or JSON) file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("addr is empty")
	case c.DataDir == "" && c.SQLite == "":
		return errors.New("one of dataDir or sqlite is required")
	case c.RateLimit < 0:
		return errors.Errorf("negative rateLimit %v", c.RateLimit)
	case c.Chart.Width <= 0 || c.Chart.Height <= 0:
		return errors.Errorf("invalid chart size %dx%d", c.Chart.Width, c.Chart.Height)
	case c.Chart.CloudWidth <= 0 || c.Chart.CloudHeight <= 0:
		return errors.Errorf("invalid cloud size %dx%d", c.Chart.CloudWidth, c.Chart.CloudHeight)
	case c.Chart.HistogramBins <= 0:
		return errors.Errorf("invalid histogramBins %d", c.Chart.HistogramBins)
	}
	return nil
}

// Manifest lists the inputs to load, applying path overrides.
func (c Config) Manifest() (engine.Manifest, error) {
	m := engine.DefaultManifest(c.DataDir)
	m.SQLite = c.SQLite

	seen := 0
	for i, t := range m.Tables {
		if p, ok := c.Tables[t.Name]; ok {
			m.Tables[i].Path = c.path(p)
			seen++
		}
	}
	if seen != len(c.Tables) {
		return m, errors.Errorf("tables: unknown override in %v", c.Tables)
	}

	seen = 0
	for i, t := range m.Terms {
		if p, ok := c.Terms[t.Name]; ok {
			m.Terms[i].Path = c.path(p)
			seen++
		}
	}
	if seen != len(c.Terms) {
		return m, errors.Errorf("terms: unknown override in %v", c.Terms)
	}
	return m, nil
}

func (c Config) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

// ComposeOptions applies the chart settings to the composer defaults.
func (c Config) ComposeOptions() compose.Options {
	opts := compose.DefaultOptions()
	opts.CloudWidth = c.Chart.CloudWidth
	opts.CloudHeight = c.Chart.CloudHeight
	opts.CloudWords = c.Chart.WordCloudWords
	opts.HistogramBins = c.Chart.HistogramBins
	return opts
}
