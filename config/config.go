package config

import (
	"encoding/json"
	"os"
	"regexp"

	"github.com/adrg/xdg"
)

// Config holds runtime configuration for rendering and file handling.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Canvas limits; larger images are scaled down for display only.
	MaxCanvasW int `json:"max_canvas_w"`
	MaxCanvasH int `json:"max_canvas_h"`

	// Overlay styling
	LineColor  string  `json:"line_color"`
	FillColor  string  `json:"fill_color"`
	LineWidth  float64 `json:"line_width"`
	DotRadius  float64 `json:"dot_radius"`
	ShowLabels bool    `json:"show_labels"`
	DarkMode   bool    `json:"dark_mode"`

	// Files and image sources
	ExportPath          string `json:"export_path"`
	LastImage           string `json:"last_image"`
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds"`
	ImageCacheSize      int    `json:"image_cache_size"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		MaxCanvasW:          1000,
		MaxCanvasH:          700,
		LineColor:           "#ff0000ff",
		FillColor:           "#00ff004d",
		LineWidth:           2,
		DotRadius:           2,
		ShowLabels:          true,
		DarkMode:            false,
		ExportPath:          "coordinates.json",
		LastImage:           "",
		FetchTimeoutSeconds: 15,
		ImageCacheSize:      8,
	}
}

var colorRe = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.MaxCanvasW < 100 {
		c.MaxCanvasW = d.MaxCanvasW
	}
	if c.MaxCanvasH < 100 {
		c.MaxCanvasH = d.MaxCanvasH
	}
	if !colorRe.MatchString(c.LineColor) {
		c.LineColor = d.LineColor
	}
	if !colorRe.MatchString(c.FillColor) {
		c.FillColor = d.FillColor
	}
	if c.LineWidth <= 0 || c.LineWidth > 20 {
		c.LineWidth = d.LineWidth
	}
	if c.DotRadius <= 0 || c.DotRadius > 20 {
		c.DotRadius = d.DotRadius
	}
	if c.ExportPath == "" {
		c.ExportPath = d.ExportPath
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = d.FetchTimeoutSeconds
	}
	if c.ImageCacheSize <= 0 {
		c.ImageCacheSize = d.ImageCacheSize
	}
	return nil
}

// DefaultPath returns the per-user config file location, creating parent
// directories as needed.
func DefaultPath() (string, error) {
	return xdg.ConfigFile("polygon-annotator/config.json")
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
