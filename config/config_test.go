package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestValidate_ClampsBadValues(t *testing.T) {
	cfg := &Config{LineColor: "red", FillColor: "#00ff00", LineWidth: -1, DotRadius: 50, MaxCanvasW: 5}
	_ = cfg.Validate()
	d := DefaultConfig()
	if cfg.LineColor != d.LineColor {
		t.Fatalf("line color not reset: %q", cfg.LineColor)
	}
	if cfg.FillColor != "#00ff00" {
		t.Fatalf("valid 6-digit fill color was replaced: %q", cfg.FillColor)
	}
	if cfg.LineWidth != d.LineWidth || cfg.DotRadius != d.DotRadius || cfg.MaxCanvasW != d.MaxCanvasW {
		t.Fatalf("clamp failed: width=%v radius=%v canvasW=%d", cfg.LineWidth, cfg.DotRadius, cfg.MaxCanvasW)
	}
	if cfg.ExportPath != "coordinates.json" {
		t.Fatalf("export path default missing: %q", cfg.ExportPath)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.LineWidth = 3.5
	cfg.ShowLabels = false
	cfg.LastImage = "/tmp/shop.png"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("round trip mismatch: got=%+v want=%+v", got, cfg)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.LineWidth != DefaultConfig().LineWidth {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}
