package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/polygon-annotator-go/app"
	"github.com/soocke/polygon-annotator-go/config"
)

func main() {
	defPath, err := config.DefaultPath()
	if err != nil {
		defPath = "config.json"
	}
	cfgPath := flag.String("config", defPath, "path to the JSON config file")
	image := flag.String("image", "", "image to annotate: file path, http(s) URL or data URL")
	importPath := flag.String("import", "", "polygons file to import after the image is shown")
	debugFlag := flag.Bool("debug", false, "verbose logging and runtime metrics")
	flag.Parse()

	// Base config from file, falling back to defaults
	cfg, cfgErr := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if cfgErr != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", cfgErr)
	}

	application, err := app.NewApp("Polygon Annotator", 1280, 860, cfg, *cfgPath, logger, app.Options{Image: *image, Import: *importPath})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	application.Start()
}
