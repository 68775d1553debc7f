package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/polygon-annotator-go/config"
	"github.com/soocke/polygon-annotator-go/debug"
	"github.com/soocke/polygon-annotator-go/ui/render"
	"github.com/soocke/polygon-annotator-go/ui/theme"
	"github.com/soocke/polygon-annotator-go/ui/view"
)

const (
	tick = 50 * time.Millisecond
)

// Options carries start-up requests from the command line.
type Options struct {
	Image  string // image source to open first; falls back to Config.LastImage
	Import string // polygons file to import once the first image is shown
}

// Application owns the Tk window and the update loop.
type Application struct {
	title   string
	width   int
	height  int
	opts    Options
	c       *AppContainer
	ctx     context.Context
	cancel  context.CancelFunc
	afterID string

	pendingImport string
}

func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger, opts Options) (*Application, error) {
	ctx, cancel := context.WithCancel(context.Background())
	c, err := BuildContainer(ctx, cfg, cfgPath, logger)
	if err != nil {
		cancel()
		return nil, err
	}
	a := &Application{title: title, width: width, height: height, opts: opts, c: c, ctx: ctx, cancel: cancel}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a, nil
}

// Start builds the window, preloads requested content and blocks in the Tk event loop.
func (a *Application) Start() {
	c := a.c
	theme.InitStyles(c.Config.DarkMode)
	if c.Config.Debug && c.Logger != nil {
		debug.StartGoroutineLogger(5*time.Second, c.Logger)
		debug.StartMemLogger(5*time.Second, c.Logger)
	}

	p := c.AnnotationPresenter
	p.OnImageLoaded = a.imageLoaded
	c.RootView.Build(view.Handlers{
		Pointer:         p.PointerDown,
		Undo:            p.Undo,
		Done:            p.Done,
		Clear:           p.Clear,
		LoadSource:      p.LoadImage,
		Screenshot:      p.LoadScreenshot,
		ScreenRegion:    p.LoadScreenshotRegion,
		Import:          func(path string) { _ = p.Import(path) },
		Export:          func(path string) { _ = p.Export(path) },
		SettingsApplied: a.settingsApplied,
		Exit:            a.exitHandler,
	})

	a.preload()

	c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()
	App.Wait()
}

func (a *Application) preload() {
	src := a.opts.Image
	if src == "" {
		src = a.c.Config.LastImage
	}
	if src == "" {
		if a.opts.Import != "" {
			_ = a.c.AnnotationPresenter.Import(a.opts.Import)
		}
		return
	}
	// loading an image clears the engine, so import after it is shown
	a.pendingImport = a.opts.Import
	a.c.AnnotationPresenter.LoadImage(src)
}

func (a *Application) imageLoaded(source string) {
	if a.pendingImport != "" {
		path := a.pendingImport
		a.pendingImport = ""
		_ = a.c.AnnotationPresenter.Import(path)
	}
	if strings.HasPrefix(source, "screen:") || strings.HasPrefix(source, "data:") {
		return
	}
	cfg := a.c.Config
	if cfg.LastImage == source || a.c.CfgPath == "" {
		return
	}
	cfg.LastImage = source
	if err := cfg.Save(a.c.CfgPath); err != nil && a.c.Logger != nil {
		a.c.Logger.Error("config save failed", "error", err)
	}
}

func (a *Application) settingsApplied(cfg *config.Config) {
	a.c.Renderer.SetStyle(render.StyleFromConfig(cfg))
	theme.SetDark(cfg.DarkMode)
	a.c.AnnotationPresenter.Restyle()
}

func (a *Application) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.cancel()
	Destroy(App)
}

func (a *Application) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
