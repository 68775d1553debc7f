package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/polygon-annotator-go/config"
	"github.com/soocke/polygon-annotator-go/domain/annotation"
	"github.com/soocke/polygon-annotator-go/domain/capture"
	"github.com/soocke/polygon-annotator-go/ui/images"
	"github.com/soocke/polygon-annotator-go/ui/model"
	"github.com/soocke/polygon-annotator-go/ui/presenter"
	"github.com/soocke/polygon-annotator-go/ui/render"
	"github.com/soocke/polygon-annotator-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	CfgPath  string
	Logger   *slog.Logger
	Engine   *annotation.Engine
	Image    *model.ImageModel
	Loader   *images.Loader
	Screen   *capture.ScreenSource
	Renderer *render.Renderer
	RootView *view.RootView
	UI       view.UI

	// Presenters
	AnnotationPresenter *presenter.AnnotationPresenter
	StatusPresenter     *presenter.StatusPresenter
	Loop                *presenter.Loop
}

// BuildContainer constructs all components. No widgets are created; the
// root view is built later on the Tk thread.
func BuildContainer(ctx context.Context, cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}
	c.Engine = annotation.NewEngine(logger)
	c.Image = model.NewImageModel()
	loader, err := images.NewLoader(cfg.ImageCacheSize, time.Duration(cfg.FetchTimeoutSeconds)*time.Second, logger)
	if err != nil {
		return nil, fmt.Errorf("build container: %w", err)
	}
	c.Loader = loader
	c.Screen = capture.NewScreenSource(nil, nil, logger)
	c.Renderer = render.New(render.StyleFromConfig(cfg))
	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	// Presenters
	c.AnnotationPresenter = presenter.NewAnnotationPresenter(ctx, c.Engine, c.Image, c.Loader, c.Screen, c.Renderer, c.UI, cfg, logger)
	c.StatusPresenter = presenter.NewStatusPresenter(c.UI)
	c.Engine.AddListener(c.AnnotationPresenter.OnSnapshot)
	c.Engine.AddListener(c.StatusPresenter.OnSnapshot)
	c.Loop = presenter.NewLoop(c.AnnotationPresenter, c.StatusPresenter, nil)
	return c, nil
}
