package presenter

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/polygon-annotator-go/config"
	"github.com/soocke/polygon-annotator-go/domain/annotation"
	"github.com/soocke/polygon-annotator-go/domain/capture"
	"github.com/soocke/polygon-annotator-go/ui/images"
	"github.com/soocke/polygon-annotator-go/ui/model"
)

// AnnotationEngine is the subset of the capture engine driven by the presenter.
type AnnotationEngine interface {
	AddPoint(p annotation.Point)
	Undo()
	Finalize()
	Export() [][]annotation.Point
	Import(polys [][]annotation.Point)
	Reset()
	Snapshot() annotation.Snapshot
}

// ImageLoader resolves image sources. Load may block and is only called from
// the load worker.
type ImageLoader interface {
	Load(ctx context.Context, source string) (images.Loaded, error)
	Remember(source string, img image.Image) images.Loaded
}

// ScreenCapturer grabs the screen, or a region of it, as an alternative image source.
type ScreenCapturer interface {
	Capture() (capture.Snapshot, error)
	CaptureRect(area image.Rectangle) (capture.Snapshot, error)
}

// FrameRenderer draws a snapshot over the displayed image.
type FrameRenderer interface {
	Render(base image.Image, snap annotation.Snapshot, scale float64) *image.RGBA
}

// AnnotationView is the UI surface updated by the presenter.
type AnnotationView interface {
	ShowCanvas(img image.Image)
	SetBusy(busy bool)
	Notify(title, message string)
}

// AnnotationPresenter turns canvas clicks and toolbar actions into engine
// operations and pushes rendered frames back to the view. Engine listeners
// only queue work; rendering happens on Tick so bursts of changes coalesce.
type AnnotationPresenter struct {
	Engine   AnnotationEngine
	Image    *model.ImageModel
	Loader   ImageLoader
	Screen   ScreenCapturer
	Renderer FrameRenderer
	View     AnnotationView
	Config   *config.Config
	// OnImageLoaded is called on the UI thread after a new image is shown.
	OnImageLoaded func(source string)
	logger        *slog.Logger

	ctx     context.Context
	pending *annotation.Snapshot
	dirty   bool

	worker *loadWorker
}

// NewAnnotationPresenter wires the presenter. ctx bounds background loads.
func NewAnnotationPresenter(ctx context.Context, eng AnnotationEngine, img *model.ImageModel, loader ImageLoader, screen ScreenCapturer, renderer FrameRenderer, view AnnotationView, cfg *config.Config, logger *slog.Logger) *AnnotationPresenter {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if img == nil {
		img = model.NewImageModel()
	}
	p := &AnnotationPresenter{
		Engine:   eng,
		Image:    img,
		Loader:   loader,
		Screen:   screen,
		Renderer: renderer,
		View:     view,
		Config:   cfg,
		logger:   logger,
		ctx:      ctx,
		dirty:    true,
	}
	p.worker = newLoadWorker(ctx, p.executeLoad)
	return p
}

// OnSnapshot queues the latest engine snapshot. Register it as an engine listener.
func (p *AnnotationPresenter) OnSnapshot(_, _ annotation.State, snap annotation.Snapshot) {
	if p == nil {
		return
	}
	p.pending = &snap
}

// PointerDown places a vertex at display coordinates (x, y), measured from
// the top-left pixel of the displayed image.
func (p *AnnotationPresenter) PointerDown(x, y int) {
	if p == nil || p.Engine == nil {
		return
	}
	outside := x < 0 || y < 0
	if d := p.Image.Display(); d != nil {
		b := d.Bounds()
		outside = outside || x >= b.Dx() || y >= b.Dy()
	}
	if outside {
		if p.logger != nil {
			p.logger.Debug("pointer outside image", "x", x, "y", y)
		}
		return
	}
	p.Engine.AddPoint(p.Image.ToImage(x, y))
}

// Undo removes the most recent vertex.
func (p *AnnotationPresenter) Undo() {
	if p == nil || p.Engine == nil {
		return
	}
	p.Engine.Undo()
}

// Done closes the polygon being drawn.
func (p *AnnotationPresenter) Done() {
	if p == nil || p.Engine == nil {
		return
	}
	p.Engine.Finalize()
}

// Clear discards every polygon for the current image.
func (p *AnnotationPresenter) Clear() {
	if p == nil || p.Engine == nil {
		return
	}
	p.Engine.Reset()
}

// Export writes the saved polygons to path. Failures are reported to the
// view and leave the engine untouched.
func (p *AnnotationPresenter) Export(path string) error {
	if p == nil || p.Engine == nil {
		return nil
	}
	if path == "" {
		path = p.Config.ExportPath
	}
	polys := p.Engine.Export()
	n, err := annotation.SaveFile(path, polys)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("export failed", "path", path, "error", err)
		}
		p.notify("Export failed", err.Error())
		return err
	}
	if p.logger != nil {
		p.logger.Info("polygons exported", "path", path, "image", p.Image.Source(), "polygons", len(polys), "size", humanize.Bytes(uint64(n)))
	}
	return nil
}

// Import loads polygons from path and replaces the saved set with them.
func (p *AnnotationPresenter) Import(path string) error {
	if p == nil || p.Engine == nil {
		return nil
	}
	polys, err := annotation.LoadFile(path)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("import failed", "path", path, "error", err)
		}
		p.notify("Import failed", err.Error())
		return err
	}
	p.Engine.Import(polys)
	return nil
}

// LoadImage starts loading source in the background. The image replaces the
// current one on a later Tick and clears all polygons.
func (p *AnnotationPresenter) LoadImage(source string) {
	if p == nil || p.Loader == nil {
		return
	}
	p.dispatch(loadTask{kind: loadTaskSource, source: source})
}

// LoadScreenshot captures the screen in the background and annotates it.
func (p *AnnotationPresenter) LoadScreenshot() {
	if p == nil || p.Screen == nil {
		return
	}
	p.dispatch(loadTask{kind: loadTaskScreen})
}

// LoadScreenshotRegion captures area of the screen in the background and annotates it.
func (p *AnnotationPresenter) LoadScreenshotRegion(area image.Rectangle) {
	if p == nil || p.Screen == nil {
		return
	}
	p.dispatch(loadTask{kind: loadTaskScreenRect, area: area})
}

// Restyle forces a redraw, e.g. after overlay settings changed.
func (p *AnnotationPresenter) Restyle() {
	if p == nil {
		return
	}
	p.dirty = true
}

// Tick applies finished loads and renders the latest snapshot if anything changed.
func (p *AnnotationPresenter) Tick(now time.Time) {
	if p == nil || p.View == nil {
		return
	}
	for _, res := range p.worker.drain() {
		p.handleLoad(res)
	}
	if p.pending == nil && !p.dirty {
		return
	}
	var snap annotation.Snapshot
	if p.pending != nil {
		snap = *p.pending
	} else if p.Engine != nil {
		snap = p.Engine.Snapshot()
	}
	p.pending, p.dirty = nil, false
	if p.Renderer == nil {
		return
	}
	p.View.ShowCanvas(p.Renderer.Render(p.Image.Display(), snap, p.Image.Scale()))
}

func (p *AnnotationPresenter) dispatch(task loadTask) {
	task.ctx = p.ctx
	task.maxW, task.maxH = p.Config.MaxCanvasW, p.Config.MaxCanvasH
	if p.View != nil {
		p.View.SetBusy(true)
	}
	p.worker.dispatch(task)
}

func (p *AnnotationPresenter) handleLoad(res loadResult) {
	p.View.SetBusy(false)
	if res.err != nil {
		if p.logger != nil {
			p.logger.Error("load image", "source", res.source, "error", res.err)
		}
		p.notify("Cannot load image", res.err.Error())
		return
	}
	p.Image.Set(res.source, res.image, res.display, res.scale)
	if p.Engine != nil {
		p.Engine.Reset()
	}
	p.dirty = true
	if p.logger != nil {
		w, h := p.Image.Size()
		p.logger.Info("image shown", "source", res.source, "width", w, "height", h, "scale", res.scale, "took", res.duration)
	}
	if p.OnImageLoaded != nil {
		p.OnImageLoaded(res.source)
	}
}

func (p *AnnotationPresenter) notify(title, msg string) {
	if p.View != nil {
		p.View.Notify(title, msg)
	}
}
