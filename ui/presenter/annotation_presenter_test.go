package presenter

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soocke/polygon-annotator-go/config"
	"github.com/soocke/polygon-annotator-go/domain/annotation"
	"github.com/soocke/polygon-annotator-go/domain/capture"
	"github.com/soocke/polygon-annotator-go/ui/images"
	"github.com/soocke/polygon-annotator-go/ui/model"
)

type mockLoader struct {
	images     map[string]image.Image
	remembered []string
}

func (l *mockLoader) Load(_ context.Context, source string) (images.Loaded, error) {
	img, ok := l.images[source]
	if !ok {
		return images.Loaded{}, errors.New("no such image")
	}
	return images.Loaded{Source: source, Format: "png", Image: img}, nil
}

func (l *mockLoader) Remember(source string, img image.Image) images.Loaded {
	l.remembered = append(l.remembered, source)
	return images.Loaded{Source: source, Image: img}
}

type mockScreen struct {
	err  error
	area image.Rectangle
}

func (s *mockScreen) Capture() (capture.Snapshot, error) {
	if s.err != nil {
		return capture.Snapshot{}, s.err
	}
	return capture.Snapshot{Image: image.NewRGBA(image.Rect(0, 0, 300, 200)), Source: "screen:1", Sequence: 1}, nil
}

func (s *mockScreen) CaptureRect(area image.Rectangle) (capture.Snapshot, error) {
	if s.err != nil {
		return capture.Snapshot{}, s.err
	}
	s.area = area
	return capture.Snapshot{Image: image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy())), Source: "screen:2", Sequence: 2}, nil
}

type mockRenderer struct {
	calls int
	last  annotation.Snapshot
	base  image.Image
	scale float64
}

func (r *mockRenderer) Render(base image.Image, snap annotation.Snapshot, scale float64) *image.RGBA {
	r.calls++
	r.last, r.base, r.scale = snap, base, scale
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

type mockAnnotationView struct {
	shown    int
	busy     bool
	notified []string
}

func (v *mockAnnotationView) ShowCanvas(image.Image) { v.shown++ }
func (v *mockAnnotationView) SetBusy(b bool)         { v.busy = b }
func (v *mockAnnotationView) Notify(title, _ string) { v.notified = append(v.notified, title) }

type fixture struct {
	eng    *annotation.Engine
	p      *AnnotationPresenter
	render *mockRenderer
	view   *mockAnnotationView
	loader *mockLoader
	screen *mockScreen
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.MaxCanvasW, cfg.MaxCanvasH = 200, 200
	eng := annotation.NewEngine(nil)
	f := &fixture{
		eng:    eng,
		render: &mockRenderer{},
		view:   &mockAnnotationView{},
		screen: &mockScreen{},
		loader: &mockLoader{images: map[string]image.Image{
			"small.png": image.NewRGBA(image.Rect(0, 0, 100, 50)),
			"big.png":   image.NewRGBA(image.Rect(0, 0, 400, 100)),
		}},
	}
	f.p = NewAnnotationPresenter(context.Background(), eng, model.NewImageModel(), f.loader, f.screen, f.render, f.view, cfg, nil)
	eng.AddListener(f.p.OnSnapshot)
	return f
}

// tickUntil drives Tick until cond holds or the deadline passes.
func tickUntil(t *testing.T, p *AnnotationPresenter, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.Tick(time.Now())
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestAnnotationPresenter_PointerDownAndCoalescedRender(t *testing.T) {
	f := newFixture(t)
	f.p.Tick(time.Now()) // initial frame
	if f.render.calls != 1 || f.view.shown != 1 {
		t.Fatalf("expected initial render: calls=%d shown=%d", f.render.calls, f.view.shown)
	}
	f.p.PointerDown(10, 10)
	f.p.PointerDown(20, 10)
	f.p.PointerDown(20, 20)
	f.p.Tick(time.Now())
	if f.render.calls != 2 {
		t.Fatalf("expected one coalesced render, calls=%d", f.render.calls)
	}
	if got := f.render.last.VertexCount(); got != 3 {
		t.Fatalf("rendered snapshot vertices=%d want 3", got)
	}
	f.p.Tick(time.Now())
	if f.render.calls != 2 {
		t.Fatalf("idle tick must not render, calls=%d", f.render.calls)
	}
	f.p.Done()
	f.p.Tick(time.Now())
	if len(f.render.last.Saved) != 1 || f.render.last.State != annotation.StateEmpty {
		t.Fatalf("expected finalized polygon: saved=%d state=%v", len(f.render.last.Saved), f.render.last.State)
	}
}

func TestAnnotationPresenter_UndoAndClear(t *testing.T) {
	f := newFixture(t)
	f.p.PointerDown(1, 1)
	f.p.PointerDown(5, 5)
	f.p.Undo()
	if s := f.eng.Snapshot(); s.VertexCount() != 1 {
		t.Fatalf("undo: vertices=%d want 1", s.VertexCount())
	}
	f.p.PointerDown(9, 9)
	f.p.PointerDown(9, 1)
	f.p.Done()
	f.p.Clear()
	if f.eng.Saved() != 0 || f.eng.State() != annotation.StateEmpty {
		t.Fatalf("clear: saved=%d state=%v", f.eng.Saved(), f.eng.State())
	}
}

func TestAnnotationPresenter_LoadImageScalesAndResets(t *testing.T) {
	f := newFixture(t)
	var loaded string
	f.p.OnImageLoaded = func(s string) { loaded = s }
	f.p.PointerDown(1, 1)
	f.p.LoadImage("big.png")
	if !f.view.busy {
		t.Fatalf("expected busy view while loading")
	}
	tickUntil(t, f.p, func() bool { return loaded != "" })
	if loaded != "big.png" || f.view.busy {
		t.Fatalf("unexpected load result: loaded=%q busy=%v", loaded, f.view.busy)
	}
	if f.eng.State() != annotation.StateEmpty {
		t.Fatalf("new image must reset the engine")
	}
	if f.p.Image.Scale() != 0.5 {
		t.Fatalf("expected display scale 0.5, got %v", f.p.Image.Scale())
	}
	// display (50,20) maps to image (100,40)
	f.p.PointerDown(50, 20)
	if s := f.eng.Snapshot(); s.Start != annotation.Pt(100, 40) {
		t.Fatalf("pointer mapping: got %v", s.Start)
	}
	// outside the displayed image is ignored
	f.p.PointerDown(250, 20)
	if s := f.eng.Snapshot(); s.VertexCount() != 1 {
		t.Fatalf("out-of-bounds click placed a vertex: %d", s.VertexCount())
	}
	f.p.Tick(time.Now())
	if f.render.scale != 0.5 || f.render.base == nil {
		t.Fatalf("render must use display image and scale: scale=%v", f.render.scale)
	}
}

func TestAnnotationPresenter_LoadFailureNotifies(t *testing.T) {
	f := newFixture(t)
	f.p.PointerDown(1, 1)
	f.p.LoadImage("missing.png")
	tickUntil(t, f.p, func() bool { return len(f.view.notified) > 0 })
	if f.view.notified[0] != "Cannot load image" || f.view.busy {
		t.Fatalf("unexpected notification %v busy=%v", f.view.notified, f.view.busy)
	}
	if f.eng.State() != annotation.StateDrawing {
		t.Fatalf("failed load must keep annotations")
	}
}

func TestAnnotationPresenter_Screenshot(t *testing.T) {
	f := newFixture(t)
	var loaded string
	f.p.OnImageLoaded = func(s string) { loaded = s }
	f.p.LoadScreenshot()
	tickUntil(t, f.p, func() bool { return loaded != "" })
	if loaded != "screen:1" || len(f.loader.remembered) != 1 {
		t.Fatalf("screenshot not loaded: source=%q remembered=%v", loaded, f.loader.remembered)
	}
	if w, h := f.p.Image.Size(); w != 300 || h != 200 {
		t.Fatalf("unexpected image size %dx%d", w, h)
	}
}

func TestAnnotationPresenter_ScreenshotRegion(t *testing.T) {
	f := newFixture(t)
	var loaded string
	f.p.OnImageLoaded = func(s string) { loaded = s }
	area := image.Rect(40, 30, 160, 110)
	f.p.LoadScreenshotRegion(area)
	tickUntil(t, f.p, func() bool { return loaded != "" })
	if f.screen.area != area {
		t.Fatalf("capture area=%v want %v", f.screen.area, area)
	}
	if loaded != "screen:2" {
		t.Fatalf("unexpected source %q", loaded)
	}
	if w, h := f.p.Image.Size(); w != 120 || h != 80 {
		t.Fatalf("unexpected image size %dx%d", w, h)
	}
}

func TestAnnotationPresenter_PointerDownIgnoresNegative(t *testing.T) {
	f := newFixture(t)
	f.p.PointerDown(-1, 5)
	f.p.PointerDown(5, -1)
	if f.eng.State() != annotation.StateEmpty {
		t.Fatalf("negative click must be ignored, state=%v", f.eng.State())
	}
	f.p.PointerDown(0, 0)
	if f.eng.State() != annotation.StateDrawing {
		t.Fatalf("click at origin must place a vertex, state=%v", f.eng.State())
	}
}

func TestLoadWorker_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	w := newLoadWorker(ctx, func(loadTask) loadResult {
		calls.Add(1)
		return loadResult{}
	})
	cancel()
	w.dispatch(loadTask{kind: loadTaskScreen})
	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop after cancel")
	}
	if calls.Load() != 0 {
		t.Fatalf("cancelled worker executed %d tasks", calls.Load())
	}
	if got := w.drain(); len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}
}

func TestAnnotationPresenter_ExportImport(t *testing.T) {
	f := newFixture(t)
	for _, pt := range [][2]int{{0, 0}, {10, 0}, {10, 10}} {
		f.p.PointerDown(pt[0], pt[1])
	}
	f.p.Done()
	path := filepath.Join(t.TempDir(), annotation.ExportFileName)
	if err := f.p.Export(path); err != nil {
		t.Fatalf("export: %v", err)
	}
	f.p.Clear()
	if err := f.p.Import(path); err != nil {
		t.Fatalf("import: %v", err)
	}
	got := f.eng.Export()
	if len(got) != 1 || len(got[0]) != 3 || got[0][1] != annotation.Pt(10, 0) {
		t.Fatalf("unexpected imported polygons %v", got)
	}
	for _, pt := range [][2]int{{50, 40}, {60, 40}, {60, 45}, {50, 45}} {
		f.p.PointerDown(pt[0], pt[1])
	}
	f.p.Done()
	if err := f.p.Import(path); err != nil {
		t.Fatalf("second import: %v", err)
	}
	if got := f.eng.Export(); len(got) != 1 || len(got[0]) != 3 {
		t.Fatalf("import must replace the saved set, got %v", got)
	}
}

func TestAnnotationPresenter_ExportFailureKeepsState(t *testing.T) {
	f := newFixture(t)
	f.p.PointerDown(0, 0)
	f.p.PointerDown(4, 0)
	f.p.PointerDown(4, 4)
	f.p.Done()
	f.p.PointerDown(7, 7)
	before := f.eng.Snapshot()
	err := f.p.Export(filepath.Join(t.TempDir(), "no", "such", "dir.json"))
	if err == nil {
		t.Fatalf("expected export error")
	}
	if len(f.view.notified) != 1 || f.view.notified[0] != "Export failed" {
		t.Fatalf("expected failure notification, got %v", f.view.notified)
	}
	after := f.eng.Snapshot()
	if after.Generation != before.Generation || after.VertexCount() != 1 || len(after.Saved) != 1 {
		t.Fatalf("export failure touched engine: before=%d after=%d", before.Generation, after.Generation)
	}
}

func TestAnnotationPresenter_ImportFailureKeepsSaved(t *testing.T) {
	f := newFixture(t)
	f.p.PointerDown(0, 0)
	f.p.PointerDown(4, 0)
	f.p.PointerDown(4, 4)
	f.p.Done()
	if err := f.p.Import(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected import error")
	}
	if f.eng.Saved() != 1 || len(f.view.notified) != 1 {
		t.Fatalf("saved=%d notified=%v", f.eng.Saved(), f.view.notified)
	}
}

func TestAnnotationPresenter_NilSafe(t *testing.T) {
	var p *AnnotationPresenter
	p.PointerDown(1, 1)
	p.Undo()
	p.Done()
	p.Clear()
	p.LoadImage("x")
	p.LoadScreenshot()
	p.Restyle()
	p.Tick(time.Now())
	if err := p.Export("x"); err != nil {
		t.Fatalf("nil export: %v", err)
	}
}
