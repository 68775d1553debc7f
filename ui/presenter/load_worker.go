package presenter

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/soocke/polygon-annotator-go/domain/capture"
	"github.com/soocke/polygon-annotator-go/ui/images"
)

type loadTaskKind int

const (
	loadTaskSource loadTaskKind = iota + 1
	loadTaskScreen
	loadTaskScreenRect
)

type loadTask struct {
	kind       loadTaskKind
	source     string
	area       image.Rectangle
	ctx        context.Context
	maxW, maxH int
}

type loadResult struct {
	source   string
	image    image.Image
	display  image.Image
	scale    float64
	err      error
	duration time.Duration
}

// loadWorker runs image loads off the UI thread. Only the newest pending task
// is kept; results are collected by the UI thread via drain. The goroutine
// exits once ctx is cancelled.
type loadWorker struct {
	ctx      context.Context
	exec     func(loadTask) loadResult
	once     sync.Once
	workCh   chan loadTask
	resultCh chan loadResult
	done     chan struct{}
}

func newLoadWorker(ctx context.Context, exec func(loadTask) loadResult) *loadWorker {
	if ctx == nil {
		ctx = context.Background()
	}
	return &loadWorker{
		ctx:      ctx,
		exec:     exec,
		workCh:   make(chan loadTask, 1),
		resultCh: make(chan loadResult, 4),
		done:     make(chan struct{}),
	}
}

func (w *loadWorker) run() {
	defer close(w.done)
	for {
		if w.ctx.Err() != nil {
			return
		}
		select {
		case <-w.ctx.Done():
			return
		case task := <-w.workCh:
			res := w.exec(task)
			select {
			case w.resultCh <- res:
			case <-w.ctx.Done():
				return
			}
		}
	}
}

func (w *loadWorker) dispatch(task loadTask) {
	if w == nil {
		return
	}
	w.once.Do(func() { go w.run() })
	select {
	case w.workCh <- task:
	default:
		select {
		case <-w.workCh:
		default:
		}
		select {
		case w.workCh <- task:
		default:
		}
	}
}

// drain returns finished results without blocking.
func (w *loadWorker) drain() []loadResult {
	if w == nil {
		return nil
	}
	var out []loadResult
	for {
		select {
		case res := <-w.resultCh:
			out = append(out, res)
		default:
			return out
		}
	}
}

func (p *AnnotationPresenter) executeLoad(task loadTask) loadResult {
	start := time.Now()
	res := loadResult{source: task.source}
	var img image.Image
	switch task.kind {
	case loadTaskSource:
		loaded, err := p.Loader.Load(task.ctx, task.source)
		if err != nil {
			res.err = err
			return res
		}
		img = loaded.Image
	case loadTaskScreen, loadTaskScreenRect:
		var (
			snap capture.Snapshot
			err  error
		)
		if task.kind == loadTaskScreenRect {
			snap, err = p.Screen.CaptureRect(task.area)
		} else {
			snap, err = p.Screen.Capture()
		}
		if err != nil {
			res.err = err
			return res
		}
		res.source = snap.Source
		img = snap.Image
		if p.Loader != nil {
			p.Loader.Remember(snap.Source, snap.Image)
		}
	default:
		res.err = errors.New("unknown load task kind")
		return res
	}
	res.image = img
	res.display, res.scale = images.ScaleToFit(img, task.maxW, task.maxH)
	res.duration = time.Since(start)
	return res
}
