// Package annotation implements the polygon capture engine: vertices are
// placed one at a time, edges accumulate into an open polygon, and Finalize
// closes it into the saved annotation set.
package annotation

import (
	"log/slog"
)

// Engine owns the in-progress polygon and the saved annotation set.
// It is not safe for concurrent use; all calls are expected on the UI thread.
type Engine struct {
	drawing    []Segment
	start      Point
	hasStart   bool
	saved      []Polygon
	generation uint64
	logger     *slog.Logger
	listeners  []Listener
}

// NewEngine returns an empty engine. logger may be nil.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// AddListener registers fn to receive a snapshot after every state change.
func (e *Engine) AddListener(fn Listener) {
	if e == nil || fn == nil {
		return
	}
	e.listeners = append(e.listeners, fn)
}

// State reports whether a polygon is currently being drawn.
func (e *Engine) State() State {
	if e == nil || !e.hasStart {
		return StateEmpty
	}
	return StateDrawing
}

// AddPoint places a vertex. The first vertex only sets the cursor; every
// later vertex appends an edge from the previous one.
func (e *Engine) AddPoint(p Point) {
	if e == nil {
		return
	}
	prev := e.State()
	if e.hasStart {
		e.drawing = append(e.drawing, Segment{Start: e.start, End: p})
	}
	e.start, e.hasStart = p, true
	e.changed(prev, "add_point")
}

// Undo removes the most recently placed vertex. With edges present the last
// edge is dropped and the cursor returns to its start. With only the first
// vertex placed the cursor is cleared. Undo on an empty engine is a no-op.
func (e *Engine) Undo() {
	if e == nil {
		return
	}
	prev := e.State()
	switch {
	case len(e.drawing) > 0:
		last := e.drawing[len(e.drawing)-1]
		e.drawing = e.drawing[:len(e.drawing)-1]
		// last.Start equals the new last edge's End while edges remain.
		e.start = last.Start
	case e.hasStart:
		e.start, e.hasStart = Point{}, false
	default:
		return
	}
	e.changed(prev, "undo")
}

// Finalize closes the in-progress polygon with an edge from the last vertex
// back to the first and appends it to the saved set. Without edges nothing is
// saved; a lone placed vertex is discarded.
func (e *Engine) Finalize() {
	if e == nil {
		return
	}
	prev := e.State()
	if len(e.drawing) == 0 {
		if !e.hasStart {
			return
		}
		e.start, e.hasStart = Point{}, false
		e.changed(prev, "discard")
		return
	}
	poly := make(Polygon, 0, len(e.drawing)+1)
	poly = append(poly, e.drawing...)
	poly = append(poly, Segment{Start: e.drawing[len(e.drawing)-1].End, End: e.drawing[0].Start})
	e.saved = append(e.saved, poly)
	e.drawing = nil
	e.start, e.hasStart = Point{}, false
	if e.logger != nil {
		e.logger.Info("polygon finalized", "index", len(e.saved)-1, "segments", len(poly))
	}
	e.changed(prev, "finalize")
}

// HighlightOutline returns the preview polygon Finalize would currently
// produce: every edge start, plus the last edge's end once three or more
// points were collected. Fewer than three points is not a fillable area.
func (e *Engine) HighlightOutline() []Point {
	if e == nil {
		return nil
	}
	return highlightOutline(e.drawing)
}

func highlightOutline(drawing []Segment) []Point {
	pts := make([]Point, 0, len(drawing)+1)
	for _, s := range drawing {
		pts = append(pts, s.Start)
	}
	if len(pts) >= 3 {
		pts = append(pts, drawing[len(drawing)-1].End)
	}
	return pts
}

// Export returns the vertex sequence of every saved polygon in drawing order.
func (e *Engine) Export() [][]Point {
	if e == nil {
		return nil
	}
	out := make([][]Point, len(e.saved))
	for i, poly := range e.saved {
		out[i] = poly.Vertices()
	}
	return out
}

// Import replaces the saved set with closed polygons rebuilt from vertex
// lists. Empty lists are skipped. The in-progress polygon is untouched.
func (e *Engine) Import(polys [][]Point) {
	if e == nil {
		return
	}
	prev := e.State()
	saved := make([]Polygon, 0, len(polys))
	for i, vs := range polys {
		if len(vs) == 0 {
			if e.logger != nil {
				e.logger.Warn("import skipped empty polygon", "index", i)
			}
			continue
		}
		saved = append(saved, PolygonFromVertices(vs))
	}
	e.saved = saved
	if e.logger != nil {
		e.logger.Info("polygons imported", "count", len(saved))
	}
	e.changed(prev, "import")
}

// Reset clears the in-progress polygon and the saved set. Call it whenever a
// new image is loaded.
func (e *Engine) Reset() {
	if e == nil {
		return
	}
	prev := e.State()
	e.drawing = nil
	e.start, e.hasStart = Point{}, false
	e.saved = nil
	e.changed(prev, "reset")
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	if e == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		State:      e.State(),
		Drawing:    append([]Segment(nil), e.drawing...),
		Start:      e.start,
		HasStart:   e.hasStart,
		Saved:      make([]Polygon, len(e.saved)),
		Highlight:  highlightOutline(e.drawing),
		Generation: e.generation,
	}
	for i, poly := range e.saved {
		snap.Saved[i] = append(Polygon(nil), poly...)
	}
	return snap
}

// Saved returns the number of finalized polygons.
func (e *Engine) Saved() int {
	if e == nil {
		return 0
	}
	return len(e.saved)
}

func (e *Engine) changed(prev State, op string) {
	e.generation++
	next := e.State()
	if e.logger != nil {
		e.logger.Debug("annotation change", "op", op, "from", prev.String(), "to", next.String(), "segments", len(e.drawing), "saved", len(e.saved))
	}
	if len(e.listeners) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, l := range e.listeners {
		l(prev, next, snap)
	}
}
