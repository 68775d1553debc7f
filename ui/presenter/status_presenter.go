package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/polygon-annotator-go/domain/annotation"
	"github.com/soocke/polygon-annotator-go/domain/geometry"
)

// StatusView shows the engine state and toggles actions that depend on it.
type StatusView interface {
	SetStatus(text string)
	SetUndoEnabled(bool)
	SetDoneEnabled(bool)
}

// StatusPresenter receives engine snapshots and reflects the most recent one
// in the status bar on Tick.
type StatusPresenter struct {
	view    StatusView
	latest  string
	pending []annotation.Snapshot
	primed  bool
}

func NewStatusPresenter(view StatusView) *StatusPresenter {
	return &StatusPresenter{view: view}
}

// OnSnapshot queues a snapshot from the engine listener.
func (p *StatusPresenter) OnSnapshot(_, _ annotation.State, snap annotation.Snapshot) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, snap)
}

// Tick updates the view with the most recent queued snapshot and clears the queue.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if len(p.pending) == 0 {
		if !p.primed {
			p.primed = true
			p.apply(annotation.Snapshot{})
		}
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	p.primed = true
	p.apply(last)
}

func (p *StatusPresenter) apply(snap annotation.Snapshot) {
	text := StatusText(snap)
	if text != p.latest {
		p.latest = text
		p.view.SetStatus(text)
	}
	drawing := snap.State == annotation.StateDrawing
	p.view.SetUndoEnabled(drawing)
	p.view.SetDoneEnabled(drawing)
}

// StatusText formats snap for the status bar.
func StatusText(snap annotation.Snapshot) string {
	text := fmt.Sprintf("State: %s | vertices: %d | polygons: %d", snap.State, snap.VertexCount(), len(snap.Saved))
	if n := len(snap.Saved); n > 0 {
		last := snap.Saved[n-1]
		text += fmt.Sprintf(" | last area: %.0f px | perimeter: %.0f px", geometry.Area(last.Vertices()), geometry.Perimeter(last))
	}
	return text
}
