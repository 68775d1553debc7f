// Package capture grabs the screen so it can be annotated like any other image.
package capture

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vova616/screenshot"
)

// GrabFunc captures an image of the screen.
type GrabFunc func() (*image.RGBA, error)

// RectGrabFunc captures a rectangle of the screen in screen coordinates.
type RectGrabFunc func(area image.Rectangle) (*image.RGBA, error)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// GrabRect captures only the given rectangle of the screen.
func GrabRect(area image.Rectangle) (*image.RGBA, error) {
	img, err := screenshot.CaptureRect(area)
	if err != nil {
		return nil, fmt.Errorf("capture rect %v: %w", area, err)
	}
	return img, nil
}

// Snapshot is a captured screen image with the synthetic source name used to
// cache and log it.
type Snapshot struct {
	Image      *image.RGBA
	Source     string
	CapturedAt time.Time
	Sequence   uint64
}

// ScreenSource numbers screen captures so each one gets a distinct source name.
type ScreenSource struct {
	grab     GrabFunc
	grabRect RectGrabFunc
	logger   *slog.Logger
	sequence atomic.Uint64
}

// NewScreenSource returns a source backed by grab and grabRect; nil functions
// fall back to Grab and GrabRect.
func NewScreenSource(grab GrabFunc, grabRect RectGrabFunc, logger *slog.Logger) *ScreenSource {
	if grab == nil {
		grab = Grab
	}
	if grabRect == nil {
		grabRect = GrabRect
	}
	return &ScreenSource{grab: grab, grabRect: grabRect, logger: logger}
}

// Capture grabs the whole screen once.
func (s *ScreenSource) Capture() (Snapshot, error) {
	return s.capture(s.grab)
}

// CaptureRect grabs only area of the screen. Empty areas are rejected.
func (s *ScreenSource) CaptureRect(area image.Rectangle) (Snapshot, error) {
	if area.Empty() {
		return Snapshot{}, fmt.Errorf("capture rect %v: empty region", area)
	}
	return s.capture(func() (*image.RGBA, error) { return s.grabRect(area) })
}

func (s *ScreenSource) capture(grab GrabFunc) (Snapshot, error) {
	start := time.Now()
	img, err := grab()
	if err != nil {
		return Snapshot{}, err
	}
	if img == nil {
		return Snapshot{}, fmt.Errorf("capture screen: empty frame")
	}
	seq := s.sequence.Add(1)
	snap := Snapshot{Image: img, Source: fmt.Sprintf("screen:%d", seq), CapturedAt: time.Now(), Sequence: seq}
	if s.logger != nil {
		s.logger.Info("screen captured", "source", snap.Source, "bounds", img.Bounds().String(), "took", time.Since(start))
	}
	return snap, nil
}
