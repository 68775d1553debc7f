package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/polygon-annotator-go/domain/capture"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// regionBorder is the toplevel border in pixels; it is excluded from the
// captured area.
const regionBorder = 2

// RegionOverlay is a translucent, resizable window the user drags over the
// part of the screen to capture.
type RegionOverlay interface {
	OpenOrFocus()
}

type regionOverlay struct {
	logger    *slog.Logger
	onConfirm func(image.Rectangle)
	win       *ToplevelWidget
}

// NewRegionOverlay creates the overlay manager. onConfirm receives the
// selected screen rectangle.
func NewRegionOverlay(logger *slog.Logger, onConfirm func(image.Rectangle)) RegionOverlay {
	return &regionOverlay{logger: logger, onConfirm: onConfirm}
}

func (v *regionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(regionBorder), Background("#1e90ff"))
	win.WmTitle("Screenshot Region")
	v.win = win
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", 640, 400, 120, 120))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", 0.35)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	Grid(win.Frame(), Row(0), Column(0), Sticky("nsew"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Sticky("we"))
	confirm := win.TButton(Txt("Capture [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.TButton(Txt("Cancel [Esc]"), Command(v.destroy))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.destroy))
}

func (v *regionOverlay) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	v.destroy()
	rect, ok := capture.ParseGeometry(geom)
	if ok {
		rect = capture.Inset(rect, regionBorder)
	}
	if !ok || rect.Empty() {
		if v.logger != nil {
			v.logger.Warn("screenshot region rejected", "geometry", geom)
		}
		return
	}
	if v.logger != nil {
		v.logger.Info("screenshot region selected", "rect", rect.String())
	}
	if v.onConfirm != nil {
		v.onConfirm(rect)
	}
}

func (v *regionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}
