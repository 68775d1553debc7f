package view

import (
	"image"

	"github.com/soocke/polygon-annotator-go/ui/images"
	"github.com/soocke/polygon-annotator-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// AnnotationCanvas shows the rendered annotation frame and reports clicks in
// display pixel coordinates.
type AnnotationCanvas interface {
	Show(img image.Image)
}

// The label draws its image at borderwidth + highlightthickness + pad from
// its top-left corner; %x %y are relative to that corner.
const (
	canvasBorder    = 0
	canvasHighlight = 0
	canvasPad       = 0
	canvasInset     = canvasBorder + canvasHighlight + canvasPad
)

type annotationCanvas struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before every swap
}

// NewAnnotationCanvas creates the canvas label at (row, col) spanning rows
// grid rows and binds the primary button to onPointer.
func NewAnnotationCanvas(row, col, rows int, onPointer func(x, y int)) AnnotationCanvas {
	photo := NewPhoto(Data(images.EncodePNG(placeholder())))
	lbl := Label(Image(photo), Borderwidth(canvasBorder), Highlightthickness(canvasHighlight),
		Padx(canvasPad), Pady(canvasPad), Cursor("crosshair"), Anchor("nw"))
	Grid(lbl, Row(row), Column(col), Rowspan(rows), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	if onPointer != nil {
		Bind(lbl, "<Button-1>", Command(func(e *Event) {
			onPointer(model.StripInset(e.X, e.Y, canvasInset))
		}))
	}
	return &annotationCanvas{label: lbl, prevPhoto: photo}
}

func placeholder() image.Image { return image.NewRGBA(image.Rect(0, 0, 640, 400)) }

func (v *annotationCanvas) Show(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}
