package model

import (
	"image"
	"math"

	"github.com/soocke/polygon-annotator-go/domain/annotation"
)

// ImageModel holds the image being annotated and how it is shown on screen.
// Pointer coordinates arrive in display pixels and are mapped back to source
// image pixels before they reach the engine. The zero value means no image.
// No synchronization needed: updates occur on the UI thread.
type ImageModel struct {
	source  string
	image   image.Image
	display image.Image
	scale   float64
}

func NewImageModel() *ImageModel { return &ImageModel{} }

// Set stores a newly loaded image, its display rendition and the factor that
// maps source pixels to display pixels.
func (m *ImageModel) Set(source string, img, display image.Image, scale float64) {
	if m == nil {
		return
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	if display == nil {
		display = img
	}
	m.source, m.image, m.display, m.scale = source, img, display, scale
}

// Loaded reports whether an image is present.
func (m *ImageModel) Loaded() bool { return m != nil && m.image != nil }

// Source returns the opaque source string of the current image.
func (m *ImageModel) Source() string {
	if m == nil {
		return ""
	}
	return m.source
}

// Display returns the image as shown on screen (may be nil).
func (m *ImageModel) Display() image.Image {
	if m == nil {
		return nil
	}
	return m.display
}

// Size returns the source image dimensions.
func (m *ImageModel) Size() (w, h int) {
	if !m.Loaded() {
		return 0, 0
	}
	b := m.image.Bounds()
	return b.Dx(), b.Dy()
}

// Scale returns the source-to-display factor (1 when nothing is loaded).
func (m *ImageModel) Scale() float64 {
	if m == nil || m.scale == 0 {
		return 1
	}
	return m.scale
}

// ToImage maps a display pixel to source image coordinates. Values are
// rounded to two decimals to keep exported documents readable.
func (m *ImageModel) ToImage(x, y int) annotation.Point {
	s := m.Scale()
	return annotation.Pt(round2(float64(x)/s), round2(float64(y)/s))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// StripInset converts widget-relative pointer coordinates to image-relative
// ones for a widget that draws its image inset pixels from its top-left corner.
func StripInset(x, y, inset int) (int, int) {
	if inset <= 0 {
		return x, y
	}
	return x - inset, y - inset
}
