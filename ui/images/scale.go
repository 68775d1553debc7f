package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit resamples src so that it fits within maxW x maxH preserving the
// aspect ratio. It returns the image to display and the factor that maps
// source pixels to display pixels. Images that already fit are returned as is
// with factor 1.
func ScaleToFit(src image.Image, maxW, maxH int) (image.Image, float64) {
	if src == nil {
		return nil, 1
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || (w <= maxW && h <= maxH) {
		return src, 1
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	dst := imaging.Fit(src, maxW, maxH, imaging.Lanczos)
	return dst, float64(dst.Bounds().Dx()) / float64(w)
}
