package capture

import (
	"image"
	"regexp"
	"strconv"
	"strings"
)

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// ParseGeometry parses a Tk geometry string into the screen rectangle it covers.
func ParseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// Inset shrinks r by border pixels on every side, e.g. to drop a window frame.
// It returns an empty rectangle when nothing is left.
func Inset(r image.Rectangle, border int) image.Rectangle {
	out := image.Rectangle{
		Min: image.Pt(r.Min.X+border, r.Min.Y+border),
		Max: image.Pt(r.Max.X-border, r.Max.Y-border),
	}
	if out.Empty() {
		return image.Rectangle{}
	}
	return out
}
