// Package render draws annotation snapshots on top of the displayed image.
//
// Edges are drawn as rotated bars (length and atan2 angle of each segment),
// the active vertex as a small dot, and saved polygons plus the live
// highlight outline as translucent fills using the nonzero rule.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/soocke/polygon-annotator-go/config"
	"github.com/soocke/polygon-annotator-go/domain/annotation"
	"github.com/soocke/polygon-annotator-go/domain/geometry"
)

// dotSides approximates the vertex dot.
const dotSides = 24

// blankW/blankH size the canvas when no image is loaded.
const (
	blankW = 640
	blankH = 400
)

// Style holds overlay colours and sizes in display pixels.
type Style struct {
	Line       color.NRGBA
	Fill       color.NRGBA
	Label      color.NRGBA
	Background color.NRGBA
	LineWidth  float64
	DotRadius  float64
	Labels     bool
}

// DefaultStyle matches the default configuration.
func DefaultStyle() Style {
	return StyleFromConfig(config.DefaultConfig())
}

// StyleFromConfig builds a Style from cfg; unparsable colours fall back to defaults.
func StyleFromConfig(cfg *config.Config) Style {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d := config.DefaultConfig()
	line, err := ParseHexColor(cfg.LineColor)
	if err != nil {
		line, _ = ParseHexColor(d.LineColor)
	}
	fill, err := ParseHexColor(cfg.FillColor)
	if err != nil {
		fill, _ = ParseHexColor(d.FillColor)
	}
	bg := color.NRGBA{R: 0xf7, G: 0xf9, B: 0xfb, A: 0xff}
	label := color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	if cfg.DarkMode {
		bg = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
		label = color.NRGBA{R: 0xf1, G: 0xf5, B: 0xf9, A: 0xff}
	}
	return Style{
		Line:       line,
		Fill:       fill,
		Label:      label,
		Background: bg,
		LineWidth:  cfg.LineWidth,
		DotRadius:  cfg.DotRadius,
		Labels:     cfg.ShowLabels,
	}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Renderer composites annotation overlays. It reuses one rasterizer and is not
// safe for concurrent use.
type Renderer struct {
	style  Style
	raster *vector.Rasterizer
}

// New returns a renderer using style.
func New(style Style) *Renderer {
	return &Renderer{style: style, raster: vector.NewRasterizer(1, 1)}
}

// SetStyle replaces the overlay style.
func (r *Renderer) SetStyle(style Style) { r.style = style }

// Render draws snap over base. scale maps image coordinates to the display
// pixels of base. A nil base renders on a blank canvas.
func (r *Renderer) Render(base image.Image, snap annotation.Snapshot, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	var dst *image.RGBA
	if base != nil {
		b := base.Bounds()
		dst = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), base, b.Min, draw.Src)
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, blankW, blankH))
		draw.Draw(dst, dst.Bounds(), image.NewUniform(r.style.Background), image.Point{}, draw.Src)
	}

	for _, poly := range snap.Saved {
		r.fill(dst, scaled(poly.Vertices(), scale), r.style.Fill)
	}
	if len(snap.Highlight) >= 3 {
		r.fill(dst, scaled(snap.Highlight, scale), r.style.Fill)
	}
	for _, s := range snap.Drawing {
		seg := annotation.Segment{Start: geometry.Scale(s.Start, scale), End: geometry.Scale(s.End, scale)}
		if geometry.Length(seg) == 0 {
			continue
		}
		bar := geometry.Bar(seg, r.style.LineWidth)
		r.fill(dst, bar[:], r.style.Line)
	}
	if snap.HasStart {
		r.fill(dst, circle(geometry.Scale(snap.Start, scale), r.style.DotRadius), r.style.Line)
	}
	if r.style.Labels {
		for i, poly := range snap.Saved {
			min, _, ok := geometry.Bounds(scaled(poly.Vertices(), scale))
			if !ok {
				continue
			}
			r.label(dst, strconv.Itoa(i+1), int(min.X)+3, int(min.Y)+13)
		}
	}
	return dst
}

// fill rasterizes the closed loop pts in c. Fewer than three points cover no area.
func (r *Renderer) fill(dst *image.RGBA, pts []annotation.Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	r.raster.Reset(b.Dx(), b.Dy())
	r.raster.DrawOp = draw.Over
	r.raster.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.raster.LineTo(float32(p.X), float32(p.Y))
	}
	r.raster.ClosePath()
	r.raster.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func (r *Renderer) label(dst *image.RGBA, text string, x, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.style.Label),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func scaled(pts []annotation.Point, f float64) []annotation.Point {
	out := make([]annotation.Point, len(pts))
	for i, p := range pts {
		out[i] = geometry.Scale(p, f)
	}
	return out
}

func circle(c annotation.Point, radius float64) []annotation.Point {
	pts := make([]annotation.Point, dotSides)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / dotSides
		pts[i] = annotation.Pt(c.X+radius*math.Cos(a), c.Y+radius*math.Sin(a))
	}
	return pts
}
