package annotation

// Point is a pixel coordinate relative to the image's top-left corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Segment is one drawn edge between two consecutively placed vertices.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Polygon is an ordered loop of segments. Finalized polygons satisfy the
// closure invariant: each segment ends where the next one starts and the last
// segment ends at the first segment's start.
type Polygon []Segment

// Vertices collapses the polygon back to its vertex sequence (segment starts).
func (p Polygon) Vertices() []Point {
	out := make([]Point, len(p))
	for i, s := range p {
		out[i] = s.Start
	}
	return out
}

// PolygonFromVertices pairs every vertex with the next one, wrapping the last
// back to the first. It is the inverse of Polygon.Vertices for closed polygons.
func PolygonFromVertices(vs []Point) Polygon {
	n := len(vs)
	if n == 0 {
		return nil
	}
	poly := make(Polygon, n)
	for i := range vs {
		poly[i] = Segment{Start: vs[i], End: vs[(i+1)%n]}
	}
	return poly
}

// State enumerates the capture states.
type State int

const (
	// StateEmpty means no vertex has been placed for the current polygon.
	StateEmpty State = iota
	// StateDrawing means at least one vertex has been placed.
	StateDrawing
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the engine state handed to renderers.
type Snapshot struct {
	State      State
	Drawing    []Segment
	Start      Point
	HasStart   bool
	Saved      []Polygon
	Highlight  []Point
	Generation uint64
}

// VertexCount returns the number of vertices placed for the in-progress polygon.
func (s Snapshot) VertexCount() int {
	if !s.HasStart {
		return 0
	}
	return len(s.Drawing) + 1
}

// Listener is called after every mutation that changed engine state.
type Listener func(prev, next State, snap Snapshot)
