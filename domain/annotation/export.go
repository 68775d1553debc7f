package annotation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ExportFileName is the default name of the exported coordinates document.
const ExportFileName = "coordinates.json"

// WriteJSON encodes polygons as a JSON array of polygons, each an array of
// {"x","y"} objects. No version or metadata is added.
func WriteJSON(w io.Writer, polys [][]Point) error {
	if polys == nil {
		polys = [][]Point{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(polys); err != nil {
		return fmt.Errorf("encode coordinates: %w", err)
	}
	return nil
}

// ReadJSON decodes a document produced by WriteJSON.
func ReadJSON(r io.Reader) ([][]Point, error) {
	var polys [][]Point
	dec := json.NewDecoder(r)
	if err := dec.Decode(&polys); err != nil {
		return nil, fmt.Errorf("decode coordinates: %w", err)
	}
	return polys, nil
}

// SaveFile writes polys to path and returns the number of bytes written.
func SaveFile(path string, polys [][]Point) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: f}
	if err := WriteJSON(cw, polys); err != nil {
		_ = f.Close()
		return cw.n, err
	}
	if err := f.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// LoadFile reads a coordinates document from path.
func LoadFile(path string) ([][]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
