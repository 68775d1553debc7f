package images

import (
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return EncodePNG(img)
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader(4, 2*time.Second, nil)
	if err != nil {
		t.Fatalf("loader: %v", err)
	}
	return l
}

func TestLoader_FileAndCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.png")
	if err := os.WriteFile(path, testPNG(12, 8), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	l := newTestLoader(t)
	got, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Format != "png" || got.Image.Bounds().Dx() != 12 || got.Image.Bounds().Dy() != 8 {
		t.Fatalf("unexpected image: format=%s bounds=%v", got.Format, got.Image.Bounds())
	}
	// second load must come from the cache
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := l.Load(context.Background(), path); err != nil {
		t.Fatalf("expected cached image after removal, got %v", err)
	}
}

func TestLoader_DataURL(t *testing.T) {
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(5, 3))
	got, err := newTestLoader(t).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Image.Bounds().Dx() != 5 || got.Image.Bounds().Dy() != 3 {
		t.Fatalf("unexpected bounds %v", got.Image.Bounds())
	}
}

func TestLoader_DataURLMalformed(t *testing.T) {
	l := newTestLoader(t)
	if _, err := l.Load(context.Background(), "data:image/png;base64"); err == nil {
		t.Fatalf("expected error for missing payload")
	}
	if _, err := l.Load(context.Background(), "data:image/png;base64,!!!"); err == nil {
		t.Fatalf("expected error for bad base64")
	}
}

func TestLoader_HTTP(t *testing.T) {
	body := testPNG(7, 7)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()
	l := newTestLoader(t)
	got, err := l.Load(context.Background(), srv.URL+"/img.png")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Image.Bounds().Dx() != 7 {
		t.Fatalf("unexpected bounds %v", got.Image.Bounds())
	}
	if _, err := l.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestLoader_EmptyAndMissing(t *testing.T) {
	l := newTestLoader(t)
	if _, err := l.Load(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty source")
	}
	if _, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoader_Remember(t *testing.T) {
	l := newTestLoader(t)
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	l.Remember("screen:1", img)
	got, err := l.Load(context.Background(), "screen:1")
	if err != nil || got.Image != image.Image(img) {
		t.Fatalf("remembered image not returned: err=%v", err)
	}
}
