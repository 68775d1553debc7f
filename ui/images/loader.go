// Package images resolves image sources and prepares images for display.
package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxRemoteBytes bounds downloads of http(s) image sources.
const maxRemoteBytes = 64 << 20

// Loaded is a decoded image together with the source it came from.
type Loaded struct {
	Source string
	Format string
	Image  image.Image
}

// Loader turns an opaque image source string into a decoded image. A source
// is a filesystem path, a data: URL or an http(s) URL. Decoded images are
// kept in a small LRU keyed by source.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	cache   *lru.Cache[string, Loaded]
	logger  *slog.Logger
}

// NewLoader returns a loader with the given cache size and remote fetch timeout.
func NewLoader(cacheSize int, timeout time.Duration, logger *slog.Logger) (*Loader, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[string, Loaded](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("image cache: %w", err)
	}
	return &Loader{client: http.DefaultClient, timeout: timeout, cache: cache, logger: logger}, nil
}

// Load resolves and decodes source.
func (l *Loader) Load(ctx context.Context, source string) (Loaded, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Loaded{}, errors.New("empty image source")
	}
	if v, ok := l.cache.Get(source); ok {
		return v, nil
	}
	var (
		img    image.Image
		format string
		err    error
	)
	switch {
	case strings.HasPrefix(source, "data:"):
		img, format, err = decodeDataURL(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		img, format, err = l.fetch(ctx, source)
	default:
		img, format, err = decodeFile(source)
	}
	if err != nil {
		return Loaded{}, err
	}
	out := Loaded{Source: source, Format: format, Image: img}
	l.cache.Add(source, out)
	if l.logger != nil {
		b := img.Bounds()
		l.logger.Info("image loaded", "format", format, "width", b.Dx(), "height", b.Dy(), "source", shortSource(source))
	}
	return out, nil
}

// Remember stores an already decoded image under source, e.g. a screen capture.
func (l *Loader) Remember(source string, img image.Image) Loaded {
	out := Loaded{Source: source, Format: "rgba", Image: img}
	l.cache.Add(source, out)
	return out
}

func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// decodeDataURL decodes "data:[<mediatype>][;base64],<data>".
func decodeDataURL(src string) (image.Image, string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, "", errors.New("malformed data URL")
	}
	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("data URL payload: %w", err)
		}
		raw = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, "", fmt.Errorf("data URL payload: %w", err)
		}
		raw = []byte(s)
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("decode data URL: %w", err)
	}
	return img, format, nil
}

func (l *Loader) fetch(ctx context.Context, src string) (image.Image, string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", fmt.Errorf("image request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}
	img, format, err := image.Decode(io.LimitReader(resp.Body, maxRemoteBytes))
	if err != nil {
		return nil, "", fmt.Errorf("decode remote image: %w", err)
	}
	return img, format, nil
}

// shortSource keeps data URLs out of the logs.
func shortSource(src string) string {
	if strings.HasPrefix(src, "data:") {
		meta, _, _ := strings.Cut(src, ",")
		return meta + ",..."
	}
	return src
}
