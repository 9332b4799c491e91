// Package background loads the puzzle background images: it fetches a URL
// or file, decodes it and scales it to the widget's background area. Decoded
// images are cached per source, so each background is fetched once per
// process.
package background

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 4
	maxImageBytes      = 16 << 20
)

// ErrStatus is returned when an HTTP fetch answers with a non-200 status.
var ErrStatus = errors.New("background: unexpected status")

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient replaces the client used for http and https sources.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Source) { s.log = log }
}

// WithConcurrency bounds the number of parallel fetches in Preload.
func WithConcurrency(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Source fetches, decodes, scales and caches background images for one
// target size. It is safe for concurrent use.
type Source struct {
	width, height int
	client        *http.Client
	log           *zap.Logger
	concurrency   int

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewSource returns a Source producing width x height images.
func NewSource(width, height int, opts ...Option) *Source {
	s := &Source{
		width:       width,
		height:      height,
		client:      &http.Client{Timeout: defaultTimeout},
		log:         zap.NewNop(),
		concurrency: defaultConcurrency,
		cache:       make(map[string]image.Image),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the dimensions every image from this source is scaled to.
func (s *Source) Size() (int, int) {
	return s.width, s.height
}

// Cached returns a previously loaded image without fetching.
func (s *Source) Cached(src string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.cache[src]
	return img, ok
}

// Get returns the scaled image for src, loading it on first use.
// Concurrent calls for the same src share one fetch.
func (s *Source) Get(ctx context.Context, src string) (image.Image, error) {
	if img, ok := s.Cached(src); ok {
		return img, nil
	}
	v, err, _ := s.group.Do(src, func() (any, error) {
		if img, ok := s.Cached(src); ok {
			return img, nil
		}
		start := time.Now()
		img, err := s.load(ctx, src)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[src] = img
		s.mu.Unlock()
		s.log.Debug("background loaded",
			zap.String("src", src),
			zap.Duration("took", time.Since(start)),
		)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Preload loads every source in parallel. It returns the first error, after
// the remaining fetches have finished; sources that loaded are cached either
// way.
func (s *Source) Preload(ctx context.Context, srcs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, src := range srcs {
		g.Go(func() error {
			_, err := s.Get(ctx, src)
			return err
		})
	}
	return g.Wait()
}

// Close releases idle HTTP connections.
func (s *Source) Close() {
	s.client.CloseIdleConnections()
}

func (s *Source) load(ctx context.Context, src string) (image.Image, error) {
	data, err := s.read(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("background %s: %w", src, err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("background %s: decode: %w", src, err)
	}
	s.log.Debug("background decoded", zap.String("src", src), zap.String("format", format))
	return Scale(img, s.width, s.height), nil
}

func (s *Source) read(ctx context.Context, src string) ([]byte, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		return s.fetch(ctx, src)
	case "file":
		return os.ReadFile(u.Path)
	case "":
		return os.ReadFile(src)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (s *Source) fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// Scale resizes img to exactly w x h, stretching like a background sized to
// its container.
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Fallback draws a diagonal two-color gradient with a faint grid, used when a
// background cannot be loaded. The colors are derived from key, so each
// source gets a stable, distinct placeholder.
func Fallback(w, h int, key string) *image.RGBA {
	hash := fnv.New32a()
	_, _ = io.WriteString(hash, key)
	sum := hash.Sum32()

	from := color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}
	to := color.RGBA{R: 255 - from.R/2, G: 255 - from.G/2, B: 255 - from.B/2, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	span := float64(w + h)
	if span == 0 {
		return img
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := float64(x+y) / span
			c := color.RGBA{
				R: lerp8(from.R, to.R, t),
				G: lerp8(from.G, to.G, t),
				B: lerp8(from.B, to.B, t),
				A: 255,
			}
			if x%32 == 0 || y%32 == 0 {
				c.R, c.G, c.B = c.R/8*7, c.G/8*7, c.B/8*7
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// IsRemote reports whether src is fetched over the network.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
