// Package screen finds reference images on the live display and clicks them.
//
// Matching is only as good as the reference images: they must be captured at
// the same resolution, scaling and theme as the screen being searched.
package screen

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spboyer/quizpilot/internal/desktop"
)

// WeakMatchScore is the score below which a match is logged as suspicious
// even when no confidence threshold is enforced.
const WeakMatchScore = 0.8

// ErrLowConfidence is matched by every NotFoundError.
var ErrLowConfidence = errors.New("reference image not found with enough confidence")

// NotFoundError reports a best match that scored under the configured threshold.
type NotFoundError struct {
	Name      string
	Score     float64
	Threshold float64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: best match for %q scored %.3f, below %.3f", ErrLowConfidence, e.Name, e.Score, e.Threshold)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrLowConfidence
}

// Region is a located UI affordance.
type Region struct {
	Name  string
	Rect  image.Rectangle
	Score float64
}

// Center is the click point of the region before any offset.
func (r Region) Center() image.Point {
	return Match{Rect: r.Rect}.Center()
}

// Locator matches reference images against screen captures.
type Locator struct {
	desktop       desktop.Desktop
	dir           string
	minConfidence float64

	mu        sync.Mutex
	templates map[string]*image.Gray
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithMinConfidence makes Locate fail with a NotFoundError when the best
// score is below threshold. Zero keeps the click-the-best-match behaviour.
func WithMinConfidence(threshold float64) LocatorOption {
	return func(l *Locator) {
		l.minConfidence = threshold
	}
}

// NewLocator creates a Locator that reads reference images from dir.
func NewLocator(d desktop.Desktop, dir string, opts ...LocatorOption) *Locator {
	l := &Locator{
		desktop:   d,
		dir:       dir,
		templates: map[string]*image.Gray{},
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Template loads and caches the grayscale reference image called name.
// Relative names resolve against the locator's directory.
func (l *Locator) Template(name string) (*image.Gray, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if g, ok := l.templates[name]; ok {
		return g, nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, name)
	}
	g, err := LoadGray(path)
	if err != nil {
		return nil, err
	}
	l.templates[name] = g
	return g, nil
}

// Locate captures the screen and returns where the reference image named
// name matches best.
func (l *Locator) Locate(ctx context.Context, name string) (Region, error) {
	if err := ctx.Err(); err != nil {
		return Region{}, err
	}

	tmpl, err := l.Template(name)
	if err != nil {
		return Region{}, err
	}

	shot, err := l.desktop.CaptureScreen()
	if err != nil {
		return Region{}, err
	}

	m, err := BestMatch(ToGray(shot), tmpl)
	if err != nil {
		return Region{}, fmt.Errorf("matching %q: %w", name, err)
	}

	// The capture may not start at (0, 0) on multi-monitor setups.
	rect := m.Rect.Add(shot.Bounds().Min)
	region := Region{Name: name, Rect: rect, Score: m.Score}

	if l.minConfidence > 0 && m.Score < l.minConfidence {
		return region, &NotFoundError{Name: name, Score: m.Score, Threshold: l.minConfidence}
	}
	if m.Score < WeakMatchScore {
		slog.Warn("Weak reference image match", "image", name, "score", m.Score, "x", rect.Min.X, "y", rect.Min.Y)
	} else {
		slog.Debug("Reference image matched", "image", name, "score", m.Score, "x", rect.Min.X, "y", rect.Min.Y)
	}
	return region, nil
}

// Activate clicks the center of r shifted by offset and returns the point clicked.
func (l *Locator) Activate(ctx context.Context, r Region, offset image.Point) (image.Point, error) {
	if err := ctx.Err(); err != nil {
		return image.Point{}, err
	}
	p := r.Center().Add(offset)
	if err := l.desktop.Click(p.X, p.Y); err != nil {
		return image.Point{}, fmt.Errorf("clicking %q at %d,%d: %w", r.Name, p.X, p.Y, err)
	}
	return p, nil
}

// LocateAndClick locates name and clicks it.
func (l *Locator) LocateAndClick(ctx context.Context, name string, offset image.Point) (image.Point, error) {
	r, err := l.Locate(ctx, name)
	if err != nil {
		return image.Point{}, err
	}
	return l.Activate(ctx, r, offset)
}

// LoadGray decodes the image at path and converts it to grayscale.
func LoadGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding reference image %s: %w", path, err)
	}
	return ToGray(img), nil
}
