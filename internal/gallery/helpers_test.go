package gallery

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/five82/vgallery/internal/imageload"
	"github.com/five82/vgallery/internal/surface"
)

type fakeLoader struct {
	mu     sync.Mutex
	calls  map[string]int
	fail   map[string]bool
	width  int
	height int
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{calls: map[string]int{}, fail: map[string]bool{}, width: 300, height: 200}
}

func (f *fakeLoader) Load(_ context.Context, src string) (imageload.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[src]++
	if f.fail[src] {
		return imageload.Asset{Source: src}, errors.New("no such file")
	}
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	return imageload.Asset{Source: src, Image: img, Width: f.width, Height: f.height}, nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func ptr[T any](v T) *T { return &v }

func box(left, top, w, h int) surface.Rect {
	return surface.Rect{Left: left, Top: top, Width: w, Height: h}
}

func addContainer(doc *surface.Document, id string, r surface.Rect) *surface.Node {
	return doc.Root().Append(surface.New("div", surface.Attrs{ID: id, Box: r}))
}

type harness struct {
	g      *Gallery
	doc    *surface.Document
	loader *fakeLoader
	clock  *fakeClock
}

// newHarness creates a document with a 800×400 #gallery plus the named extra
// containers and a gallery configured by o.
func newHarness(t *testing.T, o Overrides, extra map[string]surface.Rect) *harness {
	t.Helper()
	doc := surface.NewDocument(800, 600)
	addContainer(doc, "gallery", box(0, 0, 800, 400))
	for id, r := range extra {
		addContainer(doc, id, r)
	}
	if o.Gallery == nil {
		o.Gallery = ptr("#gallery")
	}
	loader := newFakeLoader()
	clock := newFakeClock()
	g := New(o, doc, Deps{Loader: loader, Now: clock.Now})
	return &harness{g: g, doc: doc, loader: loader, clock: clock}
}

// start builds the gallery and completes the first load.
func (h *harness) start(t *testing.T) {
	t.Helper()
	h.g.Start()
	h.g.Update(loadedMsg{gallery: h.g.ID(), purpose: loadFirst, url: h.g.imageAt(h.g.current), ratio: 1.5})
	if h.g.Transitioning() {
		t.Fatalf("gallery still transitioning after first load")
	}
}

// step runs a full transition by offset: load completion then fade settle.
func (h *harness) step(t *testing.T, offset int) {
	t.Helper()
	h.g.ChangeImage(offset)
	h.g.Update(loadedMsg{gallery: h.g.ID(), purpose: loadTransition, url: h.g.imageAt(h.g.current), ratio: 1.5})
	h.g.Update(fadeDoneMsg{gallery: h.g.ID()})
}

func images(names ...string) []string { return names }

// active returns the thumb sitting in the center slot.
func (s *thumbStrip) active() *surface.Node {
	center := s.geo.Center()
	for _, thumb := range s.thumbs {
		if thumb.Box.Left == center {
			return thumb
		}
	}
	return nil
}
