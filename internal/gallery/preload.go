package gallery

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"
)

// PreloadCache remembers which image URLs have loaded and the aspect ratio of
// each image index. It only grows.
type PreloadCache struct {
	loaded map[string]struct{}
	ratios map[int]float64
}

// NewPreloadCache returns an empty cache.
func NewPreloadCache() *PreloadCache {
	return &PreloadCache{
		loaded: make(map[string]struct{}),
		ratios: make(map[int]float64),
	}
}

// Has reports whether url has loaded successfully before.
func (c *PreloadCache) Has(url string) bool {
	_, ok := c.loaded[url]
	return ok
}

// Record marks url as loaded and stores ratio for every index showing it.
func (c *PreloadCache) Record(url string, ratio float64, indices ...int) {
	c.loaded[url] = struct{}{}
	for _, i := range indices {
		c.ratios[i] = ratio
	}
}

// Ratio returns the aspect ratio recorded for index, or 0 when unknown.
func (c *PreloadCache) Ratio(index int) float64 {
	return c.ratios[index]
}

// Len returns the number of loaded URLs.
func (c *PreloadCache) Len() int { return len(c.loaded) }

type loadPurpose int

const (
	loadFirst loadPurpose = iota
	loadTransition
	loadPreload
)

type loadedMsg struct {
	gallery ulid.ULID
	purpose loadPurpose
	url     string
	ratio   float64
	cached  bool
	err     error
}

// request loads the image offset slides away from the current one. Cached
// images complete synchronously, inside the caller's Update; everything else
// completes later through a loadedMsg.
func (g *Gallery) request(offset int, purpose loadPurpose) tea.Cmd {
	url := g.imageAt(g.current + offset)
	if g.cache.Has(url) {
		return g.complete(loadedMsg{gallery: g.id, purpose: purpose, url: url, cached: true})
	}
	ctx, loader, id := g.ctx, g.loader, g.id
	return func() tea.Msg {
		asset, err := loader.Load(ctx, url)
		return loadedMsg{gallery: id, purpose: purpose, url: url, ratio: asset.Ratio(), err: err}
	}
}

func (g *Gallery) complete(msg loadedMsg) tea.Cmd {
	switch {
	case msg.err != nil:
		g.report(&LoadError{URL: msg.url, Err: msg.err})
	case !msg.cached:
		g.cache.Record(msg.url, msg.ratio, g.indicesOf(msg.url)...)
		g.log.Debug("image loaded",
			slog.String("gallery", g.id.String()),
			slog.String("url", msg.url),
			slog.Int("cached", g.cache.Len()))
		if g.shell.text != nil {
			g.shell.text.Hidden = false
		}
	}

	switch msg.purpose {
	case loadFirst:
		g.hideLoading()
		return g.settleFirst()
	case loadTransition:
		g.hideLoading()
		if !g.transitioning {
			return nil
		}
		return g.crossfade()
	}
	return nil
}

func (g *Gallery) indicesOf(url string) []int {
	var out []int
	for i, img := range g.cfg.Images {
		if img == url {
			out = append(out, i)
		}
	}
	return out
}
