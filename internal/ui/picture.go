package ui

import (
	"context"
	"fmt"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"
	cache "github.com/patrickmn/go-cache"

	"github.com/five82/vgallery/internal/imageload"
	"github.com/five82/vgallery/internal/surface"
)

const (
	scaledTTL   = 2 * time.Minute
	scaledSweep = time.Minute

	// A failed URL is left alone this long before it is fetched again.
	failedRetry = 5 * time.Second
)

// pictures holds the decoded images the surface references and their
// scaled renditions. Only the Update loop touches it.
type pictures struct {
	sources map[string]image.Image
	pending map[string]bool
	failed  *cache.Cache
	scaled  *cache.Cache
}

func newPictures() *pictures {
	return newPicturesRetrying(failedRetry)
}

func newPicturesRetrying(retry time.Duration) *pictures {
	return &pictures{
		sources: make(map[string]image.Image),
		pending: make(map[string]bool),
		failed:  cache.New(retry, scaledSweep),
		scaled:  cache.New(scaledTTL, scaledSweep),
	}
}

// assetMsg delivers a decoded image for painting.
type assetMsg struct {
	url string
	img image.Image
	err error
}

// request returns a command loading every image painted in doc that is not
// yet known.
func (p *pictures) request(ctx context.Context, loader imageload.Loader, doc *surface.Document) tea.Cmd {
	var cmds []tea.Cmd
	for _, placed := range doc.Flatten() {
		url := placed.Node.Paint.Image
		if url == "" || p.pending[url] {
			continue
		}
		if _, ok := p.failed.Get(url); ok {
			continue
		}
		if _, ok := p.sources[url]; ok {
			continue
		}
		p.pending[url] = true
		cmds = append(cmds, func() tea.Msg {
			asset, err := loader.Load(ctx, url)
			return assetMsg{url: url, img: asset.Image, err: err}
		})
	}
	return tea.Batch(cmds...)
}

// store records a finished load. A failure holds the URL back for a while so
// a broken URL is not fetched on every frame; the gallery reports it itself.
func (p *pictures) store(msg assetMsg) {
	delete(p.pending, msg.url)
	if msg.err != nil || msg.img == nil {
		p.failed.SetDefault(msg.url, struct{}{})
		return
	}
	p.failed.Delete(msg.url)
	p.sources[msg.url] = msg.img
}

// forget drops every source, used when the gallery is rebuilt.
func (p *pictures) forget() {
	p.sources = make(map[string]image.Image)
	p.pending = make(map[string]bool)
	p.failed.Flush()
	p.scaled.Flush()
}

// rendition returns url scaled to w×h samples: cropped to fill when cover,
// fitted inside when contain.
func (p *pictures) rendition(url string, contain bool, w, h int) (image.Image, bool) {
	src, ok := p.sources[url]
	if !ok || w <= 0 || h <= 0 {
		return nil, false
	}
	key := fmt.Sprintf("%s|%t|%dx%d", url, contain, w, h)
	if v, ok := p.scaled.Get(key); ok {
		return v.(image.Image), true
	}
	var img image.Image
	if contain {
		img = imaging.Fit(src, w, h, imaging.Box)
	} else {
		img = imaging.Fill(src, w, h, imaging.Center, imaging.Box)
	}
	p.scaled.Set(key, img, cache.DefaultExpiration)
	return img, true
}
