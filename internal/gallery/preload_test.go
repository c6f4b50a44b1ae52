package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloadCache(t *testing.T) {
	c := NewPreloadCache()
	assert.False(t, c.Has("a.png"))
	assert.Zero(t, c.Ratio(0))

	c.Record("a.png", 1.5, 0, 3)
	assert.True(t, c.Has("a.png"))
	assert.Equal(t, 1.5, c.Ratio(0))
	assert.Equal(t, 1.5, c.Ratio(3))
	assert.Zero(t, c.Ratio(1))
	assert.Equal(t, 1, c.Len())
}

func TestRequest_LoadsThroughLoaderAndRecords(t *testing.T) {
	h := newHarness(t, Overrides{Images: images("a.png", "b.png", "a.png")}, nil)
	h.start(t)

	cmd := h.g.request(1, loadPreload)
	require.NotNil(t, cmd)
	msg, ok := cmd().(loadedMsg)
	require.True(t, ok)
	assert.Equal(t, "b.png", msg.url)
	assert.InDelta(t, 1.5, msg.ratio, 1e-9)

	h.g.Update(msg)
	assert.True(t, h.g.cache.Has("b.png"))
	assert.Equal(t, 1, h.loader.calls["b.png"])

	// a.png appears twice; the first load recorded both indices.
	assert.Equal(t, 1.5, h.g.cache.Ratio(2))
}

func TestRequest_CachedCompletesSynchronously(t *testing.T) {
	h := newHarness(t, Overrides{Images: images("a.png", "b.png")}, nil)
	h.start(t)

	assert.Nil(t, h.g.request(0, loadPreload), "cached preload has no follow-up")
	assert.Zero(t, h.loader.calls["a.png"])

	// Moving to a cached slide crossfades without waiting for a message.
	h.g.cache.Record("b.png", 1, 1)
	h.g.ChangeImage(1)
	assert.Equal(t, "b.png", h.g.shell.background.Paint.Image)
	assert.True(t, h.g.shell.animator.HasClass("fadeOut"))
	assert.Zero(t, h.loader.calls["b.png"])
}

func TestComplete_IgnoresOtherGalleries(t *testing.T) {
	h := newHarness(t, Overrides{Images: images("a.png", "b.png")}, nil)
	other := newHarness(t, Overrides{Images: images("a.png", "b.png")}, nil)
	h.start(t)

	h.g.Update(loadedMsg{gallery: other.g.ID(), purpose: loadPreload, url: "b.png", ratio: 2})
	assert.False(t, h.g.cache.Has("b.png"))
}
