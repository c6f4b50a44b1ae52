package ui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"

	"github.com/five82/vgallery/internal/config"
	"github.com/five82/vgallery/internal/gallery"
	"github.com/five82/vgallery/internal/imageload"
)

type fakeLoader struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{calls: map[string]int{}, fail: map[string]bool{}}
}

func (f *fakeLoader) Load(_ context.Context, src string) (imageload.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[src]++
	if f.fail[src] {
		return imageload.Asset{Source: src}, errors.New("no such file")
	}
	img := imaging.New(30, 20, color.NRGBA{R: 200, A: 255})
	return imageload.Asset{Source: src, Image: img, Width: 30, Height: 20}, nil
}

func ptr[T any](v T) *T { return &v }

// testOverrides is a three slide manual gallery with instant fades.
func testOverrides() gallery.Overrides {
	return gallery.Overrides{
		Gallery: ptr("#gallery"),
		Images:  []string{"a.png", "b.png", "c.png"},
		Auto:    ptr(false),
		Fade:    ptr(0),
	}
}

func newTestModel(t *testing.T, o gallery.Overrides) (Model, *fakeLoader) {
	t.Helper()
	loader := newFakeLoader()
	m := New(Options{
		Config:    config.Config{Gallery: o, Layout: config.DefaultLayout()},
		Loader:    loader,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return m, loader
}

// sized sends the first window size and pumps the resulting loads.
func sized(t *testing.T, m Model, width, height int) Model {
	t.Helper()
	next, cmd := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return pump(t, next.(Model), cmd)
}

// send delivers msg and pumps whatever it schedules.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return pump(t, next.(Model), cmd)
}

// pump runs cmd and feeds every message arriving within a short window back
// into the model, repeating until nothing new arrives. Long timers such as
// the rotation delay never fire inside the window.
func pump(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for round := 0; round < 8 && cmd != nil; round++ {
		var cmds []tea.Cmd
		for _, msg := range collect(cmd, 250*time.Millisecond) {
			next, c := m.Update(msg)
			m = next.(Model)
			cmds = append(cmds, c)
		}
		cmd = tea.Batch(cmds...)
	}
	return m
}

func collect(cmd tea.Cmd, window time.Duration) []tea.Msg {
	out := make(chan tea.Msg, 256)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					if sub != nil {
						run(sub)
					}
				}
				return
			}
			if msg != nil {
				out <- msg
			}
		}()
	}
	run(cmd)

	var msgs []tea.Msg
	deadline := time.After(window)
	for {
		select {
		case msg := <-out:
			msgs = append(msgs, msg)
		case <-deadline:
			return msgs
		}
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// cellOf returns a terminal cell inside the node's box.
func cellOf(t *testing.T, m Model, id string) (int, int) {
	t.Helper()
	n := m.doc.Query(id)
	if n == nil {
		t.Fatalf("node %q not found", id)
	}
	r := n.Absolute()
	l := m.cfg.Layout
	return (r.Left + r.Width/2) / l.CellWidth, (r.Top + r.Height/2) / l.CellHeight
}

func solid(w, h int, c color.NRGBA) image.Image {
	return imaging.New(w, h, c)
}
