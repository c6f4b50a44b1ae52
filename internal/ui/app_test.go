package ui

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vgallery/internal/config"
	"github.com/five82/vgallery/internal/gallery"
	"github.com/five82/vgallery/internal/prefs"
	"github.com/five82/vgallery/internal/surface"
)

func TestModel_FirstSizeStartsGallery(t *testing.T) {
	m, loader := newTestModel(t, testOverrides())
	if m.View() != "Loading..." {
		t.Fatalf("View before size = %q", m.View())
	}

	m = sized(t, m, 80, 24)

	el := m.doc.Query("#gallery")
	if el == nil {
		t.Fatalf("gallery container not mounted")
	}
	if el.Box != (surface.Rect{Width: 640, Height: 368}) {
		t.Fatalf("gallery box = %+v, want 640x368", el.Box)
	}
	if m.doc.Query("vg_wrapper") == nil {
		t.Fatalf("gallery shell not built")
	}
	if m.Gallery().Transitioning() {
		t.Fatalf("first load should have settled")
	}
	if loader.calls["a.png"] == 0 || loader.calls["b.png"] == 0 {
		t.Fatalf("calls = %v, want first slide and preload", loader.calls)
	}
	if _, ok := m.pics.sources["a.png"]; !ok {
		t.Fatalf("painted slide not fetched for the canvas")
	}
	if view := m.View(); !strings.Contains(view, "1/3") {
		t.Fatalf("status missing position:\n%s", view)
	}
}

func TestModel_KeysChangeSlides(t *testing.T) {
	m, _ := newTestModel(t, testOverrides())
	m = sized(t, m, 80, 24)

	steps := []struct {
		key  string
		want int
	}{
		{"right", 1},
		{"l", 2},
		{"right", 0},
		{"left", 2},
		{"h", 1},
		{"1", 0},
		{"3", 2},
		{"9", 2}, // past the last slide
	}
	for _, s := range steps {
		m = send(t, m, keyMsg(s.key))
		if got := m.Gallery().Index(); got != s.want {
			t.Fatalf("after %q index = %d, want %d", s.key, got, s.want)
		}
		if m.Gallery().Transitioning() {
			t.Fatalf("after %q still transitioning", s.key)
		}
	}
}

func TestModel_KeyIgnoredDuringTransition(t *testing.T) {
	m, _ := newTestModel(t, testOverrides())
	m = sized(t, m, 80, 24)

	next, _ := m.Update(keyMsg("right"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("right"))
	m = next.(Model)

	if got := m.Gallery().Index(); got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}
}

func TestModel_HoverPausesAndResumes(t *testing.T) {
	o := testOverrides()
	o.Auto = ptr(true)
	m, _ := newTestModel(t, o)
	m = sized(t, m, 80, 24)

	m = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	if !m.Gallery().Hovering() {
		t.Fatalf("motion over the gallery should pause")
	}
	left := m.Gallery().Remaining()
	if left <= 0 || left > 5*time.Second {
		t.Fatalf("remaining = %v, want within the 5s delay", left)
	}
	want := "paused"
	if r := left.Round(time.Second); r > 0 {
		want += " " + r.String()
	}
	if !strings.Contains(m.renderStatus(), want) {
		t.Fatalf("status = %q, want %q", m.renderStatus(), want)
	}

	m = send(t, m, tea.MouseMsg{X: 10, Y: 23, Action: tea.MouseActionMotion})
	if m.Gallery().Hovering() {
		t.Fatalf("leaving the gallery should resume")
	}
}

func TestModel_ClickFreeButtons(t *testing.T) {
	o := testOverrides()
	o.Prev = &gallery.ButtonOverrides{Element: ptr("#prev")}
	o.Next = &gallery.ButtonOverrides{Element: ptr("#next")}
	m, _ := newTestModel(t, o)
	m = sized(t, m, 80, 24)

	x, y := cellOf(t, m, "vg_prev")
	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Gallery().Index(); got != 2 {
		t.Fatalf("index after prev = %d, want 2", got)
	}

	x, y = cellOf(t, m, "vg_next")
	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Gallery().Index(); got != 0 {
		t.Fatalf("index after next = %d, want 0", got)
	}
}

func TestModel_LinkActivation(t *testing.T) {
	o := testOverrides()
	o.Links = []string{"https://example.com/a", "", ""}
	m, _ := newTestModel(t, o)
	m = sized(t, m, 80, 24)

	x, y := cellOf(t, m, "#gallery")
	l := m.cfg.Layout
	hit := m.doc.Hit(x*l.CellWidth+l.CellWidth/2, y*l.CellHeight+l.CellHeight/2)
	if hit == nil || hit.ID != "vg_click" {
		t.Fatalf("hit = %+v, want the link layer", hit)
	}
	msg := hit.OnClick()()
	link, ok := msg.(gallery.LinkActivatedMsg)
	if !ok || link.URL != "https://example.com/a" {
		t.Fatalf("msg = %#v", msg)
	}

	next, cmd := m.Update(link)
	if cmd == nil {
		t.Fatalf("link activation should schedule a copy")
	}
	m = next.(Model)
	next, _ = m.Update(linkCopiedMsg{url: link.URL})
	m = next.(Model)
	if !strings.Contains(m.renderStatus(), "copied https://example.com/a") {
		t.Fatalf("status = %q", m.renderStatus())
	}
}

func TestModel_ThemeCycleSavesPrefs(t *testing.T) {
	m, _ := newTestModel(t, testOverrides())
	m = sized(t, m, 80, 24)
	if m.theme.Name != "Nord" {
		t.Fatalf("theme = %q, want Nord", m.theme.Name)
	}

	m = send(t, m, keyMsg("T"))
	if m.theme.Name != "Nightfox" {
		t.Fatalf("theme = %q, want Nightfox", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Nightfox" {
		t.Fatalf("saved theme = %q, want Nightfox", p.Theme)
	}
}

func TestModel_LogOverlayTailsFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "vgallery.log")
	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Error("links mismatch", "kind", "count", "field", "links")
	if err := os.WriteFile(logPath, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loader := newFakeLoader()
	m := New(Options{
		Config:    config.Config{Gallery: testOverrides()},
		Loader:    loader,
		LogPath:   logPath,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m = sized(t, m, 120, 30)

	m = send(t, m, keyMsg("L"))
	if !m.showLogs {
		t.Fatalf("L should open the log overlay")
	}
	view := m.View()
	if !strings.Contains(view, "links mismatch") || !strings.Contains(view, "field=links") {
		t.Fatalf("overlay missing record:\n%s", view)
	}

	m = send(t, m, keyMsg("esc"))
	if m.showLogs {
		t.Fatalf("esc should close the log overlay")
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, testOverrides())
	m = sized(t, m, 100, 30)

	m = send(t, m, keyMsg("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	m = send(t, m, keyMsg("right"))
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
	if got := m.Gallery().Index(); got != 0 {
		t.Fatalf("key closing help should not change slide, index = %d", got)
	}
}

func TestModel_ReloadBuildsFreshInstance(t *testing.T) {
	m, _ := newTestModel(t, testOverrides())
	m = sized(t, m, 80, 24)
	old := m.Gallery().ID()

	o := testOverrides()
	o.Images = []string{"x.png", "y.png"}
	m = send(t, m, ReloadMsg{Config: config.Config{Path: "/tmp/g.toml", Gallery: o}})

	if m.Gallery().ID() == old {
		t.Fatalf("reload kept the old instance")
	}
	if m.Gallery().Transitioning() {
		t.Fatalf("reloaded gallery should have settled")
	}
	status := m.renderStatus()
	if !strings.Contains(status, "1/2") || !strings.Contains(status, "reloaded /tmp/g.toml") {
		t.Fatalf("status = %q", status)
	}
}

func TestModel_UnknownContainerReported(t *testing.T) {
	o := testOverrides()
	o.Gallery = ptr("#main")
	m, _ := newTestModel(t, o)
	m = sized(t, m, 200, 24)

	if m.doc.Query("#main") != nil {
		t.Fatalf("unknown container should not be created")
	}
	if status := m.renderStatus(); !strings.Contains(status, "gallery element does not exist.") {
		t.Fatalf("status = %q", status)
	}
}

func TestModel_ResizeRelayoutsShell(t *testing.T) {
	m, _ := newTestModel(t, testOverrides())
	m = sized(t, m, 80, 24)

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if got := m.doc.Query("#gallery").Box.Width; got != 800 {
		t.Fatalf("container width = %d, want 800", got)
	}
	if got := m.doc.Query("vg_wrapper").Box; got.Width != 800 || got.Height != 29*16 {
		t.Fatalf("wrapper = %+v, want 800x464 after debounce", got)
	}
}
