package ui

import (
	"testing"

	"github.com/five82/vgallery/internal/config"
	"github.com/five82/vgallery/internal/gallery"
	"github.com/five82/vgallery/internal/surface"
)

func TestPlanContainers_AllContainers(t *testing.T) {
	want := map[string]bool{}
	for _, id := range containerOrder {
		want[id] = true
	}
	plan := planContainers(100, 40, want, config.DefaultLayout())

	tests := []struct {
		id   string
		want cellRect
	}{
		{ContainerGallery, cellRect{X: 4, Y: 0, W: 92, H: 29}},
		{ContainerPrev, cellRect{X: 0, Y: 0, W: 4, H: 31}},
		{ContainerNext, cellRect{X: 96, Y: 0, W: 4, H: 31}},
		{ContainerText, cellRect{X: 4, Y: 29, W: 92, H: 2}},
		{ContainerCounter, cellRect{X: 0, Y: 31, W: 100, H: 1}},
		{ContainerThumbnails, cellRect{X: 0, Y: 32, W: 100, H: 6}},
		{ContainerIndicators, cellRect{X: 0, Y: 38, W: 100, H: 1}},
	}
	for _, tt := range tests {
		if got := plan[tt.id]; got != tt.want {
			t.Fatalf("%s = %+v, want %+v", tt.id, got, tt.want)
		}
	}
}

func TestPlanContainers_OnlyWanted(t *testing.T) {
	plan := planContainers(80, 24, map[string]bool{ContainerGallery: true}, config.DefaultLayout())
	if len(plan) != 1 {
		t.Fatalf("plan = %+v, want gallery only", plan)
	}
	if got := plan[ContainerGallery]; got != (cellRect{W: 80, H: 23}) {
		t.Fatalf("gallery = %+v, want full screen above status", got)
	}
}

func TestPlanContainers_TinyTerminalClamps(t *testing.T) {
	want := map[string]bool{ContainerGallery: true, ContainerThumbnails: true, ContainerIndicators: true}
	plan := planContainers(20, 5, want, config.DefaultLayout())

	if got := plan[ContainerGallery]; got.H != 0 {
		t.Fatalf("gallery height = %d, want 0", got.H)
	}
	if got := plan[ContainerThumbnails]; got.H != 4 {
		t.Fatalf("thumbnails height = %d, want 4", got.H)
	}
	if got := plan[ContainerIndicators]; got.H != 0 {
		t.Fatalf("indicators height = %d, want 0", got.H)
	}
}

func TestReferenced_IgnoresUnknownIDs(t *testing.T) {
	cfg := gallery.Defaults()
	cfg.Gallery = "#gallery"
	cfg.Thumbnails.Element = "thumbnails"
	cfg.Counter.Element = "#sidebar"

	got := referenced(cfg)
	if !got[ContainerGallery] || !got[ContainerThumbnails] {
		t.Fatalf("referenced = %v, want gallery and thumbnails", got)
	}
	if len(got) != 2 {
		t.Fatalf("referenced = %v, want 2 entries", got)
	}
}

func TestMountContainers_CreatesThenResizes(t *testing.T) {
	doc := surface.NewDocument(800, 400)
	l := config.DefaultLayout()

	mountContainers(doc, map[string]cellRect{ContainerGallery: {W: 10, H: 5}}, l)
	n := doc.Query("#gallery")
	if n == nil {
		t.Fatalf("gallery container not created")
	}
	if n.Box != (surface.Rect{Width: 80, Height: 80}) {
		t.Fatalf("box = %+v, want 80x80", n.Box)
	}

	mountContainers(doc, map[string]cellRect{ContainerGallery: {X: 1, W: 20, H: 5}}, l)
	if doc.Query("#gallery") != n {
		t.Fatalf("container was recreated")
	}
	if n.Box != (surface.Rect{Left: 8, Width: 160, Height: 80}) {
		t.Fatalf("box = %+v after resize", n.Box)
	}
	if got := len(doc.Root().Children()); got != 1 {
		t.Fatalf("root children = %d, want 1", got)
	}
}
