package ui

import (
	"strings"

	"github.com/five82/vgallery/internal/config"
	"github.com/five82/vgallery/internal/gallery"
	"github.com/five82/vgallery/internal/surface"
)

// Container ids the terminal layout knows how to place. A configuration
// naming any other element gets no container and the gallery reports it.
const (
	ContainerGallery    = "gallery"
	ContainerThumbnails = "thumbnails"
	ContainerIndicators = "indicators"
	ContainerPrev       = "prev"
	ContainerNext       = "next"
	ContainerCounter    = "counter"
	ContainerText       = "text"
)

var containerOrder = []string{
	ContainerGallery,
	ContainerPrev,
	ContainerNext,
	ContainerText,
	ContainerCounter,
	ContainerThumbnails,
	ContainerIndicators,
}

// statusRows is the line reserved below the containers for the status bar.
const statusRows = 1

// Log overlay limits.
const (
	// LogTailLines is how many records the log overlay reads.
	LogTailLines = 500
)

// cellRect is a region of the terminal in cells.
type cellRect struct {
	X, Y, W, H int
}

// px converts the region to virtual pixels.
func (r cellRect) px(l config.Layout) surface.Rect {
	return surface.Rect{
		Left:   r.X * l.CellWidth,
		Top:    r.Y * l.CellHeight,
		Width:  r.W * l.CellWidth,
		Height: r.H * l.CellHeight,
	}
}

// referenced returns the known container ids the configuration points at.
func referenced(cfg gallery.Config) map[string]bool {
	known := make(map[string]bool, len(containerOrder))
	for _, id := range containerOrder {
		known[id] = true
	}
	selectors := []string{
		cfg.Gallery,
		cfg.Thumbnails.Element,
		cfg.Indicators.Element,
		cfg.Prev.Element,
		cfg.Next.Element,
		cfg.Counter.Element,
		cfg.Text.Element,
	}
	out := make(map[string]bool)
	for _, sel := range selectors {
		id := strings.TrimPrefix(strings.TrimSpace(sel), "#")
		if known[id] {
			out[id] = true
		}
	}
	return out
}

// planContainers places the wanted containers in a width×height terminal.
// The gallery takes whatever the other containers leave; prev and next
// flank it and the rest stack below it, full width except the text, which
// lines up with the gallery.
//
//	+------+-------------------+------+
//	| prev |      gallery      | next |
//	|      +-------------------+      |
//	|      |       text        |      |
//	+------+-------------------+------+
//	|             counter             |
//	|            thumbnails           |
//	|            indicators           |
//	+---------------------------------+
//	status
func planContainers(width, height int, want map[string]bool, l config.Layout) map[string]cellRect {
	rows := max(height-statusRows, 0)
	width = max(width, 0)

	left, right := 0, 0
	if want[ContainerPrev] {
		left = l.ButtonCols
	}
	if want[ContainerNext] {
		right = l.ButtonCols
	}
	galleryCols := max(width-left-right, 0)

	textRows := 0
	if want[ContainerText] {
		textRows = l.TextRows
	}
	below := []struct {
		id   string
		rows int
	}{
		{ContainerCounter, 1},
		{ContainerThumbnails, l.StripRows},
		{ContainerIndicators, l.DotRows},
	}
	used := textRows
	for _, b := range below {
		if want[b.id] {
			used += b.rows
		}
	}
	galleryRows := max(rows-used, 0)
	upperRows := galleryRows + textRows

	plan := make(map[string]cellRect)
	if want[ContainerGallery] {
		plan[ContainerGallery] = cellRect{X: left, Y: 0, W: galleryCols, H: galleryRows}
	}
	if want[ContainerPrev] {
		plan[ContainerPrev] = cellRect{X: 0, Y: 0, W: min(left, width), H: min(upperRows, rows)}
	}
	if want[ContainerNext] {
		plan[ContainerNext] = cellRect{X: max(width-right, 0), Y: 0, W: min(right, width), H: min(upperRows, rows)}
	}

	y := galleryRows
	if want[ContainerText] {
		h := clampRows(textRows, y, rows)
		plan[ContainerText] = cellRect{X: left, Y: y, W: galleryCols, H: h}
		y += h
	}
	for _, b := range below {
		if !want[b.id] {
			continue
		}
		h := clampRows(b.rows, y, rows)
		plan[b.id] = cellRect{X: 0, Y: y, W: width, H: h}
		y += h
	}
	return plan
}

func clampRows(want, y, rows int) int {
	return max(min(want, rows-y), 0)
}

// mountContainers creates or resizes the planned container nodes.
func mountContainers(doc *surface.Document, plan map[string]cellRect, l config.Layout) {
	root := doc.Root()
	for _, id := range containerOrder {
		r, ok := plan[id]
		if !ok {
			continue
		}
		box := r.px(l)
		if n := doc.Query(id); n != nil {
			n.Box = box
			continue
		}
		root.Append(surface.New("div", surface.Attrs{ID: id, Box: box}))
	}
}
