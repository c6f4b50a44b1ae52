package gallery

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vgallery/internal/surface"
)

// thumbStrip is the thumbnail navigator. Thumbs are laid out left to right at
// multiples of the geometry offset; the one at Center is the active slide.
type thumbStrip struct {
	geo     ThumbGeometry
	root    *surface.Node
	thumbs  []*surface.Node
	borders []*surface.Node
}

// buildThumbStrip lays out the strip inside container:
//
//	<container>
//	    vg_th_nav_wrapper
//	        vg_thumbnails
//	            vg_th_nav_prev        (when buttons are on)
//	            vg_th_nav_thumbs      clips the thumbs
//	                vg_th_nav_action ×5, the middle one vg_th_nav_current
//	                vg_thumb_<n>      caption, border, image
//	            vg_th_nav_next
func (g *Gallery) buildThumbStrip(container *surface.Node) *thumbStrip {
	cfg := g.cfg
	geo := ComputeThumbGeometry(container.Box.Width, container.Box.Height, cfg)
	s := &thumbStrip{geo: geo}

	s.root = container.Append(surface.New("div", surface.Attrs{
		ID:  idThumbNavWrapper,
		Box: surface.Rect{Width: container.Box.Width, Height: container.Box.Height},
		Z:   zNav,
	}))
	strip := s.root.Append(surface.New("div", surface.Attrs{
		ID:  idThumbnails,
		Box: surface.Rect{Top: geo.WrapperPadding, Width: container.Box.Width, Height: geo.Height},
		Z:   zNav,
	}))

	left := geo.HPadding
	if cfg.Thumbnails.Buttons {
		g.buildButton(strip, -1, true, surface.Rect{Width: geo.ButtonSize, Height: geo.Height})
		left += geo.ButtonSize
	}

	thumbs := strip.Append(surface.New("div", surface.Attrs{
		ID:  idThumbNavThumbs,
		Box: surface.Rect{Left: left, Width: geo.WrapperWidth, Height: geo.Height},
		Z:   zNav,
	}))
	thumbs.Clip = true

	for i := -2; i <= 2; i++ {
		step := i
		box := surface.Rect{Left: geo.Offset * (i + 2), Width: geo.Width, Height: geo.Height}
		id := ""
		if i == 0 {
			id = idThumbNavCurrent
			box.Width -= 2
			box.Height -= 2
		}
		action := thumbs.Append(surface.New("div", surface.Attrs{
			ID:    id,
			Class: classThumbAction,
			Box:   box,
			Z:     zThumbAction,
			Data:  map[string]string{"offset": strconv.Itoa(i)},
		}))
		action.OnClick = func() tea.Cmd { return g.ChangeImage(step) }
	}

	captionSize := geo.CaptionHeight
	for i := 0; i < geo.Total; i++ {
		// The active slide is the sixth thumb, the first five sit left of it.
		pos := g.current + i - 5
		thumb := thumbs.Append(surface.New("div", surface.Attrs{
			ID:    "vg_thumb_" + strconv.Itoa(i),
			Class: classThumb + " " + classThumbTransform,
			Box:   surface.Rect{Left: geo.Offset * (i - 3), Width: geo.Width, Height: geo.Height},
			Z:     zThumb,
			Data:  map[string]string{"index": strconv.Itoa(g.index(pos))},
		}))
		thumb.Clip = true

		if cfg.Thumbnails.Captions != nil {
			caption := thumb.Append(surface.New("div", surface.Attrs{
				Class: classThumbCaption,
				Box:   surface.Rect{Top: geo.Height - captionSize, Width: geo.Width, Height: captionSize},
				Paint: surface.Paint{Color: "#000"},
				Text:  itemAt(cfg.Thumbnails.Captions, g.index(pos)),
				Z:     zThumbDetail,
			}))
			caption.Color = "#FFF"
			caption.Opacity = 0.7
		}

		border := thumb.Append(surface.New("div", surface.Attrs{
			Class: classThumbBorder,
			Box:   surface.Rect{Width: geo.Width, Height: geo.Height},
			Z:     zThumbDetail,
		}))
		border.Border = cfg.Thumbnails.ActiveColor
		border.Opacity = 0
		if i == 5 {
			border.AddClass(surface.ClassFadeIn)
		}

		thumb.Append(surface.New("div", surface.Attrs{
			Class: classThumbImage + " " + classCover,
			Box:   surface.Rect{Width: geo.Width, Height: geo.Height},
			Paint: surface.Paint{Color: cfg.BgColor, Image: g.thumbImage(pos)},
			Z:     zThumb,
		}))

		s.thumbs = append(s.thumbs, thumb)
		s.borders = append(s.borders, border)
	}

	if cfg.Thumbnails.Buttons {
		g.buildButton(strip, 1, true, surface.Rect{
			Left:   left + geo.WrapperWidth + geo.HPadding,
			Width:  geo.ButtonSize,
			Height: geo.Height,
		})
	}
	return s
}

func (g *Gallery) thumbImage(pos int) string {
	if g.cfg.Thumbnails.Images != nil {
		return itemAt(g.cfg.Thumbnails.Images, g.index(pos))
	}
	return g.imageAt(pos)
}

// adjust slides every thumb by -offset slots. Thumbs pushed past either end
// jump by the wrap distance without animating.
func (s *thumbStrip) adjust(offset int) {
	geo := s.geo
	center := geo.Center()
	for i, thumb := range s.thumbs {
		origin := thumb.Box.Left
		pos := origin - geo.Offset*offset

		wrapped := false
		if geo.Wrap > 0 {
			for pos < geo.MostLeft {
				pos += geo.Wrap
				wrapped = true
			}
			for pos > geo.MostRight {
				pos -= geo.Wrap
				wrapped = true
			}
		}
		if wrapped {
			thumb.RemoveClass(classThumbTransform)
		} else {
			thumb.AddClass(classThumbTransform)
		}
		thumb.Box.Left = pos

		border := s.borders[i]
		switch {
		case pos == center:
			border.RemoveClass(surface.ClassFadeOut)
			border.AddClass(surface.ClassFadeIn)
		case origin == center:
			border.RemoveClass(surface.ClassFadeIn)
			border.AddClass(surface.ClassFadeOut)
		}
	}
}

func (s *thumbStrip) remove() {
	s.root.Remove()
}
