package gallery

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vgallery/internal/surface"
)

type indicatorNav struct {
	g    *Gallery
	geo  IndicatorGeometry
	root *surface.Node
}

// buildIndicators lays out one dot per image, centered in container.
func (g *Gallery) buildIndicators(container *surface.Node) *indicatorNav {
	geo := ComputeIndicatorGeometry(container.Box.Height, g.cfg)
	nav := &indicatorNav{g: g, geo: geo}

	nav.root = container.Append(surface.New("div", surface.Attrs{
		ID:  idIndicatorWrapper,
		Box: surface.Rect{Width: container.Box.Width, Height: container.Box.Height},
		Z:   zNav,
	}))

	n := len(g.cfg.Images)
	start := (container.Box.Width - n*geo.Pitch()) / 2
	if start < 0 {
		start = 0
	}
	for i := 0; i < n; i++ {
		target := i
		dot := nav.root.Append(surface.New("div", surface.Attrs{
			ID:    "vg_indicator_" + strconv.Itoa(i),
			Class: classIndicator,
			Box: surface.Rect{
				Left:   start + i*geo.Pitch() + geo.HPadding,
				Top:    geo.VPadding,
				Width:  geo.Size,
				Height: geo.Size,
			},
			Z:    zNav,
			Data: map[string]string{"image": strconv.Itoa(i)},
		}))
		dot.Round = g.cfg.Indicators.Round
		dot.OnClick = func() tea.Cmd { return g.ChangeImage(target - g.Index()) }
	}
	nav.update()
	return nav
}

// update resets every dot and highlights the active slide's.
func (nav *indicatorNav) update() {
	dots := nav.root.FindAll(classIndicator)
	for _, dot := range dots {
		dot.Paint = nav.geo.Background
		dot.Opacity = nav.g.cfg.Indicators.Opacity
	}
	if i := nav.g.Index(); i < len(dots) {
		dots[i].Paint = nav.geo.ActiveBackground
		dots[i].Opacity = 1
	}
}

func (nav *indicatorNav) remove() {
	nav.root.Remove()
}
