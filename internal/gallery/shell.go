package gallery

import (
	"fmt"
	"html"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/vgallery/internal/surface"
)

// Element ids forming the styling contract with renderers.
const (
	idWrapper          = "vg_wrapper"
	idClick            = "vg_click"
	idAnimator         = "vg_animator"
	idBackground       = "vg_background"
	idLoading          = "vg_loading"
	idTextInner        = "vg_text_inner"
	idThumbnails       = "vg_thumbnails"
	idThumbNavWrapper  = "vg_th_nav_wrapper"
	idThumbNavThumbs   = "vg_th_nav_thumbs"
	idThumbNavCurrent  = "vg_th_nav_current"
	idIndicatorWrapper = "vg_indicator_wrapper"
)

const (
	classCover          = "vg_cover"
	classContain        = "vg_contain"
	classButton         = "vg_button"
	classThumbAction    = "vg_th_nav_action"
	classThumb          = "vg_th_nav_thumb"
	classThumbImage     = "vg_thumb_image"
	classThumbCaption   = "vg_thumb_caption"
	classThumbBorder    = "vg_thumb_border"
	classThumbTransform = "vg_thumb_transition"
	classIndicator      = "vg_indicator"
)

// Stacking order of the gallery layers.
const (
	zClick       = 93
	zBackground  = 94
	zAnimator    = 95
	zRaised      = 96 // loading overlay, and the click layer when linked
	zNav         = 97
	zThumb       = 98
	zThumbDetail = 99
	zThumbAction = 100
)

// LinkActivatedMsg is emitted when the click-through layer of a linked slide
// is activated.
type LinkActivatedMsg struct {
	URL string
}

type shell struct {
	container  *surface.Node
	wrapper    *surface.Node
	click      *surface.Node
	animator   *surface.Node
	background *surface.Node
	loading    *surface.Node
	text       *surface.Node // text container, hidden until the first load
	textInner  *surface.Node
	counter    *surface.Node
	prev       *surface.Node
	next       *surface.Node
}

// buildShell creates the gallery scaffold inside container:
//
//	<container>
//	    vg_wrapper
//	        vg_click       link layer
//	        vg_animator    front layer, fades out during a transition
//	        vg_background  back layer, receives the next slide first
//	        vg_loading     optional loading overlay
func (g *Gallery) buildShell(container *surface.Node) {
	box := surface.Rect{Width: container.Box.Width, Height: container.Box.Height}
	wrapper := container.Append(surface.New("div", surface.Attrs{ID: idWrapper, Box: box}))

	click := wrapper.Append(surface.New("a", surface.Attrs{ID: idClick, Box: box, Z: zClick}))
	click.OnClick = func() tea.Cmd {
		if click.Href == "" || click.Href == "#" {
			return nil
		}
		url := click.Href
		return func() tea.Msg { return LinkActivatedMsg{URL: url} }
	}

	animator := wrapper.Append(surface.New("div", surface.Attrs{ID: idAnimator, Box: box, Z: zAnimator}))
	background := wrapper.Append(surface.New("div", surface.Attrs{
		ID:    idBackground,
		Box:   box,
		Z:     zBackground,
		Paint: surface.Paint{Color: g.cfg.BgColor},
	}))

	g.shell.container = container
	g.shell.wrapper = wrapper
	g.shell.click = click
	g.shell.animator = animator
	g.shell.background = background

	if g.cfg.Loading.Image != "" {
		loading := wrapper.Append(surface.New("div", surface.Attrs{
			ID:    idLoading,
			Box:   box,
			Z:     zRaised,
			Paint: surface.Paint{Color: g.cfg.BgColor, Image: g.cfg.Loading.Image},
		}))
		loading.Opacity = 0
		g.shell.loading = loading
	}
}

// setBackground paints the current slide onto a layer.
func (g *Gallery) setBackground(layer *surface.Node) {
	idx := g.Index()
	layer.Paint = surface.Paint{Color: g.cfg.BgColor, Image: g.cfg.Images[idx]}
	if layer.Data == nil {
		layer.Data = make(map[string]string)
	}
	layer.Data["index"] = strconv.Itoa(idx)
	g.applyFit(layer)
}

// applyFit refreshes the cover/contain class of a layer for the slide it
// currently shows against the container's current aspect ratio.
func (g *Gallery) applyFit(layer *surface.Node) {
	idx, err := strconv.Atoi(layer.Datum("index"))
	if err != nil {
		return
	}
	parent := aspect(g.shell.container.Box.Width, g.shell.container.Box.Height)
	fit := ResolveFit(g.cfg.Contain, g.cache.Ratio(idx), parent)
	layer.RemoveClass(classCover)
	layer.RemoveClass(classContain)
	layer.AddClass(fit.Class())
}

func (g *Gallery) setLink() {
	if len(g.cfg.Links) == 0 {
		return
	}
	click := g.shell.click
	if link := itemAt(g.cfg.Links, g.Index()); link != "" {
		click.Href = link
		click.Z = zRaised
		return
	}
	click.Href = "#"
	click.Z = zClick
}

func (g *Gallery) showLoading() {
	l := g.shell.loading
	if l == nil || !g.cfg.Loading.All {
		return
	}
	l.Z = zRaised
	l.RemoveClass(surface.ClassFadeIn)
	l.RemoveClass(surface.ClassFadeInHalf)
	l.AddClass(surface.ClassFadeInHalf)
}

func (g *Gallery) hideLoading() {
	l := g.shell.loading
	if l == nil {
		return
	}
	l.Z = 0
	l.RemoveClass(surface.ClassFadeIn)
	l.RemoveClass(surface.ClassFadeInHalf)
}

func (g *Gallery) updateCounter() {
	if g.shell.counter == nil {
		return
	}
	g.shell.counter.Text = fmt.Sprintf("%d%s%d", g.Index()+1, g.cfg.Counter.Separator, len(g.cfg.Images))
}

func (g *Gallery) buildText(container *surface.Node) {
	if g.cfg.Loading.Image != "" {
		container.Hidden = true
	}
	inner := container.Append(surface.New("div", surface.Attrs{
		ID:   idTextInner,
		Box:  surface.Rect{Width: container.Box.Width, Height: container.Box.Height},
		Text: itemAt(g.cfg.Text.Items, g.Index()),
	}))
	g.shell.text = container
	g.shell.textInner = inner
}

// buildButton creates a prev (-1) or next (+1) button. Inside the thumbnail
// strip it is sized from the strip geometry; free-standing it fills parent.
func (g *Gallery) buildButton(parent *surface.Node, step int, nav bool, box surface.Rect) *surface.Node {
	opts, name := g.cfg.Next, "next"
	if step < 0 {
		opts, name = g.cfg.Prev, "prev"
	}
	id := "vg_" + name
	z := zNav
	color := "#FFF"
	if nav {
		id = "vg_th_nav_" + name
		color = g.cfg.Thumbnails.ButtonColor
	}

	button := parent.Append(surface.New("div", surface.Attrs{ID: id, Class: classButton, Box: box, Z: z}))
	button.Color = color
	if opts.Image != "" {
		button.Append(surface.New("div", surface.Attrs{
			Class: classContain,
			Box:   surface.Rect{Width: box.Width, Height: box.Height},
			Paint: surface.Paint{Image: opts.Image},
			Z:     z,
		}))
	} else {
		button.Text = html.UnescapeString(opts.Text)
	}
	button.OnClick = func() tea.Cmd { return g.ChangeImage(step) }
	return button
}

func (g *Gallery) buildFreeButtons() {
	for _, b := range []struct {
		step int
		opts ButtonOptions
		slot **surface.Node
	}{
		{-1, g.cfg.Prev, &g.shell.prev},
		{1, g.cfg.Next, &g.shell.next},
	} {
		if b.opts.Element == "" {
			continue
		}
		if *b.slot != nil {
			(*b.slot).Remove()
			*b.slot = nil
		}
		parent := g.doc.Query(b.opts.Element)
		if parent == nil {
			continue
		}
		box := surface.Rect{Width: parent.Box.Width, Height: parent.Box.Height}
		*b.slot = g.buildButton(parent, b.step, false, box)
	}
}

// itemAt indexes a parallel list, yielding "" past its end.
func itemAt(items []string, i int) string {
	if i < 0 || i >= len(items) {
		return ""
	}
	return items[i]
}
