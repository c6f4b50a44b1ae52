package ui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/five82/vgallery/internal/config"
	"github.com/five82/vgallery/internal/gallery"
	"github.com/five82/vgallery/internal/surface"
)

// upperHalf paints the top sample as foreground and the bottom one as
// background, giving two vertical samples per cell.
const upperHalf = "▀"

// textAlpha is the opacity below which text is not drawn at all.
const textAlpha = 0.3

type glyph struct {
	r  rune
	fg color.NRGBA
}

// canvas rasterizes a surface document. Pixels are samples of cellWidth by
// cellHeight/2 virtual pixels; text is kept per cell.
type canvas struct {
	cols, rows int
	sw, sh     int // virtual pixels per sample
	buf        *image.NRGBA
	text       []*glyph
	textColor  color.NRGBA
}

func newCanvas(cols, rows int, l config.Layout, bg, fg string) *canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	return &canvas{
		cols:      cols,
		rows:      rows,
		sw:        max(l.CellWidth, 1),
		sh:        max(l.CellHeight/2, 1),
		buf:       imaging.New(cols, rows*2, parseColorOr(bg, color.NRGBA{A: 255})),
		text:      make([]*glyph, cols*rows),
		textColor: parseColorOr(fg, color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
	}
}

// samples converts a virtual pixel rect to sample coordinates, rounding
// edges to the nearest sample.
func (c *canvas) samples(r surface.Rect) image.Rectangle {
	return image.Rect(
		roundDiv(r.Left, c.sw),
		roundDiv(r.Top, c.sh),
		roundDiv(r.Right(), c.sw),
		roundDiv(r.Bottom(), c.sh),
	)
}

func roundDiv(v, d int) int {
	return int(math.Floor(float64(v)/float64(d) + 0.5))
}

// paint draws every visible node of doc in stacking order.
func (c *canvas) paint(doc *surface.Document, pics *pictures) {
	for _, p := range doc.Flatten() {
		c.paintNode(p, pics)
	}
}

func (c *canvas) paintNode(p surface.Placed, pics *pictures) {
	if p.Alpha <= 0 {
		return
	}
	n := p.Node
	full := c.samples(p.Rect)
	clip := c.samples(p.Clip).Intersect(c.buf.Bounds())
	if clip.Empty() {
		return
	}

	if col, ok := parseColor(n.Paint.Color); ok {
		c.blit(imaging.New(clip.Dx(), clip.Dy(), col), clip.Min, p.Alpha)
	}
	if n.Paint.Image != "" && pics != nil {
		contain := n.HasClass(gallery.FitContain.Class())
		if img, ok := pics.rendition(n.Paint.Image, contain, full.Dx(), full.Dy()); ok {
			size := img.Bounds().Size()
			origin := full.Min.Add(image.Pt((full.Dx()-size.X)/2, (full.Dy()-size.Y)/2))
			placed := image.Rectangle{Min: origin, Max: origin.Add(size)}
			if vis := placed.Intersect(clip); !vis.Empty() {
				c.blit(imaging.Crop(img, vis.Sub(origin).Add(img.Bounds().Min)), vis.Min, p.Alpha)
			}
		}
	}
	if col, ok := parseColor(n.Border); ok {
		c.outline(full, clip, col, p.Alpha)
	}
	if n.Text != "" && p.Alpha >= textAlpha {
		fg := c.textColor
		if col, ok := parseColor(n.Color); ok {
			fg = col
		}
		c.write(n.Text, clip, fg)
	}
}

// blit overlays img at pt and clears text under fully covered cells when the
// layer is mostly opaque.
func (c *canvas) blit(img image.Image, pt image.Point, alpha float64) {
	c.buf = imaging.Overlay(c.buf, img, pt, alpha)
	if alpha < 0.5 {
		return
	}
	r := image.Rectangle{Min: pt, Max: pt.Add(img.Bounds().Size())}
	for row := ceilDiv(r.Min.Y, 2); row*2+2 <= r.Max.Y && row < c.rows; row++ {
		for col := max(r.Min.X, 0); col < r.Max.X && col < c.cols; col++ {
			if row >= 0 {
				c.text[row*c.cols+col] = nil
			}
		}
	}
}

func ceilDiv(v, d int) int {
	return int(math.Ceil(float64(v) / float64(d)))
}

// outline draws a one sample border along the edges of full inside clip.
func (c *canvas) outline(full, clip image.Rectangle, col color.NRGBA, alpha float64) {
	edges := []image.Rectangle{
		image.Rect(full.Min.X, full.Min.Y, full.Max.X, full.Min.Y+1),
		image.Rect(full.Min.X, full.Max.Y-1, full.Max.X, full.Max.Y),
		image.Rect(full.Min.X, full.Min.Y, full.Min.X+1, full.Max.Y),
		image.Rect(full.Max.X-1, full.Min.Y, full.Max.X, full.Max.Y),
	}
	for _, e := range edges {
		if vis := e.Intersect(clip); !vis.Empty() {
			c.buf = imaging.Overlay(c.buf, imaging.New(vis.Dx(), vis.Dy(), col), vis.Min, alpha)
		}
	}
}

// write centers a single line of text inside the cells covered by clip.
func (c *canvas) write(text string, clip image.Rectangle, fg color.NRGBA) {
	x0, x1 := clip.Min.X, min(clip.Max.X, c.cols)
	y0, y1 := clip.Min.Y/2, min(ceilDiv(clip.Max.Y, 2), c.rows)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	line := []rune(strings.Join(strings.Fields(text), " "))
	if len(line) > x1-x0 {
		line = line[:x1-x0]
	}
	row := y0 + (y1-y0-1)/2
	col := x0 + (x1-x0-len(line))/2
	for i, r := range line {
		c.text[row*c.cols+col+i] = &glyph{r: r, fg: fg}
	}
}

// overlay puts text over the cells of r regardless of what is painted there.
func (c *canvas) overlay(text string, r surface.Rect) {
	c.write(text, c.samples(r).Intersect(c.buf.Bounds()), c.textColor)
}

// render converts the canvas to styled terminal lines.
func (c *canvas) render() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var (
			run       strings.Builder
			runFg     color.NRGBA
			runBg     color.NRGBA
			runActive bool
		)
		flush := func() {
			if !runActive {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(runFg))).
				Background(lipgloss.Color(hex(runBg)))
			b.WriteString(style.Render(run.String()))
			run.Reset()
			runActive = false
		}
		for col := 0; col < c.cols; col++ {
			top := c.buf.NRGBAAt(col, row*2)
			bottom := c.buf.NRGBAAt(col, row*2+1)
			fg, bg, s := top, bottom, upperHalf
			if g := c.text[row*c.cols+col]; g != nil {
				fg, bg, s = g.fg, mix(top, bottom), string(g.r)
			}
			if runActive && (fg != runFg || bg != runBg) {
				flush()
			}
			runFg, runBg, runActive = fg, bg, true
			run.WriteString(s)
		}
		flush()
	}
	return b.String()
}

func mix(a, b color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: 255,
	}
}

func hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"gray":   "#808080",
	"grey":   "#808080",
	"silver": "#c0c0c0",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
}

// parseColor understands #rgb, #rrggbb and a few color names. Anything else,
// including "transparent", paints nothing.
func parseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if named, ok := namedColors[s]; ok {
		s = named
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return color.NRGBA{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, true
}

func parseColorOr(s string, fallback color.NRGBA) color.NRGBA {
	if c, ok := parseColor(s); ok {
		return c
	}
	return fallback
}
