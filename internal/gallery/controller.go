package gallery

import (
	"context"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/five82/vgallery/internal/imageload"
	"github.com/five82/vgallery/internal/surface"
)

const (
	resizeDebounce = 50 * time.Millisecond
	fadeSettle     = 100 * time.Millisecond
	loadingReveal  = time.Second
)

// Deps are the collaborators a gallery runs against.
type Deps struct {
	Context context.Context
	Loader  imageload.Loader
	Logger  *slog.Logger
	Now     func() time.Time
}

// Gallery is one carousel instance. All of its state is owned by the Bubble
// Tea update loop: methods must only be called from Update, and the commands
// they return must be handed back to the program.
type Gallery struct {
	id     ulid.ULID
	cfg    Config
	doc    *surface.Document
	ctx    context.Context
	loader imageload.Loader
	log    *slog.Logger
	now    func() time.Time

	current       int
	started       bool
	ready         bool
	transitioning bool
	hovering      bool
	remaining     time.Duration
	timerStart    time.Time
	timerGen      int
	timerArmed    bool
	resizeGen     int

	cache       *PreloadCache
	shell       shell
	thumbs      *thumbStrip
	dots        *indicatorNav
	diagnostics []error
}

type advanceMsg struct {
	gallery ulid.ULID
	gen     int
}

type resizeMsg struct {
	gallery ulid.ULID
	gen     int
}

type fadeDoneMsg struct{ gallery ulid.ULID }

type textFadeMsg struct{ gallery ulid.ULID }

type loadingRevealMsg struct{ gallery ulid.ULID }

// New resolves o and prepares a gallery rendering into doc. Configuration
// problems are logged and kept as diagnostics; nothing is built until Start.
func New(o Overrides, doc *surface.Document, deps Deps) *Gallery {
	cfg, diags := Resolve(o)

	g := &Gallery{
		id:      ulid.Make(),
		cfg:     cfg,
		doc:     doc,
		ctx:     deps.Context,
		loader:  deps.Loader,
		log:     deps.Logger,
		now:     deps.Now,
		current: cfg.InitialPosition(),
		cache:   NewPreloadCache(),
	}
	g.remaining = cfg.Delay
	if g.ctx == nil {
		g.ctx = context.Background()
	}
	if g.loader == nil {
		g.loader = imageload.NewClient(imageload.Options{})
	}
	if g.log == nil {
		g.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if g.now == nil {
		g.now = time.Now
	}

	for _, d := range diags {
		g.report(d)
	}
	return g
}

// ID identifies the instance; every message it schedules carries it.
func (g *Gallery) ID() ulid.ULID { return g.id }

// Config returns the resolved configuration.
func (g *Gallery) Config() Config { return g.cfg }

// Position returns the raw position counter.
func (g *Gallery) Position() int { return g.current }

// Index returns the active slide index.
func (g *Gallery) Index() int { return g.index(g.current) }

// Transitioning reports whether a slide change is in flight.
func (g *Gallery) Transitioning() bool { return g.transitioning }

// Hovering reports whether the pointer is over the gallery.
func (g *Gallery) Hovering() bool { return g.hovering }

// Remaining returns the rotation delay captured at the last hover pause.
func (g *Gallery) Remaining() time.Duration { return g.remaining }

// Diagnostics returns the problems reported so far, oldest first.
func (g *Gallery) Diagnostics() []error {
	return append([]error(nil), g.diagnostics...)
}

func (g *Gallery) index(pos int) int {
	n := len(g.cfg.Images)
	if n == 0 {
		return 0
	}
	return ((pos % n) + n) % n
}

func (g *Gallery) imageAt(pos int) string {
	if len(g.cfg.Images) == 0 {
		return ""
	}
	return g.cfg.Images[g.index(pos)]
}

// Start checks the referenced containers, builds the visual tree and begins
// loading the first slide. Input is ignored until that load settles.
func (g *Gallery) Start() tea.Cmd {
	if g.started {
		return nil
	}
	g.started = true

	container := g.checkContainers()
	if container == nil || len(g.cfg.Images) == 0 {
		return nil
	}

	g.ready = true
	g.transitioning = true
	g.buildShell(container)
	g.buildNav()
	g.buildFreeButtons()
	if g.cfg.Text.Element != "" && g.cfg.Text.Items != nil {
		if el := g.doc.Query(g.cfg.Text.Element); el != nil {
			g.buildText(el)
		}
	}
	if g.cfg.Counter.Element != "" {
		g.shell.counter = g.doc.Query(g.cfg.Counter.Element)
	}
	g.updateCounter()

	cmds := []tea.Cmd{g.request(0, loadFirst)}
	if g.shell.loading != nil {
		id := g.id
		cmds = append(cmds, tea.Tick(loadingReveal, func(time.Time) tea.Msg {
			return loadingRevealMsg{gallery: id}
		}))
	}
	return tea.Batch(cmds...)
}

// checkContainers reports referenced containers that are absent or empty and
// returns the gallery container.
func (g *Gallery) checkContainers() *surface.Node {
	var container *surface.Node
	if g.cfg.Gallery != "" {
		container = g.doc.Query(g.cfg.Gallery)
		if container == nil {
			g.report(Diagnostic{Kind: KindExists, Field: "gallery"})
		}
	}

	refs := []struct {
		field, element string
	}{
		{"thumbnails", g.cfg.Thumbnails.Element},
		{"indicators", g.cfg.Indicators.Element},
		{"counter", g.cfg.Counter.Element},
		{"prev", g.cfg.Prev.Element},
		{"next", g.cfg.Next.Element},
		{"text", g.cfg.Text.Element},
	}
	for _, r := range refs {
		if r.element != "" && g.doc.Query(r.element) == nil {
			g.report(Diagnostic{Kind: KindExists, Field: r.field})
		}
	}

	if container != nil && container.Box.Empty() {
		g.report(Diagnostic{Kind: KindSize, Field: "gallery"})
	}
	if el := g.doc.Query(g.cfg.Thumbnails.Element); g.cfg.Thumbnails.Element != "" && el != nil && el.Box.Empty() {
		g.report(Diagnostic{Kind: KindSize, Field: "thumbnails"})
	}
	if el := g.doc.Query(g.cfg.Indicators.Element); g.cfg.Indicators.Element != "" && el != nil && el.Box.Height <= 0 {
		g.report(Diagnostic{Kind: KindSize, Field: "indicators"})
	}
	return container
}

// buildNav builds the thumbnail strip, or the indicator dots when no strip is
// configured.
func (g *Gallery) buildNav() {
	if g.thumbs != nil {
		g.thumbs.remove()
		g.thumbs = nil
	}
	if g.dots != nil {
		g.dots.remove()
		g.dots = nil
	}

	switch {
	case g.cfg.Thumbnails.Element != "":
		if el := g.doc.Query(g.cfg.Thumbnails.Element); el != nil {
			g.thumbs = g.buildThumbStrip(el)
		}
	case g.cfg.Indicators.Element != "":
		if el := g.doc.Query(g.cfg.Indicators.Element); el != nil {
			g.dots = g.buildIndicators(el)
		}
	}
}

func (g *Gallery) settleFirst() tea.Cmd {
	g.setBackground(g.shell.animator)
	g.setBackground(g.shell.background)
	g.setLink()
	g.transitioning = false

	var timer tea.Cmd
	if !g.hovering {
		timer = g.startTimer(g.cfg.Delay)
	}
	return tea.Batch(timer, g.request(1, loadPreload))
}

// ChangeImage moves offset slides forward (or back when negative). It is a
// no-op while a transition is in flight.
func (g *Gallery) ChangeImage(offset int) tea.Cmd {
	if !g.ready || g.transitioning || offset == 0 || len(g.cfg.Images) == 0 {
		return nil
	}
	g.transitioning = true
	g.current += offset

	if g.cfg.Loading.Image != "" && g.cfg.Loading.All {
		g.showLoading()
	}

	cmds := []tea.Cmd{g.request(0, loadTransition)}

	switch {
	case g.thumbs != nil:
		g.thumbs.adjust(offset)
	case g.dots != nil:
		g.dots.update()
	}

	if g.shell.textInner != nil && len(g.cfg.Text.Items) > 0 {
		g.shell.textInner.AddClass(surface.ClassFadeOutQuick)
		id := g.id
		cmds = append(cmds, tea.Tick(g.cfg.Fade/2, func(time.Time) tea.Msg {
			return textFadeMsg{gallery: id}
		}))
	}
	return tea.Batch(cmds...)
}

// crossfade starts fading the front layer once the new slide has loaded.
func (g *Gallery) crossfade() tea.Cmd {
	g.cancelTimer()
	g.setBackground(g.shell.background)
	g.shell.animator.AddClass(surface.ClassFadeOut)

	id := g.id
	return tea.Tick(g.cfg.Fade+fadeSettle, func(time.Time) tea.Msg {
		return fadeDoneMsg{gallery: id}
	})
}

func (g *Gallery) settle() tea.Cmd {
	if !g.transitioning {
		return nil
	}
	g.setBackground(g.shell.animator)
	g.shell.animator.RemoveClass(surface.ClassFadeOut)
	g.updateCounter()
	g.setLink()
	g.transitioning = false
	g.remaining = g.cfg.Delay

	var timer tea.Cmd
	if !g.hovering {
		timer = g.startTimer(g.cfg.Delay)
	}
	return tea.Batch(timer, g.request(1, loadPreload))
}

func (g *Gallery) startTimer(d time.Duration) tea.Cmd {
	if !g.cfg.Auto {
		return nil
	}
	if d < 0 {
		d = 0
	}
	g.timerGen++
	g.timerArmed = true
	g.timerStart = g.now()

	id, gen := g.id, g.timerGen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return advanceMsg{gallery: id, gen: gen}
	})
}

func (g *Gallery) cancelTimer() {
	g.timerGen++
	g.timerArmed = false
}

// HoverEnter pauses auto-rotation, keeping the time left on the timer.
func (g *Gallery) HoverEnter() {
	if !g.cfg.Auto || !g.cfg.Pause || g.hovering {
		return
	}
	g.hovering = true
	if !g.timerArmed {
		return
	}
	g.remaining -= g.now().Sub(g.timerStart)
	if g.remaining < 0 {
		g.remaining = 0
	}
	g.cancelTimer()
}

// HoverExit resumes auto-rotation with the time captured by HoverEnter.
func (g *Gallery) HoverExit() tea.Cmd {
	if !g.cfg.Auto || !g.cfg.Pause || !g.hovering {
		return nil
	}
	g.hovering = false
	if g.transitioning || !g.ready {
		return nil
	}
	return g.startTimer(g.remaining)
}

// Resize schedules a relayout. Bursts of calls within the debounce window
// collapse into one.
func (g *Gallery) Resize() tea.Cmd {
	if !g.ready {
		return nil
	}
	g.resizeGen++
	id, gen := g.id, g.resizeGen
	return tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
		return resizeMsg{gallery: id, gen: gen}
	})
}

func (g *Gallery) relayout() {
	if g.shell.container == nil {
		return
	}
	box := surface.Rect{Width: g.shell.container.Box.Width, Height: g.shell.container.Box.Height}
	for _, layer := range []*surface.Node{g.shell.wrapper, g.shell.click, g.shell.animator, g.shell.background, g.shell.loading} {
		if layer != nil {
			layer.Box = box
		}
	}
	g.applyFit(g.shell.animator)
	g.applyFit(g.shell.background)

	if g.shell.text != nil {
		g.shell.textInner.Box = surface.Rect{Width: g.shell.text.Box.Width, Height: g.shell.text.Box.Height}
	}
	g.buildNav()
	g.buildFreeButtons()
}

// Update routes messages scheduled by this instance. Messages from other
// instances, and stale timers, are ignored.
func (g *Gallery) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case advanceMsg:
		if msg.gallery != g.id || msg.gen != g.timerGen || !g.timerArmed {
			return nil
		}
		g.timerArmed = false
		return g.ChangeImage(1)

	case loadedMsg:
		if msg.gallery != g.id {
			return nil
		}
		return g.complete(msg)

	case fadeDoneMsg:
		if msg.gallery != g.id {
			return nil
		}
		return g.settle()

	case textFadeMsg:
		if msg.gallery != g.id || g.shell.textInner == nil {
			return nil
		}
		inner := g.shell.textInner
		inner.Text = itemAt(g.cfg.Text.Items, g.Index())
		inner.RemoveClass(surface.ClassFadeOutQuick)
		inner.AddClass(surface.ClassFadeInQuick)

	case resizeMsg:
		if msg.gallery != g.id || msg.gen != g.resizeGen {
			return nil
		}
		g.relayout()

	case loadingRevealMsg:
		if msg.gallery != g.id || g.shell.loading == nil {
			return nil
		}
		g.shell.loading.AddClass(surface.ClassFadeIn)
	}
	return nil
}
