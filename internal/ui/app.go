package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vgallery/internal/config"
	"github.com/five82/vgallery/internal/gallery"
	"github.com/five82/vgallery/internal/imageload"
	"github.com/five82/vgallery/internal/logtail"
	"github.com/five82/vgallery/internal/prefs"
	"github.com/five82/vgallery/internal/surface"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Config    config.Config
	Logger    *slog.Logger
	LogPath   string
	ThemeName string
	PrefsPath string

	// Loader overrides the image loader. Nil builds one rooted at the
	// config file's directory, rebuilt on every reload.
	Loader imageload.Loader
}

// ReloadMsg replaces the running gallery with a fresh instance built from
// Config.
type ReloadMsg struct {
	Config config.Config
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	cfg       config.Config
	log       *slog.Logger
	logPath   string
	prefsPath string
	loader    imageload.Loader
	fixed     bool // loader injected, never rebuilt

	// Gallery state
	doc  *surface.Document
	g    *gallery.Gallery
	pics *pictures

	// UI state
	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	width   int
	height  int
	ready   bool
	hover   bool
	note    string
	noteBad bool

	// Overlays
	showHelp    bool
	showLogs    bool
	logViewport viewport.Model
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	cfg := opts.Config
	if cfg.Layout == (config.Layout{}) {
		cfg.Layout = config.DefaultLayout()
	}

	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	spin.Style = lipgloss.NewStyle()

	m := Model{
		ctx:       ctx,
		cfg:       cfg,
		log:       logger,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		loader:    opts.Loader,
		fixed:     opts.Loader != nil,
		pics:      newPictures(),
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spin,

		logViewport: viewport.New(0, 0),
	}
	m.build()
	return m
}

// build creates a fresh document and gallery from the current config.
func (m *Model) build() {
	if !m.fixed {
		m.loader = imageload.NewClient(imageload.Options{BaseDir: m.cfg.Dir})
	}
	m.pics.forget()
	m.doc = surface.NewDocument(0, 0)
	m.g = gallery.New(m.cfg.Gallery, m.doc, gallery.Deps{
		Context: m.ctx,
		Loader:  m.loader,
		Logger:  m.log,
	})
	m.hover = false
}

// Gallery returns the running gallery instance.
func (m Model) Gallery() *gallery.Gallery { return m.g }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tea.WindowSizeMsg:
		cmd = m.handleResize(msg.Width, msg.Height)

	case ReloadMsg:
		m.cfg = msg.Config
		if m.cfg.Layout == (config.Layout{}) {
			m.cfg.Layout = config.DefaultLayout()
		}
		m.build()
		m.setNote("reloaded "+m.cfg.Path, false)
		if m.ready {
			cmd = m.mount()
		}

	case assetMsg:
		m.pics.store(msg)

	case gallery.LinkActivatedMsg:
		cmd = copyLinkCmd(msg.URL)

	case linkCopiedMsg:
		if msg.err != nil {
			m.setNote("copy link: "+msg.err.Error(), true)
		} else {
			m.setNote("copied "+msg.url, false)
		}

	case themeSavedMsg:
		if msg.err != nil {
			m.log.Warn("save theme preference", slog.String("error", msg.err.Error()))
			m.setNote("save theme: "+msg.err.Error(), true)
		}

	case logsMsg:
		m.logErr = msg.err
		m.logViewport.SetContent(m.renderLogContent(msg.entries))
		m.logViewport.GotoBottom()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)

	default:
		cmd = m.g.Update(msg)
	}

	if m.ready {
		return m, tea.Batch(cmd, m.pics.request(m.ctx, m.loader, m.doc))
	}
	return m, cmd
}

// handleResize lays the containers out for the new terminal size. The first
// size starts the gallery; later ones go through its debounced resize.
func (m *Model) handleResize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	m.help.Width = width
	m.logViewport.Width = max(width-8, 0)
	m.logViewport.Height = max(height-8, 0)

	if !m.ready {
		m.ready = true
		return m.mount()
	}
	m.layout()
	return m.g.Resize()
}

// mount lays out the containers and starts the current gallery.
func (m *Model) mount() tea.Cmd {
	m.layout()
	return m.g.Start()
}

func (m *Model) layout() {
	l := m.cfg.Layout
	rows := max(m.height-statusRows, 0)
	m.doc.Resize(m.width*l.CellWidth, rows*l.CellHeight)
	plan := planContainers(m.width, m.height, referenced(m.g.Config()), l)
	mountContainers(m.doc, plan, l)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showLogs {
		switch {
		case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Escape):
			m.showLogs = false
		case key.Matches(msg, m.keys.Top):
			m.logViewport.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.logViewport.GotoBottom()
		default:
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, readLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, saveThemeCmd(m.prefsPath, m.theme.Name)

	case key.Matches(msg, m.keys.Prev):
		return m, m.g.ChangeImage(-1)

	case key.Matches(msg, m.keys.Next):
		return m, m.g.ChangeImage(1)

	case key.Matches(msg, m.keys.Jump):
		target := int(msg.String()[0] - '1')
		if target >= len(m.g.Config().Images) {
			return m, nil
		}
		return m, m.g.ChangeImage(target - m.g.Index())
	}

	return m, nil
}

// handleMouse maps terminal mouse events onto the surface: motion over the
// gallery container pauses rotation and a left press activates whatever is
// on top at that cell.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.ready || m.showHelp || m.showLogs {
		return nil
	}
	l := m.cfg.Layout
	x := msg.X*l.CellWidth + l.CellWidth/2
	y := msg.Y*l.CellHeight + l.CellHeight/2

	var cmds []tea.Cmd
	if el := m.doc.Query(m.g.Config().Gallery); el != nil {
		over := el.Absolute().Contains(x, y)
		switch {
		case over && !m.hover:
			m.hover = true
			m.g.HoverEnter()
		case !over && m.hover:
			m.hover = false
			cmds = append(cmds, m.g.HoverExit())
		}
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if n := m.doc.Hit(x, y); n != nil {
			cmds = append(cmds, n.OnClick())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) setNote(note string, bad bool) {
	m.note, m.noteBad = note, bad
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showLogs {
		return m.renderLogs()
	}

	return m.renderGallery() + "\n" + m.renderStatus()
}

// renderGallery paints the surface into the rows above the status line.
func (m Model) renderGallery() string {
	rows := max(m.height-statusRows, 0)
	c := newCanvas(m.width, rows, m.cfg.Layout, m.theme.Background, m.theme.Text)
	c.paint(m.doc, m.pics)
	if n := m.doc.Query("vg_loading"); n != nil && !n.Hidden && n.EffectiveOpacity() > 0 {
		c.overlay(m.spinner.View(), n.Absolute())
	}
	return c.render()
}

// Messages

type linkCopiedMsg struct {
	url string
	err error
}

type themeSavedMsg struct{ err error }

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func copyLinkCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return linkCopiedMsg{url: url, err: clipboard.WriteAll(url)}
	}
}

func saveThemeCmd(path, name string) tea.Cmd {
	return func() tea.Msg {
		err := prefs.Update(path, func(p *prefs.Prefs) { p.Theme = name })
		return themeSavedMsg{err: err}
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsMsg{err: errors.New("no log file configured")}
		}
		entries, err := logtail.Tail(path, LogTailLines)
		if err != nil {
			err = fmt.Errorf("tail %s: %w", path, err)
		}
		return logsMsg{entries: entries, err: err}
	}
}

// NewProgram builds the Bubble Tea program with mouse motion reporting, so
// hovering works.
func NewProgram(opts Options) *tea.Program {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	_, err := NewProgram(opts).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
