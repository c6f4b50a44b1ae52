package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vgallery/internal/gallery"
)

// renderStatus renders the single status line under the gallery: slide
// position, rotation state, the latest note or diagnostic and key hints.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	surface := lipgloss.Color(m.theme.Surface)
	on := func(s lipgloss.Style) lipgloss.Style { return s.Background(surface) }
	sep := on(lipgloss.NewStyle()).Render("  ")

	parts := []string{on(styles.AccentText.Bold(true)).Render("vgallery")}

	if n := len(m.g.Config().Images); n > 0 {
		parts = append(parts, on(styles.Text).Render(fmt.Sprintf("%d/%d", m.g.Index()+1, n)))
		parts = append(parts, on(styles.MutedText).Render(m.rotationLabel()))
	}

	if msg, style := m.statusMessage(styles); msg != "" {
		parts = append(parts, on(style).Render(msg))
	}

	left := strings.Join(parts, sep)
	right := on(styles.FaintText).Render(m.theme.Name) + sep + m.help.ShortHelpView(m.keys.ShortHelp())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	line := left
	if gap > 0 {
		line = left + on(lipgloss.NewStyle()).Render(strings.Repeat(" ", gap)) + right
	}

	return styles.Footer.
		Width(m.width).
		MaxWidth(m.width).
		Render(line)
}

func (m Model) rotationLabel() string {
	cfg := m.g.Config()
	switch {
	case m.g.Transitioning():
		return "changing"
	case !cfg.Auto:
		return "manual"
	case m.g.Hovering():
		if left := m.g.Remaining().Round(time.Second); left > 0 {
			return "paused " + left.String()
		}
		return "paused"
	}
	return "auto"
}

// statusMessage picks the UI note if there is one, else the latest gallery
// diagnostic.
func (m Model) statusMessage(styles Styles) (string, lipgloss.Style) {
	if m.note != "" {
		if m.noteBad {
			return m.note, styles.DangerText
		}
		return m.note, styles.SuccessText
	}

	diags := m.g.Diagnostics()
	if len(diags) == 0 {
		return "", styles.Text
	}
	last := diags[len(diags)-1]
	level := slog.LevelError
	var d gallery.Diagnostic
	if errors.As(last, &d) {
		level = d.Level()
	}
	if level >= slog.LevelError {
		return last.Error(), styles.DangerText
	}
	return last.Error(), styles.WarningText
}
