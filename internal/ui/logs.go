package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vgallery/internal/logtail"
)

// renderLogs renders the diagnostics log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	title := styles.AccentText.Bold(true).Render("Diagnostics")
	if m.logPath != "" {
		title += styles.FaintText.Render("  " + m.logPath)
	}

	body := m.logViewport.View()
	if m.logErr != nil {
		body = styles.DangerText.Render(m.logErr.Error())
	}

	modal := styles.Modal.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(title + "\n\n" + body)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// renderLogContent formats parsed records, one per line.
func (m Model) renderLogContent(entries []logtail.Entry) string {
	styles := m.theme.Styles()
	if len(entries) == 0 {
		return styles.MutedText.Render("No diagnostics recorded.")
	}

	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		if !e.Time.IsZero() {
			b.WriteString(styles.FaintText.Render(e.Time.Format("15:04:05")))
			b.WriteString(" ")
		}
		if e.Level != "" {
			b.WriteString(styles.LevelStyle(e.Level).Render(padRight(e.Level, 5)))
			b.WriteString(" ")
		}
		b.WriteString(styles.Text.Render(e.Msg))
		for _, a := range e.Attrs {
			if a.Key == "gallery" {
				continue
			}
			b.WriteString(styles.MutedText.Render(" " + a.Key + "=" + a.Value))
		}
	}
	return b.String()
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
