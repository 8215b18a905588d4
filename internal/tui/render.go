// ABOUTME: Rendering helpers for the snapshot viewer: entries, status line, help footer

package tui

import (
	"fmt"
	"strings"
)

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width <= 1 {
		return string(runes[:width])
	}

	return string(runes[:width-1]) + "…"
}

func (m Model) renderEntries() string {
	if m.snapshot == nil || len(m.snapshot.Entries) == 0 {
		return helpStyle.Render("no entries in this snapshot")
	}

	var b strings.Builder

	lastSection := ""

	for i, e := range m.snapshot.Entries {
		if e.Section != "" && e.Section != lastSection {
			b.WriteString(sectionStyle.Render(fmt.Sprintf("── %s ──", strings.ToUpper(e.Section))))
			b.WriteString("\n")

			lastSection = e.Section
		}

		b.WriteString(m.renderEntry(i, e))
		b.WriteString("\n")

		for _, r := range e.Reasons {
			b.WriteString(reasonStyle.Render(fmt.Sprintf("      %s: %s", r.Kind, r.Explanation)))
			b.WriteString("\n")
		}

		if e.IsDiscovery && e.Explanation != "" {
			b.WriteString(discoveryStyle.Render(fmt.Sprintf("      ↳ %s", e.Explanation)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderEntry(i int, e EntryView) string {
	line := fmt.Sprintf("%3d. %s — %s", e.Position, truncate(e.Title, 40), truncate(e.Artist, 30))

	if e.IsDiscovery {
		line = discoveryStyle.Render("✦ ") + line
	}

	if i == m.cursorPos {
		return cursorStyle.Render(line)
	}

	return line
}

func (m Model) renderHeader() string {
	if m.snapshot == nil {
		return titleStyle.Render("playlistcraft viewer")
	}

	title := titleStyle.Render(m.snapshot.Title)
	meta := headerStyle.Render(fmt.Sprintf("%d tracks · %d min", m.snapshot.TrackCount, m.snapshot.TotalDuration/60))

	return title + "  " + meta
}

func (m Model) renderStatus() string {
	if m.errorMsg != "" {
		return errorStyle.Render(m.errorMsg)
	}

	status := fmt.Sprintf("updated %s", m.lastReload.Format("15:04:05"))

	if m.snapshot != nil && m.snapshot.LastOracleError != "" {
		status += " · oracle: " + m.snapshot.LastOracleError
	}

	if m.snapshot != nil && len(m.snapshot.LastDiscoveryErrors) > 0 {
		status += fmt.Sprintf(" · %d discovery error(s)", len(m.snapshot.LastDiscoveryErrors))
	}

	return statusStyle.Render(status)
}

func (m Model) renderHelp() string {
	return helpStyle.Render("↑/↓ move · pgup/pgdn page · g/G top/bottom · r reload · q quit")
}

func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		m.renderHeader(),
		m.viewport.View(),
		m.renderStatus(),
		m.renderHelp(),
	)
}
