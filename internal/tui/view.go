package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View implements tea.Model and renders the picker layout.
func (m Model) View() string {
	if !m.ready {
		return "\n  📝 Starting claunch...\n"
	}

	statusBar := m.renderStatusBar()

	// ── Left pane: note list ─────────────────────────────────────────────────
	var listStyle lipgloss.Style
	if m.focus == FocusList {
		listStyle = listPaneActiveStyle.Width(listPaneOuterWidth - 2)
	} else {
		listStyle = listPaneStyle.Width(listPaneOuterWidth - 2)
	}
	listPane := listStyle.Render(m.list.View())

	// ── Right pane: markdown preview ─────────────────────────────────────────
	previewW := m.width - listPaneOuterWidth - 2
	var previewStyle lipgloss.Style
	if m.focus == FocusPreview {
		previewStyle = previewPaneActiveStyle.Width(previewW)
	} else {
		previewStyle = previewPaneStyle.Width(previewW)
	}
	previewPane := previewStyle.Render(m.viewport.View())

	panesRow := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, panesRow)
}

// renderStatusBar renders the single-line header with app name, vault path,
// launch status and key hints.
func (m Model) renderStatusBar() string {
	appName := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("📝 CLAUNCH")

	vaultInfo := lipgloss.NewStyle().Foreground(colorMuted).
		Render(truncateVisual(m.bridge.Root().Dir(), 40))

	var status string
	if m.status != "" {
		if m.statusGood {
			status = successStyle.Render(m.status)
		} else {
			status = noticeStyle.Render(m.status)
		}
	}

	hint := lipgloss.NewStyle().Foreground(colorMuted).
		Render("[Enter] Open in Terminal  [Tab] Pane  [/] Filter  [q] Quit")

	left := appName + "  " + vaultInfo
	if status != "" {
		left += "  " + status
	}
	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(left)-lipgloss.Width(hint)-2))

	return statusBarStyle.Width(m.width).Render(left + gap + hint)
}

// truncateVisual returns at most n visual columns of a string.
func truncateVisual(s string, n int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > n {
			return s[:i] + "…"
		}
		w += rw
	}
	return s
}

// max returns the larger of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
