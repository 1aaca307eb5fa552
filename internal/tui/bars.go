package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/display"
)

// renderStatusBar renders the top line: window count, refresh state and
// the placement that toggles will use.
func renderStatusBar(windows int, refreshing bool, lastRefresh time.Time, resize bool, target *display.Info, width int) string {
	var dot string
	if refreshing {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("●")
	} else {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	}

	parts := []string{fmt.Sprintf("%s %d windows", dot, windows)}
	switch {
	case refreshing:
		parts = append(parts, "refreshing")
	case !lastRefresh.IsZero():
		parts = append(parts, "updated "+lastRefresh.Format("15:04:05"))
	}

	if resize {
		name := "primary screen"
		if target != nil {
			name = target.Label()
		}
		parts = append(parts, "resize: "+name)
	} else {
		parts = append(parts, "resize: off")
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

// renderHelpBar renders the bottom help/keybinding bar, with the last
// action's outcome on the left.
func renderHelpBar(status string, isErr bool, width int) string {
	help := "enter: toggle  a: auto  f: resize  d/D: display  r/F5: refresh  s: settings  q: quit"

	left := ""
	if status != "" {
		color := lipgloss.Color("42")
		if isErr {
			color = lipgloss.Color("196")
		}
		left = lipgloss.NewStyle().Foreground(color).Render(status)
	}
	right := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(help)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(left + strings.Repeat(" ", gap) + right)
}
