package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/actionlog"
	"github.com/1broseidon/frameless/internal/winlist"
)

const (
	titleWidth   = 30
	processWidth = 15
)

var (
	borderlessBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("borderless")
	autoBadge       = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("auto")
)

// windowItem implements list.Item for one window.
type windowItem struct {
	info   winlist.WindowInfo
	auto   bool
	swatch string
}

func (i windowItem) Title() string {
	return i.swatch + " " + actionlog.Truncate(i.info.Title, titleWidth)
}

func (i windowItem) Description() string {
	desc := actionlog.Truncate(i.info.ProcessName, processWidth)
	if i.info.Borderless {
		desc += "  " + borderlessBadge
	}
	if i.auto {
		desc += "  " + autoBadge
	}
	return desc
}

func (i windowItem) FilterValue() string { return i.info.Title }

func newWindowList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Windows"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}
