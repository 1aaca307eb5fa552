package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/daemon"
	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/iconcache"
	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/winlist"
)

const (
	busyTick = 16 * time.Millisecond
	idleTick = 5 * time.Second
)

// tickMsg drives the control loop. Ticks from an older generation are
// dropped so that a state change can reschedule the loop immediately.
type tickMsg struct{ gen int }

// model is the root bubbletea model for the TUI.
type model struct {
	runner *daemon.Runner
	opts   Options

	list     list.Model
	icons    *iconcache.Cache[iconRender]
	displays []display.Info

	selectedID   platform.WindowID
	hasSelection bool

	settings *settingsForm

	status    string
	statusErr bool
	tickGen   int

	// Terminal dimensions
	width  int
	height int
}

func newModel(runner *daemon.Runner, opts Options) model {
	m := model{
		runner:   runner,
		opts:     opts,
		list:     newWindowList(),
		icons:    iconcache.New[iconRender](0, 0),
		displays: runner.Displays(),
	}
	m.rebuildItems()
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	m.runner.Refresh()
	return tick(m.tickGen, busyTick)
}

func tick(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// kick restarts the loop at the busy cadence after a state change.
func (m *model) kick() tea.Cmd {
	m.tickGen++
	return tick(m.tickGen, busyTick)
}

func (m model) nextInterval(changed bool) time.Duration {
	if changed || m.runner.Refreshing() {
		return busyTick
	}
	d := m.runner.Config().RefreshInterval
	if d <= 0 || d > idleTick {
		d = idleTick
	}
	return d
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		m.icons.Sweep()
		changed := m.runner.Step()
		if changed {
			m.rebuildItems()
		}
		return m, tick(m.tickGen, m.nextInterval(changed))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listWidth(), m.contentHeight())
		return m, nil
	}

	// The settings form captures input; only ctrl+c and esc escape it.
	if m.settings != nil {
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.settings = nil
				m.setStatus("settings unchanged", false)
				return m, nil
			}
		}
		cmd, done := m.settings.update(msg)
		if done {
			m.saveSettings()
			return m, m.kick()
		}
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			m.toggleSelected()
			return m, m.kick()
		case "a":
			m.toggleAuto()
			return m, m.kick()
		case "f":
			m.toggleResize()
			return m, nil
		case "d":
			m.cycleDisplay(1)
			return m, nil
		case "D":
			m.cycleDisplay(-1)
			return m, nil
		case "r", "f5":
			m.displays = m.runner.Displays()
			m.runner.Refresh()
			m.setStatus("refreshing", false)
			return m, m.kick()
		case "s":
			m.settings = newSettingsForm(m.runner.Config(), m.displays, m.width)
			return m, m.settings.form.Init()
		case "esc":
			m.hasSelection = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if item, ok := m.list.SelectedItem().(windowItem); ok {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			m.selectedID = item.info.ID
			m.hasSelection = true
		}
	}
	return m, cmd
}

// rebuildItems reloads the list from the runner's snapshot, keeping the
// selection on the same window when it is still present.
func (m *model) rebuildItems() {
	windows := m.runner.Windows()
	cfg := m.runner.Config()

	items := make([]list.Item, 0, len(windows))
	selected := -1
	for i, w := range windows {
		items = append(items, windowItem{
			info:   w,
			auto:   cfg.IsAutoBorderless(w.ProcessName),
			swatch: m.icon(w).swatch,
		})
		if m.hasSelection && w.ID == m.selectedID {
			selected = i
		}
	}
	m.list.SetItems(items)

	if selected >= 0 {
		m.list.Select(selected)
	} else if m.hasSelection {
		m.hasSelection = false
	}
}

func (m *model) icon(w winlist.WindowInfo) iconRender {
	key := iconcache.Key(w.ID)
	if r, ok := m.icons.Get(key); ok {
		return r
	}
	r := renderIcon(w.Icon)
	m.icons.Insert(key, r)
	return r
}

func (m model) selected() (winlist.WindowInfo, bool) {
	if !m.hasSelection {
		return winlist.WindowInfo{}, false
	}
	for _, w := range m.runner.Windows() {
		if w.ID == m.selectedID {
			return w, true
		}
	}
	return winlist.WindowInfo{}, false
}

func (m *model) toggleSelected() {
	w, ok := m.selected()
	if !ok {
		m.setStatus("select a window first", true)
		return
	}
	if m.runner.Config().IsAutoBorderless(w.ProcessName) {
		m.setStatus(fmt.Sprintf("%s is always borderless; press a to turn that off", w.ProcessName), true)
		return
	}

	res, err := m.runner.Toggle(w.ID)
	if err != nil {
		m.setStatus(fmt.Sprintf("toggle failed: %v", err), true)
		return
	}
	state := "decorated"
	if res.Borderless {
		state = "borderless"
	}
	m.setStatus(fmt.Sprintf("%s is now %s", w.ProcessName, state), false)
	m.rebuildItems()
}

func (m *model) toggleAuto() {
	w, ok := m.selected()
	if !ok {
		m.setStatus("select a window first", true)
		return
	}
	enabled := !m.runner.Config().IsAutoBorderless(w.ProcessName)

	_, _, err := m.runner.SetAuto(w.ID, enabled)
	m.rebuildItems()
	if err != nil {
		m.setStatus(fmt.Sprintf("auto-borderless for %s: %v", w.ProcessName, err), true)
		return
	}
	if enabled {
		m.setStatus(fmt.Sprintf("%s will always be borderless", w.ProcessName), false)
	} else {
		m.setStatus(fmt.Sprintf("%s is no longer auto-borderless", w.ProcessName), false)
	}
}

func (m *model) toggleResize() {
	err := m.runner.UpdateConfig(func(cfg *config.Config) {
		cfg.ResizeToScreen = !cfg.ResizeToScreen
	})
	if err != nil {
		m.setStatus(fmt.Sprintf("save config: %v", err), true)
		return
	}
	if m.runner.Config().ResizeToScreen {
		m.setStatus("resize to screen on", false)
	} else {
		m.setStatus("resize to screen off", false)
	}
}

func (m *model) cycleDisplay(step int) {
	n := len(m.displays)
	if n == 0 {
		m.setStatus("no displays detected; using the primary screen", true)
		return
	}
	err := m.runner.UpdateConfig(func(cfg *config.Config) {
		cur := cfg.Display
		if cur < 0 || cur >= n {
			cur = 0
		}
		cfg.Display = (cur + step + n) % n
	})
	if err != nil {
		m.setStatus(fmt.Sprintf("save config: %v", err), true)
		return
	}
	if d := display.At(m.displays, m.runner.Config().Display); d != nil {
		m.setStatus("display: "+d.Label(), false)
	}
}

func (m *model) saveSettings() {
	form := m.settings
	m.settings = nil

	before := m.runner.Config()
	if err := m.runner.UpdateConfig(form.apply); err != nil {
		m.setStatus(fmt.Sprintf("save config: %v", err), true)
		return
	}
	after := m.runner.Config()

	startupChanged := before.RunOnStartup != after.RunOnStartup || before.StartupAdmin != after.StartupAdmin
	if startupChanged && m.opts.OnStartupChange != nil {
		if err := m.opts.OnStartupChange(after); err != nil {
			m.setStatus(fmt.Sprintf("startup registration: %v", err), true)
			return
		}
	}
	m.setStatus("settings saved", false)
}

func (m *model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m model) listWidth() int {
	w := m.width * 55 / 100
	if w < 20 {
		w = 20
	}
	return w
}

// contentHeight returns the height available between the status and help bars.
func (m model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	cfg := m.runner.Config()
	var target *display.Info
	if cfg.ResizeToScreen {
		target = display.At(m.displays, cfg.Display)
	}

	statusBar := renderStatusBar(len(m.list.Items()), m.runner.Refreshing(), m.runner.LastRefresh(), cfg.ResizeToScreen, target, m.width)
	helpBar := renderHelpBar(m.status, m.statusErr, m.width)

	var content string
	if m.settings != nil {
		content = m.settings.view(m.width, m.contentHeight())
	} else {
		detailWidth := m.width - m.listWidth()
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.listWidth()).Height(m.contentHeight()).Render(m.list.View()),
			m.renderDetail(cfg, detailWidth),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		helpBar,
	)
}

var (
	detailLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	detailTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
)

func (m model) renderDetail(cfg *config.Config, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(m.contentHeight()).
		Padding(1, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color("238"))

	var body string
	if w, ok := m.selected(); ok {
		body = m.icon(w).preview + "\n\n" +
			detailTitle.Render(w.Title) + "\n" +
			field("Process", w.ProcessName) +
			field("Handle", fmt.Sprintf("%#x", uint64(w.ID))) +
			field("Borderless", yesNo(w.Borderless)) +
			field("Auto", yesNo(cfg.IsAutoBorderless(w.ProcessName)))
	} else {
		body = detailLabel.Render("No window selected.\nUse ↑/↓ to pick one.")
	}

	placement := "\n" + field("Resize", yesNo(cfg.ResizeToScreen))
	if d := display.At(m.displays, cfg.Display); d != nil {
		placement += field("Display", d.Label())
	} else {
		placement += field("Display", "primary screen")
	}

	return style.Render(body + "\n" + placement)
}

func field(label, value string) string {
	return detailLabel.Render(fmt.Sprintf("%-11s", label)) + value + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
