package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/display"
)

// settingsForm edits the persisted options that have no single-key binding.
type settingsForm struct {
	form *huh.Form

	// Form-bound values, applied on submit
	fResize       bool
	fDisplay      int
	fInterval     string
	fRunOnStartup bool
	fStartupAdmin bool
}

var intervalChoices = []string{"1s", "2s", "5s", "10s", "30s", "1m0s"}

func newSettingsForm(cfg *config.Config, displays []display.Info, width int) *settingsForm {
	s := &settingsForm{
		fResize:       cfg.ResizeToScreen,
		fDisplay:      cfg.Display,
		fInterval:     cfg.RefreshInterval.String(),
		fRunOnStartup: cfg.RunOnStartup,
		fStartupAdmin: cfg.StartupAdmin,
	}

	displayOpts := make([]huh.Option[int], 0, len(displays))
	for i, d := range displays {
		displayOpts = append(displayOpts, huh.NewOption(d.Label(), i))
	}
	if len(displayOpts) == 0 {
		displayOpts = append(displayOpts, huh.NewOption("Primary screen", 0))
	}

	intervalOpts := make([]huh.Option[string], 0, len(intervalChoices)+1)
	known := false
	for _, c := range intervalChoices {
		intervalOpts = append(intervalOpts, huh.NewOption(c, c))
		known = known || c == s.fInterval
	}
	if !known {
		intervalOpts = append(intervalOpts, huh.NewOption(s.fInterval, s.fInterval))
	}

	w := width - 4
	if w < 40 {
		w = 40
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("resize_to_screen").
				Title("Resize to screen").
				Description("Fill the selected display when a window becomes borderless").
				Value(&s.fResize),

			huh.NewSelect[int]().
				Key("display").
				Title("Display").
				Options(displayOpts...).
				Value(&s.fDisplay),

			huh.NewSelect[string]().
				Key("refresh_interval").
				Title("Refresh interval").
				Description("How often the window list is rebuilt").
				Options(intervalOpts...).
				Value(&s.fInterval),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("run_on_startup").
				Title("Run on startup").
				Description("Start frameless when you log in").
				Value(&s.fRunOnStartup),

			huh.NewConfirm().
				Key("startup_admin").
				Title("Start as administrator").
				Description("Needed to restyle windows of elevated applications").
				Value(&s.fStartupAdmin),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	return s
}

// update feeds msg to the form and reports whether it was submitted.
func (s *settingsForm) update(msg tea.Msg) (tea.Cmd, bool) {
	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	return cmd, s.form.State == huh.StateCompleted
}

// apply copies the form values onto cfg.
func (s *settingsForm) apply(cfg *config.Config) {
	cfg.ResizeToScreen = s.fResize
	if s.fDisplay >= 0 {
		cfg.Display = s.fDisplay
	}
	if d, err := time.ParseDuration(s.fInterval); err == nil && d >= config.MinRefreshInterval {
		cfg.RefreshInterval = d
	}
	cfg.RunOnStartup = s.fRunOnStartup
	cfg.StartupAdmin = s.fRunOnStartup && s.fStartupAdmin
}

func (s *settingsForm) view(width, height int) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2)

	return style.Render(header + "\n\n" + s.form.View())
}
