// Package tui is the interactive window picker.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/daemon"
)

// Options configure the picker.
type Options struct {
	// OnStartupChange registers or removes the login task after the
	// settings form changes run_on_startup or startup_admin. May be nil.
	OnStartupChange func(cfg *config.Config) error
}

// Run starts the TUI main loop over runner. The runner is stepped from
// the UI loop; it must not be running elsewhere.
func Run(runner *daemon.Runner, opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(runner, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
