package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/startup"
	"github.com/1broseidon/frameless/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: <user config dir>/frameless/config.yaml)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: frameless tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive window picker. Stop the daemon first; the picker runs its")
		fmt.Fprintln(os.Stderr, "own refresh and auto-borderless loop.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  ↑/↓, j/k  Select a window")
		fmt.Fprintln(os.Stderr, "  Enter     Toggle decorations")
		fmt.Fprintln(os.Stderr, "  a         Toggle always-borderless for the window's process")
		fmt.Fprintln(os.Stderr, "  f         Toggle resize to screen")
		fmt.Fprintln(os.Stderr, "  d/D       Next/previous display")
		fmt.Fprintln(os.Stderr, "  r, F5     Refresh")
		fmt.Fprintln(os.Stderr, "  s         Settings")
		fmt.Fprintln(os.Stderr, "  Esc       Clear selection")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if _, running := daemonClient(); running {
		fmt.Fprintln(os.Stderr, "the frameless daemon is running; stop it before opening the picker")
		return 1
	}

	cfgPath, err := configPath(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	res, err := config.LoadOrInit(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	// Logging to stderr would corrupt the screen.
	logFile, err := openTUILog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logFile.Close()
	logger := newLogger(cfg, logFile)

	s, err := newSession(cfg, logger, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.Close()

	opts := tui.Options{OnStartupChange: syncStartup}
	if err := tui.Run(s.runner, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func openTUILog() (*os.File, error) {
	dir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
}

// syncStartup mirrors the run_on_startup settings into the logon task.
func syncStartup(cfg *config.Config) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return startup.NewScheduler(exe, nil).Sync(cfg.RunOnStartup, cfg.StartupAdmin)
}
