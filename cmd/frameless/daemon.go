package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/daemon"
	"github.com/1broseidon/frameless/internal/hotkeys"
	"github.com/1broseidon/frameless/internal/ipc"
)

// daemonService exposes a session over the IPC handler interface; RELOAD
// re-reads path.
func daemonService(s *session, path string) *daemon.Service {
	return daemon.NewService(s.runner, func() (*config.Config, error) {
		res, err := config.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		return res.Config, nil
	})
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: <user config dir>/frameless/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless daemon [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the refresh and auto-borderless loop in the foreground, serve IPC")
		fmt.Fprintln(os.Stderr, "requests and reload the config file when it changes.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	if _, running := daemonClient(); running {
		fmt.Fprintln(os.Stderr, "frameless daemon is already running")
		return 1
	}

	cfgPath, err := configPath(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	res, err := config.LoadOrInit(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config
	logger := newLogger(cfg, os.Stderr)
	logger.Info("configuration loaded",
		"path", cfgPath,
		"auto_borderless_apps", len(cfg.AutoBorderlessApps),
		"resize_to_screen", cfg.ResizeToScreen,
		"refresh_interval", cfg.RefreshInterval,
	)

	s, err := newSession(cfg, logger, false)
	if err != nil {
		logger.Error("failed to start", "error", err)
		return 1
	}
	defer s.Close()

	server, err := ipc.NewServer(daemonService(s, cfgPath), logger)
	if err != nil {
		logger.Error("failed to create IPC server", "error", err)
		return 1
	}
	watcher := daemon.NewPolicyWatcher(cfgPath, s.runner.ApplyConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var extra []func(context.Context) error
	if loop := startHotkeys(cfg, s, logger); loop != nil {
		extra = append(extra, loop)
	}

	logger.Info("frameless daemon started", "socket", server.SocketPath())
	if err := daemon.Serve(ctx, s.runner, watcher, server, logger, extra...); err != nil {
		logger.Error("daemon failed", "error", err)
		return 1
	}
	return 0
}

// startHotkeys registers the configured global hotkeys and returns the
// event loop to run, or nil when none are active. Hotkey changes need a
// daemon restart.
func startHotkeys(cfg *config.Config, s *session, logger *slog.Logger) func(context.Context) error {
	var toggle, palette func()
	if focus, ok := s.backend.(hotkeys.FocusSource); ok {
		toggle = hotkeys.ToggleFocused(focus, s.runner, logger)
	}
	if exe, err := os.Executable(); err == nil {
		palette = hotkeys.LaunchPalette(exe, logger)
	}

	bindings := hotkeys.Bindings(cfg, toggle, palette)
	if len(bindings) == 0 {
		return nil
	}

	h, err := hotkeys.NewHandler(s.backend, logger)
	if err != nil {
		logger.Warn("global hotkeys unavailable", "error", err)
		return nil
	}
	registered := 0
	for _, b := range bindings {
		if err := h.Register(b); err != nil {
			logger.Warn("hotkey not registered", "error", err)
			continue
		}
		registered++
	}
	if registered == 0 {
		return nil
	}
	return h.Run
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return writeJSON(os.Stdout, status)
	}

	fmt.Printf("daemon_running:       %v\n", status.DaemonRunning)
	fmt.Printf("uptime_seconds:       %d\n", status.UptimeSeconds)
	fmt.Printf("window_count:         %d\n", status.WindowCount)
	fmt.Printf("auto_applied:         %d\n", status.AutoApplied)
	fmt.Printf("auto_borderless_apps: %v\n", status.AutoBorderlessApps)
	fmt.Printf("resize_to_screen:     %v\n", status.ResizeToScreen)
	fmt.Printf("display:              %d\n", status.Display)
	fmt.Printf("config_path:          %s\n", status.ConfigPath)
	if !status.LastRefresh.IsZero() {
		fmt.Printf("last_refresh:         %s\n", status.LastRefresh.Format(time.RFC3339))
	}
	return 0
}
