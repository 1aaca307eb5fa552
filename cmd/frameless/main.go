package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/1broseidon/frameless/internal/actionlog"
	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/daemon"
	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/platform"
)

const appName = "frameless"

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "toggle":
		os.Exit(runToggle(os.Args[2:]))
	case "auto":
		os.Exit(runAuto(os.Args[2:]))
	case "pick":
		os.Exit(runPick(os.Args[2:]))
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "startup":
		os.Exit(runStartup(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: frameless <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list                List visible windows")
	fmt.Fprintln(w, "  displays            List attached displays")
	fmt.Fprintln(w, "  toggle              Toggle a window's decorations")
	fmt.Fprintln(w, "  pick                Choose a window from a rofi/dmenu palette")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  auto list           List always-borderless processes")
	fmt.Fprintln(w, "  auto add            Make a process always borderless")
	fmt.Fprintln(w, "  auto remove         Stop making a process borderless")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  daemon              Run the auto-borderless daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  tui                 Open the interactive window picker")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config path         Print the configuration file path")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "  startup enable      Start frameless at logon")
	fmt.Fprintln(w, "  startup disable     Stop starting frameless at logon")
	fmt.Fprintln(w, "  startup status      Show whether the logon task exists")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'frameless <command> --help' for command-specific options.")
}

// configPath resolves the --path flag, defaulting to the standard location.
func configPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

func loadConfig(flagValue string) (*config.LoadResult, error) {
	path, err := configPath(flagValue)
	if err != nil {
		return nil, err
	}
	return config.LoadFromPath(path)
}

// newLogger builds the process logger at the configured level.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
}

// newActionLogger opens the action log. Failures are logged and yield a
// nil logger, which drops entries.
func newActionLogger(cfg *config.Config, logger *slog.Logger) *actionlog.Logger {
	lc := cfg.GetLoggingConfig()
	al, err := actionlog.NewLogger(actionlog.LogConfig{
		Enabled:       lc.Enabled,
		Level:         actionlog.ParseLogLevel(lc.Level),
		FilePath:      lc.File,
		MaxSizeMB:     lc.MaxSizeMB,
		MaxFiles:      lc.MaxFiles,
		PreviewLength: lc.PreviewLength,
	})
	if err != nil {
		logger.Warn("action log disabled", "error", err)
		return nil
	}
	return al
}

// session is a local runner over the platform backend.
type session struct {
	runner  *daemon.Runner
	backend platform.Backend
	actions *actionlog.Logger
}

func (s *session) Close() {
	if s.actions != nil {
		s.actions.Close()
	}
	s.backend.Close()
}

// newSession opens the backend and a runner over it. One-shot sessions
// never auto-apply the policy.
func newSession(cfg *config.Config, logger *slog.Logger, oneShot bool) (*session, error) {
	backend, err := platform.New()
	if err != nil {
		return nil, fmt.Errorf("failed to open window system: %w", err)
	}
	actions := newActionLogger(cfg, logger)
	runner := daemon.NewRunner(daemon.RunnerConfig{
		Backend:     backend,
		Config:      cfg,
		Actions:     actions,
		Logger:      logger,
		SelfName:    appName,
		SelfPID:     uint32(os.Getpid()),
		NoAutoApply: oneShot,
	})
	return &session{runner: runner, backend: backend, actions: actions}, nil
}

// snapshotTimeout bounds how long one-shot commands wait for enumeration.
const snapshotTimeout = 10 * time.Second

// waitSnapshot starts a refresh and steps the runner until it lands.
func waitSnapshot(r *daemon.Runner, timeout time.Duration) error {
	r.Refresh()
	deadline := time.Now().Add(timeout)
	for r.Refreshing() {
		if time.Now().After(deadline) {
			return fmt.Errorf("window enumeration timed out after %s", timeout)
		}
		time.Sleep(10 * time.Millisecond)
		r.Step()
	}
	return nil
}

// daemonClient returns an IPC client when the daemon is reachable.
func daemonClient() (*ipc.Client, bool) {
	client := ipc.NewClient()
	if err := client.Ping(); err != nil {
		return nil, false
	}
	return client, true
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
