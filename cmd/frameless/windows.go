package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/1broseidon/frameless/internal/actionlog"
	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/platform"
)

// windowSource is the read side shared by the daemon client and a local
// service.
type windowSource interface {
	ListWindows() ([]ipc.WindowData, error)
	ListDisplays() ([]display.Info, error)
	Toggle(id platform.WindowID) (*ipc.ToggleData, error)
	SetAuto(id platform.WindowID, enabled bool) (*ipc.ToggleData, error)
}

// openWindowSource prefers the running daemon and otherwise enumerates
// locally. The returned close func is never nil.
func openWindowSource(path string) (windowSource, func(), error) {
	if client, ok := daemonClient(); ok {
		return client, func() {}, nil
	}

	res, err := loadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	return openLocal(res.Config)
}

func openLocal(cfg *config.Config) (*ipc.Local, func(), error) {
	logger := newLogger(cfg, os.Stderr)
	s, err := newSession(cfg, logger, true)
	if err != nil {
		return nil, nil, err
	}
	if err := waitSnapshot(s.runner, snapshotTimeout); err != nil {
		s.Close()
		return nil, nil, err
	}
	return ipc.NewLocal(daemonService(s, cfg.Path())), s.Close, nil
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: <user config dir>/frameless/config.yaml)")
	jsonOut := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless list [--json] [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List visible top-level windows.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	src, closeFn, err := openWindowSource(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeFn()

	windows, err := src.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		return writeJSON(os.Stdout, windows)
	}
	printWindows(os.Stdout, windows)
	return 0
}

func printWindows(w io.Writer, windows []ipc.WindowData) {
	if len(windows) == 0 {
		fmt.Fprintln(w, "No windows found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROCESS\tSTATE\tTITLE")
	for _, win := range windows {
		state := "decorated"
		if win.Borderless {
			state = "borderless"
		}
		if win.Auto {
			state += " (auto)"
		}
		fmt.Fprintf(tw, "%#x\t%s\t%s\t%s\n", win.ID, win.Process, state, actionlog.Truncate(win.Title, 60))
	}
	tw.Flush()
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: <user config dir>/frameless/config.yaml)")
	jsonOut := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless displays [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List attached displays, primary first. The index is what --display")
		fmt.Fprintln(os.Stderr, "and the display config key refer to.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	var displays []display.Info
	if client, ok := daemonClient(); ok {
		d, err := client.ListDisplays()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		displays = d
	} else {
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		backend, err := platform.New()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer backend.Close()
		displays = display.Enumerate(backend, newLogger(res.Config, os.Stderr))
	}

	if *jsonOut {
		return writeJSON(os.Stdout, displays)
	}
	if len(displays) == 0 {
		fmt.Println("No displays detected; toggles use the primary screen size.")
		return 0
	}
	for i, d := range displays {
		fmt.Printf("%d  %s  at %d,%d\n", i, d.Label(), d.X, d.Y)
	}
	return 0
}

func runToggle(args []string) int {
	fs := flag.NewFlagSet("toggle", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: <user config dir>/frameless/config.yaml)")
	noResize := fs.Bool("no-resize", false, "Do not resize the window when removing decorations")
	displayIdx := fs.Int("display", -1, "Display index to fill (see 'frameless displays')")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless toggle [--no-resize] [--display N] <window-id|process>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Toggle decorations on a window. A process name picks its first window.")
		fmt.Fprintln(os.Stderr, "Without overrides the running daemon performs the toggle.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "toggle requires exactly one <window-id|process>")
		fs.Usage()
		return 2
	}

	var (
		src     windowSource
		closeFn func()
		err     error
	)
	overridden := *noResize || *displayIdx >= 0
	if overridden {
		src, closeFn, err = openOverridden(*path, *noResize, *displayIdx)
	} else {
		src, closeFn, err = openWindowSource(*path)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeFn()

	target, err := resolveTarget(src, fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	res, err := src.Toggle(target.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(describeToggle(target, res))
	return 0
}

// openOverridden runs locally with placement overrides that are not saved.
func openOverridden(path string, noResize bool, displayIdx int) (windowSource, func(), error) {
	res, err := loadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	cfg := res.Config.Clone()
	if noResize {
		cfg.ResizeToScreen = false
	}
	if displayIdx >= 0 {
		cfg.Display = displayIdx
	}
	return openLocal(cfg)
}

type toggleTarget struct {
	id      platform.WindowID
	label   string
	process string
}

// resolveTarget accepts a window handle (decimal or 0x hex) or a process
// name. Handles do not need to be in the current listing.
func resolveTarget(src windowSource, arg string) (toggleTarget, error) {
	if id, err := strconv.ParseUint(arg, 0, 64); err == nil {
		if id == 0 {
			return toggleTarget{}, errors.New("window id must be non-zero")
		}
		return toggleTarget{id: platform.WindowID(id), label: fmt.Sprintf("%#x", id)}, nil
	}

	windows, err := src.ListWindows()
	if err != nil {
		return toggleTarget{}, err
	}
	w, ok := findByProcess(windows, arg)
	if !ok {
		return toggleTarget{}, fmt.Errorf("no window for process %q", arg)
	}
	return toggleTarget{
		id:      platform.WindowID(w.ID),
		label:   fmt.Sprintf("%s (%#x)", w.Process, w.ID),
		process: w.Process,
	}, nil
}

// findByProcess returns the first window whose process matches name,
// ignoring case and an executable extension.
func findByProcess(windows []ipc.WindowData, name string) (ipc.WindowData, bool) {
	name = strings.TrimSuffix(strings.ToLower(name), ".exe")
	for _, w := range windows {
		if strings.ToLower(w.Process) == name {
			return w, true
		}
	}
	return ipc.WindowData{}, false
}

func describeToggle(t toggleTarget, res *ipc.ToggleData) string {
	state := "decorated"
	if res.Borderless {
		state = "borderless"
	}
	msg := fmt.Sprintf("%s: %s", t.label, state)
	if res.Resized {
		msg += " (resized)"
	}
	return msg
}

func printAutoUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  frameless auto list [--path PATH]")
	fmt.Fprintln(w, "  frameless auto add [--path PATH] <process>")
	fmt.Fprintln(w, "  frameless auto remove [--path PATH] <process>")
}

func runAuto(args []string) int {
	if len(args) == 0 {
		printAutoUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("auto list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, app := range res.Config.AutoBorderlessApps {
			fmt.Println(app)
		}
		return 0

	case "add", "remove":
		fs := flag.NewFlagSet("auto "+args[0], flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "auto %s requires <process>\n", args[0])
			return 2
		}
		return editAutoList(*path, args[0] == "add", fs.Arg(0))

	case "help", "-h", "--help":
		printAutoUsage(os.Stdout)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown auto subcommand: %s\n\n", args[0])
		printAutoUsage(os.Stderr)
		return 2
	}
}

// editAutoList changes the always-borderless list on disk and asks a
// running daemon to pick it up.
func editAutoList(path string, add bool, process string) int {
	process = strings.TrimSpace(process)
	if process == "" {
		fmt.Fprintln(os.Stderr, "process name must not be empty")
		return 2
	}

	res, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	var changed bool
	action := actionlog.ActionPolicyRemove
	if add {
		changed = cfg.AddAutoBorderless(process)
		action = actionlog.ActionPolicyAdd
	} else {
		changed = cfg.RemoveAutoBorderless(process)
	}
	if !changed {
		fmt.Printf("%s: unchanged\n", process)
		return 0
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := newLogger(cfg, os.Stderr)
	actions := newActionLogger(cfg, logger)
	actions.Log(action, 0, process, map[string]interface{}{"source": "cli"})
	if actions != nil {
		actions.Close()
	}

	if client, ok := daemonClient(); ok {
		if err := client.Reload(); err != nil {
			logger.Warn("daemon reload failed", "error", err)
		}
	}

	if add {
		fmt.Printf("%s: always borderless\n", process)
	} else {
		fmt.Printf("%s: removed\n", process)
	}
	return 0
}

func writeJSON(w io.Writer, v any) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
