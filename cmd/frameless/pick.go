package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/frameless/internal/palette"
	"github.com/1broseidon/frameless/internal/platform"
)

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: <user config dir>/frameless/config.yaml)")
	backendName := fs.String("backend", "", "Launcher to use: auto, rofi, fuzzel, wofi or dmenu (default: palette_backend)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: frameless pick [--backend NAME] [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Choose a window from an external launcher.")
		fmt.Fprintln(os.Stderr, "Enter toggles it; Alt+Return (rofi) flips always-borderless for its process.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "pick takes no arguments")
		fs.Usage()
		return 2
	}

	name := *backendName
	if name == "" {
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		name = res.Config.PaletteBackend
	}
	backend, err := palette.NewBackend(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	src, closeFn, err := openWindowSource(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeFn()

	if err := pickWindow(src, backend, os.Stdout); err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// pickWindow shows the window list in backend and applies the choice.
func pickWindow(src windowSource, backend palette.Backend, out io.Writer) error {
	windows, err := src.ListWindows()
	if err != nil {
		return err
	}

	choice, err := palette.Pick(backend, windows)
	if err != nil {
		return err
	}

	w := choice.Window
	target := toggleTarget{id: platform.WindowID(w.ID), label: fmt.Sprintf("%#x (%s)", w.ID, w.Process), process: w.Process}

	switch choice.Action {
	case palette.ActionAuto:
		if _, err := src.SetAuto(target.id, !w.Auto); err != nil {
			return err
		}
		state := "on"
		if w.Auto {
			state = "off"
		}
		fmt.Fprintf(out, "%s: always borderless %s\n", w.Process, state)
	default:
		res, err := src.Toggle(target.id)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, describeToggle(target, res))
	}
	return nil
}
