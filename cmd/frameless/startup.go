package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/startup"
)

func printStartupUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  frameless startup enable [--admin] [--path PATH]")
	fmt.Fprintln(w, "  frameless startup disable [--path PATH]")
	fmt.Fprintln(w, "  frameless startup status")
}

func runStartup(args []string) int {
	if len(args) == 0 {
		printStartupUsage(os.Stderr)
		return 2
	}

	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	sched := startup.NewScheduler(exe, nil)

	switch args[0] {
	case "enable", "disable":
		fs := flag.NewFlagSet("startup "+args[0], flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path")
		admin := false
		if args[0] == "enable" {
			fs.BoolVar(&admin, "admin", false, "Run with highest privileges (requires elevation)")
		}
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if admin && !startup.IsElevated() {
			fmt.Fprintln(os.Stderr, "registering an elevated task needs administrator rights; requesting elevation")
			if err := startup.RelaunchElevated(os.Args[1:]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			return 0
		}

		enable := args[0] == "enable"
		if err := sched.Sync(enable, admin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if code := saveStartupSettings(*path, enable, admin); code != 0 {
			return code
		}
		if enable {
			fmt.Println("startup: enabled")
		} else {
			fmt.Println("startup: disabled")
		}
		return 0

	case "status":
		ok, err := sched.Enabled()
		if errors.Is(err, platform.ErrUnsupported) {
			fmt.Println("startup: unsupported on this platform")
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if ok {
			fmt.Println("startup: enabled")
		} else {
			fmt.Println("startup: disabled")
		}
		return 0

	case "help", "-h", "--help":
		printStartupUsage(os.Stdout)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown startup subcommand: %s\n\n", args[0])
		printStartupUsage(os.Stderr)
		return 2
	}
}

func saveStartupSettings(path string, enable, admin bool) int {
	res, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	cfg.RunOnStartup = enable
	cfg.StartupAdmin = enable && admin
	if err := cfg.Save(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
