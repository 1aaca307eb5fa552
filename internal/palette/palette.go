// Package palette shows the window list in an external launcher such as
// rofi or dmenu and reports what the user picked.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the launcher without
// choosing a row.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row in the launcher.
type Item struct {
	Label string
	// Icon is an icon-theme name, shown by launchers that support icons.
	Icon string
	// Key identifies the row independently of its label.
	Key string
	// Meta holds extra search terms.
	Meta     string
	IsActive bool
	IsUrgent bool
}

// SelectResult is the chosen row and the launcher's exit code. Exit codes
// at or above ExitAlternate report a custom key binding.
type SelectResult struct {
	Item     Item
	ExitCode int
}

// Backend shows rows to the user and returns the chosen one.
type Backend interface {
	Show(prompt string, items []Item, message string) (SelectResult, error)
}

// launchers lists the supported commands in detection order.
var launchers = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DetectBackend returns the first supported launcher found in PATH.
func DetectBackend() (string, error) {
	for _, name := range launchers {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette launcher found in PATH (looked for: %s)", strings.Join(launchers, ", "))
}

// NewBackend returns the named launcher, or the first available one for
// "" and "auto".
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	l, ok := newLauncher(name)
	if !ok {
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(launchers, ", "))
	}
	if _, err := lookPath(l.command); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", name)
	}
	return l, nil
}
