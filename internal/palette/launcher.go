package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

// Launcher exit codes. rofi maps kb-custom-1 to ExitAlternate.
const (
	ExitNormal    = 0
	ExitAlternate = 10
)

// launcher drives a dmenu-compatible program over stdin/stdout.
type launcher struct {
	command string
	// byIndex launchers print the chosen row number instead of its text.
	byIndex bool
	icons   bool
	markup  bool
	// rofi extras: row properties, highlighting and the alternate key.
	rofi bool
}

func newLauncher(name string) (*launcher, bool) {
	switch name {
	case "rofi":
		return &launcher{command: "rofi", byIndex: true, icons: true, markup: true, rofi: true}, true
	case "fuzzel":
		return &launcher{command: "fuzzel", byIndex: true, icons: true}, true
	case "wofi":
		return &launcher{command: "wofi", icons: true, markup: true}, true
	case "dmenu":
		return &launcher{command: "dmenu"}, true
	default:
		return nil, false
	}
}

// run executes the launcher; replaced in tests.
var run = func(command string, args []string, stdin string) (string, int, error) {
	cmd := exec.Command(command, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err == nil {
		return string(out), 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode(), nil
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return "", -1, fmt.Errorf("%s failed: %s", command, msg)
	}
	return "", -1, fmt.Errorf("%s failed: %w", command, err)
}

func (l *launcher) Show(prompt string, items []Item, message string) (SelectResult, error) {
	if len(items) == 0 {
		return SelectResult{}, errors.New("palette: no items to show")
	}

	rows := make([]Item, len(items))
	copy(rows, items)
	if !l.byIndex {
		disambiguate(rows)
	}

	out, code, err := run(l.command, l.args(prompt, message, rows), l.input(rows))
	if err != nil {
		return SelectResult{}, err
	}
	selection := strings.TrimSpace(out)

	switch {
	case selection == "" && (code == 1 || code == 130 || code == ExitNormal):
		return SelectResult{}, ErrCancelled
	case code != ExitNormal && code < ExitAlternate:
		return SelectResult{}, fmt.Errorf("%s exited with status %d", l.command, code)
	}

	item, err := l.parse(selection, rows)
	if err != nil {
		return SelectResult{}, err
	}
	return SelectResult{Item: item, ExitCode: code}, nil
}

func (l *launcher) args(prompt, message string, rows []Item) []string {
	switch l.command {
	case "rofi":
		args := []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		if active := rowIndices(rows, func(it Item) bool { return it.IsActive }); active != "" {
			args = append(args, "-a", active)
		}
		if urgent := rowIndices(rows, func(it Item) bool { return it.IsUrgent }); urgent != "" {
			args = append(args, "-u", urgent)
		}
		args = append(args, "-kb-custom-1", "Alt+Return")
		if message != "" {
			args = append(args, "-mesg", message)
		}
		return args
	case "fuzzel":
		args := []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt+" ")
		}
		return args
	case "wofi":
		args := []string{"--dmenu", "--allow-markup", "--allow-images"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
		return args
	default:
		args := []string{"-i", "-l", "20"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		return args
	}
}

func (l *launcher) input(rows []Item) string {
	lines := make([]string, len(rows))
	for i, it := range rows {
		lines[i] = l.row(it)
	}
	return strings.Join(lines, "\n")
}

// row renders one line. rofi reads per-row properties after a single NUL,
// as \x1f-separated key/value pairs.
func (l *launcher) row(it Item) string {
	text := l.text(it)
	if !l.rofi {
		return text
	}

	var props []string
	if it.Icon != "" {
		props = append(props, "icon", cleanField(it.Icon))
	}
	if it.Key != "" {
		props = append(props, "info", cleanField(it.Key))
	}
	if it.Meta != "" {
		props = append(props, "meta", cleanField(it.Meta))
	}
	if len(props) == 0 {
		return text
	}
	return text + "\x00" + strings.Join(props, "\x1f")
}

// text is the visible part of a row, as text launchers echo it back.
func (l *launcher) text(it Item) string {
	text := cleanLabel(it.Label)
	if l.markup {
		text = html.EscapeString(text)
	}
	return text
}

func (l *launcher) parse(selection string, rows []Item) (Item, error) {
	if l.byIndex {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(rows) {
				return Item{}, fmt.Errorf("palette: row %d out of range", idx)
			}
			return rows[idx], nil
		}
	}
	for _, it := range rows {
		if l.text(it) == selection {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

// disambiguate suffixes repeated labels for launchers that return text.
func disambiguate(rows []Item) {
	seen := make(map[string]int)
	for i := range rows {
		label := cleanLabel(rows[i].Label)
		seen[label]++
		if n := seen[label]; n > 1 {
			rows[i].Label = fmt.Sprintf("%s (%d)", label, n)
		}
	}
}

func rowIndices(rows []Item, match func(Item) bool) string {
	var idx []string
	for i, it := range rows {
		if match(it) {
			idx = append(idx, strconv.Itoa(i))
		}
	}
	return strings.Join(idx, ",")
}

func cleanLabel(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\x00", " ", "\x1f", " ", "\r", " ", "\n", " ").Replace(s))
}
