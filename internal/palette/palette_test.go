package palette

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/1broseidon/frameless/internal/ipc"
)

func containsArgs(args []string, want ...string) bool {
	for i := 0; i+len(want) <= len(args); i++ {
		match := true
		for j, w := range want {
			if args[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

type runCall struct {
	command string
	args    []string
	stdin   string
}

func stubRun(t *testing.T, out string, code int, err error) *runCall {
	t.Helper()
	orig := run
	t.Cleanup(func() { run = orig })
	got := &runCall{}
	run = func(command string, args []string, stdin string) (string, int, error) {
		got.command, got.args, got.stdin = command, args, stdin
		return out, code, err
	}
	return got
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name      string
		backend   string
		available []string
		want      string
		wantErr   bool
	}{
		{name: "auto prefers rofi", backend: "auto", available: []string{"dmenu", "rofi"}, want: "rofi"},
		{name: "empty means auto", backend: "", available: []string{"wofi"}, want: "wofi"},
		{name: "explicit", backend: "Fuzzel", available: []string{"rofi", "fuzzel"}, want: "fuzzel"},
		{name: "nothing installed", backend: "auto", wantErr: true},
		{name: "explicit missing", backend: "dmenu", available: []string{"rofi"}, wantErr: true},
		{name: "unknown", backend: "zenity", available: []string{"zenity"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubLookPath(t, tt.available...)
			b, err := NewBackend(tt.backend)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewBackend(%q) succeeded, want error", tt.backend)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend(%q): %v", tt.backend, err)
			}
			if got := b.(*launcher).command; got != tt.want {
				t.Errorf("command = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRofiArgs(t *testing.T) {
	l, _ := newLauncher("rofi")
	rows := []Item{
		{Label: "a", IsActive: true},
		{Label: "b", IsUrgent: true},
		{Label: "c", IsActive: true, IsUrgent: true},
	}
	args := l.args("frameless", "hint", rows)

	for _, want := range [][]string{
		{"-dmenu"},
		{"-format", "i"},
		{"-p", "frameless"},
		{"-a", "0,2"},
		{"-u", "1,2"},
		{"-kb-custom-1", "Alt+Return"},
		{"-mesg", "hint"},
	} {
		if !containsArgs(args, want...) {
			t.Errorf("args %v missing %v", args, want)
		}
	}
}

func TestDmenuArgs_NoPrompt(t *testing.T) {
	l, _ := newLauncher("dmenu")
	args := l.args("", "ignored", []Item{{Label: "a"}})
	if containsArgs(args, "-p") {
		t.Errorf("args %v should not carry a prompt", args)
	}
	if containsArgs(args, "-mesg") {
		t.Errorf("dmenu args %v should not carry a message", args)
	}
}

func TestRow(t *testing.T) {
	rofi, _ := newLauncher("rofi")
	dmenu, _ := newLauncher("dmenu")
	item := Item{Label: "a <b>\nc", Icon: "fire\x1ffox", Key: "42", Meta: "firefox"}

	if got, want := rofi.row(item), "a &lt;b&gt; c\x00icon\x1ffire fox\x1finfo\x1f42\x1fmeta\x1ffirefox"; got != want {
		t.Errorf("rofi row = %q, want %q", got, want)
	}
	if got, want := dmenu.row(item), "a <b> c"; got != want {
		t.Errorf("dmenu row = %q, want %q", got, want)
	}
	if got := rofi.row(Item{Label: "plain"}); got != "plain" {
		t.Errorf("rofi row without props = %q, want plain", got)
	}
}

func TestShow(t *testing.T) {
	items := []Item{{Label: "one", Key: "1"}, {Label: "two", Key: "2"}}

	tests := []struct {
		name     string
		backend  string
		out      string
		code     int
		runErr   error
		wantKey  string
		wantCode int
		wantErr  error
		anyErr   bool
	}{
		{name: "rofi index", backend: "rofi", out: "1\n", wantKey: "2"},
		{name: "rofi alternate", backend: "rofi", out: "0\n", code: ExitAlternate, wantKey: "1", wantCode: ExitAlternate},
		{name: "rofi cancel", backend: "rofi", code: 1, wantErr: ErrCancelled},
		{name: "dmenu escape", backend: "dmenu", code: 130, wantErr: ErrCancelled},
		{name: "dmenu label", backend: "dmenu", out: "two\n", wantKey: "2"},
		{name: "rofi out of range", backend: "rofi", out: "7", anyErr: true},
		{name: "unknown label", backend: "wofi", out: "three", anyErr: true},
		{name: "wofi escaped label", backend: "wofi", out: "one", wantKey: "1"},
		{name: "launcher crashed", backend: "rofi", out: "0", code: 2, anyErr: true},
		{name: "exec failure", backend: "rofi", runErr: errors.New("boom"), anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubRun(t, tt.out, tt.code, tt.runErr)
			l, _ := newLauncher(tt.backend)

			res, err := l.Show("p", items, "")
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Fatalf("Show succeeded with %+v, want error", res)
				}
				return
			case err != nil:
				t.Fatalf("Show: %v", err)
			}
			if res.Item.Key != tt.wantKey || res.ExitCode != tt.wantCode {
				t.Errorf("result = %+v, want key %q code %d", res, tt.wantKey, tt.wantCode)
			}
		})
	}
}

func TestShow_DuplicateLabelsForTextLaunchers(t *testing.T) {
	call := stubRun(t, "same (2)\n", 0, nil)
	l, _ := newLauncher("dmenu")

	res, err := l.Show("", []Item{{Label: "same", Key: "1"}, {Label: "same", Key: "2"}}, "")
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if res.Item.Key != "2" {
		t.Errorf("picked key %q, want 2", res.Item.Key)
	}
	if call.stdin != "same\nsame (2)" {
		t.Errorf("stdin = %q", call.stdin)
	}
}

func TestShow_NoItems(t *testing.T) {
	l, _ := newLauncher("rofi")
	if _, err := l.Show("", nil, ""); err == nil {
		t.Fatal("Show with no items succeeded")
	}
}

type fakeBackend struct {
	res   SelectResult
	err   error
	items []Item
}

func (f *fakeBackend) Show(_ string, items []Item, _ string) (SelectResult, error) {
	f.items = items
	if f.err != nil {
		return SelectResult{}, f.err
	}
	for _, it := range items {
		if it.Key == f.res.Item.Key {
			return SelectResult{Item: it, ExitCode: f.res.ExitCode}, nil
		}
	}
	return f.res, nil
}

func TestWindowItems(t *testing.T) {
	items := WindowItems([]ipc.WindowData{
		{ID: 16, Title: "Game", Process: "Game.exe", Borderless: true, Auto: true},
		{ID: 32, Title: "Notes", Process: "notepad.exe"},
	})
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if !items[0].IsActive || !items[0].IsUrgent || items[0].Key != "16" || items[0].Icon != "game.exe" {
		t.Errorf("items[0] = %+v", items[0])
	}
	if !strings.Contains(items[0].Label, "[borderless, auto]") {
		t.Errorf("label %q missing state tags", items[0].Label)
	}
	if items[1].IsActive || items[1].IsUrgent || strings.Contains(items[1].Label, "[") {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestPick(t *testing.T) {
	windows := []ipc.WindowData{
		{ID: 16, Title: "Game", Process: "game.exe"},
		{ID: 32, Title: "Notes", Process: "notepad.exe"},
	}

	tests := []struct {
		name       string
		backend    *fakeBackend
		windows    []ipc.WindowData
		wantID     uint64
		wantAction Action
		wantErr    error
		anyErr     bool
	}{
		{name: "toggle", backend: &fakeBackend{res: SelectResult{Item: Item{Key: "32"}}}, windows: windows, wantID: 32, wantAction: ActionToggle},
		{name: "auto", backend: &fakeBackend{res: SelectResult{Item: Item{Key: "16"}, ExitCode: ExitAlternate}}, windows: windows, wantID: 16, wantAction: ActionAuto},
		{name: "cancelled", backend: &fakeBackend{err: ErrCancelled}, windows: windows, wantErr: ErrCancelled},
		{name: "no windows", backend: &fakeBackend{}, wantErr: ErrNoWindows},
		{name: "bad key", backend: &fakeBackend{res: SelectResult{Item: Item{Key: "x"}}}, windows: windows, anyErr: true},
		{name: "window gone", backend: &fakeBackend{res: SelectResult{Item: Item{Key: "99"}}}, windows: windows, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pick(tt.backend, tt.windows)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.anyErr:
				if err == nil {
					t.Fatalf("Pick succeeded with %+v, want error", got)
				}
				return
			case err != nil:
				t.Fatalf("Pick: %v", err)
			}
			if got.Window.ID != tt.wantID || got.Action != tt.wantAction {
				t.Errorf("Pick = %+v, want id %d action %d", got, tt.wantID, tt.wantAction)
			}
		})
	}
}

func TestShow_MarkupLabelRoundTrip(t *testing.T) {
	stubRun(t, "Tom &amp; Jerry\n", 0, nil)
	l, _ := newLauncher("wofi")

	res, err := l.Show("", []Item{{Label: "Tom & Jerry", Key: "7"}}, "")
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if res.Item.Key != "7" {
		t.Errorf("picked key %q, want 7", res.Item.Key)
	}
}
