package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/palette"
	"github.com/1broseidon/frameless/internal/platform"
)

type fakeSource struct {
	windows []ipc.WindowData
	err     error
	toggled []platform.WindowID
	auto    map[platform.WindowID]bool
}

func (f *fakeSource) ListWindows() ([]ipc.WindowData, error) { return f.windows, f.err }

func (f *fakeSource) ListDisplays() ([]display.Info, error) { return nil, nil }

func (f *fakeSource) Toggle(id platform.WindowID) (*ipc.ToggleData, error) {
	f.toggled = append(f.toggled, id)
	return &ipc.ToggleData{WindowID: uint64(id), Borderless: true, Toggled: true}, nil
}

func (f *fakeSource) SetAuto(id platform.WindowID, enabled bool) (*ipc.ToggleData, error) {
	if f.auto == nil {
		f.auto = make(map[platform.WindowID]bool)
	}
	f.auto[id] = enabled
	return &ipc.ToggleData{WindowID: uint64(id), Borderless: enabled, Toggled: enabled}, nil
}

func TestResolveTarget(t *testing.T) {
	src := &fakeSource{windows: []ipc.WindowData{
		{ID: 0x10, Title: "Game", Process: "game"},
		{ID: 0x20, Title: "Notes", Process: "Notepad"},
		{ID: 0x30, Title: "More notes", Process: "Notepad"},
	}}

	tests := []struct {
		name    string
		arg     string
		want    platform.WindowID
		wantErr bool
	}{
		{name: "decimal id", arg: "16", want: 0x10},
		{name: "hex id", arg: "0x20", want: 0x20},
		{name: "id outside listing", arg: "0x99", want: 0x99},
		{name: "zero id", arg: "0", wantErr: true},
		{name: "process", arg: "game", want: 0x10},
		{name: "process case and extension", arg: "notepad.EXE", want: 0x20},
		{name: "unknown process", arg: "paint", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTarget(src, tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveTarget(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got.id != tt.want {
				t.Fatalf("resolveTarget(%q) = %#x, want %#x", tt.arg, uint64(got.id), uint64(tt.want))
			}
		})
	}
}

func TestResolveTarget_ListError(t *testing.T) {
	src := &fakeSource{err: errors.New("daemon gone")}
	if _, err := resolveTarget(src, "game"); err == nil || !strings.Contains(err.Error(), "daemon gone") {
		t.Fatalf("expected list error, got %v", err)
	}
	if _, err := resolveTarget(src, "0x10"); err != nil {
		t.Fatalf("ids should not need a listing: %v", err)
	}
}

func TestDescribeToggle(t *testing.T) {
	target := toggleTarget{id: 0x10, label: "game (0x10)"}
	tests := []struct {
		res  ipc.ToggleData
		want string
	}{
		{ipc.ToggleData{Borderless: true, Resized: true}, "game (0x10): borderless (resized)"},
		{ipc.ToggleData{Borderless: true}, "game (0x10): borderless"},
		{ipc.ToggleData{}, "game (0x10): decorated"},
	}
	for _, tt := range tests {
		if got := describeToggle(target, &tt.res); got != tt.want {
			t.Errorf("describeToggle(%+v) = %q, want %q", tt.res, got, tt.want)
		}
	}
}

func TestPrintWindows(t *testing.T) {
	var buf bytes.Buffer
	printWindows(&buf, nil)
	if !strings.Contains(buf.String(), "No windows") {
		t.Fatalf("unexpected empty output %q", buf.String())
	}

	buf.Reset()
	printWindows(&buf, []ipc.WindowData{
		{ID: 0x10, Title: "Game", Process: "game", Borderless: true, Auto: true},
		{ID: 0x20, Title: "Notes", Process: "notepad"},
	})
	out := buf.String()
	for _, want := range []string{"0x10", "borderless (auto)", "0x20", "decorated", "Notes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 1}, "file:/c.yaml:3:1"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceDefault, Name: "defaults"}, "default:defaults"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Errorf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestEditAutoList(t *testing.T) {
	// Keep the IPC client away from any real daemon.
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")

	if code := editAutoList(path, true, " game "); code != 0 {
		t.Fatalf("add returned %d", code)
	}
	if code := editAutoList(path, true, "game"); code != 0 {
		t.Fatalf("repeated add returned %d", code)
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := res.Config.AutoBorderlessApps; len(got) != 1 || got[0] != "game" {
		t.Fatalf("unexpected apps %v", got)
	}

	if code := editAutoList(path, false, "game"); code != 0 {
		t.Fatalf("remove returned %d", code)
	}
	res, err = config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Config.AutoBorderlessApps) != 0 {
		t.Fatalf("expected empty list, got %v", res.Config.AutoBorderlessApps)
	}

	if code := editAutoList(path, true, "  "); code != 2 {
		t.Fatalf("empty process returned %d, want 2", code)
	}
}

func TestSaveStartupSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if code := saveStartupSettings(path, true, true); code != 0 {
		t.Fatalf("enable returned %d", code)
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !res.Config.RunOnStartup || !res.Config.StartupAdmin {
		t.Fatalf("unexpected startup settings %+v", res.Config)
	}

	if code := saveStartupSettings(path, false, true); code != 0 {
		t.Fatalf("disable returned %d", code)
	}
	res, err = config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.RunOnStartup || res.Config.StartupAdmin {
		t.Fatalf("expected startup cleared, got %+v", res.Config)
	}
}

type stubPalette struct {
	key  string
	code int
	err  error
}

func (s stubPalette) Show(_ string, _ []palette.Item, _ string) (palette.SelectResult, error) {
	if s.err != nil {
		return palette.SelectResult{}, s.err
	}
	return palette.SelectResult{Item: palette.Item{Key: s.key}, ExitCode: s.code}, nil
}

func TestPickWindow(t *testing.T) {
	windows := []ipc.WindowData{
		{ID: 0x10, Title: "Game", Process: "game.exe", Auto: true},
		{ID: 0x20, Title: "Notes", Process: "notepad.exe"},
	}

	t.Run("toggle", func(t *testing.T) {
		src := &fakeSource{windows: windows}
		var out bytes.Buffer
		if err := pickWindow(src, stubPalette{key: "32"}, &out); err != nil {
			t.Fatalf("pickWindow: %v", err)
		}
		if len(src.toggled) != 1 || src.toggled[0] != 0x20 {
			t.Fatalf("toggled = %v, want [0x20]", src.toggled)
		}
		if !strings.Contains(out.String(), "borderless") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("alternate flips auto", func(t *testing.T) {
		src := &fakeSource{windows: windows}
		var out bytes.Buffer
		if err := pickWindow(src, stubPalette{key: "16", code: palette.ExitAlternate}, &out); err != nil {
			t.Fatalf("pickWindow: %v", err)
		}
		if enabled, ok := src.auto[0x10]; !ok || enabled {
			t.Fatalf("auto = %v, want 0x10 disabled", src.auto)
		}
		if len(src.toggled) != 0 {
			t.Errorf("toggled = %v, want none", src.toggled)
		}
		if got := out.String(); got != "game.exe: always borderless off\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		src := &fakeSource{windows: windows}
		err := pickWindow(src, stubPalette{err: palette.ErrCancelled}, io.Discard)
		if !errors.Is(err, palette.ErrCancelled) {
			t.Fatalf("err = %v, want ErrCancelled", err)
		}
	})

	t.Run("list error", func(t *testing.T) {
		src := &fakeSource{err: errors.New("daemon gone")}
		if err := pickWindow(src, stubPalette{key: "16"}, io.Discard); err == nil {
			t.Fatal("expected list error")
		}
	})
}
