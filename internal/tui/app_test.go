package tui

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/daemon"
	"github.com/1broseidon/frameless/internal/iconcache"
	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/platform/platformtest"
	"github.com/1broseidon/frameless/internal/winlist"
)

const (
	gameWindow  platform.WindowID = 0x10
	notesWindow platform.WindowID = 0x20
)

func newTestModel(t *testing.T, apps ...string) (*platformtest.Fake, *daemon.Runner, model) {
	t.Helper()
	fake := platformtest.NewFake()
	fake.SetMonitors(
		platform.Monitor{Bounds: platform.Rect{Width: 1920, Height: 1080}, Primary: true},
		platform.Monitor{Bounds: platform.Rect{X: 1920, Width: 2560, Height: 1440}},
	)
	fake.AddWindow(platformtest.Window{ID: gameWindow, Title: "Game", PID: 10, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: notesWindow, Title: "Notes", PID: 20, Style: platform.RestoredDecorations})
	fake.SetProcess(10, "game.exe")
	fake.SetProcess(20, "notepad.exe")

	cfg := config.DefaultConfig()
	cfg.AutoBorderlessApps = apps
	if err := cfg.SaveTo(filepath.Join(t.TempDir(), "config.yaml")); err != nil {
		t.Fatalf("save config: %v", err)
	}

	r := daemon.NewRunner(daemon.RunnerConfig{Backend: fake, Config: cfg, SelfPID: 999})
	r.Refresh()
	waitFor(t, func() bool {
		r.Step()
		return !r.Refreshing() && len(r.Windows()) == 2
	})

	m, _ := send(t, newModel(r, Options{}), tea.WindowSizeMsg{Width: 120, Height: 30})
	return fake, r, m
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func send(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", next)
	}
	return nm, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func findWindow(t *testing.T, r *daemon.Runner, id platform.WindowID) winlist.WindowInfo {
	t.Helper()
	for _, w := range r.Windows() {
		if w.ID == id {
			return w
		}
	}
	t.Fatalf("window %#x not in snapshot", uint64(id))
	return winlist.WindowInfo{}
}

func TestModel_ListsSnapshot(t *testing.T) {
	_, _, m := newTestModel(t)

	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0].(windowItem)
	if !strings.Contains(first.Title(), "Game") {
		t.Fatalf("unexpected first title %q", first.Title())
	}
	if !strings.Contains(first.Description(), "game") {
		t.Fatalf("unexpected first description %q", first.Description())
	}
	if m.hasSelection {
		t.Fatal("expected no initial selection")
	}
}

func TestModel_EnterWithoutSelection(t *testing.T) {
	fake, _, m := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.statusErr {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if len(fake.Calls()) != 0 {
		t.Fatalf("expected no backend calls, got %+v", fake.Calls())
	}
}

func TestModel_ToggleSelected(t *testing.T) {
	_, r, m := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if !m.hasSelection || m.selectedID != notesWindow {
		t.Fatalf("expected Notes selected, got %#x (selected=%v)", uint64(m.selectedID), m.hasSelection)
	}

	gen := m.tickGen
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.tickGen != gen+1 {
		t.Fatal("expected toggle to reschedule the loop")
	}
	if m.statusErr {
		t.Fatalf("unexpected error status %q", m.status)
	}
	if !findWindow(t, r, notesWindow).Borderless {
		t.Fatal("expected Notes to be borderless")
	}
	if !m.list.SelectedItem().(windowItem).info.Borderless {
		t.Fatal("expected list item to show the new state")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if findWindow(t, r, notesWindow).Borderless {
		t.Fatal("expected Notes to be decorated again")
	}
}

func TestModel_ToggleRefusedForAutoProcess(t *testing.T) {
	fake, _, m := newTestModel(t, "notepad")
	fake.ResetCalls()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.statusErr {
		t.Fatalf("expected refusal, got %q", m.status)
	}
	if len(fake.Calls()) != 0 {
		t.Fatalf("expected no backend calls, got %+v", fake.Calls())
	}
}

func TestModel_ToggleFailureShowsError(t *testing.T) {
	fake, _, m := newTestModel(t)
	fake.SetStyleErr[gameWindow] = errors.New("access denied")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.statusErr || !strings.Contains(m.status, "access denied") {
		t.Fatalf("expected failure status, got %q", m.status)
	}
}

func TestModel_AutoKeyPersistsPolicy(t *testing.T) {
	_, r, m := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, keyRune('a'))
	if m.statusErr {
		t.Fatalf("unexpected error status %q", m.status)
	}

	res, err := config.LoadFromPath(r.Config().Path())
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if !res.Config.IsAutoBorderless("notepad") {
		t.Fatalf("expected notepad persisted, got %v", res.Config.AutoBorderlessApps)
	}
	if !findWindow(t, r, notesWindow).Borderless {
		t.Fatal("expected Notes to become borderless")
	}
	if !m.list.SelectedItem().(windowItem).auto {
		t.Fatal("expected auto badge on the selected item")
	}

	m, _ = send(t, m, keyRune('a'))
	if r.Config().IsAutoBorderless("notepad") {
		t.Fatal("expected notepad removed from policy")
	}
	if findWindow(t, r, notesWindow).Borderless {
		t.Fatal("expected Notes decorated after turning auto off")
	}
}

func TestModel_ResizeAndDisplayKeys(t *testing.T) {
	_, r, m := newTestModel(t)

	m, _ = send(t, m, keyRune('f'))
	if r.Config().ResizeToScreen {
		t.Fatal("expected resize turned off")
	}
	m, _ = send(t, m, keyRune('f'))
	if !r.Config().ResizeToScreen {
		t.Fatal("expected resize turned back on")
	}

	tests := []struct {
		key  rune
		want int
	}{
		{'d', 1},
		{'d', 0},
		{'D', 1},
		{'D', 0},
	}
	for _, tt := range tests {
		m, _ = send(t, m, keyRune(tt.key))
		if got := r.Config().Display; got != tt.want {
			t.Fatalf("after %q: display = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestModel_EscClearsSelection(t *testing.T) {
	_, _, m := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if !m.hasSelection {
		t.Fatal("expected a selection")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.hasSelection {
		t.Fatal("expected selection cleared")
	}
}

func TestModel_StaleTickIgnored(t *testing.T) {
	_, _, m := newTestModel(t)

	m.tickGen = 3
	if _, cmd := send(t, m, tickMsg{gen: 2}); cmd != nil {
		t.Fatal("expected stale tick to be dropped")
	}
	if _, cmd := send(t, m, tickMsg{gen: 3}); cmd == nil {
		t.Fatal("expected current tick to reschedule")
	}
}

func TestModel_TickSweepsExpiredIcons(t *testing.T) {
	fake, _, m := newTestModel(t)
	if got := m.icons.Len(); got != 2 {
		t.Fatalf("icons cached = %d, want 2", got)
	}

	// Both windows close; an empty refresh leaves the snapshot untouched,
	// so nothing re-renders their icons.
	fake.RemoveWindow(gameWindow)
	fake.RemoveWindow(notesWindow)
	later := time.Now().Add(iconcache.DefaultTTL + time.Minute)
	m.icons.WithClock(func() time.Time { return later })

	m, _ = send(t, m, tickMsg{gen: m.tickGen})
	if got := m.icons.Len(); got != 0 {
		t.Fatalf("icons cached after tick = %d, want 0", got)
	}
}

func TestModel_SelectionDroppedWhenWindowCloses(t *testing.T) {
	fake, r, m := newTestModel(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	fake.RemoveWindow(notesWindow)
	r.Refresh()

	waitFor(t, func() bool {
		m, _ = send(t, m, tickMsg{gen: m.tickGen})
		return len(m.list.Items()) == 1
	})
	if m.hasSelection {
		t.Fatal("expected selection dropped with the closed window")
	}
}

func TestModel_SettingsCancel(t *testing.T) {
	_, r, m := newTestModel(t)

	m, _ = send(t, m, keyRune('s'))
	if m.settings == nil {
		t.Fatal("expected settings form open")
	}
	m, _ = send(t, m, keyRune('q'))
	if m.settings == nil {
		t.Fatal("expected q to be captured by the form")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.settings != nil {
		t.Fatal("expected settings closed")
	}
	if !r.Config().ResizeToScreen {
		t.Fatal("expected config unchanged")
	}
}

func TestSettingsForm_Apply(t *testing.T) {
	cfg := config.DefaultConfig()
	s := newSettingsForm(cfg, nil, 80)
	s.fResize = false
	s.fDisplay = 2
	s.fInterval = "30s"
	s.fRunOnStartup = false
	s.fStartupAdmin = true

	s.apply(cfg)
	if cfg.ResizeToScreen || cfg.Display != 2 || cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.StartupAdmin {
		t.Fatal("expected admin startup to require run_on_startup")
	}

	s.fInterval = "10ms"
	s.apply(cfg)
	if cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("expected interval below minimum to be ignored, got %v", cfg.RefreshInterval)
	}
}

func TestModel_ViewRenders(t *testing.T) {
	_, _, m := newTestModel(t)

	unsized := m
	unsized.width = 0
	if unsized.View() != "" {
		t.Fatal("expected empty view before the first size message")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})

	view := m.View()
	for _, want := range []string{"2 windows", "Game", "Notes", "Process"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWindowItem_Truncates(t *testing.T) {
	item := windowItem{
		info: winlist.WindowInfo{
			Title:       strings.Repeat("t", 40),
			ProcessName: strings.Repeat("p", 20),
		},
	}
	if !strings.Contains(item.Title(), strings.Repeat("t", titleWidth-3)+"...") {
		t.Fatalf("title not truncated: %q", item.Title())
	}
	if strings.Contains(item.Title(), strings.Repeat("t", titleWidth)) {
		t.Fatalf("title longer than %d: %q", titleWidth, item.Title())
	}
	if !strings.HasPrefix(item.Description(), strings.Repeat("p", processWidth-3)+"...") {
		t.Fatalf("process not truncated: %q", item.Description())
	}
}

func TestRenderIcon(t *testing.T) {
	t.Run("nil icon uses placeholder", func(t *testing.T) {
		r := renderIcon(nil)
		if r.swatch != noIconSwatch {
			t.Fatalf("unexpected swatch %q", r.swatch)
		}
		if lines := strings.Count(r.preview, "\n") + 1; lines != 8 {
			t.Fatalf("expected 8 preview lines, got %d", lines)
		}
	})

	t.Run("opaque icon", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				img.SetRGBA(x, y, color.RGBA{R: 0xff, A: 0xff})
			}
		}
		r := renderIcon(img)
		if !strings.Contains(r.swatch, "█") {
			t.Fatalf("unexpected swatch %q", r.swatch)
		}
		if lines := strings.Count(r.preview, "\n") + 1; lines != 8 {
			t.Fatalf("expected 8 preview lines, got %d", lines)
		}
	})

	t.Run("transparent icon has no swatch colour", func(t *testing.T) {
		r := renderIcon(image.NewRGBA(image.Rect(0, 0, 16, 16)))
		if r.swatch != noIconSwatch {
			t.Fatalf("unexpected swatch %q", r.swatch)
		}
	})
}
