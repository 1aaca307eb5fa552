package hotkeys

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/1broseidon/frameless/internal/border"
	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/platform"
)

type fakeFocus struct {
	id  platform.WindowID
	err error
}

func (f fakeFocus) ActiveWindow() (platform.WindowID, error) { return f.id, f.err }

type fakeToggler struct {
	toggled []platform.WindowID
	err     error
}

func (f *fakeToggler) Toggle(id platform.WindowID) (border.Result, error) {
	f.toggled = append(f.toggled, id)
	return border.Result{Borderless: true}, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBindings(t *testing.T) {
	noop := func() {}

	tests := []struct {
		name    string
		toggle  string
		palette string
		want    []string
	}{
		{name: "none"},
		{name: "toggle only", toggle: "Mod4-Shift-b", want: []string{"toggle"}},
		{name: "both", toggle: "Mod4-Shift-b", palette: "Mod4-p", want: []string{"toggle", "palette"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.ToggleHotkey = tt.toggle
			cfg.PaletteHotkey = tt.palette

			var got []string
			for _, b := range Bindings(cfg, noop, noop) {
				got = append(got, b.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Bindings = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToggleFocused(t *testing.T) {
	tog := &fakeToggler{}
	ToggleFocused(fakeFocus{id: 0x42}, tog, quietLogger())()
	if !reflect.DeepEqual(tog.toggled, []platform.WindowID{0x42}) {
		t.Fatalf("expected focused window toggled, got %v", tog.toggled)
	}

	tog = &fakeToggler{}
	ToggleFocused(fakeFocus{err: errors.New("no focus")}, tog, quietLogger())()
	if len(tog.toggled) != 0 {
		t.Fatalf("expected no toggle without focus, got %v", tog.toggled)
	}

	tog = &fakeToggler{err: errors.New("denied")}
	ToggleFocused(fakeFocus{id: 0x42}, tog, quietLogger())()
	if len(tog.toggled) != 1 {
		t.Fatalf("expected a single attempt, got %v", tog.toggled)
	}
}

func TestIgnoreMasks(t *testing.T) {
	const (
		caps   = 1 << 1
		num    = 1 << 4
		scroll = 1 << 7
	)

	tests := []struct {
		name   string
		num    uint16
		scroll uint16
		want   []uint16
	}{
		{name: "caps only", want: []uint16{0, caps}},
		{name: "caps and num", num: num, want: []uint16{0, caps, num, caps | num}},
		{name: "num shares caps bit", num: caps, want: []uint16{0, caps}},
		{
			name:   "all three",
			num:    num,
			scroll: scroll,
			want:   []uint16{0, caps, num, caps | num, scroll, caps | scroll, num | scroll, caps | num | scroll},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ignoreMasks(caps, tt.num, tt.scroll)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ignoreMasks = %v, want %v", got, tt.want)
			}
		})
	}
}
