package winlist

import (
	"errors"
	"image"
	"testing"

	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/platform/platformtest"
)

const selfPID = 999

func newFakeDesktop() *platformtest.Fake {
	fake := platformtest.NewFake()
	fake.SetProcess(10, "notepad.exe")
	fake.SetProcess(20, "firefox")
	fake.SetProcess(30, "explorer.exe")
	fake.SetProcess(selfPID, "frameless.exe")
	return fake
}

func enumerate(t *testing.T, fake *platformtest.Fake) []WindowInfo {
	t.Helper()
	e := NewEnumerator(fake, Options{SelfName: "frameless", SelfPID: selfPID})
	return e.Enumerate()
}

func TestEnumerate_FiltersAndSorts(t *testing.T) {
	fake := newFakeDesktop()
	icon := image.NewRGBA(image.Rect(0, 0, platform.IconSize, platform.IconSize))

	fake.AddWindow(platformtest.Window{ID: 1, Title: "Untitled - Notepad", PID: 10, Style: platform.RestoredDecorations, Icon: icon})
	fake.AddWindow(platformtest.Window{ID: 2, Title: "Mozilla Firefox", PID: 20, Style: 0})
	fake.AddWindow(platformtest.Window{ID: 3, Title: "Hidden", PID: 20, Hidden: true, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: 4, Title: "   ", PID: 20, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: 5, Title: "Program Manager", PID: 30, Shell: true})
	fake.AddWindow(platformtest.Window{ID: 6, Title: "frameless", PID: 1234, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: 7, Title: "Settings", PID: selfPID, Style: platform.RestoredDecorations})

	got := enumerate(t, fake)
	if len(got) != 2 {
		t.Fatalf("Enumerate() returned %d windows, want 2: %+v", len(got), got)
	}

	if got[0].Title != "Mozilla Firefox" || got[1].Title != "Untitled - Notepad" {
		t.Fatalf("windows not sorted by title: %q, %q", got[0].Title, got[1].Title)
	}
	if !got[0].Borderless {
		t.Error("firefox has no decoration bits and should be borderless")
	}
	if got[1].Borderless {
		t.Error("notepad is decorated")
	}
	if got[1].ProcessName != "notepad" {
		t.Errorf("ProcessName = %q, want notepad", got[1].ProcessName)
	}
	if got[1].Icon == nil {
		t.Error("notepad icon missing")
	}
}

func TestEnumerate_ExcludesSelfProcessCaseInsensitive(t *testing.T) {
	fake := newFakeDesktop()
	fake.SetProcess(55, "FrameLess.EXE")
	fake.AddWindow(platformtest.Window{ID: 1, Title: "Other instance", PID: 55, Style: platform.RestoredDecorations})

	if got := enumerate(t, fake); len(got) != 0 {
		t.Fatalf("Enumerate() = %+v, want host process excluded", got)
	}
}

func TestEnumerate_UnknownProcess(t *testing.T) {
	fake := newFakeDesktop()
	fake.AddWindow(platformtest.Window{ID: 1, Title: "Orphan", PID: 4242, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: 2, Title: "No pid", PID: 10, Style: platform.RestoredDecorations})
	fake.PIDErr[2] = errors.New("access denied")

	got := enumerate(t, fake)
	if len(got) != 2 {
		t.Fatalf("Enumerate() returned %d windows, want 2", len(got))
	}
	for _, w := range got {
		if w.ProcessName != UnknownProcess {
			t.Errorf("%q ProcessName = %q, want %q", w.Title, w.ProcessName, UnknownProcess)
		}
	}
}

func TestEnumerate_ProcessSnapshotFailure(t *testing.T) {
	fake := newFakeDesktop()
	fake.ProcessesErr = errors.New("snapshot failed")
	fake.AddWindow(platformtest.Window{ID: 1, Title: "Untitled - Notepad", PID: 10, Style: platform.RestoredDecorations})

	got := enumerate(t, fake)
	if len(got) != 1 || got[0].ProcessName != UnknownProcess {
		t.Fatalf("Enumerate() = %+v, want one window with Unknown process", got)
	}
}

func TestEnumerate_TransientFailuresSkipOnlyThatWindow(t *testing.T) {
	fake := newFakeDesktop()
	fake.AddWindow(platformtest.Window{ID: 1, Title: "A", PID: 10, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: 2, Title: "B", PID: 10, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: 3, Title: "C", PID: 10, Style: platform.RestoredDecorations, IconErr: errors.New("no icon")})
	fake.TitleErr[1] = errors.New("window vanished")
	fake.StyleErr[2] = errors.New("window vanished")

	got := enumerate(t, fake)
	if len(got) != 1 || got[0].Title != "C" {
		t.Fatalf("Enumerate() = %+v, want only C", got)
	}
	if got[0].Icon != nil {
		t.Error("icon failure should leave Icon nil")
	}
}

func TestEnumerate_ListFailureYieldsEmpty(t *testing.T) {
	fake := newFakeDesktop()
	fake.ListErr = errors.New("EnumWindows failed")

	got := enumerate(t, fake)
	if got == nil || len(got) != 0 {
		t.Fatalf("Enumerate() = %v, want empty list", got)
	}
}

func TestEnumerate_KeepsTitleAsRead(t *testing.T) {
	fake := newFakeDesktop()
	fake.AddWindow(platformtest.Window{ID: 1, Title: "  Editor  ", PID: 20, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: 2, Title: " \t ", PID: 20, Style: platform.RestoredDecorations})
	fake.AddWindow(platformtest.Window{ID: 3, Title: "Browser", PID: 20, Style: platform.RestoredDecorations})

	got := enumerate(t, fake)
	if len(got) != 2 {
		t.Fatalf("Enumerate() = %+v, want 2 windows", got)
	}
	// Untrimmed titles sort by their raw bytes: the leading space sorts first.
	if got[0].Title != "  Editor  " || got[1].Title != "Browser" {
		t.Fatalf("titles = %q, %q; want raw titles in byte order", got[0].Title, got[1].Title)
	}
}

func TestProcessName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notepad.exe", "notepad"},
		{"Code.EXE", "Code"},
		{`C:\Windows\explorer.exe`, "explorer"},
		{"firefox", "firefox"},
		{"python3.11", "python3.11"},
		{"setup.cmd", "setup"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ProcessName(tt.in); got != tt.want {
				t.Errorf("ProcessName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
