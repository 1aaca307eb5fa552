package display

import (
	"errors"
	"testing"

	"github.com/1broseidon/frameless/internal/platform"
	"github.com/1broseidon/frameless/internal/platform/platformtest"
)

func TestEnumerate_PrimaryFirstThenByName(t *testing.T) {
	fake := platformtest.NewFake()
	fake.SetMonitors(
		platform.Monitor{Bounds: platform.Rect{X: -1920, Y: 0, Width: 1920, Height: 1080}},
		platform.Monitor{Bounds: platform.Rect{X: 0, Y: 0, Width: 2560, Height: 1440}, Primary: true},
		platform.Monitor{Bounds: platform.Rect{X: 2560, Y: 0, Width: 1280, Height: 1024}},
	)

	got := Enumerate(fake, nil)
	wantNames := []string{"Display 2", "Display 1", "Display 3"}
	if len(got) != len(wantNames) {
		t.Fatalf("Enumerate() returned %d displays, want %d", len(got), len(wantNames))
	}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Errorf("display[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}
	if !got[0].Primary {
		t.Error("first display should be primary")
	}
	if got[1].X != -1920 || got[1].Width != 1920 {
		t.Errorf("display 1 bounds = %+v", got[1].Bounds())
	}
}

func TestEnumerate_ErrorYieldsEmpty(t *testing.T) {
	fake := platformtest.NewFake()
	fake.MonitorsErr = errors.New("boom")

	got := Enumerate(fake, nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("Enumerate() = %v, want empty non-nil list", got)
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		in   []Info
		want []string
	}{
		{
			name: "primary last in input",
			in:   []Info{{Name: "Display 1"}, {Name: "Display 2", Primary: true}},
			want: []string{"Display 2", "Display 1"},
		},
		{
			name: "lexicographic names",
			in:   []Info{{Name: "Display 2"}, {Name: "Display 10"}, {Name: "Display 1"}},
			want: []string{"Display 1", "Display 10", "Display 2"},
		},
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.in)
			if len(tt.in) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(tt.in), len(tt.want))
			}
			for i := range tt.want {
				if tt.in[i].Name != tt.want[i] {
					t.Errorf("[%d] = %q, want %q", i, tt.in[i].Name, tt.want[i])
				}
			}
		})
	}
}

func TestLabel(t *testing.T) {
	d := Info{Name: "Display 1", Width: 1920, Height: 1080, Primary: true}
	if got, want := d.Label(), "Display 1 - 1920x1080 (Primary)"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
	d.Primary = false
	if got, want := d.Label(), "Display 1 - 1920x1080"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestAt(t *testing.T) {
	displays := []Info{{Name: "Display 1"}}
	if At(displays, 0) == nil {
		t.Fatal("At(0) = nil")
	}
	if At(displays, 1) != nil || At(displays, -1) != nil {
		t.Fatal("out of range index should return nil")
	}
}
