//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProcProcesses(t *testing.T) {
	root := t.TempDir()
	write := func(pid, comm string) {
		t.Helper()
		dir := filepath.Join(root, pid)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if comm == "" {
			return
		}
		if err := os.WriteFile(filepath.Join(dir, "comm"), []byte(comm), 0644); err != nil {
			t.Fatalf("write comm: %v", err)
		}
	}

	write("1", "systemd\n")
	write("4242", "firefox\n")
	write("77", "")
	write("self", "ignored\n")

	procs, err := procProcesses(root)
	if err != nil {
		t.Fatalf("procProcesses() error: %v", err)
	}
	if len(procs) != 2 {
		t.Fatalf("procProcesses() = %v, want 2 entries", procs)
	}
	if got := procs[4242]; got != "firefox" {
		t.Fatalf("procs[4242] = %q, want firefox", got)
	}
	if _, ok := procs[77]; ok {
		t.Fatalf("process without comm should be skipped")
	}
}

func TestProcProcesses_MissingRoot(t *testing.T) {
	if _, err := procProcesses(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestStyleDecorationsRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		style     Style
		decorated bool
	}{
		{name: "restored", style: RestoredDecorations, decorated: true},
		{name: "borderless", style: 0, decorated: false},
		{name: "thick frame only", style: StyleThickFrame, decorated: true},
		{name: "border only", style: StyleBorder, decorated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := styleFromDecorations(decorationsFromStyle(tt.style))
			if got.Decorated() != tt.decorated {
				t.Fatalf("round trip of %#x = %#x, decorated=%v want %v", tt.style, got, got.Decorated(), tt.decorated)
			}
		})
	}

	if got := styleFromDecorations(decorationsFromStyle(RestoredDecorations)); got != RestoredDecorations {
		t.Fatalf("restored style = %#x, want %#x", got, RestoredDecorations)
	}
}
