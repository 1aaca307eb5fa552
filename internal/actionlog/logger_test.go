package actionlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestLogger_WritesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "actions.log")
	l, err := NewLogger(LogConfig{Enabled: true, Level: LevelInfo, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	defer l.Close()
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	l.Log(ActionToggle, 0x1234, "notepad", map[string]interface{}{"title": "Untitled", "borderless": true})
	l.Log(ActionRefresh, 0, "", nil)

	got := readFile(t, path)
	want := `2024-03-01 12:00:00 [TOGGLE] window=0x1234 process=notepad borderless=true title="Untitled"` + "\n"
	if got != want {
		t.Fatalf("log contents:\n%q\nwant:\n%q", got, want)
	}
}

func TestLogger_DisabledIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")
	l, err := NewLogger(LogConfig{Enabled: false, FilePath: path})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	l.Log(ActionToggle, 1, "x", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("disabled logger created %s", path)
	}

	var nilLogger *Logger
	nilLogger.Log(ActionToggle, 1, "x", nil)
	if err := nilLogger.Close(); err != nil {
		t.Fatalf("nil Close() error: %v", err)
	}
}

func TestLogger_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 1024*1024)), 0600); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	l, err := NewLogger(LogConfig{Enabled: true, Level: LevelInfo, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	defer l.Close()

	l.Log(ActionPolicyAdd, 0, "notepad", nil)

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("rotated file missing: %v", err)
	}
	if got := readFile(t, path); !strings.Contains(got, "[POLICY-ADD] process=notepad") {
		t.Fatalf("new log = %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"warn":    LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 30, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdefghij", 0, "abcdefghij"},
		{"héllo wörld", 8, "héllo..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
