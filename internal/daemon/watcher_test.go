package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/1broseidon/frameless/internal/config"
)

func TestPolicyWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("auto_borderless_apps: []\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	changes := make(chan *config.Config, 16)
	w := NewPolicyWatcher(path, func(cfg *config.Config) { changes <- cfg }, nil)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// The watch is registered asynchronously; keep writing until a reload lands.
	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case cfg := <-changes:
			if !cfg.IsAutoBorderless("game") {
				t.Fatalf("expected reloaded policy, got %v", cfg.AutoBorderlessApps)
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			return
		case <-tick.C:
			data := fmt.Sprintf("auto_borderless_apps: [game]\ndisplay: %d\n", i%2)
			if err := os.WriteFile(path, []byte(data), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestPolicyWatcher_InvalidFileIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("display: -1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	called := false
	w := NewPolicyWatcher(path, func(*config.Config) { called = true }, nil)
	w.reload()

	if called {
		t.Fatal("expected invalid config not to be delivered")
	}
}
