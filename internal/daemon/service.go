package daemon

import (
	"context"
	"errors"
	"log/slog"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/platform"
	"golang.org/x/sync/errgroup"
)

// Service answers IPC requests from the runner's state.
type Service struct {
	runner *Runner
	load   func() (*config.Config, error)
}

var _ ipc.Handler = (*Service)(nil)

// NewService returns a Service over runner. load re-reads the config for
// RELOAD.
func NewService(runner *Runner, load func() (*config.Config, error)) *Service {
	return &Service{runner: runner, load: load}
}

func (s *Service) Status() ipc.StatusData {
	cfg := s.runner.Config()
	return ipc.StatusData{
		DaemonRunning:      true,
		UptimeSeconds:      int64(s.runner.Uptime().Seconds()),
		WindowCount:        len(s.runner.Windows()),
		AutoApplied:        s.runner.AutoApplied(),
		AutoBorderlessApps: cfg.AutoBorderlessApps,
		ResizeToScreen:     cfg.ResizeToScreen,
		Display:            cfg.Display,
		ConfigPath:         cfg.Path(),
		LastRefresh:        s.runner.LastRefresh(),
	}
}

func (s *Service) Windows() []ipc.WindowData {
	cfg := s.runner.Config()
	windows := s.runner.Windows()
	out := make([]ipc.WindowData, 0, len(windows))
	for _, w := range windows {
		out = append(out, ipc.WindowData{
			ID:         uint64(w.ID),
			Title:      w.Title,
			Process:    w.ProcessName,
			Borderless: w.Borderless,
			Auto:       cfg.IsAutoBorderless(w.ProcessName),
		})
	}
	return out
}

func (s *Service) Displays() []display.Info {
	return s.runner.Displays()
}

func (s *Service) Toggle(id platform.WindowID) (ipc.ToggleData, error) {
	res, err := s.runner.Toggle(id)
	if err != nil {
		return ipc.ToggleData{}, err
	}
	return ipc.ToggleData{
		WindowID:   uint64(id),
		Borderless: res.Borderless,
		Resized:    res.Resized,
		Toggled:    true,
	}, nil
}

func (s *Service) SetAuto(id platform.WindowID, enabled bool) (ipc.ToggleData, error) {
	w, change, err := s.runner.SetAuto(id, enabled)
	data := ipc.ToggleData{WindowID: uint64(id), Borderless: w.Borderless}
	if change != nil {
		data.Borderless = change.Result.Borderless
		data.Resized = change.Result.Resized
		data.Toggled = true
	}
	return data, err
}

func (s *Service) Reload() error {
	if s.load == nil {
		return errors.New("reload is not supported")
	}
	cfg, err := s.load()
	if err != nil {
		return err
	}
	s.runner.ApplyConfig(cfg)
	return nil
}

// Serve runs the runner, the config watcher, the IPC server and any extra
// loops until ctx is cancelled or one of them fails. watcher and server
// may be nil.
func Serve(ctx context.Context, runner *Runner, watcher *PolicyWatcher, server *ipc.Server, logger *slog.Logger, extra ...func(context.Context) error) error {
	if logger == nil {
		logger = slog.Default()
	}

	if server != nil {
		if err := server.Start(); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Run(ctx)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}
	for _, run := range extra {
		g.Go(func() error {
			return run(ctx)
		})
	}
	if server != nil {
		g.Go(func() error {
			<-ctx.Done()
			server.Stop()
			return nil
		})
	}

	err := g.Wait()
	logger.Info("daemon stopped", "error", err)
	return err
}
