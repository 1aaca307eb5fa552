// Package startup registers frameless to start at logon through a
// scheduled task.
package startup

import (
	"errors"
	"fmt"
	"strings"
)

// TaskName is the scheduled task that starts the daemon at logon.
const TaskName = "frameless_startup"

// CommandRunner runs schtasks with args and returns its combined output.
type CommandRunner func(args ...string) ([]byte, error)

// Scheduler manages the logon task.
type Scheduler struct {
	exe string
	run CommandRunner
}

// NewScheduler returns a scheduler that registers exe. run may be nil to
// use the system schtasks command.
func NewScheduler(exe string, run CommandRunner) *Scheduler {
	if run == nil {
		run = runSchtasks
	}
	return &Scheduler{exe: exe, run: run}
}

// Enable creates or replaces the logon task. With admin the task runs
// with the highest available privileges.
func (s *Scheduler) Enable(admin bool) error {
	if out, err := s.run(createArgs(s.exe, admin)...); err != nil {
		return fmt.Errorf("failed to create scheduled task: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Disable removes the logon task. A missing task is not an error.
func (s *Scheduler) Disable() error {
	out, err := s.run(deleteArgs()...)
	if err == nil {
		return nil
	}
	if errors.Is(err, errUnsupported) || !isMissingTask(out) {
		return fmt.Errorf("failed to remove scheduled task: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Enabled reports whether the logon task exists.
func (s *Scheduler) Enabled() (bool, error) {
	_, err := s.run(queryArgs()...)
	if errors.Is(err, errUnsupported) {
		return false, err
	}
	return err == nil, nil
}

// Sync brings the task in line with the run_on_startup and startup_admin
// settings.
func (s *Scheduler) Sync(runOnStartup, admin bool) error {
	if runOnStartup {
		return s.Enable(admin)
	}
	return s.Disable()
}

func createArgs(exe string, admin bool) []string {
	args := []string{
		"/Create",
		"/TN", TaskName,
		"/TR", fmt.Sprintf("\"%s\" daemon", exe),
		"/SC", "ONLOGON",
		"/F",
	}
	if admin {
		args = append(args, "/RL", "HIGHEST")
	}
	return args
}

func deleteArgs() []string {
	return []string{"/Delete", "/TN", TaskName, "/F"}
}

func queryArgs() []string {
	return []string{"/Query", "/TN", TaskName}
}

func isMissingTask(out []byte) bool {
	msg := strings.ToLower(string(out))
	return strings.Contains(msg, "cannot find the file") || strings.Contains(msg, "does not exist")
}
