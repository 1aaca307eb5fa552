package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/platform"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.ctl.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to list windows: %w", err)
	}

	out := make([]ipc.WindowData, 0, len(windows))
	for _, w := range windows {
		if args.Process != "" && w.Process != args.Process {
			continue
		}
		out = append(out, w)
	}
	return nil, ListWindowsOutput{Windows: out}, nil
}

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	displays, err := s.ctl.ListDisplays()
	if err != nil {
		return nil, ListDisplaysOutput{}, fmt.Errorf("failed to list displays: %w", err)
	}

	out := make([]DisplayEntry, 0, len(displays))
	for i, d := range displays {
		out = append(out, DisplayEntry{
			Index:   i,
			Name:    d.Name,
			X:       d.X,
			Y:       d.Y,
			Width:   d.Width,
			Height:  d.Height,
			Primary: d.Primary,
			Label:   d.Label(),
		})
	}
	return nil, ListDisplaysOutput{Displays: out}, nil
}

func (s *Server) handleToggleBorderless(_ context.Context, _ *mcpsdk.CallToolRequest, args ToggleBorderlessInput) (*mcpsdk.CallToolResult, ToggleOutput, error) {
	w, err := s.resolveWindow(args.WindowID, args.Process)
	if err != nil {
		return nil, ToggleOutput{}, err
	}

	res, err := s.ctl.Toggle(platform.WindowID(w.ID))
	if err != nil {
		return nil, ToggleOutput{}, err
	}
	return nil, toggleOutput(w, res), nil
}

func (s *Server) handleSetAutoBorderless(_ context.Context, _ *mcpsdk.CallToolRequest, args SetAutoBorderlessInput) (*mcpsdk.CallToolResult, ToggleOutput, error) {
	w, err := s.resolveWindow(args.WindowID, args.Process)
	if err != nil {
		return nil, ToggleOutput{}, err
	}

	res, err := s.ctl.SetAuto(platform.WindowID(w.ID), args.Enabled)
	if err != nil {
		return nil, ToggleOutput{}, err
	}
	return nil, toggleOutput(w, res), nil
}

func (s *Server) handleListAutoBorderless(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListAutoBorderlessInput) (*mcpsdk.CallToolResult, ListAutoBorderlessOutput, error) {
	status, err := s.ctl.GetStatus()
	if err != nil {
		return nil, ListAutoBorderlessOutput{}, err
	}
	apps := status.AutoBorderlessApps
	if apps == nil {
		apps = []string{}
	}
	return nil, ListAutoBorderlessOutput{Apps: apps}, nil
}

// resolveWindow finds the target by handle, or by process name when no
// handle is given.
func (s *Server) resolveWindow(id uint64, process string) (ipc.WindowData, error) {
	if id == 0 && process == "" {
		return ipc.WindowData{}, fmt.Errorf("window_id or process is required")
	}

	windows, err := s.ctl.ListWindows()
	if err != nil {
		return ipc.WindowData{}, fmt.Errorf("failed to list windows: %w", err)
	}
	for _, w := range windows {
		if id != 0 && w.ID == id {
			return w, nil
		}
		if id == 0 && w.Process == process {
			return w, nil
		}
	}
	if id != 0 {
		return ipc.WindowData{}, fmt.Errorf("no window with id %#x", id)
	}
	return ipc.WindowData{}, fmt.Errorf("no window for process %q", process)
}

func toggleOutput(w ipc.WindowData, res *ipc.ToggleData) ToggleOutput {
	return ToggleOutput{
		WindowID:   w.ID,
		Process:    w.Process,
		Borderless: res.Borderless,
		Resized:    res.Resized,
		Toggled:    res.Toggled,
	}
}
