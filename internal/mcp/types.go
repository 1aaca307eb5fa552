package mcp

import "github.com/1broseidon/frameless/internal/ipc"

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Process string `json:"process,omitempty" jsonschema:"Only return windows of this process (name without extension)"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []ipc.WindowData `json:"windows"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayEntry is one display with the index used by the display setting.
type DisplayEntry struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Primary bool   `json:"primary"`
	Label   string `json:"label"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayEntry `json:"displays"`
}

// ToggleBorderlessInput is the input for the toggle_borderless tool.
type ToggleBorderlessInput struct {
	WindowID uint64 `json:"window_id,omitempty" jsonschema:"Window handle as returned by list_windows"`
	Process  string `json:"process,omitempty" jsonschema:"Process name; the first matching window is toggled when window_id is not set"`
}

// SetAutoBorderlessInput is the input for the set_auto_borderless tool.
type SetAutoBorderlessInput struct {
	WindowID uint64 `json:"window_id,omitempty" jsonschema:"Window handle as returned by list_windows"`
	Process  string `json:"process,omitempty" jsonschema:"Process name; the first matching window is used when window_id is not set"`
	Enabled  bool   `json:"enabled" jsonschema:"Whether windows of the process should always be borderless"`
}

// ToggleOutput is the output for toggle_borderless and set_auto_borderless.
type ToggleOutput struct {
	WindowID   uint64 `json:"window_id"`
	Process    string `json:"process"`
	Borderless bool   `json:"borderless"`
	Resized    bool   `json:"resized"`
	Toggled    bool   `json:"toggled"`
}

// ListAutoBorderlessInput is the input for the list_auto_borderless tool.
type ListAutoBorderlessInput struct{}

// ListAutoBorderlessOutput is the output for the list_auto_borderless tool.
type ListAutoBorderlessOutput struct {
	Apps []string `json:"apps"`
}
