package ipc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/1broseidon/frameless/internal/display"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload       CommandType = "RELOAD"
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandListWindows  CommandType = "LIST_WINDOWS"
	CommandListDisplays CommandType = "LIST_DISPLAYS"
	CommandToggle       CommandType = "TOGGLE"
	CommandSetAuto      CommandType = "SET_AUTO"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning      bool      `json:"daemon_running"`
	UptimeSeconds      int64     `json:"uptime_seconds"`
	WindowCount        int       `json:"window_count"`
	AutoApplied        int       `json:"auto_applied"`
	AutoBorderlessApps []string  `json:"auto_borderless_apps"`
	ResizeToScreen     bool      `json:"resize_to_screen"`
	Display            int       `json:"display"`
	ConfigPath         string    `json:"config_path,omitempty"`
	LastRefresh        time.Time `json:"last_refresh"`
}

// WindowData is one entry of LIST_WINDOWS.
type WindowData struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Process    string `json:"process"`
	Borderless bool   `json:"borderless"`
	// Auto is set when the window's process is in the always-borderless list.
	Auto bool `json:"auto"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowData `json:"windows"`
}

// DisplaysData represents the data returned by LIST_DISPLAYS
type DisplaysData struct {
	Displays []display.Info `json:"displays"`
}

// TogglePayload represents the payload for TOGGLE
type TogglePayload struct {
	WindowID uint64 `json:"window_id"`
}

// SetAutoPayload represents the payload for SET_AUTO
type SetAutoPayload struct {
	WindowID uint64 `json:"window_id"`
	Enabled  bool   `json:"enabled"`
}

// ToggleData reports the state a window ended up in.
type ToggleData struct {
	WindowID   uint64 `json:"window_id"`
	Borderless bool   `json:"borderless"`
	Resized    bool   `json:"resized"`
	// Toggled is false when SET_AUTO found the window already in the
	// requested state.
	Toggled bool `json:"toggled"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
