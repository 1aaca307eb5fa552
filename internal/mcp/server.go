package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/frameless/internal/display"
	"github.com/1broseidon/frameless/internal/ipc"
	"github.com/1broseidon/frameless/internal/platform"
)

const (
	ServerName    = "frameless"
	ServerVersion = "0.1.0"
)

// Controller is the window control surface the tools drive. Both
// ipc.Client (daemon running) and ipc.Local (in-process) satisfy it.
type Controller interface {
	GetStatus() (*ipc.StatusData, error)
	ListWindows() ([]ipc.WindowData, error)
	ListDisplays() ([]display.Info, error)
	Toggle(id platform.WindowID) (*ipc.ToggleData, error)
	SetAuto(id platform.WindowID, enabled bool) (*ipc.ToggleData, error)
}

// Server is the MCP server exposing borderless window control.
type Server struct {
	mcpServer *mcpsdk.Server
	ctl       Controller
}

// NewServer creates a new MCP server over ctl.
func NewServer(ctl Controller) *Server {
	s := &Server{ctl: ctl}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List visible top-level windows with their handle, title, process name, whether they are borderless, and whether their process is in the always-borderless list.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List attached displays, primary first. The index is the value used by the display setting when resizing borderless windows.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_borderless",
		Description: "Toggle a window between decorated and borderless. Windows made borderless are resized to the configured display when resize_to_screen is on.",
	}, s.handleToggleBorderless)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_auto_borderless",
		Description: "Add or remove a window's process from the always-borderless list and bring that window into the matching state. The list is saved to the config file.",
	}, s.handleSetAutoBorderless)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_auto_borderless",
		Description: "List process names that are made borderless automatically.",
	}, s.handleListAutoBorderless)
}
