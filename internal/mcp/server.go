package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/1broseidon/togler/internal/platform"
)

const (
	ServerName    = "togler"
	ServerVersion = "0.1.0"
)

// Toggler reaches the running daemon.
type Toggler interface {
	ToggleByWmClass(ctx context.Context, wmClass string) (bool, error)
}

// WindowLister reads the current window set.
type WindowLister interface {
	ListWindows() ([]platform.Window, error)
	ActiveWindow() (platform.WindowID, error)
}

// Server is the MCP server exposing togler as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	toggler   Toggler
	lister    WindowLister
	log       zerolog.Logger
}

// NewServer creates a new MCP server. lister may be nil when no display is
// reachable; list_windows then reports an error.
func NewServer(toggler Toggler, lister WindowLister, log zerolog.Logger) *Server {
	s := &Server{
		toggler: toggler,
		lister:  lister,
		log:     log.With().Str("component", "mcp").Logger(),
	}

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
		Name:        "toggle_by_wm_class",
		Description: "Toggle an application window by WM_CLASS. If the focused window has this class it is minimized; otherwise the first window with this class is activated, switching to its workspace. Returns success=false when no window has the class or the action failed.",
	}, s.handleToggle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List managed top-level windows with their WM_CLASS, title, workspace and focus state, in window manager enumeration order.",
	}, s.handleListWindows)
}
