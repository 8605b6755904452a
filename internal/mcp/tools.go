package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/togler/internal/toggle"
)

func (s *Server) handleToggle(ctx context.Context, _ *mcpsdk.CallToolRequest, args ToggleInput) (*mcpsdk.CallToolResult, ToggleOutput, error) {
	success, err := s.toggler.ToggleByWmClass(ctx, args.WmClass)
	if err != nil {
		s.log.Error().Err(err).Str("wm_class", args.WmClass).Msg("toggle_by_wm_class failed")
		return nil, ToggleOutput{}, err
	}
	s.log.Info().Str("wm_class", args.WmClass).Bool("success", success).Msg("toggle_by_wm_class")
	return nil, ToggleOutput{Success: success}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	if s.lister == nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("no X11 display available to list windows")
	}

	windows, err := s.lister.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("failed to list windows: %w", err)
	}
	if args.WmClass != "" {
		windows = toggle.MatchClass(windows, args.WmClass)
	}

	// Focus is informational here; a failed lookup just marks nothing focused.
	focused, _ := s.lister.ActiveWindow()

	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		out.Windows = append(out.Windows, WindowInfo{
			ID:       uint32(w.ID),
			Class:    w.Class,
			Instance: w.Instance,
			Title:    w.Title,
			Desktop:  w.Desktop,
			Focused:  focused != 0 && w.ID == focused,
		})
	}
	return nil, out, nil
}
