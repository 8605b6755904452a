package mcp

// ToggleInput is the input for the toggle_by_wm_class tool.
type ToggleInput struct {
	WmClass string `json:"wm_class" jsonschema:"Exact, case-sensitive WM_CLASS class name (e.g. Alacritty, firefox)"`
}

// ToggleOutput is the output for the toggle_by_wm_class tool.
type ToggleOutput struct {
	Success bool `json:"success"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	WmClass string `json:"wm_class,omitempty" jsonschema:"Only list windows whose WM_CLASS class equals this value"`
}

// WindowInfo describes one client window.
type WindowInfo struct {
	ID       uint32 `json:"id"`
	Class    string `json:"class"`
	Instance string `json:"instance"`
	Title    string `json:"title"`
	Desktop  int    `json:"desktop"` // -1 when sticky
	Focused  bool   `json:"focused"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}
