package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// NoDesktop marks a window that belongs to no single workspace (sticky or
// without a desktop hint).
const NoDesktop = -1

// Window contains metadata for a top-level window.
type Window struct {
	ID       WindowID
	PID      int
	Class    string
	Instance string
	Title    string
	Desktop  int
}

// HasDesktop reports whether the window lives on a specific workspace.
func (w Window) HasDesktop() bool {
	return w.Desktop != NoDesktop
}

// Backend abstracts the window-system operations togler needs.
type Backend interface {
	ListWindows() ([]Window, error)
	ActiveWindow() (WindowID, error)
	Minimize(windowID WindowID) error
	Activate(windowID WindowID, timestamp uint32) error
	ActivateDesktop(desktop int, timestamp uint32) error
	CurrentTime() uint32
}

// desktopOrNone maps a _NET_WM_DESKTOP lookup to a workspace. A failed
// lookup (no hint) or a negative value (sticky) yields NoDesktop.
func desktopOrNone(desktop int, err error) int {
	if err != nil || desktop < 0 {
		return NoDesktop
	}
	return desktop
}
