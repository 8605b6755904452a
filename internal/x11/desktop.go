package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// stickyDesktop is the _NET_WM_DESKTOP value for windows shown on all desktops.
const stickyDesktop = 0xFFFFFFFF

// sourceIndication marks requests as coming from a pager, which window
// managers honour without focus-stealing prevention.
const sourceIndication = 2

// GetWindowDesktop returns the desktop number a window is on.
// Uses _NET_WM_DESKTOP atom. Returns -1 for "sticky" windows (visible on all desktops).
func (c *Connection) GetWindowDesktop(windowID xproto.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	if desktop == stickyDesktop {
		return -1, nil
	}
	return int(desktop), nil
}

// ActivateDesktop switches to a virtual desktop via _NET_CURRENT_DESKTOP.
func (c *Connection) ActivateDesktop(desktop int, timestamp xproto.Timestamp) error {
	if desktop < 0 {
		return fmt.Errorf("invalid desktop %d", desktop)
	}
	return c.sendRootMessage("_NET_CURRENT_DESKTOP", c.Root, uint32(desktop), uint32(timestamp))
}

// ActivateWindow activates and raises a window using _NET_ACTIVE_WINDOW.
func (c *Connection) ActivateWindow(windowID xproto.Window, timestamp xproto.Timestamp) error {
	current, err := c.GetActiveWindow()
	if err != nil {
		current = 0
	}
	return c.sendRootMessage("_NET_ACTIVE_WINDOW", windowID, sourceIndication, uint32(timestamp), uint32(current))
}
