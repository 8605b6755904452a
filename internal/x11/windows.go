package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// WindowClass holds the two halves of ICCCM WM_CLASS.
type WindowClass struct {
	Instance string
	Class    string
}

// ClientWindows returns the managed client windows in _NET_CLIENT_LIST
// order (initial mapping order, oldest first).
func (c *Connection) ClientWindows() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	return clients, nil
}

// GetWindowClass reads WM_CLASS. It fails when the window is gone or never
// set the property.
func (c *Connection) GetWindowClass(windowID xproto.Window) (WindowClass, error) {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return WindowClass{}, fmt.Errorf("failed to get WM_CLASS of window %d: %w", windowID, err)
	}
	return WindowClass{Instance: wmClass.Instance, Class: wmClass.Class}, nil
}

// GetWindowTitle prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) GetWindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && title != "" {
		return title
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return title
	}
	return ""
}

// GetWindowPID returns _NET_WM_PID, or 0 when the client did not set it.
func (c *Connection) GetWindowPID(windowID xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0
	}
	return int(pid)
}

// GetActiveWindow returns _NET_ACTIVE_WINDOW. None (0) means nothing has focus,
// which includes window managers that delete the property instead of
// setting it to None.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	wid, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		if isMissingProperty(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	return wid, nil
}

// isMissingProperty reports whether err is xprop's error for a property that
// is not set on the window.
func isMissingProperty(err error) bool {
	return err != nil && strings.Contains(err.Error(), "No such property")
}

// MinimizeWindow iconifies a window by sending WM_CHANGE_STATE to the root
// window per ICCCM 4.1.4.
func (c *Connection) MinimizeWindow(windowID xproto.Window) error {
	const iconicState = 3
	return c.sendRootMessage("WM_CHANGE_STATE", windowID, iconicState, 0, 0, 0, 0)
}

// sendRootMessage sends a 32-bit format client message to the root window.
// We build the message manually because several xgbutil ewmh request helpers
// panic on this library version (uint vs int type assertion).
func (c *Connection) sendRootMessage(atomName string, windowID xproto.Window, data ...uint32) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len(atomName)), atomName).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", atomName, err)
	}

	payload := make([]uint32, 5)
	copy(payload, data)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
