//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/togler/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// StopEventLoop makes a running EventLoop return.
func (b *LinuxBackend) StopEventLoop() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// ListWindows returns every managed client window in _NET_CLIENT_LIST order.
// Windows that vanished or never set WM_CLASS are skipped.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ClientWindows()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		class, err := conn.GetWindowClass(windowID)
		if err != nil {
			continue
		}

		desktop, err := conn.GetWindowDesktop(windowID)

		windows = append(windows, Window{
			ID:       WindowID(windowID),
			PID:      conn.GetWindowPID(windowID),
			Class:    class.Class,
			Instance: class.Instance,
			Title:    conn.GetWindowTitle(windowID),
			Desktop:  desktopOrNone(desktop, err),
		})
	}

	return windows, nil
}

// ActiveWindow returns the currently active/focused window ID, 0 when none.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// Minimize minimizes a window via WM_CHANGE_STATE.
func (b *LinuxBackend) Minimize(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MinimizeWindow(xproto.Window(windowID))
}

// Activate focuses and raises a window via _NET_ACTIVE_WINDOW.
func (b *LinuxBackend) Activate(windowID WindowID, timestamp uint32) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.ActivateWindow(xproto.Window(windowID), xproto.Timestamp(timestamp))
}

// ActivateDesktop switches to a workspace via _NET_CURRENT_DESKTOP.
func (b *LinuxBackend) ActivateDesktop(desktop int, timestamp uint32) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.ActivateDesktop(desktop, xproto.Timestamp(timestamp))
}

// CurrentTime returns a fresh X server timestamp, or 0 (CurrentTime) when
// the server could not be asked.
func (b *LinuxBackend) CurrentTime() uint32 {
	conn, err := b.connection()
	if err != nil {
		return 0
	}
	ts, err := conn.ServerTime()
	if err != nil {
		return uint32(xproto.TimeCurrentTime)
	}
	return uint32(ts)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
