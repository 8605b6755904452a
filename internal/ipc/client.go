package ipc

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Client calls the Togler object over the session bus.
type Client struct {
	conn *dbus.Conn
	dest string
}

// NewClient connects to the session bus. dest is the bus name that owns
// the Togler object.
func NewClient(dest string) (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{conn: conn, dest: dest}, nil
}

// ToggleByWmClass invokes the remote method and returns its result.
func (c *Client) ToggleByWmClass(ctx context.Context, wmClass string) (bool, error) {
	var success bool
	obj := c.conn.Object(c.dest, ObjectPath)
	call := obj.CallWithContext(ctx, InterfaceName+"."+MethodToggleByWmClass, 0, wmClass)
	if err := call.Store(&success); err != nil {
		return false, fmt.Errorf("failed to call %s on %s: %w (is the daemon running?)", MethodToggleByWmClass, c.dest, err)
	}
	return success, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
