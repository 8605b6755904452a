package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

const clockAtomName = "_TOGLER_TIMESTAMP"

var errClockClosed = errors.New("x11 clock connection closed")

// serverClock fetches fresh server timestamps by appending nothing to a
// property on a private window and reading the PropertyNotify time. It owns
// its own connection so the event loop never sees (or steals) those events.
type serverClock struct {
	mu   sync.Mutex
	conn *xgb.Conn
	win  xproto.Window
	atom xproto.Atom
}

func (s *serverClock) now() (xproto.Timestamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		if err := s.open(); err != nil {
			return 0, err
		}
	}

	err := xproto.ChangePropertyChecked(s.conn, xproto.PropModeAppend, s.win,
		s.atom, xproto.AtomString, 8, 0, nil).Check()
	if err != nil {
		s.reset()
		return 0, fmt.Errorf("failed to touch timestamp property: %w", err)
	}

	ts, err := waitPropertyTime(s.conn.WaitForEvent, s.win)
	if err != nil {
		s.reset()
		return 0, err
	}
	return ts, nil
}

func (s *serverClock) open() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("failed to open clock connection: %w", err)
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to allocate clock window: %w", err)
	}
	err = xproto.CreateWindowChecked(conn, 0, win, root, -1, -1, 1, 1, 0,
		xproto.WindowClassInputOnly, 0,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create clock window: %w", err)
	}

	atomReply, err := xproto.InternAtom(conn, false, uint16(len(clockAtomName)), clockAtomName).Reply()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to intern %s: %w", clockAtomName, err)
	}

	s.conn = conn
	s.win = win
	s.atom = atomReply.Atom
	return nil
}

// reset drops the connection so the next call reconnects.
func (s *serverClock) reset() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

func (s *serverClock) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// waitPropertyTime reads events until a PropertyNotify for win arrives and
// returns its time. next follows xgb.Conn.WaitForEvent: (nil, nil) means the
// connection is closed.
func waitPropertyTime(next func() (xgb.Event, xgb.Error), win xproto.Window) (xproto.Timestamp, error) {
	for {
		ev, xerr := next()
		if xerr != nil {
			return 0, fmt.Errorf("clock connection error: %v", xerr)
		}
		if ev == nil {
			return 0, errClockClosed
		}
		if pn, ok := ev.(xproto.PropertyNotifyEvent); ok && pn.Window == win {
			return pn.Time, nil
		}
	}
}
