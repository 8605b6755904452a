package x11

import (
	"errors"
	"fmt"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func eventFeed(events ...xgb.Event) func() (xgb.Event, xgb.Error) {
	return func() (xgb.Event, xgb.Error) {
		if len(events) == 0 {
			return nil, nil
		}
		ev := events[0]
		events = events[1:]
		return ev, nil
	}
}

func TestWaitPropertyTime(t *testing.T) {
	const win = xproto.Window(0x400001)
	next := eventFeed(
		xproto.KeyPressEvent{Time: 10},
		xproto.PropertyNotifyEvent{Window: 0x500001, Time: 20},
		xproto.PropertyNotifyEvent{Window: win, Time: 30},
	)

	ts, err := waitPropertyTime(next, win)
	if err != nil {
		t.Fatalf("waitPropertyTime error: %v", err)
	}
	if ts != 30 {
		t.Fatalf("waitPropertyTime = %d, want 30", ts)
	}
}

func TestWaitPropertyTime_ClosedConnection(t *testing.T) {
	_, err := waitPropertyTime(eventFeed(xproto.KeyPressEvent{Time: 10}), 1)
	if !errors.Is(err, errClockClosed) {
		t.Fatalf("waitPropertyTime error = %v, want %v", err, errClockClosed)
	}
}

func TestIsMissingProperty(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{fmt.Errorf("GetProperty: No such property '_NET_ACTIVE_WINDOW' on window %x.", 0x1e5), true},
		{errors.New("connection closed"), false},
	}
	for _, tt := range tests {
		if got := isMissingProperty(tt.err); got != tt.want {
			t.Errorf("isMissingProperty(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
