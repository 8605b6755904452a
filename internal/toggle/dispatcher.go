package toggle

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/1broseidon/togler/internal/platform"
)

// Compositor is the slice of the window system the dispatcher needs.
// platform.Backend satisfies it.
type Compositor interface {
	ListWindows() ([]platform.Window, error)
	ActiveWindow() (platform.WindowID, error)
	Minimize(windowID platform.WindowID) error
	Activate(windowID platform.WindowID, timestamp uint32) error
	ActivateDesktop(desktop int, timestamp uint32) error
	CurrentTime() uint32
}

// Action is the side effect a toggle performed.
type Action int

const (
	ActionNone Action = iota
	ActionMinimized
	ActionActivated
)

func (a Action) String() string {
	switch a {
	case ActionMinimized:
		return "minimized"
	case ActionActivated:
		return "activated"
	default:
		return "none"
	}
}

// Result describes what a toggle did and to which window.
type Result struct {
	Action Action
	Window platform.Window
}

// ErrOperationFailed is matched by every error Toggle returns.
var ErrOperationFailed = errors.New("toggle operation failed")

// OpError records which collaborator call failed during a toggle.
type OpError struct {
	Op      string
	WmClass string
	Err     error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("toggle %q: %s: %v", e.WmClass, e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func (e *OpError) Is(target error) bool { return target == ErrOperationFailed }

// Dispatcher minimizes or activates windows by WM_CLASS. It holds no state
// between calls and may be used from several goroutines.
type Dispatcher struct {
	compositor Compositor
	log        zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given compositor.
func NewDispatcher(compositor Compositor, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		compositor: compositor,
		log:        log.With().Str("component", "toggle").Logger(),
	}
}

// ToggleByWmClass minimizes the focused window when it has the given class,
// otherwise activates the first window with that class. It reports whether
// an action was taken; failures are logged and reported as false.
func (d *Dispatcher) ToggleByWmClass(wmClass string) bool {
	res, err := d.Toggle(wmClass)
	if err != nil {
		d.log.Error().Err(err).Str("wm_class", wmClass).Msg("ToggleByWmClass failed")
		return false
	}
	d.log.Debug().
		Str("wm_class", wmClass).
		Stringer("action", res.Action).
		Uint32("window", uint32(res.Window.ID)).
		Msg("ToggleByWmClass")
	return res.Action != ActionNone
}

// Toggle is ToggleByWmClass with the outcome and error made explicit.
// A class with no windows yields ActionNone and a nil error.
func (d *Dispatcher) Toggle(wmClass string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &OpError{Op: "recover", WmClass: wmClass, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	windows, err := d.compositor.ListWindows()
	if err != nil {
		return Result{}, &OpError{Op: "list windows", WmClass: wmClass, Err: err}
	}

	matches := MatchClass(windows, wmClass)
	if len(matches) == 0 {
		return Result{}, nil
	}

	now := d.compositor.CurrentTime()

	focused, err := d.compositor.ActiveWindow()
	if err != nil {
		return Result{}, &OpError{Op: "get focused window", WmClass: wmClass, Err: err}
	}

	if focused != 0 {
		for _, w := range matches {
			if w.ID != focused {
				continue
			}
			if err := d.compositor.Minimize(w.ID); err != nil {
				return Result{}, &OpError{Op: "minimize", WmClass: wmClass, Err: err}
			}
			return Result{Action: ActionMinimized, Window: w}, nil
		}
	}

	target := matches[0]
	if target.HasDesktop() {
		if err := d.compositor.ActivateDesktop(target.Desktop, now); err != nil {
			return Result{}, &OpError{Op: "activate workspace", WmClass: wmClass, Err: err}
		}
	}
	if err := d.compositor.Activate(target.ID, now); err != nil {
		return Result{}, &OpError{Op: "activate", WmClass: wmClass, Err: err}
	}
	return Result{Action: ActionActivated, Window: target}, nil
}

// MatchClass returns the windows whose class equals wmClass exactly,
// preserving enumeration order.
func MatchClass(windows []platform.Window, wmClass string) []platform.Window {
	var matches []platform.Window
	for _, w := range windows {
		if w.Class == wmClass {
			matches = append(matches, w)
		}
	}
	return matches
}
