package hotkeys

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/rs/zerolog"

	"github.com/1broseidon/togler/internal/config"
)

// Toggler is invoked when a bound key is pressed.
type Toggler interface {
	ToggleByWmClass(wmClass string) bool
}

// x11Accessor is implemented by backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	toggler Toggler
	log     zerolog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend x11Accessor, toggler Toggler, log zerolog.Logger) *Handler {
	xu := backend.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:      xu,
		root:    backend.RootWindow(),
		toggler: toggler,
		log:     log.With().Str("component", "hotkeys").Logger(),
	}
}

// RegisterBindings grabs every configured key. Bindings that fail are logged
// and skipped; the number registered is returned.
func (h *Handler) RegisterBindings(bindings []config.Binding) int {
	registered := 0
	for _, b := range bindings {
		if err := h.RegisterBinding(b); err != nil {
			h.log.Warn().Err(err).Str("key", b.Key).Str("wm_class", b.WmClass).Msg("Failed to register binding")
			continue
		}
		h.log.Info().Str("key", b.Key).Str("wm_class", b.WmClass).Msg("Binding registered")
		registered++
	}
	return registered
}

// RegisterBinding grabs one key sequence and toggles its class on press.
func (h *Handler) RegisterBinding(b config.Binding) error {
	wmClass := b.WmClass
	if err := h.RegisterFunc(b.Key, func() {
		h.log.Debug().Str("key", b.Key).Str("wm_class", wmClass).Msg("Hotkey triggered")
		h.toggler.ToggleByWmClass(wmClass)
	}); err != nil {
		return fmt.Errorf("failed to grab %q: %w", b.Key, err)
	}
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	if h.xu == nil {
		return fmt.Errorf("no X11 connection")
	}
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// configureIgnoreMods makes bindings fire regardless of lock modifiers.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	if xu == nil {
		return
	}

	caps := uint16(xproto.ModMaskLock)
	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = lockModCombinations(base)
}

// lockModCombinations returns 0 plus every OR-combination of the given masks.
func lockModCombinations(base []uint16) []uint16 {
	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	out := make([]uint16, 0, len(unique))
	for mask := range unique {
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
