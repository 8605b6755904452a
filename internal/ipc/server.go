package ipc

import (
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Toggler performs the toggle behind the exported method.
type Toggler interface {
	ToggleByWmClass(wmClass string) bool
}

// busConn is the subset of *dbus.Conn the service uses.
type busConn interface {
	ExportMethodTable(methods map[string]interface{}, path dbus.ObjectPath, iface string) error
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	ReleaseName(name string) (dbus.ReleaseNameReply, error)
}

// Service owns the exported Togler object on a bus connection.
type Service struct {
	conn    busConn
	toggler Toggler
	busName string
	log     zerolog.Logger

	// mu is held for reading by every in-flight call and for writing by
	// Enable and Disable, so Disable returns only after pending calls finish.
	mu      sync.RWMutex
	enabled bool
}

// NewService creates a service. busName may be empty to export the object
// without claiming a well-known name.
func NewService(conn busConn, toggler Toggler, busName string, log zerolog.Logger) *Service {
	return &Service{
		conn:    conn,
		toggler: toggler,
		busName: busName,
		log:     log.With().Str("component", "dbus").Logger(),
	}
}

// Enable exports the object and claims the bus name. Calling it again while
// enabled is a no-op.
func (s *Service) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled {
		return nil
	}

	methods := map[string]interface{}{
		MethodToggleByWmClass: s.toggleByWmClass,
	}
	if err := s.conn.ExportMethodTable(methods, ObjectPath, InterfaceName); err != nil {
		return fmt.Errorf("failed to export %s: %w", InterfaceName, err)
	}
	if err := s.conn.Export(introspect.NewIntrospectable(IntrospectNode()), ObjectPath, introspect.IntrospectData.Name); err != nil {
		s.unexport()
		return fmt.Errorf("failed to export introspection data: %w", err)
	}

	if s.busName != "" {
		reply, err := s.conn.RequestName(s.busName, dbus.NameFlagDoNotQueue)
		if err != nil {
			s.unexport()
			return fmt.Errorf("failed to request bus name %s: %w", s.busName, err)
		}
		if reply != dbus.RequestNameReplyPrimaryOwner {
			s.unexport()
			return fmt.Errorf("bus name %s is already taken (is another togler running?)", s.busName)
		}
	}

	s.enabled = true
	s.log.Info().
		Str("bus_name", s.busName).
		Str("path", string(ObjectPath)).
		Msg("D-Bus object exported")
	return nil
}

// Disable waits for in-flight calls, then unexports the object and releases
// the bus name. Calling it while disabled is a no-op.
func (s *Service) Disable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return nil
	}
	s.enabled = false

	errs := s.unexport()
	if s.busName != "" {
		if _, err := s.conn.ReleaseName(s.busName); err != nil {
			errs = append(errs, fmt.Errorf("failed to release bus name %s: %w", s.busName, err))
		}
	}

	s.log.Info().Msg("D-Bus object unexported")
	return errors.Join(errs...)
}

// Enabled reports whether the object is currently exported.
func (s *Service) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

func (s *Service) unexport() []error {
	var errs []error
	if err := s.conn.Export(nil, ObjectPath, InterfaceName); err != nil {
		errs = append(errs, fmt.Errorf("failed to unexport %s: %w", InterfaceName, err))
	}
	if err := s.conn.Export(nil, ObjectPath, introspect.IntrospectData.Name); err != nil {
		errs = append(errs, fmt.Errorf("failed to unexport introspection data: %w", err))
	}
	return errs
}

// toggleByWmClass is the exported method. It never returns a D-Bus error;
// callers only ever see the boolean.
func (s *Service) toggleByWmClass(wmClass string) (bool, *dbus.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.log.With().
		Str("call_id", uuid.NewString()).
		Str("wm_class", wmClass).
		Logger()

	if !s.enabled {
		log.Warn().Msg("ToggleByWmClass called while disabled")
		return false, nil
	}

	success := s.toggler.ToggleByWmClass(wmClass)
	log.Info().Bool("success", success).Msg("ToggleByWmClass")
	return success, nil
}
