package config

import (
	"fmt"
	"strings"
)

// DefaultBusName is the well-known session bus name the daemon requests.
const DefaultBusName = "org.gnome.Shell.Extensions.Togler"

// Binding maps a global key sequence to a window class toggle.
type Binding struct {
	// Key uses xgbutil keybind syntax, e.g. "Mod4-Return" or "Mod4-Shift-f".
	Key     string `yaml:"key"`
	WmClass string `yaml:"wm_class"`
}

// Config is the togler daemon configuration.
type Config struct {
	BusName  string    `yaml:"bus_name"`
	LogLevel string    `yaml:"log_level"`
	LogFile  string    `yaml:"log_file,omitempty"`
	Bindings []Binding `yaml:"bindings"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		BusName:  DefaultBusName,
		LogLevel: "info",
		Bindings: []Binding{},
	}
}

// ValidationError points at the offending config path and, when known, the
// file position it came from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the config for values the daemon cannot run with.
func (c *Config) Validate() error {
	if err := validateBusName(c.BusName); err != nil {
		return &ValidationError{Path: "bus_name", Err: err}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	seen := make(map[string]int, len(c.Bindings))
	for i, b := range c.Bindings {
		path := fmt.Sprintf("bindings[%d]", i)
		key := strings.TrimSpace(b.Key)
		if key == "" {
			return &ValidationError{Path: path + ".key", Err: fmt.Errorf("key is required")}
		}
		if b.WmClass == "" {
			return &ValidationError{Path: path + ".wm_class", Err: fmt.Errorf("wm_class is required")}
		}
		if prev, ok := seen[key]; ok {
			return &ValidationError{Path: path + ".key", Err: fmt.Errorf("key %q is already bound by bindings[%d]", key, prev)}
		}
		seen[key] = i
	}
	return nil
}

// validateBusName applies the D-Bus well-known name rules.
func validateBusName(name string) error {
	if name == "" {
		return fmt.Errorf("bus_name is required")
	}
	if len(name) > 255 {
		return fmt.Errorf("bus_name must be at most 255 characters")
	}
	if strings.HasPrefix(name, ":") {
		return fmt.Errorf("bus_name must be a well-known name, not a unique name")
	}
	elements := strings.Split(name, ".")
	if len(elements) < 2 {
		return fmt.Errorf("bus_name must contain at least two dot-separated elements")
	}
	for _, el := range elements {
		if el == "" {
			return fmt.Errorf("bus_name contains an empty element")
		}
		if el[0] >= '0' && el[0] <= '9' {
			return fmt.Errorf("bus_name element %q starts with a digit", el)
		}
		for _, r := range el {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			default:
				return fmt.Errorf("bus_name element %q contains invalid character %q", el, r)
			}
		}
	}
	return nil
}
