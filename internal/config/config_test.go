package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error: %v", err)
	}
	if cfg.BusName != DefaultBusName {
		t.Fatalf("BusName = %q, want %q", cfg.BusName, DefaultBusName)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if res.File != "" {
		t.Fatalf("File = %q, want empty", res.File)
	}
	if res.Config.LogLevel != "info" || len(res.Config.Bindings) != 0 {
		t.Fatalf("unexpected defaults: %+v", res.Config)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if res.Config.BusName != DefaultBusName {
		t.Fatalf("BusName = %q, want default", res.Config.BusName)
	}
}

func TestLoadFromPath_ParsesBindings(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
bindings:
  - key: Mod4-Return
    wm_class: Alacritty
  - key: Mod4-b
    wm_class: firefox
`)
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	cfg := res.Config
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.BusName != DefaultBusName {
		t.Errorf("BusName = %q, want default kept", cfg.BusName)
	}
	want := []Binding{{Key: "Mod4-Return", WmClass: "Alacritty"}, {Key: "Mod4-b", WmClass: "firefox"}}
	if len(cfg.Bindings) != len(want) {
		t.Fatalf("Bindings = %+v, want %+v", cfg.Bindings, want)
	}
	for i := range want {
		if cfg.Bindings[i] != want[i] {
			t.Errorf("Bindings[%d] = %+v, want %+v", i, cfg.Bindings[i], want[i])
		}
	}
	if src := res.Sources["bindings[1].wm_class"]; src.Line != 7 {
		t.Errorf("Sources[bindings[1].wm_class].Line = %d, want 7", src.Line)
	}
}

func TestLoadFromPath_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "hotkey: Mod4-t\n"))
	if err == nil {
		t.Fatal("LoadFromPath() error = nil, want unknown field error")
	}
	if !strings.Contains(err.Error(), "hotkey") {
		t.Fatalf("error %q does not mention the unknown key", err)
	}
}

func TestLoadFromPath_ValidationErrorHasPosition(t *testing.T) {
	path := writeConfig(t, `bindings:
  - key: Mod4-a
    wm_class: ""
`)
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	if verr.Path != "bindings[0].wm_class" {
		t.Errorf("Path = %q, want bindings[0].wm_class", verr.Path)
	}
	if verr.Source.File != path || verr.Source.Line != 3 {
		t.Errorf("Source = %+v, want %s line 3", verr.Source, path)
	}
	if !strings.HasPrefix(err.Error(), path+":3:") {
		t.Errorf("Error() = %q, want file:line prefix", err.Error())
	}
}

func TestLoadFromPath_ExpandsLogFileHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	res, err := LoadFromPath(writeConfig(t, "log_file: ~/logs/togler.log\n"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	want := filepath.Join(home, "logs", "togler.log")
	if res.Config.LogFile != want {
		t.Fatalf("LogFile = %q, want %q", res.Config.LogFile, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{"empty bus name", func(c *Config) { c.BusName = "" }, "bus_name"},
		{"single element bus name", func(c *Config) { c.BusName = "togler" }, "bus_name"},
		{"unique bus name", func(c *Config) { c.BusName = ":1.42" }, "bus_name"},
		{"digit element", func(c *Config) { c.BusName = "org.9lives" }, "bus_name"},
		{"bad char", func(c *Config) { c.BusName = "org.tog ler" }, "bus_name"},
		{"empty element", func(c *Config) { c.BusName = "org..togler" }, "bus_name"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"missing key", func(c *Config) { c.Bindings = []Binding{{WmClass: "kitty"}} }, "bindings[0].key"},
		{"missing class", func(c *Config) { c.Bindings = []Binding{{Key: "Mod4-k"}} }, "bindings[0].wm_class"},
		{"duplicate key", func(c *Config) {
			c.Bindings = []Binding{{Key: "Mod4-k", WmClass: "kitty"}, {Key: "Mod4-k", WmClass: "firefox"}}
		}, "bindings[1].key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Path != tt.wantPath {
				t.Fatalf("Path = %q, want %q", verr.Path, tt.wantPath)
			}
		})
	}
}

func TestValidate_AcceptsDashedBusName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BusName = "io.github.my-user.Togler_2"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestMarshalRoundTripKeepsBindings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bindings = []Binding{{Key: "Mod4-Return", WmClass: "Alacritty"}}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	res, err := LoadFromPath(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if len(res.Config.Bindings) != 1 || res.Config.Bindings[0].WmClass != "Alacritty" {
		t.Fatalf("Bindings = %+v", res.Config.Bindings)
	}
}
