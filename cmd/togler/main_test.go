package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("bus_name: io.github.Togler\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	res, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if res.Config.BusName != "io.github.Togler" {
		t.Fatalf("BusName = %q, want io.github.Togler", res.Config.BusName)
	}
}

func TestLoadConfig_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "togler")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	res, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if res.Config.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", res.Config.LogLevel)
	}
}

func TestRunConfigValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("bindings:\n  - key: Mod4-Return\n    wm_class: Alacritty\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(bad, []byte("log_level: loud\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if code := runConfig([]string{"validate", "--path", good}); code != 0 {
		t.Errorf("validate good config exit = %d, want 0", code)
	}
	if code := runConfig([]string{"validate", "--path", bad}); code != 1 {
		t.Errorf("validate bad config exit = %d, want 1", code)
	}
	if code := runConfig([]string{"frobnicate"}); code != 2 {
		t.Errorf("unknown config subcommand exit = %d, want 2", code)
	}
}

func TestRunToggleUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing class", nil, 2},
		{"two classes", []string{"kitty", "firefox"}, 2},
		{"help", []string{"--help"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runToggle(tt.args); got != tt.want {
				t.Fatalf("runToggle(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
