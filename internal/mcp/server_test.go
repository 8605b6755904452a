package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/1broseidon/togler/internal/platform"
)

type fakeToggler struct {
	result bool
	err    error
	got    []string
}

func (f *fakeToggler) ToggleByWmClass(_ context.Context, wmClass string) (bool, error) {
	f.got = append(f.got, wmClass)
	return f.result, f.err
}

type fakeLister struct {
	windows []platform.Window
	focused platform.WindowID
	err     error
}

func (f *fakeLister) ListWindows() ([]platform.Window, error) { return f.windows, f.err }

func (f *fakeLister) ActiveWindow() (platform.WindowID, error) { return f.focused, nil }

func TestHandleToggle(t *testing.T) {
	toggler := &fakeToggler{result: true}
	s := NewServer(toggler, nil, zerolog.Nop())

	_, out, err := s.handleToggle(context.Background(), nil, ToggleInput{WmClass: "Alacritty"})
	if err != nil {
		t.Fatalf("handleToggle error: %v", err)
	}
	if !out.Success {
		t.Fatal("Success = false, want true")
	}
	if len(toggler.got) != 1 || toggler.got[0] != "Alacritty" {
		t.Fatalf("toggler got %v", toggler.got)
	}
}

func TestHandleToggle_PropagatesBusError(t *testing.T) {
	toggler := &fakeToggler{err: errors.New("no daemon")}
	s := NewServer(toggler, nil, zerolog.Nop())

	if _, _, err := s.handleToggle(context.Background(), nil, ToggleInput{WmClass: "kitty"}); err == nil {
		t.Fatal("handleToggle error = nil, want bus error")
	}
}

func TestHandleListWindows(t *testing.T) {
	lister := &fakeLister{
		windows: []platform.Window{
			{ID: 1, Class: "Firefox", Title: "Mozilla Firefox", Desktop: 0},
			{ID: 2, Class: "kitty", Instance: "kitty", Title: "~", Desktop: 1},
			{ID: 3, Class: "kitty", Instance: "kitty", Title: "vim", Desktop: platform.NoDesktop},
		},
		focused: 3,
	}
	s := NewServer(&fakeToggler{}, lister, zerolog.Nop())

	tests := []struct {
		name        string
		class       string
		wantIDs     []uint32
		wantFocused uint32
	}{
		{"all windows", "", []uint32{1, 2, 3}, 3},
		{"filtered", "kitty", []uint32{2, 3}, 3},
		{"no match", "Chromium", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{WmClass: tt.class})
			if err != nil {
				t.Fatalf("handleListWindows error: %v", err)
			}
			if len(out.Windows) != len(tt.wantIDs) {
				t.Fatalf("got %d windows, want %d", len(out.Windows), len(tt.wantIDs))
			}
			for i, w := range out.Windows {
				if w.ID != tt.wantIDs[i] {
					t.Errorf("window[%d].ID = %d, want %d", i, w.ID, tt.wantIDs[i])
				}
				if w.Focused != (w.ID == tt.wantFocused) {
					t.Errorf("window %d Focused = %v", w.ID, w.Focused)
				}
			}
		})
	}
}

func TestHandleListWindows_NoDisplay(t *testing.T) {
	s := NewServer(&fakeToggler{}, nil, zerolog.Nop())
	if _, _, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{}); err == nil {
		t.Fatal("handleListWindows without lister returned nil error")
	}
}

func TestHandleListWindows_ListError(t *testing.T) {
	s := NewServer(&fakeToggler{}, &fakeLister{err: errors.New("gone")}, zerolog.Nop())
	if _, _, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{}); err == nil {
		t.Fatal("handleListWindows returned nil error on list failure")
	}
}
