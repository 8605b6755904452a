package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/1broseidon/togler/internal/ipc"
	"github.com/1broseidon/togler/internal/platform"
	"github.com/1broseidon/togler/internal/toggle"
)

func runToggle(args []string) int {
	fs := flag.NewFlagSet("toggle", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	busName := fs.String("bus-name", "", "Bus name owning the Togler object (default: bus_name from config)")
	timeout := fs.Duration("timeout", 5*time.Second, "How long to wait for the daemon")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: togler toggle [--bus-name NAME] [--timeout D] <wmclass>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Minimize the focused window if its WM_CLASS matches, otherwise activate")
		fmt.Fprintln(os.Stderr, "the first matching window. Prints true or false; exits 1 on false.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "toggle takes exactly one wmclass argument")
		fs.Usage()
		return 2
	}
	wmClass := fs.Arg(0)

	dest := *busName
	if dest == "" {
		res, err := loadConfig("")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		dest = res.Config.BusName
	}

	client, err := ipc.NewClient(dest)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	success, err := client.ToggleByWmClass(ctx, wmClass)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(success)
	if !success {
		return 1
	}
	return 0
}

type listedWindow struct {
	ID       uint32 `json:"id"`
	Class    string `json:"class"`
	Instance string `json:"instance"`
	Title    string `json:"title"`
	Desktop  int    `json:"desktop"`
	Focused  bool   `json:"focused"`
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Output JSON")
	class := fs.String("class", "", "Only list windows with this exact WM_CLASS")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: togler list [--json] [--class WMCLASS]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List managed windows in the order togler matches them.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Disconnect()

	windows, err := backend.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *class != "" {
		windows = toggle.MatchClass(windows, *class)
	}
	focused, _ := backend.ActiveWindow()

	listed := make([]listedWindow, 0, len(windows))
	for _, w := range windows {
		listed = append(listed, listedWindow{
			ID:       uint32(w.ID),
			Class:    w.Class,
			Instance: w.Instance,
			Title:    w.Title,
			Desktop:  w.Desktop,
			Focused:  focused != 0 && w.ID == focused,
		})
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listed); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Printf("%-10s %-3s %-7s %-24s %s\n", "ID", "", "DESKTOP", "CLASS", "TITLE")
	for _, w := range listed {
		marker := ""
		if w.Focused {
			marker = "*"
		}
		desktop := fmt.Sprintf("%d", w.Desktop)
		if w.Desktop == platform.NoDesktop {
			desktop = "all"
		}
		fmt.Printf("0x%08x %-3s %-7s %-24s %s\n", w.ID, marker, desktop, w.Class, w.Title)
	}
	return 0
}
