package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"

	"github.com/1broseidon/togler/internal/config"
	"github.com/1broseidon/togler/internal/hotkeys"
	"github.com/1broseidon/togler/internal/ipc"
	"github.com/1broseidon/togler/internal/logging"
	"github.com/1broseidon/togler/internal/platform"
	"github.com/1broseidon/togler/internal/toggle"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "toggle":
		os.Exit(runToggle(os.Args[2:]))
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: togler <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Export the Togler D-Bus object (foreground)")
	fmt.Fprintln(w, "  toggle <wmclass>    Minimize or activate windows of a class via the daemon")
	fmt.Fprintln(w, "  list                List client windows and their WM_CLASS")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'togler <command> --help' for command-specific options.")
}

// loadConfig loads path, or the default location when path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.LoadFromPath(path)
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/togler/config.yaml)")
	logLevel := fs.String("log-level", "", "Override log_level (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: togler daemon [--config PATH] [--log-level LEVEL]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Export org.gnome.Shell.Extensions.Togler on the session bus and serve")
		fmt.Fprintln(os.Stderr, "configured key bindings until interrupted.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logger.Close()
	log := logger.Logger

	log.Info().
		Str("file", res.File).
		Str("bus_name", cfg.BusName).
		Int("bindings", len(cfg.Bindings)).
		Msg("Configuration loaded")

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to display")
		return 1
	}
	defer backend.Disconnect()

	dispatcher := toggle.NewDispatcher(backend, log)

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to session bus")
		return 1
	}
	defer conn.Close()

	service := ipc.NewService(conn, dispatcher, cfg.BusName, log)
	if err := service.Enable(); err != nil {
		log.Error().Err(err).Msg("Failed to enable D-Bus service")
		return 1
	}

	handler := hotkeys.NewHandler(backend, dispatcher, log)
	registered := handler.RegisterBindings(cfg.Bindings)
	if registered < len(cfg.Bindings) {
		log.Warn().Int("registered", registered).Int("configured", len(cfg.Bindings)).Msg("Some bindings were not registered")
	}

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		backend.EventLoop()
	}()

	log.Info().Msg("togler daemon started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info().Stringer("signal", sig).Msg("Shutting down")
	case <-loopDone:
		log.Warn().Msg("X11 event loop exited")
	}

	exit := 0
	if err := service.Disable(); err != nil {
		log.Error().Err(err).Msg("Failed to disable D-Bus service")
		exit = 1
	}
	backend.StopEventLoop()
	return exit
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  togler config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  togler config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/togler/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/togler/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			if res.File != "" {
				fmt.Printf("# source: %s\n", res.File)
			}
			cfg = res.Config
		}
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
