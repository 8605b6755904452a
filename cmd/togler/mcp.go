package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/togler/internal/ipc"
	"github.com/1broseidon/togler/internal/logging"
	"github.com/1broseidon/togler/internal/mcp"
	"github.com/1broseidon/togler/internal/platform"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: togler mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'togler mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stdout, "Usage: togler mcp serve")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Toggles go through the running togler")
		fmt.Fprintln(os.Stdout, "daemon; window listing reads the X11 display directly.")
		return 0
	}

	res, err := loadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	cfg := res.Config

	// stdout carries the MCP protocol, so logs go to stderr and the log file.
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Output: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer logger.Close()
	log := logger.Logger

	client, err := ipc.NewClient(cfg.BusName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create D-Bus client")
		return 1
	}
	defer client.Close()

	var lister mcp.WindowLister
	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Warn().Err(err).Msg("X11 display unavailable; list_windows disabled")
	} else {
		defer backend.Disconnect()
		lister = backend
	}

	server := mcp.NewServer(client, lister, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		log.Error().Err(err).Msg("MCP server error")
		return 1
	}
	return 0
}
