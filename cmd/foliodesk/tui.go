package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/ipc"
	"github.com/1broseidon/foliodesk/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	local := fs.Bool("local", false, "Run a private session instead of attaching to the daemon")
	path := fs.String("path", "", "Config file path for --local (default: ~/.config/foliodesk/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk tui [--local] [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Browse the desktop interactively. By default the TUI attaches to the")
		fmt.Fprintln(os.Stderr, "running daemon; --local starts a throwaway session in-process.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if !*local {
		client := ipc.NewClient()
		if err := client.Ping(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Start 'foliodesk daemon' or run 'foliodesk tui --local'.")
			return 1
		}
		if err := tui.Run(client, "daemon connected"); err != nil {
			return fail(err)
		}
		return 0
	}

	client, cleanup, err := startLocalSession(*path)
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	if err := tui.Run(client, "local session"); err != nil {
		return fail(err)
	}
	return 0
}

// startLocalSession runs a session on a private socket and returns a client
// for it. The TUI owns the terminal, so session logs are discarded.
func startLocalSession(path string) (*ipc.Client, func(), error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Unix socket paths are length-limited; keep the directory short.
	dir, err := os.MkdirTemp("", "foliodesk")
	if err != nil {
		return nil, nil, err
	}

	sess, err := openSession(cfg, logger, "")
	if err != nil {
		// The daemon may hold the persistent store's lock.
		sess, err = openSession(cfg, logger, gallery.BackendMemory)
	}
	if err != nil {
		os.RemoveAll(dir)
		return nil, nil, err
	}

	sock := filepath.Join(dir, "tui.sock")
	srv := ipc.NewServerAt(sock, sess.daemon, logger)
	if err := srv.Start(); err != nil {
		sess.close(logger)
		os.RemoveAll(dir)
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sess.daemon.Run(ctx)
		close(done)
	}()

	cleanup := func() {
		srv.Stop()
		cancel()
		<-done
		sess.close(logger)
		os.RemoveAll(dir)
	}
	return ipc.NewClientAt(sock), cleanup, nil
}
