package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/foliodesk/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "launch":
		os.Exit(runLaunch(os.Args[2:]))
	case "icons":
		os.Exit(runIcons(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "trash":
		os.Exit(runTrash(os.Args[2:]))
	case "ls":
		os.Exit(runLs(os.Args[2:]))
	case "search":
		os.Exit(runSearch(os.Args[2:]))
	case "exec":
		os.Exit(runExec(os.Args[2:]))
	case "terminal":
		os.Exit(runTerminal(os.Args[2:]))
	case "gallery":
		os.Exit(runGallery(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
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
	fmt.Fprintln(w, "Usage: foliodesk <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the desktop session daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window open         Open an app window and bring it to the front")
	fmt.Fprintln(w, "  window close        Close an app window")
	fmt.Fprintln(w, "  window focus        Raise an open window")
	fmt.Fprintln(w, "  window section      Switch the pane an open window shows")
	fmt.Fprintln(w, "  window list         List every window")
	fmt.Fprintln(w, "  launch              Activate a dock entry")
	fmt.Fprintln(w, "  icons               List desktop icons and the dock")
	fmt.Fprintln(w, "  open                Open a desktop icon")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  trash list          List trashed items")
	fmt.Fprintln(w, "  trash add           Move a desktop icon to the trash")
	fmt.Fprintln(w, "  trash restore       Put a trashed item back on the desktop")
	fmt.Fprintln(w, "  trash empty         Empty the trash")
	fmt.Fprintln(w, "  trash drag          Replay a drag gesture onto the trash")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  ls                  Show a path in the portfolio file tree")
	fmt.Fprintln(w, "  search              Fuzzy-search names in the file tree")
	fmt.Fprintln(w, "  exec                Run a portfolio terminal command")
	fmt.Fprintln(w, "  terminal            Show the terminal window's scrollback")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  gallery list        List gallery images")
	fmt.Fprintln(w, "  gallery upload      Upload image files")
	fmt.Fprintln(w, "  gallery delete      Delete a gallery image")
	fmt.Fprintln(w, "  gallery size        Show stored gallery size")
	fmt.Fprintln(w, "  gallery dismiss     Dismiss the storage advisory")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config init         Write the default config file")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the interactive desktop")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'foliodesk <command> --help' for command-specific options.")
}

// parseFlags parses args and maps flag errors to exit codes. ok is false when
// the caller should return code.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, status)
	}
	printStatus(os.Stdout, status)
	return 0
}

func printStatus(w io.Writer, status *ipc.StatusData) {
	fmt.Fprintf(w, "daemon_running:  %v\n", status.DaemonRunning)
	fmt.Fprintf(w, "uptime_seconds:  %d\n", status.UptimeSeconds)
	fmt.Fprintf(w, "open_windows:    %d\n", status.OpenWindows)
	fmt.Fprintf(w, "active_app:      %s\n", status.ActiveApp)
	fmt.Fprintf(w, "trash_count:     %d\n", status.TrashCount)
	fmt.Fprintf(w, "gallery_backend: %s\n", status.GalleryBackend)
	fmt.Fprintf(w, "gallery_ready:   %v\n", status.GalleryReady)
	fmt.Fprintf(w, "gallery_images:  %d\n", status.GalleryImages)
	if status.Advisory != "" {
		fmt.Fprintf(w, "advisory:        %s\n", status.Advisory)
	}
}
