package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/foliodesk/internal/ipc"
)

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  foliodesk window open <app>")
	fmt.Fprintln(w, "  foliodesk window close <app>")
	fmt.Fprintln(w, "  foliodesk window focus <app>")
	fmt.Fprintln(w, "  foliodesk window section <app> <section>")
	fmt.Fprintln(w, "  foliodesk window list [--json]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Apps: finder, contact, resume, safari, photos, terminal, trash, txtfile, imgfile")
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}

	client := ipc.NewClient()
	switch args[0] {
	case "open":
		return windowAction("open", args[1:], client.OpenWindow)
	case "close":
		return windowAction("close", args[1:], client.CloseWindow)
	case "focus":
		return windowAction("focus", args[1:], client.FocusWindow)
	case "section":
		return runWindowSection(client, args[1:])
	case "list":
		return runWindowList(client, args[1:])
	case "help", "-h", "--help":
		printWindowUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

func windowAction(name string, args []string, op func(app string) (*ipc.WindowData, error)) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: foliodesk window %s [--json] <app>\n", name)
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "window %s requires exactly one <app>\n", name)
		fs.Usage()
		return 2
	}

	data, err := op(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	printWindow(os.Stdout, data)
	return 0
}

func runWindowSection(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("section", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk window section [--json] <app> <section>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Sections: about-me, about, gallery, projects, project-1..4, contact,")
		fmt.Fprintln(os.Stderr, "experience, experience-1..4, trash")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "window section requires <app> and <section>")
		fs.Usage()
		return 2
	}

	data, err := client.ChangeSection(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	printWindow(os.Stdout, data)
	return 0
}

func runWindowList(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := client.ListWindows()
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	printWindows(os.Stdout, data)
	return 0
}

func runLaunch(args []string) int {
	fs := flag.NewFlagSet("launch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk launch <dock-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Activate a dock entry. Run 'foliodesk icons' to list the dock.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().Launch(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	printWindow(os.Stdout, data)
	return 0
}

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk open <item-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open the app behind a desktop icon, as a double click would.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().OpenItem(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	printWindow(os.Stdout, data)
	return 0
}

func runIcons(args []string) int {
	fs := flag.NewFlagSet("icons", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := ipc.NewClient().Icons()
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	fmt.Println("Desktop:")
	for _, it := range data.Icons {
		kind := "file"
		if it.IsFolder {
			kind = "folder"
		}
		fmt.Printf("  %-8s %-6s %-14s opens %s\n", it.ID, kind, it.Name, it.Opens)
	}
	fmt.Println("Dock:")
	for _, app := range data.Dock {
		state := ""
		if !app.CanOpen {
			state = " (unavailable)"
		}
		fmt.Printf("  %-8s %s%s\n", app.ID, app.Name, state)
	}
	return 0
}
