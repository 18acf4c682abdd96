package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/foliodesk/internal/ipc"
)

func printTrashUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  foliodesk trash list [--json]")
	fmt.Fprintln(w, "  foliodesk trash add <item-id>")
	fmt.Fprintln(w, "  foliodesk trash restore <item-id>")
	fmt.Fprintln(w, "  foliodesk trash empty [--yes]")
	fmt.Fprintln(w, "  foliodesk trash drag [--miss] <item-id>")
}

func runTrash(args []string) int {
	if len(args) == 0 {
		printTrashUsage(os.Stderr)
		return 2
	}

	client := ipc.NewClient()
	switch args[0] {
	case "list":
		return runTrashList(client, args[1:])
	case "add":
		return trashItem("add", args[1:], client.MoveToTrash)
	case "restore":
		return trashItem("restore", args[1:], client.RestoreFromTrash)
	case "empty":
		return runTrashEmpty(client, args[1:])
	case "drag":
		return runTrashDrag(client, args[1:])
	case "help", "-h", "--help":
		printTrashUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown trash command: %s\n\n", args[0])
		printTrashUsage(os.Stderr)
		return 2
	}
}

func runTrashList(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := client.ListTrash()
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	printTrash(os.Stdout, data)
	return 0
}

func trashItem(name string, args []string, op func(id string) (*ipc.TrashData, error)) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: foliodesk trash %s <item-id>\n", name)
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	data, err := op(fs.Arg(0))
	if err != nil {
		return fail(err)
	}
	if !data.Changed {
		fmt.Printf("%s is not in the trash\n", fs.Arg(0))
		return 0
	}
	printTrash(os.Stdout, data)
	return 0
}

func runTrashEmpty(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("empty", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	current, err := client.ListTrash()
	if err != nil {
		return fail(err)
	}
	if len(current.Entries) == 0 {
		fmt.Println("Trash is empty")
		return 0
	}

	if !*yes && term.IsTerminal(int(os.Stdin.Fd())) {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Empty the trash (%d items)?", len(current.Entries))).
			Description("Emptied items go back on the desktop.").
			Affirmative("Empty").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return fail(err)
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return 0
		}
	}

	data, err := client.EmptyTrash()
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Emptied %d items\n", len(data.Removed))
	return 0
}

func runTrashDrag(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("drag", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	miss := fs.Bool("miss", false, "Release the item away from the trash")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk trash drag [--miss] <item-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Drag a desktop icon and release it over the trash (or elsewhere with --miss).")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	data, err := client.Drag(fs.Arg(0), !*miss)
	if err != nil {
		return fail(err)
	}
	if data.Changed {
		fmt.Printf("Dropped %s in the trash\n", fs.Arg(0))
	} else {
		fmt.Printf("Released %s on the desktop\n", fs.Arg(0))
	}
	return 0
}
