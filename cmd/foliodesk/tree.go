package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/foliodesk/internal/ipc"
)

func runLs(args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk ls [--json] <location> [id...]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Locations: work, about, resume, trash")
		fmt.Fprintln(os.Stderr, "Example: foliodesk ls work 5 1")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().Ls(fs.Arg(0), fs.Args()[1:]...)
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	printLs(os.Stdout, data)
	return 0
}

func runSearch(args []string) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk search [--json] <query>")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().Search(strings.Join(fs.Args(), " "))
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	printSearch(os.Stdout, data)
	return 0
}

func runExec(args []string) int {
	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk exec <command...>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run a command in the portfolio terminal, e.g. 'foliodesk exec show techstack'.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().Exec(strings.Join(fs.Args(), " "))
	if err != nil {
		return fail(err)
	}
	if data.Clear {
		fmt.Println("(terminal cleared)")
		return 0
	}
	for _, line := range data.Lines {
		fmt.Println(line)
	}
	return 0
}

func runTerminal(args []string) int {
	fs := flag.NewFlagSet("terminal", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk terminal [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the terminal window's scrollback, commands echoed after the prompt.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := ipc.NewClient().Terminal()
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	for _, line := range data.Lines {
		fmt.Println(line)
	}
	return 0
}
