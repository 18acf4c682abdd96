package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/ipc"
)

func printGalleryUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  foliodesk gallery list [--json]")
	fmt.Fprintln(w, "  foliodesk gallery upload <file>...")
	fmt.Fprintln(w, "  foliodesk gallery delete <image-id>")
	fmt.Fprintln(w, "  foliodesk gallery size")
	fmt.Fprintln(w, "  foliodesk gallery dismiss")
}

func runGallery(args []string) int {
	if len(args) == 0 {
		printGalleryUsage(os.Stderr)
		return 2
	}

	client := ipc.NewClient()
	switch args[0] {
	case "list":
		return runGalleryList(client, args[1:])
	case "upload":
		return runGalleryUpload(client, args[1:])
	case "delete":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: foliodesk gallery delete <image-id>")
			return 2
		}
		if err := client.DeleteImage(args[1]); err != nil {
			return fail(err)
		}
		fmt.Printf("Deleted %s\n", args[1])
		return 0
	case "size":
		data, err := client.GallerySize()
		if err != nil {
			return fail(err)
		}
		fmt.Printf("%s (%d bytes)\n", data.Human, data.Bytes)
		if data.Advisory != "" {
			fmt.Println(data.Advisory)
		}
		return 0
	case "dismiss":
		if err := client.DismissAdvisory(); err != nil {
			return fail(err)
		}
		return 0
	case "help", "-h", "--help":
		printGalleryUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown gallery command: %s\n\n", args[0])
		printGalleryUsage(os.Stderr)
		return 2
	}
}

func runGalleryList(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := client.ListGallery()
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		return printJSON(os.Stdout, data)
	}
	printGallery(os.Stdout, data)
	return 0
}

// runGalleryUpload uploads each file in turn. A rejected file does not stop
// the rest; the exit code is 1 if any upload failed.
func runGalleryUpload(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: foliodesk gallery upload <file>...")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	code := 0
	for _, path := range fs.Args() {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			code = 1
			continue
		}
		info, err := client.UploadImage(filepath.Base(path), gallery.DetectMIME(path, raw), raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			code = 1
			continue
		}
		fmt.Printf("%s  %s\n", info.ID, info.Title)
	}
	return code
}
