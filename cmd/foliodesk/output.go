package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/foliodesk/internal/ipc"
	"github.com/1broseidon/foliodesk/internal/vfs"
)

func printJSON(w io.Writer, v any) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printWindow(w io.Writer, data *ipc.WindowData) {
	sidebar := "no"
	if data.View.Sidebar {
		sidebar = "yes"
	}
	fmt.Fprintf(w, "app:      %s\n", data.Window.AppID)
	fmt.Fprintf(w, "phase:    %s\n", data.Phase)
	fmt.Fprintf(w, "section:  %s\n", data.Window.ActiveSection)
	fmt.Fprintf(w, "title:    %s\n", data.View.Title)
	fmt.Fprintf(w, "renderer: %s\n", data.View.Renderer)
	fmt.Fprintf(w, "sidebar:  %s\n", sidebar)
	fmt.Fprintf(w, "stack:    %d\n", data.Window.StackOrder)
	if !data.Changed {
		fmt.Fprintln(w, "(unchanged)")
	}
}

func printWindows(w io.Writer, data *ipc.WindowsData) {
	fmt.Fprintf(w, "%-10s %-6s %-6s %s\n", "APP", "OPEN", "STACK", "SECTION")
	for _, win := range data.Windows {
		marker := ""
		if win.AppID == data.ActiveApp {
			marker = " *"
		}
		fmt.Fprintf(w, "%-10s %-6v %-6d %s%s\n", win.AppID, win.IsOpen, win.StackOrder, win.ActiveSection, marker)
	}
}

func printTrash(w io.Writer, data *ipc.TrashData) {
	if len(data.Entries) == 0 {
		fmt.Fprintln(w, "Trash is empty")
		return
	}
	for _, e := range data.Entries {
		fmt.Fprintf(w, "%-10s %s\n", e.ID, e.Name)
	}
}

func printLs(w io.Writer, data *ipc.LsData) {
	n := data.Node
	switch n.Kind {
	case "folder":
		fmt.Fprintf(w, "%s/\n", n.Name)
		if n.GitHub != "" {
			fmt.Fprintf(w, "  github: %s\n", n.GitHub)
		}
		for _, c := range data.Children {
			name := c.Name
			if c.Kind == "folder" {
				name += "/"
			}
			fmt.Fprintf(w, "  %-4s %s\n", c.ID, name)
		}
	default:
		fmt.Fprintf(w, "%s (%s)\n", n.Name, n.FileType)
		switch vfs.FileType(n.FileType) {
		case vfs.FileText:
			if n.Subtitle != "" {
				fmt.Fprintln(w, n.Subtitle)
			}
			for _, line := range n.Description {
				fmt.Fprintln(w, line)
			}
		case vfs.FileURL, vfs.FilePDF:
			fmt.Fprintln(w, n.Href)
		case vfs.FileImage:
			fmt.Fprintln(w, n.ImageURL)
		case vfs.FileShortcut:
			fmt.Fprintf(w, "-> %s\n", n.Target)
		}
	}
}

func printSearch(w io.Writer, data *ipc.SearchData) {
	if len(data.Hits) == 0 {
		fmt.Fprintln(w, "No matches")
		return
	}
	for _, h := range data.Hits {
		path := strings.Join(append([]string{h.Location}, h.Path...), "/")
		fmt.Fprintf(w, "%-20s %-8s %s\n", path, h.Kind, h.Name)
	}
}

func printGallery(w io.Writer, data *ipc.GalleryData) {
	if len(data.Images) == 0 {
		fmt.Fprintln(w, "No images")
	}
	for _, img := range data.Images {
		fmt.Fprintf(w, "%s  %-11s %8d  %s\n", img.ID, img.MIME, img.Bytes, img.Title)
	}
	if data.Advisory != "" {
		fmt.Fprintf(w, "\n%s\n", data.Advisory)
	}
}
