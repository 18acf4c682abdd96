package mcp

import "github.com/1broseidon/foliodesk/internal/ipc"

// EmptyInput is the input for tools that take no arguments.
type EmptyInput struct{}

// WindowInput is the input for the window tools.
type WindowInput struct {
	App string `json:"app" jsonschema:"required,Application id (finder, safari, photos, contact, terminal, resume, trash)"`
}

// ChangeSectionInput is the input for the change_section tool.
type ChangeSectionInput struct {
	App     string `json:"app" jsonschema:"required,Application id of an open window"`
	Section string `json:"section" jsonschema:"required,Section id to show (e.g. about-me, projects, project-1, gallery, experience)"`
}

// ItemInput addresses a desktop icon or trash entry.
type ItemInput struct {
	ID string `json:"id" jsonschema:"required,Desktop item id (e.g. resume, proj1)"`
}

// LsInput is the input for the list_directory tool.
type LsInput struct {
	Location string   `json:"location" jsonschema:"required,Root location: work, about, resume or trash"`
	Path     []string `json:"path,omitempty" jsonschema:"Child ids from the root, outermost first"`
}

// SearchInput is the input for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"required,Text to fuzzy-match against file and folder names"`
}

// TerminalInput is the input for the run_terminal tool.
type TerminalInput struct {
	Command string `json:"command" jsonschema:"required,Terminal command, e.g. help, about, skills, show techstack"`
}

// GalleryUploadInput is the input for the gallery_upload tool.
type GalleryUploadInput struct {
	Path  string `json:"path" jsonschema:"required,Path of a local image file to upload"`
	Title string `json:"title,omitempty" jsonschema:"Display title (default: file name)"`
}

// GalleryDeleteInput is the input for the gallery_delete tool.
type GalleryDeleteInput struct {
	ID string `json:"id" jsonschema:"required,Gallery image id"`
}

// GalleryDeleteOutput is the output for the gallery_delete tool.
type GalleryDeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// WindowOutput describes a window after a window tool ran.
type WindowOutput struct {
	App        string `json:"app"`
	IsOpen     bool   `json:"is_open"`
	StackOrder int    `json:"stack_order"`
	Section    string `json:"section"`
	Phase      string `json:"phase"`
	Title      string `json:"title"`
	Renderer   string `json:"renderer"`
	Sidebar    bool   `json:"sidebar"`
	Changed    bool   `json:"changed"`
}

// EntryInfo is one child in a directory listing.
type EntryInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	FileType string `json:"file_type,omitempty"`
}

// LsOutput is the output for the list_directory tool.
type LsOutput struct {
	Location string      `json:"location"`
	Path     []string    `json:"path"`
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	FileType string      `json:"file_type,omitempty"`
	Text     []string    `json:"text,omitempty"`
	Href     string      `json:"href,omitempty"`
	Children []EntryInfo `json:"children,omitempty"`
}

// Outputs with flat shapes reuse the IPC payload types.
type (
	StatusOutput  = ipc.StatusData
	WindowsOutput = ipc.WindowsData
	TrashOutput   = ipc.TrashData
	IconsOutput   = ipc.IconsData
	SearchOutput  = ipc.SearchData
	GalleryOutput = ipc.GalleryData
	ImageOutput   = ipc.GalleryImageInfo
)
