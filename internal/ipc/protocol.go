package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/sections"
	"github.com/1broseidon/foliodesk/internal/terminal"
	"github.com/1broseidon/foliodesk/internal/trash"
	"github.com/1broseidon/foliodesk/internal/vfs"
	"github.com/1broseidon/foliodesk/internal/windows"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus CommandType = "GET_STATUS"
	CommandSnapshot  CommandType = "SNAPSHOT"

	CommandWindowOpen    CommandType = "WINDOW_OPEN"
	CommandWindowClose   CommandType = "WINDOW_CLOSE"
	CommandWindowFocus   CommandType = "WINDOW_FOCUS"
	CommandWindowSection CommandType = "WINDOW_SECTION"
	CommandWindowList    CommandType = "WINDOW_LIST"
	CommandLaunch        CommandType = "LAUNCH"

	CommandTrashList    CommandType = "TRASH_LIST"
	CommandTrashAdd     CommandType = "TRASH_ADD"
	CommandTrashRestore CommandType = "TRASH_RESTORE"
	CommandTrashEmpty   CommandType = "TRASH_EMPTY"
	CommandDrag         CommandType = "DRAG"

	CommandIcons  CommandType = "ICONS"
	CommandOpen   CommandType = "OPEN_ITEM"
	CommandLs     CommandType = "LS"
	CommandSearch CommandType = "SEARCH"
	CommandExec   CommandType = "EXEC"

	CommandTerminal       CommandType = "TERMINAL"
	CommandTerminalRecall CommandType = "TERMINAL_RECALL"

	CommandGalleryList    CommandType = "GALLERY_LIST"
	CommandGalleryUpload  CommandType = "GALLERY_UPLOAD"
	CommandGalleryDelete  CommandType = "GALLERY_DELETE"
	CommandGallerySize    CommandType = "GALLERY_SIZE"
	CommandGalleryDismiss CommandType = "GALLERY_DISMISS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	UptimeSeconds  int64  `json:"uptime_seconds"`
	OpenWindows    int    `json:"open_windows"`
	ActiveApp      string `json:"active_app,omitempty"`
	TrashCount     int    `json:"trash_count"`
	GalleryImages  int    `json:"gallery_images"`
	GalleryBackend string `json:"gallery_backend"`
	GalleryReady   bool   `json:"gallery_ready"`
	Advisory       string `json:"advisory,omitempty"`
	DaemonRunning  bool   `json:"daemon_running"`
}

// WindowPayload addresses one window. Section is only read by WINDOW_SECTION.
type WindowPayload struct {
	App     string `json:"app"`
	Section string `json:"section,omitempty"`
}

// WindowData is returned by window mutations.
type WindowData struct {
	Window  windows.WindowState `json:"window"`
	Phase   string              `json:"phase"`
	View    sections.View       `json:"view"`
	Changed bool                `json:"changed"`
}

// WindowsData is returned by WINDOW_LIST.
type WindowsData struct {
	Windows   []windows.WindowState `json:"windows"`
	ActiveApp string                `json:"active_app,omitempty"`
}

// ItemPayload addresses a desktop icon, trash entry or gallery image by id.
type ItemPayload struct {
	ID string `json:"id"`
}

// DragPayload replays a drag gesture: start on ID, hover state, release.
type DragPayload struct {
	ID        string `json:"id"`
	OverTrash bool   `json:"over_trash"`
}

// TrashData is returned by trash commands.
type TrashData struct {
	Entries []trash.Entry `json:"entries"`
	// Changed reports whether a restore or drag actually moved an item.
	Changed bool     `json:"changed"`
	Removed []string `json:"removed,omitempty"`
}

// IconsData is returned by ICONS.
type IconsData struct {
	Icons []desktop.Item    `json:"icons"`
	Dock  []desktop.DockApp `json:"dock"`
}

// LsPayload resolves a path under a location root.
type LsPayload struct {
	Location string   `json:"location"`
	Path     []string `json:"path,omitempty"`
}

// LsData is the resolved node, with children for folders.
type LsData struct {
	Node     vfs.Descriptor   `json:"node"`
	Children []vfs.Descriptor `json:"children,omitempty"`
}

type SearchPayload struct {
	Query string `json:"query"`
}

// SearchHit is one fuzzy match in the virtual tree.
type SearchHit struct {
	Location string   `json:"location"`
	Path     []string `json:"path"`
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Score    int      `json:"score"`
}

type SearchData struct {
	Hits []SearchHit `json:"hits"`
}

type ExecPayload struct {
	Command string `json:"command"`
}

// ExecData carries terminal output lines. Clear asks the client to wipe its
// scrollback.
type ExecData struct {
	Lines []string `json:"lines"`
	Clear bool     `json:"clear,omitempty"`
}

// TerminalData is the terminal window's scrollback. Lines is Entries
// flattened with each command echoed after Prompt.
type TerminalData struct {
	Prompt  string           `json:"prompt"`
	Entries []terminal.Entry `json:"entries"`
	Lines   []string         `json:"lines"`
}

// Recall directions.
const (
	RecallPrevious = "previous"
	RecallNext     = "next"
)

type RecallPayload struct {
	Direction string `json:"direction"`
}

// RecallData carries the recalled command line. OK is false when there is
// nothing further in that direction.
type RecallData struct {
	Line string `json:"line"`
	OK   bool   `json:"ok"`
}

// GalleryImageInfo describes a stored image without its data URL.
type GalleryImageInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	MIME  string `json:"mime"`
	Bytes int    `json:"bytes"`
}

type GalleryData struct {
	Images   []GalleryImageInfo `json:"images"`
	Advisory string             `json:"advisory,omitempty"`
}

// GalleryUploadPayload carries raw image bytes (base64 in JSON).
type GalleryUploadPayload struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

type GallerySizeData struct {
	Bytes    int64  `json:"bytes"`
	Human    string `json:"human"`
	Advisory string `json:"advisory,omitempty"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// NewRequest builds a request, marshalling payload when non-nil.
func NewRequest(cmd CommandType, payload interface{}) (*Request, error) {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}
	return req, nil
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// DecodePayload unmarshals the request payload into out.
func (r *Request) DecodePayload(out interface{}) error {
	if len(r.Payload) == 0 {
		return fmt.Errorf("missing %s payload", r.Command)
	}
	if err := json.Unmarshal(r.Payload, out); err != nil {
		return fmt.Errorf("invalid %s payload: %w", r.Command, err)
	}
	return nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
