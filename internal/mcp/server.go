// Package mcp exposes the running desktop session as Model Context Protocol
// tools over stdio. Every tool call is forwarded to the daemon, so MCP clients
// and the CLI share one session.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/foliodesk/internal/ipc"
)

const (
	ServerName    = "foliodesk"
	ServerVersion = "0.1.0"
)

// Desktop is the daemon surface the tools call. *ipc.Client implements it.
type Desktop interface {
	GetStatus() (*ipc.StatusData, error)
	OpenWindow(app string) (*ipc.WindowData, error)
	CloseWindow(app string) (*ipc.WindowData, error)
	FocusWindow(app string) (*ipc.WindowData, error)
	ChangeSection(app, section string) (*ipc.WindowData, error)
	ListWindows() (*ipc.WindowsData, error)
	ListTrash() (*ipc.TrashData, error)
	MoveToTrash(id string) (*ipc.TrashData, error)
	RestoreFromTrash(id string) (*ipc.TrashData, error)
	EmptyTrash() (*ipc.TrashData, error)
	Icons() (*ipc.IconsData, error)
	Ls(location string, path ...string) (*ipc.LsData, error)
	Search(query string) (*ipc.SearchData, error)
	Exec(command string) (*ipc.ExecData, error)
	ListGallery() (*ipc.GalleryData, error)
	UploadImage(name, mime string, data []byte) (*ipc.GalleryImageInfo, error)
	DeleteImage(id string) error
}

// Server is the MCP server for the desktop session.
type Server struct {
	mcpServer *mcpsdk.Server
	desktop   Desktop
	logger    *slog.Logger
}

// NewServer creates an MCP server backed by desk.
func NewServer(desk Desktop, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{desktop: desk, logger: logger}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "desktop_status",
		Description: "Report the desktop session: open window count, front-most app, trash size and gallery state.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open an application window and bring it to the front. An open window is raised and keeps its current section.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close an application window. Its section resets to the app default. Closing the terminal clears its scrollback.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring an open window to the front. Closed windows are left closed.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "change_section",
		Description: "Switch the pane an open window shows, e.g. finder to projects or experience-1.",
	}, s.handleChangeSection)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List every window with its open flag, stack order and section.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_icons",
		Description: "List desktop icons that are not in the trash, and the dock.",
	}, s.handleListIcons)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "trash_item",
		Description: "Move a desktop icon to the trash. The icon disappears from the desktop until restored.",
	}, s.handleTrashItem)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_item",
		Description: "Restore a trashed item to the desktop. Restoring an item that is not in the trash changes nothing.",
	}, s.handleRestoreItem)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "empty_trash",
		Description: "Empty the trash. Emptied items reappear on the desktop.",
	}, s.handleEmptyTrash)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_trash",
		Description: "List trashed items, oldest first.",
	}, s.handleListTrash)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_directory",
		Description: "Resolve a path in the portfolio file tree. Folders list their children; text files include their lines.",
	}, s.handleLs)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "search",
		Description: "Fuzzy-search file and folder names across the portfolio file tree.",
	}, s.handleSearch)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_terminal",
		Description: "Run a command in the portfolio terminal and return its output. Run help to list commands.",
	}, s.handleRunTerminal)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gallery_list",
		Description: "List gallery images with their MIME type and size, plus any storage advisory.",
	}, s.handleGalleryList)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gallery_upload",
		Description: "Upload a local image file to the gallery. Non-images and files over the size limit are rejected.",
	}, s.handleGalleryUpload)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gallery_delete",
		Description: "Delete a gallery image by id.",
	}, s.handleGalleryDelete)
}
