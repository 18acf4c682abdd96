package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/ipc"
)

func (s *Server) handleStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	st, err := s.desktop.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, *st, nil
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return windowResult(s.desktop.OpenWindow(args.App))
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return windowResult(s.desktop.CloseWindow(args.App))
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return windowResult(s.desktop.FocusWindow(args.App))
}

func (s *Server) handleChangeSection(_ context.Context, _ *mcpsdk.CallToolRequest, args ChangeSectionInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if strings.TrimSpace(args.Section) == "" {
		return nil, WindowOutput{}, fmt.Errorf("section is required")
	}
	return windowResult(s.desktop.ChangeSection(args.App, args.Section))
}

func windowResult(data *ipc.WindowData, err error) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, toWindowOutput(data), nil
}

func toWindowOutput(data *ipc.WindowData) WindowOutput {
	return WindowOutput{
		App:        data.Window.AppID,
		IsOpen:     data.Window.IsOpen,
		StackOrder: data.Window.StackOrder,
		Section:    data.Window.ActiveSection,
		Phase:      data.Phase,
		Title:      data.View.Title,
		Renderer:   data.View.Renderer.String(),
		Sidebar:    data.View.Sidebar,
		Changed:    data.Changed,
	}
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, WindowsOutput, error) {
	data, err := s.desktop.ListWindows()
	if err != nil {
		return nil, WindowsOutput{}, err
	}
	return nil, *data, nil
}

func (s *Server) handleListIcons(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, IconsOutput, error) {
	data, err := s.desktop.Icons()
	if err != nil {
		return nil, IconsOutput{}, err
	}
	return nil, *data, nil
}

func (s *Server) handleTrashItem(_ context.Context, _ *mcpsdk.CallToolRequest, args ItemInput) (*mcpsdk.CallToolResult, TrashOutput, error) {
	return trashResult(s.desktop.MoveToTrash(args.ID))
}

func (s *Server) handleRestoreItem(_ context.Context, _ *mcpsdk.CallToolRequest, args ItemInput) (*mcpsdk.CallToolResult, TrashOutput, error) {
	return trashResult(s.desktop.RestoreFromTrash(args.ID))
}

func (s *Server) handleEmptyTrash(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, TrashOutput, error) {
	return trashResult(s.desktop.EmptyTrash())
}

func (s *Server) handleListTrash(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, TrashOutput, error) {
	return trashResult(s.desktop.ListTrash())
}

func trashResult(data *ipc.TrashData, err error) (*mcpsdk.CallToolResult, TrashOutput, error) {
	if err != nil {
		return nil, TrashOutput{}, err
	}
	return nil, *data, nil
}

func (s *Server) handleLs(_ context.Context, _ *mcpsdk.CallToolRequest, args LsInput) (*mcpsdk.CallToolResult, LsOutput, error) {
	data, err := s.desktop.Ls(args.Location, args.Path...)
	if err != nil {
		return nil, LsOutput{}, err
	}
	return nil, toLsOutput(args, data), nil
}

func toLsOutput(args LsInput, data *ipc.LsData) LsOutput {
	path := args.Path
	if path == nil {
		path = []string{}
	}
	out := LsOutput{
		Location: args.Location,
		Path:     path,
		Name:     data.Node.Name,
		Kind:     data.Node.Kind,
		FileType: data.Node.FileType,
		Text:     data.Node.Description,
		Href:     data.Node.Href,
	}
	for _, c := range data.Children {
		out.Children = append(out.Children, EntryInfo{ID: c.ID, Name: c.Name, Kind: c.Kind, FileType: c.FileType})
	}
	return out
}

func (s *Server) handleSearch(_ context.Context, _ *mcpsdk.CallToolRequest, args SearchInput) (*mcpsdk.CallToolResult, SearchOutput, error) {
	data, err := s.desktop.Search(args.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, *data, nil
}

func (s *Server) handleRunTerminal(_ context.Context, _ *mcpsdk.CallToolRequest, args TerminalInput) (*mcpsdk.CallToolResult, any, error) {
	data, err := s.desktop.Exec(args.Command)
	if err != nil {
		return nil, nil, err
	}
	text := strings.Join(data.Lines, "\n")
	if data.Clear {
		text = "(scrollback cleared)"
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}, nil, nil
}

func (s *Server) handleGalleryList(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, GalleryOutput, error) {
	data, err := s.desktop.ListGallery()
	if err != nil {
		return nil, GalleryOutput{}, err
	}
	return nil, *data, nil
}

func (s *Server) handleGalleryUpload(_ context.Context, _ *mcpsdk.CallToolRequest, args GalleryUploadInput) (*mcpsdk.CallToolResult, ImageOutput, error) {
	if strings.TrimSpace(args.Path) == "" {
		return nil, ImageOutput{}, fmt.Errorf("path is required")
	}
	raw, err := os.ReadFile(args.Path)
	if err != nil {
		return nil, ImageOutput{}, fmt.Errorf("failed to read %s: %w", args.Path, err)
	}

	title := strings.TrimSpace(args.Title)
	if title == "" {
		title = filepath.Base(args.Path)
	}
	info, err := s.desktop.UploadImage(title, gallery.DetectMIME(args.Path, raw), raw)
	if err != nil {
		s.logger.Warn("gallery upload rejected", "path", args.Path, "error", err)
		return nil, ImageOutput{}, err
	}
	return nil, *info, nil
}

func (s *Server) handleGalleryDelete(_ context.Context, _ *mcpsdk.CallToolRequest, args GalleryDeleteInput) (*mcpsdk.CallToolResult, GalleryDeleteOutput, error) {
	if err := s.desktop.DeleteImage(args.ID); err != nil {
		return nil, GalleryDeleteOutput{}, err
	}
	return nil, GalleryDeleteOutput{ID: args.ID, Deleted: true}, nil
}
