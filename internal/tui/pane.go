package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/sections"
	"github.com/1broseidon/foliodesk/internal/terminal"
	"github.com/1broseidon/foliodesk/internal/vfs"
	"github.com/1broseidon/foliodesk/internal/windows"
)

// paneKey identifies the content a window shows. The pane reloads when it
// changes.
func paneKey(w windows.WindowState, snap desktop.Snapshot) string {
	key := w.AppID + "/" + w.ActiveSection
	if sections.Resolve(w).Renderer == sections.RendererTrash {
		ids := make([]string, 0, len(snap.Trash))
		for _, e := range snap.Trash {
			ids = append(ids, e.ID)
		}
		key += "/" + strings.Join(ids, ",")
	}
	return key
}

func loadPane(desk Desktop, key string, w windows.WindowState, snap desktop.Snapshot) tea.Cmd {
	return func() tea.Msg {
		lines, err := paneLines(desk, w, snap)
		return paneMsg{key: key, lines: lines, err: err}
	}
}

// paneLines renders the body of a sidebar window.
func paneLines(desk Desktop, w windows.WindowState, snap desktop.Snapshot) ([]string, error) {
	switch sections.Resolve(w).Renderer {
	case sections.RendererAbout:
		return aboutLines(desk)
	case sections.RendererExperience:
		return terminal.Execute("experience").Lines, nil
	case sections.RendererSkills:
		return terminal.Execute("skills").Lines, nil
	case sections.RendererContact:
		return terminal.Execute("contact").Lines, nil
	case sections.RendererProjects:
		return projectLines(desk)
	case sections.RendererProjectDetails:
		return projectDetailLines(desk, w.ActiveSection)
	case sections.RendererGallery:
		return galleryLines(desk)
	case sections.RendererTrash:
		return trashLines(snap), nil
	case sections.RendererPDF:
		return resumeLines(desk)
	default:
		return nil, nil
	}
}

func aboutLines(desk Desktop) ([]string, error) {
	root, err := desk.Ls(string(vfs.LocationAbout))
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, child := range root.Children {
		switch child.FileType {
		case string(vfs.FileText):
			file, err := desk.Ls(string(vfs.LocationAbout), child.ID)
			if err != nil {
				return nil, err
			}
			if file.Node.Subtitle != "" {
				lines = append(lines, file.Node.Subtitle, "")
			}
			lines = append(lines, file.Node.Description...)
		case string(vfs.FileImage):
			lines = append(lines, "[image] "+child.Name)
		default:
			lines = append(lines, child.Name)
		}
	}
	return lines, nil
}

func projectLines(desk Desktop) ([]string, error) {
	root, err := desk.Ls(string(vfs.LocationWork))
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(root.Children))
	for i, child := range root.Children {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, child.Name))
	}
	return lines, nil
}

// projectDetailLines maps project-N onto the Nth folder under work.
func projectDetailLines(desk Desktop, section string) ([]string, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(section, "project-"))
	if err != nil {
		return nil, fmt.Errorf("invalid project section %q", section)
	}
	root, err := desk.Ls(string(vfs.LocationWork))
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(root.Children) {
		return []string{sections.TitleFor(section), "", "No details available."}, nil
	}
	project := root.Children[n-1]
	folder, err := desk.Ls(string(vfs.LocationWork), project.ID)
	if err != nil {
		return nil, err
	}

	lines := []string{project.Name}
	if folder.Node.GitHub != "" {
		lines = append(lines, "GitHub: "+folder.Node.GitHub)
	}
	lines = append(lines, "")
	for _, child := range folder.Children {
		switch child.FileType {
		case string(vfs.FileText):
			file, err := desk.Ls(string(vfs.LocationWork), project.ID, child.ID)
			if err != nil {
				return nil, err
			}
			lines = append(lines, file.Node.Description...)
		case string(vfs.FileURL):
			lines = append(lines, child.Name+": "+child.Href)
		}
	}
	return lines, nil
}

func galleryLines(desk Desktop) ([]string, error) {
	data, err := desk.ListGallery()
	if err != nil {
		return nil, err
	}
	if len(data.Images) == 0 {
		return []string{"No images yet. Upload with: foliodesk gallery upload <file>"}, nil
	}
	lines := make([]string, 0, len(data.Images)+2)
	for _, img := range data.Images {
		lines = append(lines, fmt.Sprintf("%-24s %-11s %s", truncateLabel(img.Title, 24), img.MIME, humanize.Bytes(uint64(img.Bytes))))
	}
	if data.Advisory != "" {
		lines = append(lines, "", "! "+data.Advisory)
	}
	return lines, nil
}

func trashLines(snap desktop.Snapshot) []string {
	if len(snap.Trash) == 0 {
		return []string{"Trash is empty"}
	}
	lines := make([]string, 0, len(snap.Trash))
	for _, e := range snap.Trash {
		lines = append(lines, "🗑  "+e.Name)
	}
	return lines
}

func resumeLines(desk Desktop) ([]string, error) {
	root, err := desk.Ls(string(vfs.LocationResume))
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(root.Children))
	for _, child := range root.Children {
		if child.Href != "" {
			lines = append(lines, child.Name+" -> "+child.Href)
			continue
		}
		lines = append(lines, child.Name)
	}
	return lines, nil
}
