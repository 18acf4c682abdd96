package desktop

import "github.com/1broseidon/foliodesk/internal/windows"

// DockApp describes one dock entry.
type DockApp struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Icon    string `json:"icon" yaml:"icon"`
	CanOpen bool   `json:"can_open" yaml:"can_open"`
}

// Item is a desktop icon. Opens names the app launched on double click.
type Item struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Icon     string `json:"icon" yaml:"icon"`
	IsFolder bool   `json:"is_folder" yaml:"is_folder"`
	Opens    string `json:"opens" yaml:"opens"`
}

// Context menu actions offered on a desktop icon.
const (
	ActionOpen    = "Open"
	ActionCopy    = "Copy"
	ActionGetInfo = "Get Info"
	ActionTrash   = "Move to Trash"
)

// ContextMenu returns the actions for a desktop icon, in menu order.
func ContextMenu() []string {
	return []string{ActionOpen, ActionCopy, ActionGetInfo, ActionTrash}
}

// DefaultDock returns the dock applications.
func DefaultDock() []DockApp {
	return []DockApp{
		{ID: windows.AppFinder, Name: "Portfolio", Icon: "/images/finder.png", CanOpen: true},
		{ID: windows.AppSafari, Name: "Projects", Icon: "/images/safari.png", CanOpen: true},
		{ID: windows.AppPhotos, Name: "Gallery", Icon: "/images/photos.png", CanOpen: true},
		{ID: windows.AppContact, Name: "Contact", Icon: "/images/contact.png", CanOpen: true},
		{ID: windows.AppTerminal, Name: "Terminal", Icon: "/images/terminal.png", CanOpen: true},
		{ID: windows.AppResume, Name: "Resume", Icon: "/images/pdf.png", CanOpen: true},
		{ID: windows.AppTrash, Name: "Trash", Icon: "/images/trash.png", CanOpen: true},
	}
}

// DefaultItems returns the desktop icons.
func DefaultItems() []Item {
	return []Item{
		{ID: "resume", Name: "Resume.pdf", Icon: "/images/pdf.png", Opens: windows.AppResume},
		{ID: "proj1", Name: "Project 1", Icon: "/images/folder.png", IsFolder: true, Opens: windows.AppSafari},
		{ID: "proj2", Name: "Project 2", Icon: "/images/folder.png", IsFolder: true, Opens: windows.AppSafari},
		{ID: "proj3", Name: "Project 3", Icon: "/images/folder.png", IsFolder: true, Opens: windows.AppSafari},
	}
}

// dockHidden lists apps reachable only from desktop icons.
var dockHidden = map[string]bool{windows.AppResume: true}
