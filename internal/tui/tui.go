// Package tui renders the desktop session in a terminal: desktop icons, the
// dock, the front-most window and the portfolio terminal.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/ipc"
)

// Desktop is the session surface the TUI drives. *ipc.Client implements it.
type Desktop interface {
	Snapshot() (*desktop.Snapshot, error)
	OpenItem(id string) (*ipc.WindowData, error)
	Launch(dockID string) (*ipc.WindowData, error)
	FocusWindow(app string) (*ipc.WindowData, error)
	CloseWindow(app string) (*ipc.WindowData, error)
	ChangeSection(app, section string) (*ipc.WindowData, error)
	MoveToTrash(id string) (*ipc.TrashData, error)
	RestoreFromTrash(id string) (*ipc.TrashData, error)
	EmptyTrash() (*ipc.TrashData, error)
	Exec(command string) (*ipc.ExecData, error)
	Terminal() (*ipc.TerminalData, error)
	Recall(direction string) (*ipc.RecallData, error)
	Ls(location string, path ...string) (*ipc.LsData, error)
	ListGallery() (*ipc.GalleryData, error)
}

// Run starts the TUI and blocks until the user quits.
func Run(desk Desktop, source string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	p := tea.NewProgram(newModel(desk, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
