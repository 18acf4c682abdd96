package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default runtime socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// call sends cmd with an optional payload and decodes the data into out when
// out is non-nil.
func (c *Client) call(cmd CommandType, payload, out interface{}) error {
	req, err := NewRequest(cmd, payload)
	if err != nil {
		return err
	}
	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Snapshot retrieves the full desktop session.
func (c *Client) Snapshot() (*desktop.Snapshot, error) {
	var snap desktop.Snapshot
	if err := c.call(CommandSnapshot, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) window(cmd CommandType, app, section string) (*WindowData, error) {
	var data WindowData
	if err := c.call(cmd, WindowPayload{App: app, Section: section}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// OpenWindow opens app and brings it to the front.
func (c *Client) OpenWindow(app string) (*WindowData, error) {
	return c.window(CommandWindowOpen, app, "")
}

// CloseWindow closes app.
func (c *Client) CloseWindow(app string) (*WindowData, error) {
	return c.window(CommandWindowClose, app, "")
}

// FocusWindow raises an open window.
func (c *Client) FocusWindow(app string) (*WindowData, error) {
	return c.window(CommandWindowFocus, app, "")
}

// ChangeSection switches the pane shown by an open window.
func (c *Client) ChangeSection(app, section string) (*WindowData, error) {
	return c.window(CommandWindowSection, app, section)
}

// Launch activates a dock entry.
func (c *Client) Launch(dockID string) (*WindowData, error) {
	return c.window(CommandLaunch, dockID, "")
}

// ListWindows returns every window record.
func (c *Client) ListWindows() (*WindowsData, error) {
	var data WindowsData
	if err := c.call(CommandWindowList, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) trash(cmd CommandType, payload interface{}) (*TrashData, error) {
	var data TrashData
	if err := c.call(cmd, payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListTrash returns trashed entries, oldest first.
func (c *Client) ListTrash() (*TrashData, error) {
	return c.trash(CommandTrashList, nil)
}

// MoveToTrash trashes a desktop icon.
func (c *Client) MoveToTrash(id string) (*TrashData, error) {
	return c.trash(CommandTrashAdd, ItemPayload{ID: id})
}

// RestoreFromTrash puts a trashed item back on the desktop.
func (c *Client) RestoreFromTrash(id string) (*TrashData, error) {
	return c.trash(CommandTrashRestore, ItemPayload{ID: id})
}

// EmptyTrash clears the trash.
func (c *Client) EmptyTrash() (*TrashData, error) {
	return c.trash(CommandTrashEmpty, nil)
}

// Drag replays a drag of id, released over the trash when overTrash is set.
func (c *Client) Drag(id string, overTrash bool) (*TrashData, error) {
	return c.trash(CommandDrag, DragPayload{ID: id, OverTrash: overTrash})
}

// Icons returns the visible desktop icons and the dock.
func (c *Client) Icons() (*IconsData, error) {
	var data IconsData
	if err := c.call(CommandIcons, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// OpenItem double-clicks a desktop icon.
func (c *Client) OpenItem(id string) (*WindowData, error) {
	var data WindowData
	if err := c.call(CommandOpen, ItemPayload{ID: id}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Ls resolves a path in the virtual tree.
func (c *Client) Ls(location string, path ...string) (*LsData, error) {
	var data LsData
	if err := c.call(CommandLs, LsPayload{Location: location, Path: path}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Search fuzzy-matches names in the virtual tree.
func (c *Client) Search(query string) (*SearchData, error) {
	var data SearchData
	if err := c.call(CommandSearch, SearchPayload{Query: query}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Exec runs a terminal command.
func (c *Client) Exec(command string) (*ExecData, error) {
	var data ExecData
	if err := c.call(CommandExec, ExecPayload{Command: command}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Terminal returns the terminal window's scrollback.
func (c *Client) Terminal() (*TerminalData, error) {
	var data TerminalData
	if err := c.call(CommandTerminal, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Recall steps through previously entered terminal commands. direction is
// RecallPrevious or RecallNext.
func (c *Client) Recall(direction string) (*RecallData, error) {
	var data RecallData
	if err := c.call(CommandTerminalRecall, RecallPayload{Direction: direction}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListGallery returns stored image metadata.
func (c *Client) ListGallery() (*GalleryData, error) {
	var data GalleryData
	if err := c.call(CommandGalleryList, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// UploadImage stores an image.
func (c *Client) UploadImage(name, mime string, data []byte) (*GalleryImageInfo, error) {
	var info GalleryImageInfo
	if err := c.call(CommandGalleryUpload, GalleryUploadPayload{Name: name, MIME: mime, Data: data}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteImage removes a stored image.
func (c *Client) DeleteImage(id string) error {
	return c.call(CommandGalleryDelete, ItemPayload{ID: id}, nil)
}

// GallerySize reports the persisted collection size.
func (c *Client) GallerySize() (*GallerySizeData, error) {
	var data GallerySizeData
	if err := c.call(CommandGallerySize, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DismissAdvisory clears the gallery advisory.
func (c *Client) DismissAdvisory() error {
	return c.call(CommandGalleryDismiss, nil, nil)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
