package daemon

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/foliodesk/internal/activity"
	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/ipc"
	"github.com/1broseidon/foliodesk/internal/sections"
	"github.com/1broseidon/foliodesk/internal/terminal"
)

type harness struct {
	daemon  *Daemon
	client  *ipc.Client
	logPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	// Unix socket paths are length-limited; keep the directory short.
	dir, err := os.MkdirTemp("", "fd")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logPath := filepath.Join(dir, "activity.log")
	act, err := activity.NewLogger(activity.Config{Enabled: true, Level: activity.LevelInfo, FilePath: logPath, MaxSizeMB: 1, MaxFiles: 1, PreviewLength: 50})
	if err != nil {
		t.Fatalf("activity logger: %v", err)
	}

	store := desktop.New(desktop.Options{})
	gal := gallery.New(gallery.NewMemoryStore(), gallery.Options{Logger: logger})
	d := New(store, gal, Options{Logger: logger, Activity: act, GalleryBackend: gallery.BackendMemory})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	sock := filepath.Join(dir, "d.sock")
	srv := ipc.NewServerAt(sock, d, logger)
	if err := srv.Start(); err != nil {
		cancel()
		t.Fatalf("start server: %v", err)
	}

	t.Cleanup(func() {
		srv.Stop()
		cancel()
		<-done
		gal.Close()
		act.Close()
	})

	h := &harness{daemon: d, client: ipc.NewClientAt(sock), logPath: logPath}
	h.waitGalleryReady(t)
	return h
}

func (h *harness) waitGalleryReady(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st, err := h.client.GetStatus()
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if st.GalleryReady {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("gallery never became ready")
}

func TestWindowCommands(t *testing.T) {
	h := newHarness(t)
	c := h.client

	finder, err := c.OpenWindow("finder")
	if err != nil {
		t.Fatalf("open finder: %v", err)
	}
	if finder.Phase != "open-active" || !finder.View.Sidebar {
		t.Fatalf("unexpected finder window: %+v", finder)
	}

	term, err := c.OpenWindow("terminal")
	if err != nil {
		t.Fatalf("open terminal: %v", err)
	}
	if term.View.Renderer != sections.RendererTerminal || term.View.Sidebar {
		t.Fatalf("terminal view = %+v", term.View)
	}
	if term.Window.StackOrder <= finder.Window.StackOrder {
		t.Fatalf("terminal stack %d not above finder %d", term.Window.StackOrder, finder.Window.StackOrder)
	}

	list, err := c.ListWindows()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.ActiveApp != "terminal" {
		t.Fatalf("active = %q, want terminal", list.ActiveApp)
	}

	sec, err := c.ChangeSection("finder", "gallery")
	if err != nil {
		t.Fatalf("section: %v", err)
	}
	if sec.View.Renderer != sections.RendererGallery || sec.Phase != "open-background" {
		t.Fatalf("section change = %+v", sec)
	}

	closed, err := c.CloseWindow("finder")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !closed.Changed || closed.Window.IsOpen {
		t.Fatalf("close = %+v", closed)
	}
	again, err := c.CloseWindow("finder")
	if err != nil {
		t.Fatalf("close again: %v", err)
	}
	if again.Changed {
		t.Fatal("closing a closed window reported a change")
	}

	if _, err := c.OpenWindow("launchpad"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found for unknown app, got %v", err)
	}
	if _, err := c.ChangeSection("finder", ""); err == nil {
		t.Fatal("expected error for empty section")
	}
}

func TestTrashCommands(t *testing.T) {
	h := newHarness(t)
	c := h.client

	tr, err := c.MoveToTrash("proj1")
	if err != nil {
		t.Fatalf("trash: %v", err)
	}
	if len(tr.Entries) != 1 || tr.Entries[0].ID != "proj1" {
		t.Fatalf("entries = %+v", tr.Entries)
	}
	if _, err := c.MoveToTrash("proj1"); err == nil {
		t.Fatal("expected trashing a hidden icon to fail")
	}

	icons, err := c.Icons()
	if err != nil {
		t.Fatalf("icons: %v", err)
	}
	for _, it := range icons.Icons {
		if it.ID == "proj1" {
			t.Fatal("trashed icon still listed")
		}
	}

	drag, err := c.Drag("proj2", true)
	if err != nil {
		t.Fatalf("drag: %v", err)
	}
	if !drag.Changed || len(drag.Entries) != 2 {
		t.Fatalf("drag = %+v", drag)
	}
	miss, err := c.Drag("proj3", false)
	if err != nil {
		t.Fatalf("drag miss: %v", err)
	}
	if miss.Changed {
		t.Fatal("drag released away from trash trashed the item")
	}

	res, err := c.RestoreFromTrash("proj1")
	if err != nil || !res.Changed {
		t.Fatalf("restore = %+v, %v", res, err)
	}
	res, err = c.RestoreFromTrash("proj1")
	if err != nil || res.Changed {
		t.Fatalf("second restore = %+v, %v", res, err)
	}

	empty, err := c.EmptyTrash()
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if !slices.Equal(empty.Removed, []string{"proj2"}) || len(empty.Entries) != 0 {
		t.Fatalf("empty = %+v", empty)
	}

	data, err := os.ReadFile(h.logPath)
	if err != nil {
		t.Fatalf("read activity log: %v", err)
	}
	log := string(data)
	for _, want := range []string{"[TRASH-ADD] id=proj1", "[TRASH-RESTORE] id=proj1", "[TRASH-EMPTY] count=1 ids=proj2"} {
		if !strings.Contains(log, want) {
			t.Errorf("activity log missing %q:\n%s", want, log)
		}
	}
}

func TestTreeAndTerminalCommands(t *testing.T) {
	h := newHarness(t)
	c := h.client

	ls, err := c.Ls("work")
	if err != nil {
		t.Fatalf("ls work: %v", err)
	}
	if ls.Node.Kind != "folder" || len(ls.Children) == 0 {
		t.Fatalf("ls work = %+v", ls)
	}
	if _, err := c.Ls("downloads"); err == nil {
		t.Fatal("expected unknown location to fail")
	}
	if _, err := c.Ls("work", "no-such-id"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}

	out, err := c.Exec("  HELP ")
	if err != nil {
		t.Fatalf("exec help: %v", err)
	}
	if out.Lines[0] != terminal.HelpHeader {
		t.Fatalf("help first line = %q", out.Lines[0])
	}
	out, err = c.Exec("sudo")
	if err != nil {
		t.Fatalf("exec unknown: %v", err)
	}
	if out.Lines[1] != "Command not found: sudo" {
		t.Fatalf("unknown command output = %q", out.Lines)
	}
	out, err = c.Exec("clear")
	if err != nil || !out.Clear {
		t.Fatalf("clear = %+v, %v", out, err)
	}
	term, err := c.Terminal()
	if err != nil {
		t.Fatalf("terminal: %v", err)
	}
	if len(term.Entries) != 0 || len(term.Lines) != 0 {
		t.Fatalf("terminal after clear = %+v", term)
	}
	back, err := c.Recall(ipc.RecallPrevious)
	if err != nil || !back.OK || back.Line != "clear" {
		t.Fatalf("recall previous = %+v, %v", back, err)
	}
	if _, err := c.Recall("sideways"); err == nil {
		t.Fatal("expected unknown recall direction to fail")
	}
}

func TestTerminalSessionFollowsWindow(t *testing.T) {
	h := newHarness(t)
	c := h.client

	if _, err := c.OpenWindow("terminal"); err != nil {
		t.Fatalf("open terminal: %v", err)
	}
	term, err := c.Terminal()
	if err != nil {
		t.Fatalf("terminal: %v", err)
	}
	if term.Prompt != terminal.Prompt || len(term.Lines) == 0 || term.Lines[0] != "Welcome to Kshitij's Portfolio Terminal" {
		t.Fatalf("fresh terminal = %+v", term)
	}

	if _, err := c.Exec("about"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	term, _ = c.Terminal()
	if !slices.Contains(term.Lines, terminal.Prompt+" about") || len(term.Entries) != 2 {
		t.Fatalf("terminal after exec = %+v", term)
	}

	if _, err := c.CloseWindow("terminal"); err != nil {
		t.Fatalf("close: %v", err)
	}
	term, _ = c.Terminal()
	if len(term.Entries) != 1 || term.Entries[0].Command != "" {
		t.Fatalf("closing the terminal kept %+v", term.Entries)
	}
	if r, _ := c.Recall(ipc.RecallPrevious); r.OK {
		t.Fatalf("recall survived close: %+v", r)
	}
}

func TestGalleryCommands(t *testing.T) {
	h := newHarness(t)
	c := h.client

	png := []byte("\x89PNG\r\n\x1a\nfake")
	info, err := c.UploadImage("cat.png", "image/png", png)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if info.MIME != "image/png" || info.Bytes != len(png) || info.Title != "cat.png" {
		t.Fatalf("upload info = %+v", info)
	}

	if _, err := c.UploadImage("notes.txt", "text/plain", []byte("hi")); err == nil {
		t.Fatal("expected non-image upload to fail")
	}

	list, err := c.ListGallery()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Images) != 1 || list.Images[0].ID != info.ID {
		t.Fatalf("list = %+v", list)
	}

	if err := h.daemon.gallery.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	size, err := c.GallerySize()
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size.Bytes <= 2 || size.Human == "" {
		t.Fatalf("size = %+v", size)
	}

	if err := c.DeleteImage(info.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.DeleteImage(info.ID); err == nil {
		t.Fatal("expected deleting a missing image to fail")
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	resp := h.daemon.HandleRequest(&ipc.Request{Command: "BOGUS"})
	if resp.Status != "ERROR" || !strings.Contains(resp.Error, "Unknown command") {
		t.Fatalf("resp = %+v", resp)
	}
}
