package daemon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/1broseidon/foliodesk/internal/activity"
	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/ipc"
	"github.com/1broseidon/foliodesk/internal/metrics"
	"github.com/1broseidon/foliodesk/internal/terminal"
	"github.com/1broseidon/foliodesk/internal/vfs"
)

// handleCommand runs on the event loop and returns the response data.
func (d *Daemon) handleCommand(ctx context.Context, req *ipc.Request) (any, error) {
	switch req.Command {
	case ipc.CommandGetStatus:
		return d.handleGetStatus(), nil
	case ipc.CommandSnapshot:
		return d.store.Snapshot(), nil

	case ipc.CommandWindowOpen, ipc.CommandWindowClose, ipc.CommandWindowFocus,
		ipc.CommandWindowSection, ipc.CommandLaunch:
		return d.handleWindow(req)
	case ipc.CommandWindowList:
		return d.handleWindowList(), nil

	case ipc.CommandTrashList, ipc.CommandTrashAdd, ipc.CommandTrashRestore,
		ipc.CommandTrashEmpty, ipc.CommandDrag:
		return d.handleTrash(req)

	case ipc.CommandIcons:
		return ipc.IconsData{Icons: d.store.Icons(), Dock: d.store.Dock()}, nil
	case ipc.CommandOpen:
		return d.handleOpenItem(req)
	case ipc.CommandLs:
		return d.handleLs(req)
	case ipc.CommandSearch:
		return d.handleSearch(req)
	case ipc.CommandExec:
		return d.handleExec(req)
	case ipc.CommandTerminal:
		return d.terminalData(), nil
	case ipc.CommandTerminalRecall:
		return d.handleRecall(req)

	case ipc.CommandGalleryList:
		return d.galleryData(), nil
	case ipc.CommandGalleryUpload:
		return d.handleGalleryUpload(req)
	case ipc.CommandGalleryDelete:
		return d.handleGalleryDelete(req)
	case ipc.CommandGallerySize:
		return d.handleGallerySize(ctx)
	case ipc.CommandGalleryDismiss:
		d.gallery.DismissAdvisory()
		return nil, nil

	default:
		return nil, fmt.Errorf("Unknown command: %s", req.Command)
	}
}

func (d *Daemon) handleGetStatus() ipc.StatusData {
	snap := d.store.Snapshot()
	return ipc.StatusData{
		UptimeSeconds:  int64(time.Since(d.startTime).Seconds()),
		OpenWindows:    snap.OpenCount(),
		ActiveApp:      snap.ActiveApp,
		TrashCount:     len(snap.Trash),
		GalleryImages:  len(d.gallery.Images()),
		GalleryBackend: d.backend,
		GalleryReady:   d.gallery.Ready(),
		Advisory:       d.gallery.Advisory(),
		DaemonRunning:  true,
	}
}

func (d *Daemon) handleWindow(req *ipc.Request) (*ipc.WindowData, error) {
	var p ipc.WindowPayload
	if err := req.DecodePayload(&p); err != nil {
		return nil, err
	}
	if p.App == "" {
		return nil, fmt.Errorf("app is required")
	}

	changed := true
	switch req.Command {
	case ipc.CommandWindowOpen:
		if _, err := d.store.Open(p.App); err != nil {
			return nil, err
		}
	case ipc.CommandLaunch:
		if _, err := d.store.Launch(p.App); err != nil {
			return nil, err
		}
	default:
		// Close, focus and section changes are no-ops on closed windows; an
		// unknown app is still an error.
		if _, err := d.store.Window(p.App); err != nil {
			return nil, err
		}
		switch req.Command {
		case ipc.CommandWindowClose:
			changed = d.store.Close(p.App)
		case ipc.CommandWindowFocus:
			changed = d.store.Focus(p.App)
		case ipc.CommandWindowSection:
			if p.Section == "" {
				return nil, fmt.Errorf("section is required")
			}
			changed = d.store.ChangeSection(p.App, p.Section)
		}
	}
	return d.windowData(p.App, changed)
}

func (d *Daemon) windowData(app string, changed bool) (*ipc.WindowData, error) {
	w, err := d.store.Window(app)
	if err != nil {
		return nil, err
	}
	view, err := d.store.View(app)
	if err != nil {
		return nil, err
	}
	return &ipc.WindowData{
		Window:  w,
		Phase:   d.store.Phase(app).String(),
		View:    view,
		Changed: changed,
	}, nil
}

func (d *Daemon) handleWindowList() ipc.WindowsData {
	data := ipc.WindowsData{Windows: d.store.Windows()}
	if w, ok := d.store.Active(); ok {
		data.ActiveApp = w.AppID
	}
	return data
}

func (d *Daemon) handleOpenItem(req *ipc.Request) (*ipc.WindowData, error) {
	var p ipc.ItemPayload
	if err := req.DecodePayload(&p); err != nil {
		return nil, err
	}
	w, err := d.store.OpenItem(p.ID)
	if err != nil {
		return nil, err
	}
	return d.windowData(w.AppID, true)
}

func (d *Daemon) handleTrash(req *ipc.Request) (*ipc.TrashData, error) {
	data := &ipc.TrashData{}

	switch req.Command {
	case ipc.CommandTrashAdd:
		var p ipc.ItemPayload
		if err := req.DecodePayload(&p); err != nil {
			return nil, err
		}
		if err := d.store.MoveToTrash(p.ID); err != nil {
			return nil, err
		}
		data.Changed = true
	case ipc.CommandTrashRestore:
		var p ipc.ItemPayload
		if err := req.DecodePayload(&p); err != nil {
			return nil, err
		}
		data.Changed = d.store.Restore(p.ID)
	case ipc.CommandTrashEmpty:
		data.Removed = d.store.EmptyTrash()
		data.Changed = len(data.Removed) > 0
	case ipc.CommandDrag:
		var p ipc.DragPayload
		if err := req.DecodePayload(&p); err != nil {
			return nil, err
		}
		if err := d.store.DragStart(p.ID); err != nil {
			return nil, err
		}
		d.store.SetOverTrash(p.OverTrash)
		data.Changed = d.store.DragEnd()
	}

	data.Entries = d.store.Trash()
	return data, nil
}

func (d *Daemon) handleLs(req *ipc.Request) (*ipc.LsData, error) {
	var p ipc.LsPayload
	if err := req.DecodePayload(&p); err != nil {
		return nil, err
	}
	loc, err := vfs.ParseLocation(p.Location)
	if err != nil {
		return nil, err
	}
	n, err := d.store.Ls(loc, p.Path...)
	if err != nil {
		return nil, err
	}

	data := &ipc.LsData{Node: vfs.Describe(n, false)}
	if folder, ok := n.(*vfs.Folder); ok {
		children := vfs.ListChildren(folder)
		data.Children = make([]vfs.Descriptor, 0, len(children))
		for _, child := range children {
			data.Children = append(data.Children, vfs.Describe(child, false))
		}
	}
	return data, nil
}

func (d *Daemon) handleSearch(req *ipc.Request) (*ipc.SearchData, error) {
	var p ipc.SearchPayload
	if err := req.DecodePayload(&p); err != nil {
		return nil, err
	}
	hits := d.store.Search(p.Query)
	data := &ipc.SearchData{Hits: make([]ipc.SearchHit, 0, len(hits))}
	for _, h := range hits {
		data.Hits = append(data.Hits, ipc.SearchHit{
			Location: string(h.Location),
			Path:     h.Path,
			Name:     h.Node.Info().Name,
			Kind:     h.Node.Kind().String(),
			Score:    h.Score,
		})
	}
	return data, nil
}

func (d *Daemon) handleExec(req *ipc.Request) (*ipc.ExecData, error) {
	var p ipc.ExecPayload
	if err := req.DecodePayload(&p); err != nil {
		return nil, err
	}
	res := d.store.Exec(p.Command)
	lines := res.Lines
	if lines == nil {
		lines = []string{}
	}
	return &ipc.ExecData{Lines: lines, Clear: res.Clear}, nil
}

func (d *Daemon) terminalData() *ipc.TerminalData {
	term := d.store.Terminal()
	lines := term.Lines()
	if lines == nil {
		lines = []string{}
	}
	return &ipc.TerminalData{Prompt: terminal.Prompt, Entries: term.Entries(), Lines: lines}
}

func (d *Daemon) handleRecall(req *ipc.Request) (*ipc.RecallData, error) {
	var p ipc.RecallPayload
	if err := req.DecodePayload(&p); err != nil {
		return nil, err
	}
	var data ipc.RecallData
	switch p.Direction {
	case ipc.RecallPrevious:
		data.Line, data.OK = d.store.Terminal().Previous()
	case ipc.RecallNext:
		data.Line, data.OK = d.store.Terminal().Next()
	default:
		return nil, fmt.Errorf("unknown recall direction %q", p.Direction)
	}
	return &data, nil
}

func (d *Daemon) galleryData() ipc.GalleryData {
	images := d.gallery.Images()
	data := ipc.GalleryData{
		Images:   make([]ipc.GalleryImageInfo, 0, len(images)),
		Advisory: d.gallery.Advisory(),
	}
	for _, img := range images {
		data.Images = append(data.Images, imageInfo(img))
	}
	return data
}

func imageInfo(img gallery.Image) ipc.GalleryImageInfo {
	info := ipc.GalleryImageInfo{ID: img.ID, Title: img.Title, MIME: img.MIMEType()}
	if raw, err := img.Bytes(); err == nil {
		info.Bytes = len(raw)
	}
	return info
}

func (d *Daemon) handleGalleryUpload(req *ipc.Request) (*ipc.GalleryImageInfo, error) {
	var p ipc.GalleryUploadPayload
	if err := req.DecodePayload(&p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	img, err := d.gallery.Upload(p.Name, p.MIME, p.Data)
	metrics.RecordGalleryUpload(err == nil)
	if err != nil {
		var verr *gallery.ValidationError
		if errors.As(err, &verr) {
			d.activity.Log(activity.ActionGalleryError, "", map[string]any{"name": p.Name, "reason": verr.Reason})
		}
		return nil, err
	}

	d.activity.Log(activity.ActionGalleryUpload, img.ID, map[string]any{"title": img.Title, "bytes": len(p.Data)})
	info := imageInfo(img)
	return &info, nil
}

func (d *Daemon) handleGalleryDelete(req *ipc.Request) (any, error) {
	var p ipc.ItemPayload
	if err := req.DecodePayload(&p); err != nil {
		return nil, err
	}
	if err := d.gallery.Delete(p.ID); err != nil {
		return nil, err
	}
	d.activity.Log(activity.ActionGalleryDelete, p.ID, nil)
	return nil, nil
}

func (d *Daemon) handleGallerySize(ctx context.Context) (*ipc.GallerySizeData, error) {
	n, err := d.gallery.Usage(ctx)
	if err != nil {
		return nil, err
	}
	return &ipc.GallerySizeData{
		Bytes:    n,
		Human:    gallery.HumanUsage(n),
		Advisory: d.gallery.Advisory(),
	}, nil
}
