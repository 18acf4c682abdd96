package daemon

import (
	"log/slog"
	"slices"

	"github.com/1broseidon/foliodesk/internal/activity"
	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/metrics"
	"github.com/1broseidon/foliodesk/internal/terminal"
	"github.com/1broseidon/foliodesk/internal/trash"
	"github.com/1broseidon/foliodesk/internal/windows"
)

// observer forwards desktop changes to the activity log and metrics. It runs
// inside Store.emit, so it is on the event loop and may read the store.
type observer struct {
	store    *desktop.Store
	activity *activity.Logger
	logger   *slog.Logger
}

func newObserver(store *desktop.Store, log *activity.Logger, logger *slog.Logger) *observer {
	return &observer{store: store, activity: log, logger: logger}
}

var windowActions = map[windows.EventKind]activity.ActionType{
	windows.EventOpened:         activity.ActionWindowOpen,
	windows.EventClosed:         activity.ActionWindowClose,
	windows.EventFocused:        activity.ActionWindowFocus,
	windows.EventSectionChanged: activity.ActionWindowSection,
}

var trashActions = map[trash.Op]activity.ActionType{
	trash.OpAdd:     activity.ActionTrashAdd,
	trash.OpRestore: activity.ActionTrashRestore,
	trash.OpEmpty:   activity.ActionTrashEmpty,
}

func (o *observer) observe(c desktop.Change) {
	switch c.Kind {
	case desktop.ChangeWindow:
		app := first(c.IDs)
		var details map[string]any
		if w, err := o.store.Window(app); err == nil && w.IsOpen {
			details = map[string]any{"section": w.ActiveSection, "stack": w.StackOrder}
		}
		o.activity.Log(windowActions[windows.EventKind(c.Op)], app, details)
		metrics.RecordWindowEvent(c.Op, len(o.store.OpenWindows()))

	case desktop.ChangeTrash:
		action := trashActions[trash.Op(c.Op)]
		if c.Op == string(trash.OpEmpty) {
			o.activity.Log(action, "", map[string]any{"ids": c.IDs, "count": len(c.IDs)})
		} else {
			o.activity.Log(action, first(c.IDs), nil)
		}
		metrics.RecordTrashOp(c.Op, len(o.store.Trash()))

	case desktop.ChangeTerminal:
		o.activity.Log(activity.ActionTerminalExec, windows.AppTerminal, map[string]any{"command": c.Op})
		metrics.RecordTerminalCommand(slices.Contains(terminal.Commands(), c.Op))

	case desktop.ChangeDrag:
		o.logger.Debug("drag hover", "state", c.Op, "item", first(c.IDs))
	}
}

func first(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
