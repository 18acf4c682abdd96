// Package daemon hosts one desktop session behind the IPC socket.
//
// Every request is applied on a single event-loop goroutine, so the desktop
// store never sees concurrent calls. The gallery persists on its own
// goroutine and is loaded in the background when the loop starts.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/foliodesk/internal/activity"
	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/ipc"
	"github.com/1broseidon/foliodesk/internal/metrics"
)

// Options configure a Daemon. Nil loggers fall back to slog.Default and a
// disabled activity log.
type Options struct {
	Logger         *slog.Logger
	Activity       *activity.Logger
	GalleryBackend string
	SampleInterval time.Duration
}

// Daemon owns the session and serialises requests onto it.
type Daemon struct {
	store    *desktop.Store
	gallery  *gallery.Gallery
	activity *activity.Logger
	logger   *slog.Logger
	sampler  *Sampler
	backend  string

	startTime time.Time
	calls     chan call
	done      chan struct{}
}

type call struct {
	req   *ipc.Request
	reply chan *ipc.Response
}

// New wires a daemon around store and gal. Desktop changes are forwarded to
// the activity log and metrics from here on.
func New(store *desktop.Store, gal *gallery.Gallery, opts Options) *Daemon {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	d := &Daemon{
		store:     store,
		gallery:   gal,
		activity:  opts.Activity,
		logger:    logger,
		backend:   opts.GalleryBackend,
		startTime: time.Now(),
		calls:     make(chan call),
		done:      make(chan struct{}),
	}
	d.sampler = NewSampler(SamplerConfig{Interval: opts.SampleInterval, Logger: logger}, gal)
	store.Subscribe(newObserver(store, d.activity, logger).observe)
	return d
}

// Run loads the gallery in the background and processes requests until ctx
// is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	defer close(d.done)

	go func() {
		if err := d.gallery.Load(ctx); err != nil {
			d.logger.Warn("gallery unavailable, starting empty", "error", err)
		}
		d.sampler.SampleNow(ctx)
	}()
	go d.sampler.Run(ctx)

	d.logger.Info("desktop session started", "gallery_backend", d.backend)
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("desktop session stopped")
			return nil
		case c := <-d.calls:
			c.reply <- d.dispatch(ctx, c.req)
		}
	}
}

// HandleRequest queues req on the event loop and waits for its response.
func (d *Daemon) HandleRequest(req *ipc.Request) *ipc.Response {
	reply := make(chan *ipc.Response, 1)
	select {
	case d.calls <- call{req: req, reply: reply}:
	case <-d.done:
		return ipc.NewErrorResponse("daemon is shutting down")
	}
	resp := <-reply
	metrics.RecordIPCRequest(string(req.Command), resp.Status == "OK")
	return resp
}

func (d *Daemon) dispatch(ctx context.Context, req *ipc.Request) (resp *ipc.Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("request panic recovered", "command", req.Command, "error", r)
			resp = ipc.NewErrorResponse(fmt.Sprintf("internal error handling %s", req.Command))
		}
	}()

	data, err := d.handleCommand(ctx, req)
	if err != nil {
		d.logger.Debug("request failed", "command", req.Command, "error", err)
		return ipc.NewErrorResponse(err.Error())
	}
	resp, err = ipc.NewOKResponse(data)
	if err != nil {
		return ipc.NewErrorResponse(err.Error())
	}
	return resp
}
