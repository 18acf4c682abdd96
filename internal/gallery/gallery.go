package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const (
	DefaultMaxImageMB  = 15
	DefaultWarnTotalMB = 100

	bytesPerMB = 1024 * 1024
)

// Advisory messages shown to the user.
const (
	advisorySaveFailed = "Failed to save images. Please try again."
	advisoryLoadFailed = "Failed to load saved images. The gallery starts empty."
)

// Options tune a Gallery. Zero values select the defaults.
type Options struct {
	MaxImageMB  int
	WarnTotalMB int
	Logger      *slog.Logger
	// OnChange runs after the image list or advisory changes. It may be
	// called from the persistence goroutine.
	OnChange func()
	// OnSaved runs on the persistence goroutine after each save attempt.
	OnSaved func(err error)
}

// Gallery owns the in-memory image list. Every mutation schedules a full
// save of the new list while still holding the list lock, so the writer
// always sees snapshots in mutation order. It is safe for concurrent use.
type Gallery struct {
	store  Store
	opts   Options
	logger *slog.Logger
	w      *writer

	mu       sync.Mutex
	images   []Image
	ready    bool
	advisory string
}

// New wraps store. Call Load before mutating.
func New(store Store, opts Options) *Gallery {
	if opts.MaxImageMB <= 0 {
		opts.MaxImageMB = DefaultMaxImageMB
	}
	if opts.WarnTotalMB <= 0 {
		opts.WarnTotalMB = DefaultWarnTotalMB
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gallery{store: store, opts: opts, logger: logger}
	g.w = newWriter(store.SaveAll, g.afterSave)
	return g
}

// Load reads the persisted collection. On failure the gallery starts empty;
// either way it becomes ready.
func (g *Gallery) Load(ctx context.Context) error {
	images, err := g.store.LoadAll(ctx)

	g.mu.Lock()
	g.ready = true
	if err != nil {
		g.images = nil
	} else {
		g.images = images
	}
	g.mu.Unlock()
	g.notify()

	if err != nil {
		g.logger.Warn("failed to load gallery images", "error", err)
		g.setAdvisory(advisoryLoadFailed)
		return &PersistenceError{Op: "load", Err: err}
	}
	g.logger.Debug("gallery loaded", "images", len(images))
	return nil
}

// Ready reports whether Load has completed.
func (g *Gallery) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

// Images returns a copy of the list in upload order.
func (g *Gallery) Images() []Image {
	g.mu.Lock()
	defer g.mu.Unlock()
	return cloneImages(g.images)
}

// Get returns one image by id.
func (g *Gallery) Get(id string) (Image, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, img := range g.images {
		if img.ID == id {
			return img, nil
		}
	}
	return Image{}, fmt.Errorf("%s: %w", id, ErrNotFound)
}

// Upload validates and appends one image.
func (g *Gallery) Upload(name, mime string, data []byte) (Image, error) {
	if !strings.HasPrefix(mime, "image/") {
		return Image{}, &ValidationError{Name: name, Reason: fmt.Sprintf("%q is not an image (%s)", name, mime)}
	}
	if int64(len(data)) > int64(g.opts.MaxImageMB)*bytesPerMB {
		verr := &ValidationError{
			Name:   name,
			Reason: fmt.Sprintf(`Image "%s" is too large. Maximum size is %dMB.`, name, g.opts.MaxImageMB),
		}
		g.setAdvisory(verr.Reason)
		return Image{}, verr
	}

	img := Image{ID: uuid.NewString(), URL: DataURL(mime, data), Title: name}

	g.mu.Lock()
	if !g.ready {
		g.mu.Unlock()
		return Image{}, ErrNotReady
	}
	g.images = append(g.images, img)
	g.w.enqueue(cloneImages(g.images))
	g.mu.Unlock()

	g.notify()
	return img, nil
}

// Delete removes an image by id.
func (g *Gallery) Delete(id string) error {
	g.mu.Lock()
	if !g.ready {
		g.mu.Unlock()
		return ErrNotReady
	}
	idx := -1
	for i, img := range g.images {
		if img.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		g.mu.Unlock()
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	g.images = append(g.images[:idx:idx], g.images[idx+1:]...)
	g.w.enqueue(cloneImages(g.images))
	g.mu.Unlock()

	g.notify()
	return nil
}

// Advisory returns the current user-facing message, if any.
func (g *Gallery) Advisory() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.advisory
}

// DismissAdvisory clears the message.
func (g *Gallery) DismissAdvisory() {
	g.setAdvisory("")
}

// Usage reports the persisted collection size.
func (g *Gallery) Usage(ctx context.Context) (int64, error) {
	n, err := g.store.SizeInBytes(ctx)
	if err != nil {
		return 0, &PersistenceError{Op: "size", Err: err}
	}
	return n, nil
}

// HumanUsage formats a byte count for display.
func HumanUsage(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// Flush waits for queued saves to reach the store.
func (g *Gallery) Flush(ctx context.Context) error {
	return g.w.flush(ctx)
}

// Close drains pending saves and closes the store.
func (g *Gallery) Close() error {
	g.w.close()
	return g.store.Close()
}

func (g *Gallery) afterSave(err error) {
	if g.opts.OnSaved != nil {
		g.opts.OnSaved(err)
	}
	if err != nil {
		g.logger.Error("failed to save gallery images", "error", err)
		g.setAdvisory(advisorySaveFailed)
		return
	}
	size, err := g.store.SizeInBytes(context.Background())
	if err != nil {
		g.logger.Warn("failed to measure gallery size", "error", err)
		return
	}
	mb := float64(size) / bytesPerMB
	if mb > float64(g.opts.WarnTotalMB) {
		g.setAdvisory(fmt.Sprintf("Storage usage: %.2fMB. Consider deleting some images.", mb))
		return
	}
	g.setAdvisory("")
}

func (g *Gallery) setAdvisory(msg string) {
	g.mu.Lock()
	changed := g.advisory != msg
	g.advisory = msg
	g.mu.Unlock()
	if changed {
		g.notify()
	}
}

func (g *Gallery) notify() {
	if g.opts.OnChange != nil {
		g.opts.OnChange()
	}
}
