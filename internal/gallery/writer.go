package gallery

import (
	"context"
	"sync"
)

// writer persists snapshots on one goroutine. Snapshots queued while a save
// is running are coalesced so only the newest one is written next; a stale
// snapshot can never land after a newer one.
type writer struct {
	save     func(ctx context.Context, images []Image) error
	onResult func(err error)

	mu         sync.Mutex
	pending    []Image
	hasPending bool

	kick    chan struct{}
	flushCh chan chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	stop    sync.Once
}

func newWriter(save func(context.Context, []Image) error, onResult func(error)) *writer {
	w := &writer{
		save:     save,
		onResult: onResult,
		kick:     make(chan struct{}, 1),
		flushCh:  make(chan chan struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) run() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.kick:
			w.drain()
		case done := <-w.flushCh:
			w.drain()
			close(done)
		case <-w.stopCh:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		if !w.hasPending {
			w.mu.Unlock()
			return
		}
		snapshot := w.pending
		w.pending, w.hasPending = nil, false
		w.mu.Unlock()

		err := w.save(context.Background(), snapshot)
		if w.onResult != nil {
			w.onResult(err)
		}
	}
}

// enqueue replaces any pending snapshot with images.
func (w *writer) enqueue(images []Image) {
	w.mu.Lock()
	w.pending = images
	w.hasPending = true
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// flush blocks until every snapshot queued before the call is written.
func (w *writer) flush(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case w.flushCh <- done:
	case <-w.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) close() {
	w.stop.Do(func() { close(w.stopCh) })
	<-w.doneCh
}
