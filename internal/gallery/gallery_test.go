package gallery

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

const mb = 1024 * 1024

func loadedGallery(t *testing.T, store Store, opts Options) *Gallery {
	t.Helper()
	g := New(store, opts)
	t.Cleanup(func() { g.Close() })
	if err := g.Load(context.Background()); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return g
}

func flush(t *testing.T, g *Gallery) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.Flush(ctx); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
}

func TestUpload_SizeCap(t *testing.T) {
	store := NewMemoryStore()
	g := loadedGallery(t, store, Options{})

	_, err := g.Upload("huge.png", "image/png", make([]byte, 16*mb))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Upload(16MB) error = %v, want ValidationError", err)
	}
	if verr.Name != "huge.png" || !strings.Contains(verr.Error(), "too large") {
		t.Fatalf("ValidationError = %+v", verr)
	}
	if g.Advisory() != `Image "huge.png" is too large. Maximum size is 15MB.` {
		t.Fatalf("Advisory() = %q", g.Advisory())
	}

	data := make([]byte, 10*mb)
	data[0] = 0x89
	img, err := g.Upload("ok.png", "image/png", data)
	if err != nil {
		t.Fatalf("Upload(10MB) error: %v", err)
	}
	flush(t, g)

	loaded, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("LoadAll() returned %d images, want 1", len(loaded))
	}
	if loaded[0] != img {
		t.Fatal("stored image differs from uploaded image")
	}
	raw, err := loaded[0].Bytes()
	if err != nil || len(raw) != len(data) || raw[0] != 0x89 {
		t.Fatalf("Bytes() = %d bytes, err %v", len(raw), err)
	}
}

func TestUpload_RejectsNonImage(t *testing.T) {
	g := loadedGallery(t, NewMemoryStore(), Options{})
	_, err := g.Upload("notes.txt", "text/plain", []byte("hi"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Upload(text) error = %v, want ValidationError", err)
	}
	if len(g.Images()) != 0 {
		t.Fatal("non-image was added")
	}
	if g.Advisory() != "" {
		t.Fatalf("Advisory() = %q, want empty", g.Advisory())
	}
}

func TestUpload_BeforeLoad(t *testing.T) {
	g := New(NewMemoryStore(), Options{})
	defer g.Close()
	if g.Ready() {
		t.Fatal("Ready() before Load")
	}
	if _, err := g.Upload("a.png", "image/png", []byte{1}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Upload before Load error = %v, want ErrNotReady", err)
	}
	if err := g.Delete("x"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Delete before Load error = %v, want ErrNotReady", err)
	}
}

func TestDelete(t *testing.T) {
	store := NewMemoryStore()
	g := loadedGallery(t, store, Options{})
	a, _ := g.Upload("a.png", "image/png", []byte{1})
	b, _ := g.Upload("b.png", "image/png", []byte{2})

	if err := g.Delete(a.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := g.Delete(a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
	flush(t, g)

	loaded, _ := store.LoadAll(context.Background())
	if len(loaded) != 1 || loaded[0].ID != b.ID {
		t.Fatalf("LoadAll() = %+v, want only b", loaded)
	}
}

func TestLoad_RestoresOrder(t *testing.T) {
	store := NewMemoryStore()
	seed := []Image{
		{ID: "1", URL: DataURL("image/png", []byte{1}), Title: "one"},
		{ID: "2", URL: DataURL("image/jpeg", []byte{2}), Title: "two"},
	}
	store.SaveAll(context.Background(), seed)

	g := loadedGallery(t, store, Options{})
	got := g.Images()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("Images() = %+v", got)
	}
	if got[1].MIMEType() != "image/jpeg" {
		t.Fatalf("MIMEType() = %q", got[1].MIMEType())
	}
}

type failingStore struct {
	MemoryStore
	loadErr error
	saveErr error
}

func (f *failingStore) LoadAll(ctx context.Context) ([]Image, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.MemoryStore.LoadAll(ctx)
}

func (f *failingStore) SaveAll(ctx context.Context, images []Image) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.SaveAll(ctx, images)
}

func TestLoad_FailureFallsBackToEmpty(t *testing.T) {
	g := New(&failingStore{loadErr: errors.New("disk gone")}, Options{})
	defer g.Close()

	err := g.Load(context.Background())
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("Load() error = %v, want PersistenceError", err)
	}
	if !g.Ready() || len(g.Images()) != 0 {
		t.Fatal("gallery not ready and empty after failed load")
	}
	if g.Advisory() != "Failed to load saved images. The gallery starts empty." {
		t.Fatalf("Advisory() = %q", g.Advisory())
	}

	g.DismissAdvisory()
	if g.Advisory() != "" {
		t.Fatalf("Advisory() after dismiss = %q", g.Advisory())
	}
}

func TestSaveFailure_SetsAdvisory(t *testing.T) {
	g := loadedGallery(t, &failingStore{saveErr: errors.New("quota")}, Options{})
	if _, err := g.Upload("a.png", "image/png", []byte{1}); err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	flush(t, g)
	if g.Advisory() != "Failed to save images. Please try again." {
		t.Fatalf("Advisory() = %q", g.Advisory())
	}
	if len(g.Images()) != 1 {
		t.Fatal("in-memory state lost after save failure")
	}
}

func TestStorageWarning(t *testing.T) {
	g := loadedGallery(t, NewMemoryStore(), Options{MaxImageMB: 4, WarnTotalMB: 1})
	if _, err := g.Upload("big.png", "image/png", make([]byte, 2*mb)); err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	flush(t, g)
	if !strings.HasPrefix(g.Advisory(), "Storage usage: ") || !strings.HasSuffix(g.Advisory(), "MB. Consider deleting some images.") {
		t.Fatalf("Advisory() = %q", g.Advisory())
	}

	imgs := g.Images()
	g.Delete(imgs[0].ID)
	flush(t, g)
	if g.Advisory() != "" {
		t.Fatalf("Advisory() after shrinking = %q, want empty", g.Advisory())
	}
}

type slowStore struct {
	MemoryStore
	mu     sync.Mutex
	gate   chan struct{}
	writes [][]Image
}

func (s *slowStore) SaveAll(ctx context.Context, images []Image) error {
	<-s.gate
	s.mu.Lock()
	s.writes = append(s.writes, cloneImages(images))
	s.mu.Unlock()
	return s.MemoryStore.SaveAll(ctx, images)
}

func TestWriter_ConvergesToLatest(t *testing.T) {
	store := &slowStore{gate: make(chan struct{})}
	g := loadedGallery(t, store, Options{})

	for i := 0; i < 20; i++ {
		if _, err := g.Upload("img.png", "image/png", []byte{byte(i)}); err != nil {
			t.Fatalf("Upload(%d) error: %v", i, err)
		}
	}
	close(store.gate)
	flush(t, g)

	final, _ := store.LoadAll(context.Background())
	if len(final) != 20 {
		t.Fatalf("stored %d images, want 20", len(final))
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	prev := 0
	for _, w := range store.writes {
		if len(w) < prev {
			t.Fatalf("write of %d images landed after one of %d", len(w), prev)
		}
		prev = len(w)
	}
	if len(store.writes) >= 20 {
		t.Fatalf("%d writes for 20 uploads, want coalescing", len(store.writes))
	}
}

func TestHumanUsage(t *testing.T) {
	if got := HumanUsage(2 * mb); got != "2.0 MiB" {
		t.Fatalf("HumanUsage(2MiB) = %q", got)
	}
	if got := HumanUsage(-1); got != "0 B" {
		t.Fatalf("HumanUsage(-1) = %q", got)
	}
}

func TestDetectMIME(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n")
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"a.png", nil, "image/png"},
		{"a.JPG", nil, "image/jpeg"},
		{"a.gif", nil, "image/gif"},
		{"noext", png, "image/png"},
		{"notes", []byte("plain words"), "text/plain"},
	}
	for _, tt := range tests {
		if got := DetectMIME(tt.name, tt.data); got != tt.want {
			t.Errorf("DetectMIME(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
