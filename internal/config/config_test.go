package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/foliodesk/internal/vfs"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Gallery.MaxImageMB != 15 || cfg.Gallery.WarnTotalMB != 100 {
		t.Fatalf("unexpected gallery defaults: %+v", cfg.Gallery)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Gallery.Backend != "badger" {
		t.Fatalf("expected badger backend, got %q", res.Config.Gallery.Backend)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected log_level info, got %q", res.Config.LogLevel)
	}
}

func TestLoadFromPath_GalleryOverrides(t *testing.T) {
	data := strings.Join([]string{
		"gallery:",
		"  backend: sqlite",
		"  path: /tmp/foliodesk-test.db",
		"  max_image_mb: 20",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	g := res.Config.Gallery
	if g.Backend != "sqlite" || g.MaxImageMB != 20 || g.WarnTotalMB != 100 {
		t.Fatalf("unexpected gallery config: %+v", g)
	}
	if res.Config.GalleryPath() != "/tmp/foliodesk-test.db" {
		t.Fatalf("GalleryPath() = %q", res.Config.GalleryPath())
	}

	val, src, err := Explain(res, "gallery.max_image_mb")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 20 || src.Kind != SourceFile || src.Line != 4 {
		t.Fatalf("explain = %#v, %#v", val, src)
	}

	val, src, err = Explain(res, "gallery.warn_total_mb")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 100 || src.Kind != SourceDefault {
		t.Fatalf("explain warn_total_mb = %#v, %#v", val, src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "gallery:\n  backend: postgres\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "gallery.backend" || verr.Source.Line != 2 {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
	if !strings.HasPrefix(err.Error(), verr.Source.File+":2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.d/10-base.yaml", "log_level: debug\nmetrics:\n  listen: 127.0.0.1:1\n")
	writeConfig(t, dir, "config.d/20-override.yaml", "log_level: error\n")
	path := writeConfig(t, dir, "config.yaml", "include: config.d\nmetrics:\n  enabled: true\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "error" {
		t.Fatalf("expected later include to win, got %q", res.Config.LogLevel)
	}
	if !res.Config.Metrics.Enabled || res.Config.Metrics.Listen != "127.0.0.1:1" {
		t.Fatalf("expected metrics merged across files, got %+v", res.Config.Metrics)
	}
	if len(res.Files) != 3 || !strings.HasSuffix(res.Files[2], "config.yaml") {
		t.Fatalf("unexpected file order: %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_DockReplacesList(t *testing.T) {
	data := strings.Join([]string{
		"dock:",
		"  - id: finder",
		"    name: Portfolio",
		"    icon: /images/finder.png",
		"    can_open: true",
		"  - id: terminal",
		"    name: Terminal",
		"    icon: /images/terminal.png",
		"    can_open: false",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Config.Dock) != 2 || res.Config.Dock[1].CanOpen {
		t.Fatalf("unexpected dock: %+v", res.Config.Dock)
	}

	_, src, err := Explain(res, "dock.1")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceFile {
		t.Fatalf("expected dock.1 to come from file, got %#v", src)
	}

	_, src, err = Explain(res, "desktop_items")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceBuiltin {
		t.Fatalf("expected desktop_items from builtin catalog, got %#v", src)
	}
}

func TestLoadFromPath_DuplicateDockID(t *testing.T) {
	data := "dock:\n  - id: finder\n  - id: finder\n"
	path := writeConfig(t, t.TempDir(), "config.yaml", data)
	if _, err := LoadFromPath(path); err == nil || !strings.Contains(err.Error(), "duplicate dock id") {
		t.Fatalf("expected duplicate dock id error, got %v", err)
	}
}

func TestLoadFromPath_CatalogReplacesOneRoot(t *testing.T) {
	data := strings.Join([]string{
		"catalog:",
		"  work:",
		"    id: \"1\"",
		"    name: Work",
		"    children:",
		"      - id: \"9\"",
		"        name: Side Project",
		"        kind: folder",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	roots, err := res.Config.Roots()
	if err != nil {
		t.Fatalf("roots: %v", err)
	}
	work := roots[vfs.LocationWork]
	if len(work.Children) != 1 || work.Children[0].Info().Name != "Side Project" {
		t.Fatalf("unexpected work root: %+v", work)
	}
	if roots[vfs.LocationAbout] == nil || roots[vfs.LocationResume] == nil {
		t.Fatal("built-in roots dropped by partial catalog")
	}
}

func TestLoadFromPath_CatalogUnknownLocation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "catalog:\n  downloads:\n    id: \"1\"\n    name: x\n")
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "catalog.downloads" {
		t.Fatalf("expected catalog.downloads validation error, got %v", err)
	}
}

func TestGetLoggingConfigDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := DefaultConfig()
	lc := cfg.GetLoggingConfig()
	if lc.File != "/home/tester/.local/share/foliodesk/activity.log" {
		t.Fatalf("unexpected log file: %q", lc.File)
	}
	if lc.MaxSizeMB != 10 || lc.MaxFiles != 3 || lc.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", lc)
	}
}

func TestExplain_UnknownPath(t *testing.T) {
	res := &LoadResult{Config: DefaultConfig(), Sources: map[string]Source{}}
	for _, p := range []string{"hotkey", "gallery", "gallery.nope", "dock.99", "dock.x"} {
		if _, _, err := Explain(res, p); err == nil {
			t.Errorf("Explain(%q) succeeded", p)
		}
	}
}

func TestMarshal_RoundTripsThroughLoader(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gallery.Backend = "memory"
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := writeConfig(t, t.TempDir(), "config.yaml", string(data))
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load marshalled config: %v", err)
	}
	if res.Config.Gallery.Backend != "memory" {
		t.Fatalf("backend = %q", res.Config.Gallery.Backend)
	}
}

func TestLoadFromPath_CatalogFiles(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "content/work.yaml", strings.Join([]string{
		"id: \"1\"",
		"name: Work",
		"children:",
		"  - id: \"9\"",
		"    name: Side Project",
		"    kind: folder",
		"    github: https://github.com/example/side",
		"",
	}, "\n"))
	path := writeConfig(t, dir, "config.yaml", "catalog_files:\n  work: content/work.yaml\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	roots, err := res.Config.Roots()
	if err != nil {
		t.Fatalf("roots: %v", err)
	}
	if w := roots[vfs.LocationWork]; len(w.Children) != 1 || w.Children[0].Info().Name != "Side Project" {
		t.Fatalf("unexpected work root: %+v", w)
	}

	_, src, err := Explain(res, "catalog.work")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceFile || !strings.HasSuffix(src.File, filepath.Join("content", "work.yaml")) || src.Line != 1 {
		t.Fatalf("expected catalog.work from the catalog file, got %#v", src)
	}
	if got := res.Sources["catalog.work.children"]; got.Line != 4 {
		t.Fatalf("catalog.work.children source = %#v", got)
	}
	if len(res.Files) != 2 || !strings.HasSuffix(res.Files[0], "work.yaml") || !strings.HasSuffix(res.Files[1], "config.yaml") {
		t.Fatalf("unexpected file order: %v", res.Files)
	}
}

func TestLoadFromPath_CatalogFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "missing file",
			files:   map[string]string{"config.yaml": "catalog_files:\n  work: nope.yaml\n"},
			wantErr: "catalog_files.work",
		},
		{
			name: "inline and file",
			files: map[string]string{
				"work.yaml":   "id: \"1\"\nname: Work\n",
				"config.yaml": "catalog:\n  work:\n    id: \"1\"\n    name: Work\ncatalog_files:\n  work: work.yaml\n",
			},
			wantErr: "are both set",
		},
		{
			name: "unknown key in catalog file",
			files: map[string]string{
				"work.yaml":   "id: \"1\"\nname: Work\ncolour: red\n",
				"config.yaml": "catalog_files:\n  work: work.yaml\n",
			},
			wantErr: "colour",
		},
		{
			name: "unknown location",
			files: map[string]string{
				"dl.yaml":     "id: \"1\"\nname: Downloads\n",
				"config.yaml": "catalog_files:\n  downloads: dl.yaml\n",
			},
			wantErr: "catalog.downloads",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, data := range tt.files {
				writeConfig(t, dir, name, data)
			}
			_, err := LoadFromPath(filepath.Join(dir, "config.yaml"))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadFromPath_IncludedCatalogFileResolvesRelativeToInclude(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.d/content/about.yaml", "id: \"2\"\nname: About Me\n")
	writeConfig(t, dir, "config.d/10-content.yaml", "catalog_files:\n  about: content/about.yaml\n")
	path := writeConfig(t, dir, "config.yaml", "include: config.d\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Catalog["about"].Name != "About Me" {
		t.Fatalf("unexpected catalog: %+v", res.Config.Catalog)
	}
}
