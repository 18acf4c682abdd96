package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/vfs"
	"gopkg.in/yaml.v3"
)

// GalleryConfig configures image persistence.
type GalleryConfig struct {
	// Backend selects the blob store: badger, sqlite or memory
	Backend string `yaml:"backend"`
	// Path is the badger directory or sqlite file (default under ~/.local/share/foliodesk)
	Path string `yaml:"path,omitempty"`
	// MaxImageMB rejects uploads larger than this (default: 15)
	MaxImageMB int `yaml:"max_image_mb"`
	// WarnTotalMB raises a storage advisory above this total (default: 100)
	WarnTotalMB int `yaml:"warn_total_mb"`
}

// MetricsConfig configures the Prometheus endpoint served by the daemon.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LoggingConfig configures desktop activity logging.
type LoggingConfig struct {
	// Enabled turns activity logging on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: ~/.local/share/foliodesk/activity.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
	// PreviewLength caps logged terminal input (default: 50)
	PreviewLength int `yaml:"preview_length,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	LogLevel     string                    `yaml:"log_level"`
	Gallery      GalleryConfig             `yaml:"gallery"`
	Metrics      MetricsConfig             `yaml:"metrics"`
	Logging      LoggingConfig             `yaml:"logging,omitempty"`
	Dock         []desktop.DockApp         `yaml:"dock"`
	DesktopItems []desktop.Item            `yaml:"desktop_items"`
	Catalog      map[string]vfs.Descriptor `yaml:"catalog,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Gallery: GalleryConfig{
			Backend:     gallery.BackendBadger,
			MaxImageMB:  gallery.DefaultMaxImageMB,
			WarnTotalMB: gallery.DefaultWarnTotalMB,
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9464",
		},
		Dock:         desktop.DefaultDock(),
		DesktopItems: desktop.DefaultItems(),
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "foliodesk")
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		cfg.File = filepath.Join(dataDir(), "activity.log")
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.PreviewLength == 0 {
		cfg.PreviewLength = 50
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// GalleryPath returns the store location with the backend default applied.
func (c *Config) GalleryPath() string {
	if c.Gallery.Path != "" {
		return c.Gallery.Path
	}
	switch c.Gallery.Backend {
	case gallery.BackendSQLite:
		return filepath.Join(dataDir(), "gallery.db")
	default:
		return filepath.Join(dataDir(), "gallery")
	}
}

// Roots builds the virtual tree roots. Catalog entries replace the built-in
// root at the same location; other built-in roots are kept.
func (c *Config) Roots() (map[vfs.Location]*vfs.Folder, error) {
	roots := vfs.DefaultRoots()
	if len(c.Catalog) == 0 {
		return roots, nil
	}
	custom, err := vfs.RootsFromDescriptors(c.Catalog)
	if err != nil {
		return nil, err
	}
	for loc, root := range custom {
		roots[loc] = root
	}
	return roots, nil
}

// DesktopOptions converts the config into desktop store options.
func (c *Config) DesktopOptions() (desktop.Options, error) {
	roots, err := c.Roots()
	if err != nil {
		return desktop.Options{}, err
	}
	return desktop.Options{Roots: roots, Dock: c.Dock, Items: c.DesktopItems}, nil
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	switch c.Gallery.Backend {
	case gallery.BackendBadger, gallery.BackendSQLite, gallery.BackendMemory:
	default:
		return &ValidationError{Path: "gallery.backend", Err: fmt.Errorf("gallery.backend must be one of: badger, sqlite, memory")}
	}
	if c.Gallery.MaxImageMB <= 0 {
		return &ValidationError{Path: "gallery.max_image_mb", Err: fmt.Errorf("max_image_mb must be > 0")}
	}
	if c.Gallery.WarnTotalMB <= 0 {
		return &ValidationError{Path: "gallery.warn_total_mb", Err: fmt.Errorf("warn_total_mb must be > 0")}
	}

	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Listen) == "" {
		return &ValidationError{Path: "metrics.listen", Err: fmt.Errorf("metrics.listen is required when metrics are enabled")}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("logging.level must be one of: debug, info, warn, error")}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}

	if len(c.Dock) == 0 {
		return &ValidationError{Path: "dock", Err: fmt.Errorf("dock must not be empty")}
	}
	seen := make(map[string]bool, len(c.Dock))
	for i, d := range c.Dock {
		if strings.TrimSpace(d.ID) == "" {
			return &ValidationError{Path: "dock", Err: fmt.Errorf("dock entry %d has no id", i)}
		}
		if seen[d.ID] {
			return &ValidationError{Path: "dock", Err: fmt.Errorf("duplicate dock id %q", d.ID)}
		}
		seen[d.ID] = true
	}

	items := make(map[string]bool, len(c.DesktopItems))
	for i, it := range c.DesktopItems {
		if strings.TrimSpace(it.ID) == "" {
			return &ValidationError{Path: "desktop_items", Err: fmt.Errorf("desktop item %d has no id", i)}
		}
		if items[it.ID] {
			return &ValidationError{Path: "desktop_items", Err: fmt.Errorf("duplicate desktop item id %q", it.ID)}
		}
		items[it.ID] = true
		if it.Opens == "" {
			return &ValidationError{Path: "desktop_items", Err: fmt.Errorf("desktop item %q must name an app to open", it.ID)}
		}
	}

	if _, err := c.Roots(); err != nil {
		return &ValidationError{Path: "catalog", Err: err}
	}
	return nil
}
