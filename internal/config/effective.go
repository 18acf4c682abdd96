package config

import (
	"fmt"
	"sort"

	"github.com/1broseidon/foliodesk/internal/vfs"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s: %s: %v", e.Source.pos(), e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig overlays raw onto DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	if raw.Gallery != nil {
		if raw.Gallery.Backend != nil {
			cfg.Gallery.Backend = *raw.Gallery.Backend
		}
		if raw.Gallery.Path != nil {
			cfg.Gallery.Path = *raw.Gallery.Path
		}
		cfg.Gallery.MaxImageMB = derefInt(raw.Gallery.MaxImageMB, cfg.Gallery.MaxImageMB)
		cfg.Gallery.WarnTotalMB = derefInt(raw.Gallery.WarnTotalMB, cfg.Gallery.WarnTotalMB)
	}

	if raw.Metrics != nil {
		if raw.Metrics.Enabled != nil {
			cfg.Metrics.Enabled = *raw.Metrics.Enabled
		}
		if raw.Metrics.Listen != nil {
			cfg.Metrics.Listen = *raw.Metrics.Listen
		}
	}

	if raw.Logging != nil {
		if raw.Logging.Enabled != nil {
			cfg.Logging.Enabled = *raw.Logging.Enabled
		}
		if raw.Logging.Level != nil {
			cfg.Logging.Level = *raw.Logging.Level
		}
		if raw.Logging.File != nil {
			cfg.Logging.File = *raw.Logging.File
		}
		cfg.Logging.MaxSizeMB = derefInt(raw.Logging.MaxSizeMB, cfg.Logging.MaxSizeMB)
		cfg.Logging.MaxFiles = derefInt(raw.Logging.MaxFiles, cfg.Logging.MaxFiles)
		cfg.Logging.PreviewLength = derefInt(raw.Logging.PreviewLength, cfg.Logging.PreviewLength)
	}

	if raw.Dock != nil {
		cfg.Dock = raw.Dock
	}
	if raw.DesktopItems != nil {
		cfg.DesktopItems = raw.DesktopItems
	}

	if len(raw.Catalog) > 0 {
		cfg.Catalog = raw.Catalog
		for _, key := range sortedKeys(raw.Catalog) {
			if _, err := vfs.ParseLocation(key); err != nil {
				return nil, &ValidationError{Path: "catalog." + key, Err: fmt.Errorf("unknown location (want work, about, resume or trash)")}
			}
		}
	}

	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
