package config

import (
	"fmt"

	"github.com/1broseidon/foliodesk/internal/desktop"
	"github.com/1broseidon/foliodesk/internal/vfs"
	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawGalleryConfig struct {
	Backend     *string `yaml:"backend"`
	Path        *string `yaml:"path"`
	MaxImageMB  *int    `yaml:"max_image_mb"`
	WarnTotalMB *int    `yaml:"warn_total_mb"`
}

type RawMetricsConfig struct {
	Enabled *bool   `yaml:"enabled"`
	Listen  *string `yaml:"listen"`
}

type RawLoggingConfig struct {
	Enabled       *bool   `yaml:"enabled"`
	Level         *string `yaml:"level"`
	File          *string `yaml:"file"`
	MaxSizeMB     *int    `yaml:"max_size_mb"`
	MaxFiles      *int    `yaml:"max_files"`
	PreviewLength *int    `yaml:"preview_length"`
}

// RawConfig mirrors the YAML file. Nil fields were not set by any file.
// Lists replace rather than append when overlaid.
type RawConfig struct {
	Include      IncludeList               `yaml:"include"`
	LogLevel     *string                   `yaml:"log_level"`
	Gallery      *RawGalleryConfig         `yaml:"gallery"`
	Metrics      *RawMetricsConfig         `yaml:"metrics"`
	Logging      *RawLoggingConfig         `yaml:"logging"`
	Dock         []desktop.DockApp         `yaml:"dock"`
	DesktopItems []desktop.Item            `yaml:"desktop_items"`
	Catalog      map[string]vfs.Descriptor `yaml:"catalog"`
	// CatalogFiles maps a location to a YAML file holding its root folder.
	// The loader reads them into Catalog.
	CatalogFiles map[string]string `yaml:"catalog_files"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	// Includes and catalog files are resolved by the loader; never merge them.
	out.Include = nil
	out.CatalogFiles = nil

	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	if overlay.Gallery != nil {
		if out.Gallery == nil {
			out.Gallery = &RawGalleryConfig{}
		}
		merged := *out.Gallery
		if overlay.Gallery.Backend != nil {
			merged.Backend = overlay.Gallery.Backend
		}
		if overlay.Gallery.Path != nil {
			merged.Path = overlay.Gallery.Path
		}
		if overlay.Gallery.MaxImageMB != nil {
			merged.MaxImageMB = overlay.Gallery.MaxImageMB
		}
		if overlay.Gallery.WarnTotalMB != nil {
			merged.WarnTotalMB = overlay.Gallery.WarnTotalMB
		}
		out.Gallery = &merged
	}

	if overlay.Metrics != nil {
		if out.Metrics == nil {
			out.Metrics = &RawMetricsConfig{}
		}
		merged := *out.Metrics
		if overlay.Metrics.Enabled != nil {
			merged.Enabled = overlay.Metrics.Enabled
		}
		if overlay.Metrics.Listen != nil {
			merged.Listen = overlay.Metrics.Listen
		}
		out.Metrics = &merged
	}

	if overlay.Logging != nil {
		if out.Logging == nil {
			out.Logging = &RawLoggingConfig{}
		}
		merged := *out.Logging
		if overlay.Logging.Enabled != nil {
			merged.Enabled = overlay.Logging.Enabled
		}
		if overlay.Logging.Level != nil {
			merged.Level = overlay.Logging.Level
		}
		if overlay.Logging.File != nil {
			merged.File = overlay.Logging.File
		}
		if overlay.Logging.MaxSizeMB != nil {
			merged.MaxSizeMB = overlay.Logging.MaxSizeMB
		}
		if overlay.Logging.MaxFiles != nil {
			merged.MaxFiles = overlay.Logging.MaxFiles
		}
		if overlay.Logging.PreviewLength != nil {
			merged.PreviewLength = overlay.Logging.PreviewLength
		}
		out.Logging = &merged
	}

	if overlay.Dock != nil {
		out.Dock = append([]desktop.DockApp(nil), overlay.Dock...)
	}
	if overlay.DesktopItems != nil {
		out.DesktopItems = append([]desktop.Item(nil), overlay.DesktopItems...)
	}

	// Catalog roots merge by location key; a root replaces the earlier one.
	if overlay.Catalog != nil {
		if out.Catalog == nil {
			out.Catalog = make(map[string]vfs.Descriptor, len(overlay.Catalog))
		} else {
			copied := make(map[string]vfs.Descriptor, len(out.Catalog))
			for k, v := range out.Catalog {
				copied[k] = v
			}
			out.Catalog = copied
		}
		for k, v := range overlay.Catalog {
			out.Catalog[k] = v
		}
	}

	return out
}
