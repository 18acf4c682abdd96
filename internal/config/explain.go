package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	log_level
//	gallery.backend
//	gallery.path
//	gallery.max_image_mb
//	gallery.warn_total_mb
//	metrics.enabled
//	metrics.listen
//	logging.<key>
//	dock
//	dock.<index>
//	desktop_items
//	desktop_items.<index>
//	catalog.<location>
//
// A catalog root loaded through catalog_files reports the catalog file as
// its source.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins, then the nearest parent written by a file.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	parts := strings.Split(path, ".")
	for i := len(parts) - 1; i > 0; i-- {
		if src, ok := res.Sources[strings.Join(parts[:i], ".")]; ok && isListKey(parts[0]) {
			return value, src, nil
		}
	}

	switch parts[0] {
	case "dock", "desktop_items", "catalog":
		return value, Source{Kind: SourceBuiltin, Name: "catalog"}, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

// isListKey reports whether entries below key are written as a whole list,
// so their source is the list's source.
func isListKey(key string) bool {
	return key == "dock" || key == "desktop_items"
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "log_level":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.LogLevel, nil
	case "gallery":
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "backend":
			return cfg.Gallery.Backend, nil
		case "path":
			return cfg.GalleryPath(), nil
		case "max_image_mb":
			return cfg.Gallery.MaxImageMB, nil
		case "warn_total_mb":
			return cfg.Gallery.WarnTotalMB, nil
		}
	case "metrics":
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "enabled":
			return cfg.Metrics.Enabled, nil
		case "listen":
			return cfg.Metrics.Listen, nil
		}
	case "logging":
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		lc := cfg.GetLoggingConfig()
		switch parts[1] {
		case "enabled":
			return lc.Enabled, nil
		case "level":
			return lc.Level, nil
		case "file":
			return lc.File, nil
		case "max_size_mb":
			return lc.MaxSizeMB, nil
		case "max_files":
			return lc.MaxFiles, nil
		case "preview_length":
			return lc.PreviewLength, nil
		}
	case "dock":
		switch len(parts) {
		case 1:
			return cfg.Dock, nil
		case 2:
			i, err := listIndex(parts[1], len(cfg.Dock))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return cfg.Dock[i], nil
		}
	case "desktop_items":
		switch len(parts) {
		case 1:
			return cfg.DesktopItems, nil
		case 2:
			i, err := listIndex(parts[1], len(cfg.DesktopItems))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return cfg.DesktopItems[i], nil
		}
	case "catalog":
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		if d, ok := cfg.Catalog[parts[1]]; ok {
			return d, nil
		}
		roots, err := cfg.Roots()
		if err != nil {
			return nil, err
		}
		for loc, root := range roots {
			if string(loc) == parts[1] {
				return root.Name, nil
			}
		}
		return nil, fmt.Errorf("unknown catalog location: %s", parts[1])
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

func listIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q is not a number", s)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %d out of range (%d entries)", i, n)
	}
	return i, nil
}
