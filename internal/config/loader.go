package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/foliodesk/internal/vfs"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceBuiltin SourceKind = "builtin"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	Name   string // for builtin/default
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML-path -> last writer source (file only)
	Files   []string          // config, include and catalog files, in load order
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "foliodesk", "config.yaml"), nil
}

// Load reads the merged configuration from the standard location and returns an
// effective config ready for use by the daemon.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources loads config and returns file-level sources for introspection.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and everything it includes. A missing file yields
// the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{seen: make(map[string]bool)}

	raw := RawConfig{}
	sources := map[string]Source{}
	if _, err := os.Stat(path); err == nil {
		raw, sources, err = l.load(path)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg, err := BuildEffectiveConfig(raw)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, withSource(err, sources)
	}
	return &LoadResult{Config: cfg, Sources: sources, Files: l.files}, nil
}

// loader merges one config file tree. Includes are applied before the file
// that names them, so the including file wins.
type loader struct {
	seen  map[string]bool
	stack []string
	files []string
}

// fileRef is a path written in a config file, with where it was written.
type fileRef struct {
	path string
	src  Source
}

func (l *loader) load(path string) (RawConfig, map[string]Source, error) {
	canon := canonicalPath(path)
	if slices.Contains(l.stack, canon) {
		return RawConfig{}, nil, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(l.stack, " -> "), canon)
	}
	if l.seen[canon] {
		// Already merged through another include.
		return RawConfig{}, map[string]Source{}, nil
	}
	l.seen[canon] = true

	data, err := os.ReadFile(canon)
	if err != nil {
		return RawConfig{}, nil, fmt.Errorf("%s: failed to read: %w", canon, err)
	}
	root, err := parseRoot(data)
	if err != nil {
		return RawConfig{}, nil, fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
	}
	var raw RawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return RawConfig{}, nil, fmt.Errorf("%s: %w", canon, err)
	}

	merged := RawConfig{}
	sources := map[string]Source{}

	l.stack = append(l.stack, canon)
	for _, ref := range scalarRefs(lookupKey(root, "include"), canon) {
		paths, err := expandInclude(canon, ref.path)
		if err != nil {
			return RawConfig{}, nil, fmt.Errorf("%s: include %q: %w", ref.src.pos(), ref.path, err)
		}
		for _, inc := range paths {
			incRaw, incSources, err := l.load(inc)
			if err != nil {
				return RawConfig{}, nil, err
			}
			merged = merged.merge(incRaw)
			for p, src := range incSources {
				sources[p] = src
			}
		}
	}
	l.stack = l.stack[:len(l.stack)-1]

	recordSources(sources, root, canon, "")
	if err := l.loadCatalogFiles(&raw, sources, lookupKey(root, "catalog_files"), canon); err != nil {
		return RawConfig{}, nil, err
	}

	merged = merged.merge(raw)
	l.files = append(l.files, canon)
	return merged, sources, nil
}

// loadCatalogFiles reads catalog_files entries into raw.Catalog. Each file
// holds one root folder descriptor; its keys are tracked as catalog.<loc>.*.
func (l *loader) loadCatalogFiles(raw *RawConfig, sources map[string]Source, node *yaml.Node, file string) error {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		loc, val := node.Content[i].Value, node.Content[i+1]
		ref := fileRef{path: val.Value, src: sourceAt(val, file)}

		if _, inline := raw.Catalog[loc]; inline {
			return fmt.Errorf("%s: catalog.%s and catalog_files.%s are both set", ref.src.pos(), loc, loc)
		}
		path, err := resolveRelative(file, ref.path)
		if err != nil {
			return fmt.Errorf("%s: catalog_files.%s: %w", ref.src.pos(), loc, err)
		}
		canon := canonicalPath(path)
		data, err := os.ReadFile(canon)
		if err != nil {
			return fmt.Errorf("%s: catalog_files.%s: %w", ref.src.pos(), loc, err)
		}
		root, err := parseRoot(data)
		if err != nil {
			return fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
		}
		var desc vfs.Descriptor
		if err := decodeStrictYAML(data, &desc); err != nil {
			return fmt.Errorf("%s: %w", canon, err)
		}

		if raw.Catalog == nil {
			raw.Catalog = make(map[string]vfs.Descriptor)
		}
		raw.Catalog[loc] = desc
		prefix := "catalog." + loc
		for p := range sources {
			if p == prefix || strings.HasPrefix(p, prefix+".") {
				delete(sources, p)
			}
		}
		if root != nil {
			sources[prefix] = sourceAt(root, canon)
			recordSources(sources, root, canon, prefix)
		}
		l.files = append(l.files, canon)
	}
	raw.CatalogFiles = nil
	return nil
}

// parseRoot returns the top-level node of a YAML document, or nil for an
// empty one.
func parseRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0], nil
	}
	return nil, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func lookupKey(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// scalarRefs reads a string or a list of strings.
func scalarRefs(node *yaml.Node, file string) []fileRef {
	if node == nil {
		return nil
	}
	items := []*yaml.Node{node}
	if node.Kind == yaml.SequenceNode {
		items = node.Content
	}
	var refs []fileRef
	for _, item := range items {
		if item.Kind == yaml.ScalarNode {
			refs = append(refs, fileRef{path: item.Value, src: sourceAt(item, file)})
		}
	}
	return refs
}

func sourceAt(node *yaml.Node, file string) Source {
	return Source{Kind: SourceFile, File: file, Line: node.Line, Column: node.Column}
}

func (s Source) pos() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// recordSources maps every mapping key below node to the position of its
// value. Sequences are recorded as a whole.
func recordSources(out map[string]Source, node *yaml.Node, file, prefix string) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			path := node.Content[i].Value
			if prefix != "" {
				path = prefix + "." + path
			}
			val := node.Content[i+1]
			out[path] = sourceAt(val, file)
			recordSources(out, val, file, path)
		}
	case yaml.SequenceNode:
		if prefix != "" {
			out[prefix] = sourceAt(node, file)
		}
	}
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// expandInclude resolves an include to files. A directory contributes its
// .yaml and .yml files in name order.
func expandInclude(baseFile, include string) ([]string, error) {
	path, err := resolveRelative(baseFile, include)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".yaml", ".yml":
			if !ent.IsDir() {
				files = append(files, filepath.Join(path, ent.Name()))
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

// resolveRelative expands ~ and resolves ref against the directory of
// baseFile.
func resolveRelative(baseFile, ref string) (string, error) {
	switch {
	case ref == "":
		return "", fmt.Errorf("path is empty")
	case ref == "~" || strings.HasPrefix(ref, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(ref[1:], "/")), nil
	case filepath.IsAbs(ref):
		return ref, nil
	}
	return filepath.Join(filepath.Dir(baseFile), ref), nil
}

// withSource attaches the file position of a validation error's path.
func withSource(err error, sources map[string]Source) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return err
}
