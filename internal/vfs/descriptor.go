package vfs

import (
	"fmt"
	"strings"
)

// Descriptor is the flat, serialisable form of a Node. It is what catalog
// files decode into and what IPC and MCP responses carry.
type Descriptor struct {
	ID             string       `yaml:"id" json:"id"`
	Name           string       `yaml:"name" json:"name"`
	Icon           string       `yaml:"icon,omitempty" json:"icon,omitempty"`
	Kind           string       `yaml:"kind" json:"kind"`
	FileType       string       `yaml:"file_type,omitempty" json:"file_type,omitempty"`
	GitHub         string       `yaml:"github,omitempty" json:"github,omitempty"`
	Position       string       `yaml:"position,omitempty" json:"position,omitempty"`
	WindowPosition string       `yaml:"window_position,omitempty" json:"window_position,omitempty"`
	Subtitle       string       `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Image          string       `yaml:"image,omitempty" json:"image,omitempty"`
	Description    []string     `yaml:"description,omitempty" json:"description,omitempty"`
	Href           string       `yaml:"href,omitempty" json:"href,omitempty"`
	ImageURL       string       `yaml:"image_url,omitempty" json:"image_url,omitempty"`
	Target         string       `yaml:"target,omitempty" json:"target,omitempty"`
	Children       []Descriptor `yaml:"children,omitempty" json:"children,omitempty"`
}

// Describe flattens n. Folder children are described recursively when deep
// is true; otherwise only the folder itself is returned.
func Describe(n Node, deep bool) Descriptor {
	meta := n.Info()
	d := Descriptor{
		ID:   meta.ID,
		Name: meta.Name,
		Icon: meta.Icon,
		Kind: n.Kind().String(),
	}

	switch v := n.(type) {
	case *Folder:
		d.GitHub = v.GitHub
		d.Position = v.Position
		d.WindowPosition = v.WindowPosition
		if deep {
			d.Children = make([]Descriptor, 0, len(v.Children))
			for _, child := range v.Children {
				d.Children = append(d.Children, Describe(child, true))
			}
		}
	case *File:
		d.Position = v.Position
		d.FileType = string(v.Type())
		switch p := v.Payload.(type) {
		case Text:
			d.Subtitle = p.Subtitle
			d.Image = p.Image
			d.Description = append([]string(nil), p.Lines...)
		case Link:
			d.Href = p.Href
		case Image:
			d.ImageURL = p.URL
		case Document:
			d.Href = p.Href
		case Shortcut:
			d.Target = p.ItemID
		}
	}
	return d
}

// Build converts a descriptor back into a node tree.
func Build(d Descriptor) (Node, error) {
	return build(d, d.ID)
}

func build(d Descriptor, path string) (Node, error) {
	if strings.TrimSpace(d.ID) == "" {
		return nil, fmt.Errorf("%s: id is required", path)
	}
	meta := Meta{ID: d.ID, Name: d.Name, Icon: d.Icon}

	switch d.Kind {
	case "folder":
		folder := &Folder{
			Meta:           meta,
			GitHub:         d.GitHub,
			Position:       d.Position,
			WindowPosition: d.WindowPosition,
			Children:       make([]Node, 0, len(d.Children)),
		}
		seen := make(map[string]struct{}, len(d.Children))
		for _, child := range d.Children {
			childPath := path + "/" + child.ID
			if _, dup := seen[child.ID]; dup {
				return nil, fmt.Errorf("%s: duplicate sibling id", childPath)
			}
			seen[child.ID] = struct{}{}
			n, err := build(child, childPath)
			if err != nil {
				return nil, err
			}
			folder.Children = append(folder.Children, n)
		}
		return folder, nil

	case "file":
		if len(d.Children) > 0 {
			return nil, fmt.Errorf("%s: files cannot have children", path)
		}
		file := &File{Meta: meta, Position: d.Position}
		switch FileType(d.FileType) {
		case FileText:
			file.Payload = Text{Subtitle: d.Subtitle, Image: d.Image, Lines: append([]string(nil), d.Description...)}
		case FileURL:
			file.Payload = Link{Href: d.Href}
		case FileImage:
			file.Payload = Image{URL: d.ImageURL}
		case FilePDF:
			file.Payload = Document{Href: d.Href}
		case FileShortcut:
			file.Payload = Shortcut{ItemID: d.Target}
		default:
			return nil, fmt.Errorf("%s: unknown file_type %q", path, d.FileType)
		}
		return file, nil

	default:
		return nil, fmt.Errorf("%s: kind must be folder or file, got %q", path, d.Kind)
	}
}
