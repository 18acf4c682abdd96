package vfs

// Kind discriminates the two node variants.
type Kind int

const (
	KindFolder Kind = iota
	KindFile
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// FileType identifies which payload a file carries.
type FileType string

const (
	FileText     FileType = "txt"
	FileURL      FileType = "url"
	FileImage    FileType = "img"
	FilePDF      FileType = "pdf"
	FileShortcut FileType = "shortcut"
)

// Meta holds the attributes shared by folders and files. IDs are only unique
// among siblings; nodes are always addressed by path.
type Meta struct {
	ID   string
	Name string
	Icon string
}

// Node is either a *Folder or a *File.
type Node interface {
	Info() Meta
	Kind() Kind
	node()
}

// Folder is an ordered container. Position and WindowPosition are layout
// hints for renderers and carry no meaning here.
type Folder struct {
	Meta
	Children       []Node
	GitHub         string
	Position       string
	WindowPosition string
}

func (f *Folder) Info() Meta { return f.Meta }
func (f *Folder) Kind() Kind { return KindFolder }
func (*Folder) node()        {}

// File is a leaf whose content is described by its Payload.
type File struct {
	Meta
	Position string
	Payload  Payload
}

func (f *File) Info() Meta { return f.Meta }
func (f *File) Kind() Kind { return KindFile }
func (*File) node()        {}

// Type reports the file type implied by the payload.
func (f *File) Type() FileType {
	if f.Payload == nil {
		return ""
	}
	return f.Payload.fileType()
}

// Payload is the closed set of file contents: Text, Link, Image, Document
// and Shortcut.
type Payload interface {
	fileType() FileType
}

// Text is the payload of a txt file.
type Text struct {
	Subtitle string
	Image    string
	Lines    []string
}

// Link is the payload of a url file.
type Link struct {
	Href string
}

// Image is the payload of an img file.
type Image struct {
	URL string
}

// Document is the payload of a pdf file.
type Document struct {
	Href string
}

// Shortcut points at a desktop item by id. Trash children are shortcuts.
type Shortcut struct {
	ItemID string
}

func (Text) fileType() FileType     { return FileText }
func (Link) fileType() FileType     { return FileURL }
func (Image) fileType() FileType    { return FileImage }
func (Document) fileType() FileType { return FilePDF }
func (Shortcut) fileType() FileType { return FileShortcut }

// Target returns the URL a file opens, if any.
func Target(f *File) string {
	switch p := f.Payload.(type) {
	case Text:
		return ""
	case Link:
		return p.Href
	case Image:
		return p.URL
	case Document:
		return p.Href
	case Shortcut:
		return ""
	default:
		return ""
	}
}
