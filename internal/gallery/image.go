// Package gallery manages uploaded photos and their persistence.
package gallery

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Image is a stored gallery photo. URL holds the full data URL.
type Image struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// MIMEType extracts the media type from the data URL.
func (img Image) MIMEType() string {
	rest, ok := strings.CutPrefix(img.URL, "data:")
	if !ok {
		return ""
	}
	mediaType, _, _ := strings.Cut(rest, ";")
	return mediaType
}

// Bytes decodes the data URL payload.
func (img Image) Bytes() ([]byte, error) {
	_, payload, ok := strings.Cut(img.URL, ";base64,")
	if !ok {
		return nil, fmt.Errorf("image %s: not a base64 data URL", img.ID)
	}
	return base64.StdEncoding.DecodeString(payload)
}

// DataURL encodes raw bytes as a data URL.
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DetectMIME guesses a file's media type from its extension, falling back
// to content sniffing. Parameters such as charset are dropped.
func DetectMIME(name string, data []byte) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if t == "" {
		t = http.DetectContentType(data)
	}
	t, _, _ = strings.Cut(t, ";")
	return t
}

var (
	// ErrNotReady is returned for mutations attempted before Load completes.
	ErrNotReady = errors.New("gallery not loaded")
	// ErrNotFound is returned when an image id is unknown.
	ErrNotFound = errors.New("image not found")
)

// ValidationError rejects a single upload. Other files in the same batch are
// unaffected.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// PersistenceError wraps a blob store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("gallery %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// SerializedSize is the byte length of the JSON encoding of images. Stores
// report it as the collection size.
func SerializedSize(images []Image) (int64, error) {
	if images == nil {
		images = []Image{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func cloneImages(in []Image) []Image {
	out := make([]Image, len(in))
	copy(out, in)
	return out
}
