package fileformat

import (
	"archive/zip"
	"fmt"
	"io"
	"time"

	"github.com/noders-team/go-gedcomx/pkg/manifest"
)

// Entry is an archive entry together with its manifest section.
type Entry struct {
	file       *zip.File
	attributes *manifest.Section
}

// NewEntry pairs f with its manifest section. A nil section means the entry
// has no attributes.
func NewEntry(f *zip.File, section *manifest.Section) (*Entry, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: zip entry", ErrNullArgument)
	}
	if section == nil {
		section = manifest.NewSection()
	}
	return &Entry{file: f, attributes: section}, nil
}

func (e *Entry) File() *zip.File {
	return e.file
}

func (e *Entry) Name() string {
	return e.file.Name
}

func (e *Entry) Modified() time.Time {
	return e.file.Modified
}

// Size is the uncompressed size in bytes.
func (e *Entry) Size() int64 {
	return int64(e.file.UncompressedSize64)
}

// ContentType returns the Content-Type attribute, or "" when there is none.
func (e *Entry) ContentType() string {
	ct, _ := e.attributes.Get(manifest.ContentTypeAttr)
	return ct
}

// Attributes returns a copy of the entry's manifest attributes, Content-Type
// included.
func (e *Entry) Attributes() map[string]string {
	return e.attributes.Map()
}

// Attribute looks up an attribute by case-insensitive name.
func (e *Entry) Attribute(name string) (string, bool) {
	return e.attributes.Get(name)
}

// Open returns the raw entry bytes.
func (e *Entry) Open() (io.ReadCloser, error) {
	rc, err := e.file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening entry %s: %w", ErrIO, e.file.Name, err)
	}
	return rc, nil
}
