package fileformat

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/noders-team/go-gedcomx/pkg/codec"
	"github.com/noders-team/go-gedcomx/pkg/manifest"
)

// File is an open GEDCOM X file.
//
// A File is not safe for concurrent use.
type File struct {
	zr       *zip.Reader
	closer   io.Closer
	registry *codec.Registry
	manifest *manifest.Manifest
	entries  []*Entry
	byName   map[string]*Entry
	closed   bool
}

// NewFile wraps an open archive. On success the File owns rc and closes it
// on Close; on error rc is left open.
func NewFile(rc *zip.ReadCloser, opts ...Option) (*File, error) {
	if rc == nil {
		return nil, fmt.Errorf("%w: archive", ErrNullArgument)
	}
	registry, err := NewConfig(opts...).buildRegistry()
	if err != nil {
		return nil, err
	}
	return newFile(&rc.Reader, rc, registry)
}

// NewFileFromReader reads an archive of the given size from r. If r is an
// io.Closer it is closed by Close, but not when construction fails.
func NewFileFromReader(r io.ReaderAt, size int64, opts ...Option) (*File, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader", ErrNullArgument)
	}
	registry, err := NewConfig(opts...).buildRegistry()
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: reading archive: %w", ErrIO, err)
	}
	closer, _ := r.(io.Closer)
	return newFile(zr, closer, registry)
}

// OpenFile opens the GEDCOM X file at path.
func OpenFile(path string, opts ...Option) (*File, error) {
	registry, err := NewConfig(opts...).buildRegistry()
	if err != nil {
		return nil, err
	}
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrIO, path, err)
	}
	f, err := newFile(&rc.Reader, rc, registry)
	if err != nil {
		_ = rc.Close()
		return nil, err
	}
	return f, nil
}

func newFile(zr *zip.Reader, closer io.Closer, registry *codec.Registry) (*File, error) {
	m, err := readManifest(zr)
	if err != nil {
		return nil, err
	}

	f := &File{
		zr:       zr,
		closer:   closer,
		registry: registry,
		manifest: m,
		entries:  make([]*Entry, 0, len(zr.File)),
		byName:   make(map[string]*Entry, len(zr.File)),
	}
	for _, zf := range zr.File {
		section, _ := m.Section(zf.Name)
		entry, err := NewEntry(zf, section)
		if err != nil {
			return nil, err
		}
		f.entries = append(f.entries, entry)
		if _, ok := f.byName[zf.Name]; !ok {
			f.byName[zf.Name] = entry
		}
	}

	log.Trace().Msgf("opened gedcomx file with %d entries", len(f.entries))
	return f, nil
}

func readManifest(zr *zip.Reader) (*manifest.Manifest, error) {
	for _, zf := range zr.File {
		if !strings.EqualFold(zf.Name, manifest.Path) {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening manifest: %w", ErrIO, err)
		}
		defer rc.Close()
		return manifest.Parse(rc)
	}
	return nil, ErrMissingManifest
}

// Attributes returns a copy of the file-level attributes.
func (f *File) Attributes() map[string]string {
	return f.manifest.Main().Map()
}

// Attribute returns a file-level attribute, or "" when it is not set.
func (f *File) Attribute(name string) string {
	v, _ := f.manifest.Main().Get(name)
	return v
}

// Entries returns every entry in archive order, the manifest included.
func (f *File) Entries() []*Entry {
	out := make([]*Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Entry returns the entry stored under name.
func (f *File) Entry(name string) (*Entry, bool) {
	e, ok := f.byName[name]
	return e, ok
}

// ReadResource decodes the entry with the serializer registered for its
// content type.
func (f *File) ReadResource(e *Entry) (any, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if e == nil {
		return nil, fmt.Errorf("%w: entry", ErrNullArgument)
	}
	contentType := e.ContentType()
	if contentType == "" {
		return nil, fmt.Errorf("%w: entry %s has no content type", ErrUnknownContentType, e.Name())
	}
	serializer, err := f.registry.Lookup(contentType)
	if err != nil {
		return nil, err
	}

	rc, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	resource, err := serializer.Decode(rc)
	if err != nil {
		return nil, &DeserializationError{Entry: e.Name(), ContentType: contentType, Err: err}
	}
	return resource, nil
}

// Close releases the underlying archive. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.closer == nil {
		return nil
	}
	if err := f.closer.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
