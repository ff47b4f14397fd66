// Package fileformat reads and writes GEDCOM X files: ZIP archives in JAR
// layout whose entries are serialized resources and whose last entry,
// META-INF/MANIFEST.MF, carries the file and per-entry attributes.
//
// The package logs through the global zerolog logger at trace level only, so
// nothing is printed unless zerolog.TraceLevel is enabled.
package fileformat

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/noders-team/go-gedcomx/pkg/codec"
	"github.com/noders-team/go-gedcomx/pkg/manifest"
)

// Writer streams resources into a GEDCOM X file. The manifest is kept in
// memory and written as the last entry on Close.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	sink      io.Writer
	zw        *zip.Writer
	registry  *codec.Registry
	manifest  *manifest.Manifest
	entries   map[string]struct{}
	timestamp time.Time
	closed    bool
}

// NewWriter wraps w. The registry is resolved before anything is written, so
// on error w is left untouched.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: output", ErrNullArgument)
	}
	cfg := NewConfig(opts...)
	registry, err := cfg.buildRegistry()
	if err != nil {
		return nil, err
	}
	timestamp := cfg.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	return &Writer{
		sink:      w,
		zw:        zip.NewWriter(w),
		registry:  registry,
		manifest:  manifest.New(),
		entries:   make(map[string]struct{}),
		timestamp: timestamp,
	}, nil
}

// AddAttribute sets a file-level attribute in the main manifest section.
// Manifest-Version is fixed at 1.0.
func (w *Writer) AddAttribute(name, value string) error {
	if w.closed {
		return ErrClosed
	}
	if strings.EqualFold(name, manifest.VersionAttr) && value != manifest.Version {
		return fmt.Errorf("%w: %s is fixed at %s", ErrInvalidArgument, manifest.VersionAttr, manifest.Version)
	}
	if err := w.manifest.SetMain(name, value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// AddResource serializes resource into a new entry. The content type selects
// the serializer and is recorded as the first attribute of the entry's
// manifest section, followed by the attributes given through opts.
//
// Argument errors are reported before anything is written. A serialization
// failure leaves a partial entry behind; the Writer must still be closed.
func (w *Writer) AddResource(contentType, entryName string, resource any, opts ...EntryOption) (*zip.FileHeader, error) {
	if w.closed {
		return nil, ErrClosed
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return nil, fmt.Errorf("%w: empty content type", ErrInvalidArgument)
	}
	name, err := NormalizeEntryName(entryName)
	if err != nil {
		return nil, err
	}
	if _, ok := w.entries[name]; ok || strings.EqualFold(name, manifest.Path) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}

	cfg := &entryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	for _, attr := range cfg.attributes {
		if err := validateEntryAttribute(attr); err != nil {
			return nil, err
		}
	}

	serializer, err := w.registry.Lookup(contentType)
	if err != nil {
		return nil, err
	}

	section, err := w.manifest.AddSection(name)
	if err != nil {
		return nil, err
	}
	section.Set(manifest.ContentTypeAttr, contentType)
	for _, attr := range cfg.attributes {
		section.Set(attr.name, attr.value)
	}
	w.entries[name] = struct{}{}

	modified := cfg.lastModified
	if modified.IsZero() {
		modified = w.timestamp
	}
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}
	entry, err := w.zw.CreateHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%w: creating entry %s: %w", ErrIO, name, err)
	}
	if err := serializer.Encode(entry, resource); err != nil {
		return nil, &SerializationError{Entry: name, ContentType: contentType, Err: err}
	}

	log.Trace().Msgf("added entry %s (%s)", name, contentType)
	return header, nil
}

func validateEntryAttribute(attr attribute) error {
	if strings.EqualFold(attr.name, manifest.NameAttr) || strings.EqualFold(attr.name, manifest.ContentTypeAttr) {
		return fmt.Errorf("%w: attribute %s is reserved", ErrInvalidArgument, attr.name)
	}
	if err := manifest.ValidateName(attr.name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := manifest.ValidateValue(attr.value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// Close writes the manifest, finishes the archive and closes the underlying
// writer if it is an io.Closer. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if err := w.writeManifest(); err != nil {
		errs = append(errs, err)
	}
	if err := w.zw.Close(); err != nil {
		errs = append(errs, fmt.Errorf("%w: finishing archive: %w", ErrIO, err))
	}
	if c, ok := w.sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w: closing output: %w", ErrIO, err))
		}
	}
	return errors.Join(errs...)
}

func (w *Writer) writeManifest() error {
	entry, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:     manifest.Path,
		Method:   zip.Deflate,
		Modified: w.timestamp,
	})
	if err != nil {
		return fmt.Errorf("%w: creating manifest: %w", ErrIO, err)
	}
	if _, err := w.manifest.WriteTo(entry); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	log.Trace().Msgf("wrote manifest with %d sections", len(w.manifest.SectionNames()))
	return nil
}
