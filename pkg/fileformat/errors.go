package fileformat

import (
	"errors"
	"fmt"

	"github.com/noders-team/go-gedcomx/pkg/codec"
	"github.com/noders-team/go-gedcomx/pkg/manifest"
)

var (
	ErrInvalidArgument = errors.New("fileformat: invalid argument")
	ErrInvalidName     = errors.New("fileformat: invalid entry name")
	ErrDuplicateEntry  = errors.New("fileformat: duplicate entry")
	ErrNullArgument    = errors.New("fileformat: nil argument")
	ErrIO              = errors.New("fileformat: i/o error")
	ErrClosed          = errors.New("fileformat: already closed")
	ErrMissingManifest = errors.New("fileformat: missing " + manifest.Path)

	ErrInvalidResourceType = codec.ErrInvalidResourceType
	ErrUnknownContentType  = codec.ErrUnknownContentType
	ErrNullResource        = codec.ErrNullResource
	ErrDuplicateSection    = manifest.ErrDuplicateSection
)

// SerializationError reports a serializer failure while writing an entry.
type SerializationError struct {
	Entry       string
	ContentType string
	Err         error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize entry %s as %s: %v", e.Entry, e.ContentType, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// DeserializationError reports a serializer failure while reading an entry.
type DeserializationError struct {
	Entry       string
	ContentType string
	Err         error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("failed to deserialize entry %s as %s: %v", e.Entry, e.ContentType, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
