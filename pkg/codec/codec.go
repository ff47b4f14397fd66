// Package codec converts GEDCOM X resources to and from the byte streams
// stored in archive entries. Serializers are selected by content type through
// a Registry.
package codec

import (
	"errors"
	"io"
	"reflect"
)

var (
	ErrNullResource        = errors.New("codec: resource is nil")
	ErrUnknownResourceType = errors.New("codec: unknown resource type")
	ErrInvalidResourceType = errors.New("codec: invalid resource type")
	ErrUnknownContentType  = errors.New("codec: no serializer for content type")
	ErrInvalidEnvelope     = errors.New("codec: resource must be wrapped in a single-key type envelope")
)

// Encoder writes the byte representation of a resource.
type Encoder interface {
	Encode(w io.Writer, resource any) error
}

// Decoder reads a resource from its byte representation.
type Decoder interface {
	Decode(r io.Reader) (any, error)
}

// Serializer is an Encoder and Decoder pair bound to one or more content
// types.
type Serializer interface {
	Encoder
	Decoder
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func writeAll(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
