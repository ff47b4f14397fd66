package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JsonCodec encodes resources as JSON wrapped in a single-key envelope that
// names the resource type, e.g. {"gx:person": {...}}.
type JsonCodec struct {
	ctx *Context

	// Pretty controls whether the output is indented.
	Pretty bool

	// ExcludeNullValues controls whether properties with a null value are dropped
	// from the output (true) or written as null (false). Fields tagged omitempty
	// are dropped either way.
	ExcludeNullValues bool
}

// NewJsonCodec creates a JsonCodec with default settings bound to the default
// types plus types.
func NewJsonCodec(types ...any) (*JsonCodec, error) {
	ctx, err := NewContext(types...)
	if err != nil {
		return nil, err
	}
	return NewJsonCodecWithContext(ctx), nil
}

// NewJsonCodecWithContext creates a JsonCodec for ctx with default settings:
// pretty output and null values excluded.
func NewJsonCodecWithContext(ctx *Context) *JsonCodec {
	return NewJsonCodecWithOptions(ctx, true, true)
}

// NewJsonCodecWithOptions creates a JsonCodec with custom options
func NewJsonCodecWithOptions(ctx *Context, pretty, excludeNullValues bool) *JsonCodec {
	return &JsonCodec{
		ctx:               ctx,
		Pretty:            pretty,
		ExcludeNullValues: excludeNullValues,
	}
}

// Marshall converts a resource to JSON bytes
func (codec *JsonCodec) Marshall(resource any) ([]byte, error) {
	if isNil(resource) {
		return nil, ErrNullResource
	}
	name, ok := codec.ctx.NameOf(resource)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownResourceType, resource)
	}

	body, err := json.Marshal(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json: %w", err)
	}
	if codec.ExcludeNullValues {
		if body, err = dropNulls(body); err != nil {
			return nil, err
		}
	}

	envelope := map[string]json.RawMessage{codec.ctx.Key(name): body}
	if codec.Pretty {
		return json.MarshalIndent(envelope, "", "  ")
	}
	return json.Marshal(envelope)
}

// Unmarshall converts JSON bytes back to a resource of the type named by the
// envelope key. The result is a pointer.
func (codec *JsonCodec) Unmarshall(data []byte) (any, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if len(envelope) != 1 {
		return nil, fmt.Errorf("%w: found %d keys", ErrInvalidEnvelope, len(envelope))
	}

	for key, body := range envelope {
		resource, ok := codec.ctx.newResourceForKey(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownResourceType, key)
		}
		if err := json.Unmarshal(body, resource); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
		return resource, nil
	}
	return nil, ErrInvalidEnvelope
}

func (codec *JsonCodec) Encode(w io.Writer, resource any) error {
	b, err := codec.Marshall(resource)
	if err != nil {
		return err
	}
	return writeAll(w, b)
}

func (codec *JsonCodec) Decode(r io.Reader) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return codec.Unmarshall(b)
}

func dropNulls(body []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var dynamic interface{}
	if err := dec.Decode(&dynamic); err != nil {
		return nil, fmt.Errorf("failed to convert to dynamic value: %w", err)
	}
	return json.Marshal(withoutNulls(dynamic))
}

// withoutNulls removes null members from objects at any depth. Nulls inside
// arrays are kept so element positions do not shift.
func withoutNulls(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, field := range v {
			if field == nil {
				continue
			}
			out[k] = withoutNulls(field)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = withoutNulls(item)
		}
		return out
	default:
		return v
	}
}
