package codec

import (
	"fmt"
	"io"
	"reflect"
	"strconv"

	yaml "gopkg.in/yaml.v2"
)

// YamlCodec encodes resources as a YAML document with a single top-level key
// naming the resource type, mirroring the JsonCodec envelope.
type YamlCodec struct {
	ctx *Context
}

// NewYamlCodec creates a YamlCodec bound to the default types plus types.
func NewYamlCodec(types ...any) (*YamlCodec, error) {
	ctx, err := NewContext(types...)
	if err != nil {
		return nil, err
	}
	return NewYamlCodecWithContext(ctx), nil
}

func NewYamlCodecWithContext(ctx *Context) *YamlCodec {
	return &YamlCodec{ctx: ctx}
}

func (codec *YamlCodec) Encode(w io.Writer, resource any) error {
	if isNil(resource) {
		return ErrNullResource
	}
	name, ok := codec.ctx.NameOf(resource)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownResourceType, resource)
	}
	b, err := yaml.Marshal(yaml.MapSlice{{Key: codec.ctx.Key(name), Value: resource}})
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func (codec *YamlCodec) Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if len(doc) != 1 {
		return nil, fmt.Errorf("%w: found %d keys", ErrInvalidEnvelope, len(doc))
	}
	key, ok := doc[0].Key.(string)
	if !ok {
		return nil, fmt.Errorf("%w: key %v is not a string", ErrInvalidEnvelope, doc[0].Key)
	}
	t, ok := codec.ctx.TypeForKey(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResourceType, key)
	}

	// Decode a second time straight into the bound type so scalars are not
	// re-resolved through an intermediate generic value.
	envelope := reflect.New(reflect.StructOf([]reflect.StructField{{
		Name: "Resource",
		Type: reflect.PointerTo(t),
		Tag:  reflect.StructTag("yaml:" + strconv.Quote(key)),
	}}))
	if err := yaml.Unmarshal(data, envelope.Interface()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	resource := envelope.Elem().Field(0)
	if resource.IsNil() {
		return nil, ErrNullResource
	}
	return resource.Interface(), nil
}
