package codec

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/known/anypb"
)

// ProtoCodec stores protobuf messages as a serialized google.protobuf.Any so
// the message type travels with the payload.
type ProtoCodec struct {
	known    map[protoreflect.FullName]struct{}
	resolver *protoregistry.Types
	marshal  proto.MarshalOptions
}

// NewProtoCodec creates a ProtoCodec limited to the given message types. With
// no messages every type in the global registry is accepted.
func NewProtoCodec(messages ...proto.Message) (*ProtoCodec, error) {
	codec := &ProtoCodec{
		known:    make(map[protoreflect.FullName]struct{}, len(messages)),
		resolver: protoregistry.GlobalTypes,
		marshal:  proto.MarshalOptions{Deterministic: true},
	}
	for _, m := range messages {
		if isNil(m) {
			return nil, fmt.Errorf("%w: nil message", ErrInvalidResourceType)
		}
		name := m.ProtoReflect().Descriptor().FullName()
		if _, err := codec.resolver.FindMessageByName(name); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidResourceType, name, err)
		}
		codec.known[name] = struct{}{}
	}
	return codec, nil
}

func (codec *ProtoCodec) accepts(name protoreflect.FullName) bool {
	if len(codec.known) == 0 {
		return true
	}
	_, ok := codec.known[name]
	return ok
}

func (codec *ProtoCodec) Encode(w io.Writer, resource any) error {
	if isNil(resource) {
		return ErrNullResource
	}
	m, ok := resource.(proto.Message)
	if !ok {
		return fmt.Errorf("%w: %T is not a protobuf message", ErrUnknownResourceType, resource)
	}
	if name := m.ProtoReflect().Descriptor().FullName(); !codec.accepts(name) {
		return fmt.Errorf("%w: %s", ErrUnknownResourceType, name)
	}
	wrapped, err := anypb.New(m)
	if err != nil {
		return fmt.Errorf("failed to wrap message: %w", err)
	}
	b, err := codec.marshal.Marshal(wrapped)
	if err != nil {
		return fmt.Errorf("failed to marshal protobuf: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func (codec *ProtoCodec) Decode(r io.Reader) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var wrapped anypb.Any
	if err := proto.Unmarshal(b, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal protobuf: %w", err)
	}
	name := wrapped.MessageName()
	if !codec.accepts(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResourceType, name)
	}
	m, err := anypb.UnmarshalNew(&wrapped, proto.UnmarshalOptions{Resolver: codec.resolver})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal protobuf: %w", err)
	}
	return m, nil
}
