package codec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noders-team/go-gedcomx/pkg/model"
)

// Registry maps content types to serializers. Content types are compared
// after trimming surrounding white space. The zero value is an empty registry
// ready to use.
type Registry struct {
	serializers map[string]Serializer
	fallback    Serializer
}

func NewRegistry() *Registry {
	return &Registry{serializers: make(map[string]Serializer)}
}

// NewSharedRegistry returns a registry that hands s out for every content
// type.
func NewSharedRegistry(s Serializer) *Registry {
	r := NewRegistry()
	r.SetFallback(s)
	return r
}

// DefaultRegistry binds the default types plus types into one Context and
// registers XML, JSON and YAML codecs for the GEDCOM X conclusion media types
// and a ProtoCodec for application/x-protobuf.
func DefaultRegistry(types ...any) (*Registry, error) {
	ctx, err := NewContext(types...)
	if err != nil {
		return nil, err
	}
	protoCodec, err := NewProtoCodec()
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	r.serializers[model.ConclusionV1XMLMediaType] = NewXmlCodecWithContext(ctx)
	r.serializers[model.ConclusionV1JSONMediaType] = NewJsonCodecWithContext(ctx)
	r.serializers[model.ConclusionV1YAMLMediaType] = NewYamlCodecWithContext(ctx)
	r.serializers[model.ProtobufMediaType] = protoCodec
	return r, nil
}

// Register binds s to contentType, replacing any previous binding.
func (r *Registry) Register(contentType string, s Serializer) error {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return fmt.Errorf("%w: empty content type", ErrUnknownContentType)
	}
	if s == nil {
		return fmt.Errorf("nil serializer for %s", contentType)
	}
	if r.serializers == nil {
		r.serializers = make(map[string]Serializer)
	}
	r.serializers[contentType] = s
	return nil
}

// SetFallback sets the serializer used for content types without a binding.
func (r *Registry) SetFallback(s Serializer) {
	r.fallback = s
}

// Lookup returns the serializer bound to contentType.
func (r *Registry) Lookup(contentType string) (Serializer, error) {
	if s, ok := r.serializers[strings.TrimSpace(contentType)]; ok {
		return s, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, contentType)
}

// ContentTypes lists the explicitly registered content types.
func (r *Registry) ContentTypes() []string {
	out := make([]string, 0, len(r.serializers))
	for ct := range r.serializers {
		out = append(out, ct)
	}
	sort.Strings(out)
	return out
}
