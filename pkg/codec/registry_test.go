package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noders-team/go-gedcomx/pkg/model"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{
		model.ConclusionV1JSONMediaType,
		model.ConclusionV1XMLMediaType,
		model.ConclusionV1YAMLMediaType,
		model.ProtobufMediaType,
	}, r.ContentTypes())

	tests := []struct {
		contentType string
		expected    any
	}{
		{contentType: model.ConclusionV1XMLMediaType, expected: &XmlCodec{}},
		{contentType: "  " + model.ConclusionV1JSONMediaType + "\t", expected: &JsonCodec{}},
		{contentType: model.ConclusionV1YAMLMediaType, expected: &YamlCodec{}},
		{contentType: model.ProtobufMediaType, expected: &ProtoCodec{}},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			s, err := r.Lookup(tt.contentType)
			require.NoError(t, err)
			assert.IsType(t, tt.expected, s)
		})
	}

	_, err = r.Lookup("text/plain")
	assert.True(t, errors.Is(err, ErrUnknownContentType))
}

func TestDefaultRegistry_InvalidType(t *testing.T) {
	_, err := DefaultRegistry(noRoot{})
	assert.True(t, errors.Is(err, ErrInvalidResourceType))
}

func TestRegistry_Register(t *testing.T) {
	xmlCodec, err := NewXmlCodec()
	require.NoError(t, err)

	r := NewRegistry()
	require.NoError(t, r.Register(" application/xml ", xmlCodec))

	s, err := r.Lookup("application/xml")
	require.NoError(t, err)
	assert.Same(t, xmlCodec, s)

	assert.True(t, errors.Is(r.Register("  ", xmlCodec), ErrUnknownContentType))
	assert.Error(t, r.Register("application/json", nil))
}

func TestSharedRegistry(t *testing.T) {
	xmlCodec, err := NewXmlCodec()
	require.NoError(t, err)

	r := NewSharedRegistry(xmlCodec)
	for _, ct := range []string{model.ConclusionV1JSONMediaType, "text/plain", ""} {
		s, err := r.Lookup(ct)
		require.NoError(t, err)
		assert.Same(t, xmlCodec, s)
	}
	assert.Empty(t, r.ContentTypes())
}

func TestRegistry_ZeroValue(t *testing.T) {
	xmlCodec, err := NewXmlCodec()
	require.NoError(t, err)

	var r Registry
	_, err = r.Lookup(model.ConclusionV1XMLMediaType)
	assert.True(t, errors.Is(err, ErrUnknownContentType))
	assert.Empty(t, r.ContentTypes())

	require.NoError(t, r.Register(model.ConclusionV1XMLMediaType, xmlCodec))
	s, err := r.Lookup(model.ConclusionV1XMLMediaType)
	require.NoError(t, err)
	assert.Same(t, xmlCodec, s)
}
