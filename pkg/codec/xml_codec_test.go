package codec

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noders-team/go-gedcomx/pkg/model"
	"github.com/noders-team/go-gedcomx/pkg/testutil"
)

func TestXmlCodec_Encode(t *testing.T) {
	codec, err := NewXmlCodec()
	require.NoError(t, err)

	rel := &model.Relationship{
		ID:      "RRRR-F01",
		Type:    model.RelationshipParentChild,
		Person1: &model.ResourceReference{Resource: "#87654"},
		Person2: &model.ResourceReference{Resource: "#98765"},
	}

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, rel))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<relationship xmlns="http://gedcomx.org/conclusion/v1/" id="RRRR-F01" type="http://gedcomx.org/ParentChild">`)
	assert.Contains(t, out, "\n  <person1 resource=\"#87654\"></person1>")
	assert.True(t, strings.HasSuffix(out, "</relationship>\n"))
}

func TestXmlCodec_RoundTrip(t *testing.T) {
	codec, err := NewXmlCodec()
	require.NoError(t, err)

	for _, resource := range testutil.ExampleResources() {
		t.Run(testutil.EntryName(resource), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, resource))

			decoded, err := codec.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, resource, testutil.ClearXMLName(decoded))
		})
	}
}

func TestXmlCodec_MetadataTypes(t *testing.T) {
	codec, err := NewXmlCodec()
	require.NoError(t, err)

	resources := []any{
		&model.FoafPerson{ID: "c1", Name: "Ryan Heaton", Mbox: "mailto:heatonra@familysearch.org"},
		&model.Description{ID: "d1", About: "#98765", Title: "Israel Heaton", Modified: "2011-11-11T11:11:11.111Z"},
		&model.DublinCoreRecord{Title: []string{"Heaton family"}, Creator: []string{"a", "b"}},
	}
	for _, resource := range resources {
		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, resource))
		decoded, err := codec.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, resource, testutil.ClearXMLName(decoded))
	}
}

func TestXmlCodec_UserType(t *testing.T) {
	codec, err := NewXmlCodec(note{})
	require.NoError(t, err)

	text := "hello"
	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, note{Text: &text, Tags: []string{"a"}}))

	decoded, err := codec.Decode(&buf)
	require.NoError(t, err)
	require.IsType(t, &note{}, decoded)
	assert.Equal(t, "hello", *decoded.(*note).Text)
	assert.Equal(t, []string{"a"}, decoded.(*note).Tags)
}

func TestXmlCodec_Errors(t *testing.T) {
	codec, err := NewXmlCodec()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.True(t, errors.Is(codec.Encode(&buf, nil), ErrNullResource))
	assert.True(t, errors.Is(codec.Encode(&buf, (*model.Person)(nil)), ErrNullResource))
	assert.True(t, errors.Is(codec.Encode(&buf, &note{}), ErrUnknownResourceType))
	assert.Zero(t, buf.Len())

	_, err = codec.Decode(strings.NewReader(`<?xml version="1.0"?><unknown/>`))
	assert.True(t, errors.Is(err, ErrUnknownResourceType), "got %v", err)

	_, err = codec.Decode(strings.NewReader(""))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF), "got %v", err)

	_, err = codec.Decode(strings.NewReader(`<person xmlns="http://gedcomx.org/conclusion/v1/"><name>`))
	assert.Error(t, err)
}
