package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/noders-team/go-gedcomx/pkg/model"
)

func TestProtoCodec_RoundTrip(t *testing.T) {
	codec, err := NewProtoCodec()
	require.NoError(t, err)

	value, err := structpb.NewStruct(map[string]interface{}{
		"id":       "98765",
		"fullText": "Israel Heaton",
		"living":   false,
	})
	require.NoError(t, err)

	for _, msg := range []proto.Message{wrapperspb.String("persons/98765"), value} {
		var buf bytes.Buffer
		require.NoError(t, codec.Encode(&buf, msg))

		decoded, err := codec.Decode(&buf)
		require.NoError(t, err)
		decodedMsg, ok := decoded.(proto.Message)
		require.True(t, ok)
		assert.True(t, proto.Equal(msg, decodedMsg), "got %v", decodedMsg)
	}
}

func TestProtoCodec_Deterministic(t *testing.T) {
	codec, err := NewProtoCodec()
	require.NoError(t, err)

	value, err := structpb.NewStruct(map[string]interface{}{"a": 1, "b": 2, "c": 3, "d": 4})
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, codec.Encode(&first, value))
	require.NoError(t, codec.Encode(&second, value))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestProtoCodec_Restricted(t *testing.T) {
	codec, err := NewProtoCodec(&wrapperspb.StringValue{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, wrapperspb.String("x")))
	assert.True(t, errors.Is(codec.Encode(&bytes.Buffer{}, wrapperspb.Int64(1)), ErrUnknownResourceType))

	open, err := NewProtoCodec()
	require.NoError(t, err)
	var other bytes.Buffer
	require.NoError(t, open.Encode(&other, wrapperspb.Int64(1)))

	_, err = codec.Decode(&other)
	assert.True(t, errors.Is(err, ErrUnknownResourceType), "got %v", err)

	decoded, err := codec.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "x", decoded.(*wrapperspb.StringValue).GetValue())
}

func TestProtoCodec_Errors(t *testing.T) {
	_, err := NewProtoCodec((*wrapperspb.StringValue)(nil))
	assert.True(t, errors.Is(err, ErrInvalidResourceType))

	codec, err := NewProtoCodec()
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.True(t, errors.Is(codec.Encode(&buf, nil), ErrNullResource))
	assert.True(t, errors.Is(codec.Encode(&buf, (*wrapperspb.StringValue)(nil)), ErrNullResource))
	assert.True(t, errors.Is(codec.Encode(&buf, &model.Person{}), ErrUnknownResourceType))

	_, err = codec.Decode(strings.NewReader("\xff\xff\xff"))
	assert.Error(t, err)
}
