package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// XmlCodec marshals resources with encoding/xml and dispatches decoding on
// the root element name.
type XmlCodec struct {
	ctx *Context

	// Pretty controls whether the output is indented.
	Pretty bool
}

// NewXmlCodec creates a pretty-printing XmlCodec bound to the default types
// plus types.
func NewXmlCodec(types ...any) (*XmlCodec, error) {
	ctx, err := NewContext(types...)
	if err != nil {
		return nil, err
	}
	return NewXmlCodecWithContext(ctx), nil
}

// NewXmlCodecWithContext creates a pretty-printing XmlCodec for ctx.
func NewXmlCodecWithContext(ctx *Context) *XmlCodec {
	return &XmlCodec{ctx: ctx, Pretty: true}
}

func (codec *XmlCodec) Encode(w io.Writer, resource any) error {
	if isNil(resource) {
		return ErrNullResource
	}
	if _, ok := codec.ctx.NameOf(resource); !ok {
		return fmt.Errorf("%w: %T", ErrUnknownResourceType, resource)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if codec.Pretty {
		enc.Indent("", "  ")
	}
	if err := enc.Encode(resource); err != nil {
		return fmt.Errorf("failed to marshal xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (codec *XmlCodec) Decode(r io.Reader) (any, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to unmarshal xml: no root element: %w", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		resource, ok := codec.ctx.newResource(start.Name)
		if !ok {
			return nil, fmt.Errorf("%w: root element %s", ErrUnknownResourceType, codec.ctx.Key(start.Name))
		}
		if err := dec.DecodeElement(resource, &start); err != nil {
			return nil, fmt.Errorf("failed to unmarshal xml: %w", err)
		}
		return resource, nil
	}
}
