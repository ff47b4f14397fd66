package codec

import (
	"encoding/xml"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/noders-team/go-gedcomx/pkg/model"
)

var xmlNameType = reflect.TypeOf(xml.Name{})

// DefaultTypes are bound into every Context in addition to the types passed
// to NewContext.
func DefaultTypes() []any {
	return []any{
		model.Person{},
		model.Relationship{},
		model.FoafPerson{},
		model.DublinCoreRecord{},
		model.Description{},
	}
}

// Context is a binding context: the set of resource types a serializer can
// encode and decode, keyed by root element name.
type Context struct {
	byName map[xml.Name]reflect.Type
	byType map[reflect.Type]xml.Name
	byKey  map[string]xml.Name
	ns     *model.NamespaceManager
}

// NewContext binds the default types plus types. A type is given as a value,
// a pointer or a reflect.Type of a struct with an XMLName xml.Name field whose
// tag names the root element.
func NewContext(types ...any) (*Context, error) {
	c := &Context{
		byName: make(map[xml.Name]reflect.Type),
		byType: make(map[reflect.Type]xml.Name),
		byKey:  make(map[string]xml.Name),
		ns:     model.NewNamespaceManager(nil),
	}
	for _, v := range append(DefaultTypes(), types...) {
		if err := c.bind(v); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Context) bind(v any) error {
	t, err := structType(v)
	if err != nil {
		return err
	}
	if _, ok := c.byType[t]; ok {
		return nil
	}
	name, err := rootName(t)
	if err != nil {
		return err
	}
	if other, ok := c.byName[name]; ok {
		return fmt.Errorf("%w: %s and %s both bind root element %s", ErrInvalidResourceType, other, t, c.ns.QualifiedName(name))
	}
	key := c.ns.QualifiedName(name)
	if _, ok := c.byKey[key]; ok {
		return fmt.Errorf("%w: %s: type key %q already bound", ErrInvalidResourceType, t, key)
	}
	c.byName[name] = t
	c.byType[t] = name
	c.byKey[key] = name
	return nil
}

func structType(v any) (reflect.Type, error) {
	var t reflect.Type
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrInvalidResourceType)
	case reflect.Type:
		t = x
	default:
		t = reflect.TypeOf(v)
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrInvalidResourceType, t)
	}
	return t, nil
}

func rootName(t reflect.Type) (xml.Name, error) {
	f, ok := t.FieldByName("XMLName")
	if !ok || f.Type != xmlNameType {
		return xml.Name{}, fmt.Errorf("%w: %s has no XMLName field", ErrInvalidResourceType, t)
	}
	tag, _, _ := strings.Cut(f.Tag.Get("xml"), ",")
	var name xml.Name
	if space, local, found := strings.Cut(tag, " "); found {
		name = xml.Name{Space: space, Local: local}
	} else {
		name = xml.Name{Local: tag}
	}
	if name.Local == "" {
		return xml.Name{}, fmt.Errorf("%w: %s does not name a root element", ErrInvalidResourceType, t)
	}
	return name, nil
}

// NameOf returns the root element name bound to the type of v.
func (c *Context) NameOf(v any) (xml.Name, bool) {
	if v == nil {
		return xml.Name{}, false
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name, ok := c.byType[t]
	return name, ok
}

// TypeOf returns the type bound to a root element name.
func (c *Context) TypeOf(name xml.Name) (reflect.Type, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Key renders a root element name as the type key used by the JSON and YAML
// envelopes, e.g. "gx:person".
func (c *Context) Key(name xml.Name) string {
	return c.ns.QualifiedName(name)
}

// TypeForKey resolves an envelope type key.
func (c *Context) TypeForKey(key string) (reflect.Type, bool) {
	name, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	return c.TypeOf(name)
}

// Keys lists the bound type keys in sorted order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// newResource allocates a value of the type bound to name and returns a
// pointer to it.
func (c *Context) newResource(name xml.Name) (any, bool) {
	t, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return reflect.New(t).Interface(), true
}

func (c *Context) newResourceForKey(key string) (any, bool) {
	name, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	return c.newResource(name)
}
