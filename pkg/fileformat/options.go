package fileformat

import (
	"sort"
	"time"

	"github.com/noders-team/go-gedcomx/pkg/codec"
)

// Config selects the serializers used by a Writer or File.
type Config struct {
	// Types are additional resource types bound next to the default ones.
	Types []any
	// Serializer, when set, is used for every content type.
	Serializer codec.Serializer
	// Registry, when set, replaces the default registry.
	Registry *codec.Registry
	// Timestamp is the modification time of entries written without one.
	Timestamp time.Time
}

type Option func(*Config)

func WithTypes(types ...any) Option {
	return func(c *Config) {
		c.Types = append(c.Types, types...)
	}
}

func WithSerializer(s codec.Serializer) Option {
	return func(c *Config) {
		c.Serializer = s
	}
}

func WithRegistry(r *codec.Registry) Option {
	return func(c *Config) {
		c.Registry = r
	}
}

func WithTimestamp(t time.Time) Option {
	return func(c *Config) {
		c.Timestamp = t
	}
}

func NewConfig(opts ...Option) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// buildRegistry resolves the registry. Declared types are always bound, even
// when a serializer or registry is supplied, so an unbindable type is reported
// before any archive I/O happens.
func (c *Config) buildRegistry() (*codec.Registry, error) {
	if len(c.Types) > 0 {
		if _, err := codec.NewContext(c.Types...); err != nil {
			return nil, err
		}
	}
	switch {
	case c.Registry != nil:
		return c.Registry, nil
	case c.Serializer != nil:
		return codec.NewSharedRegistry(c.Serializer), nil
	default:
		return codec.DefaultRegistry(c.Types...)
	}
}

type attribute struct {
	name  string
	value string
}

type entryConfig struct {
	attributes   []attribute
	lastModified time.Time
}

// EntryOption configures a single AddResource call.
type EntryOption func(*entryConfig)

// WithAttributes adds per-entry manifest attributes. Map entries are added in
// sorted key order.
func WithAttributes(attrs map[string]string) EntryOption {
	return func(c *entryConfig) {
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.attributes = append(c.attributes, attribute{name: name, value: attrs[name]})
		}
	}
}

func WithAttribute(name, value string) EntryOption {
	return func(c *entryConfig) {
		c.attributes = append(c.attributes, attribute{name: name, value: value})
	}
}

// WithLastModified sets the modification time stored in the ZIP entry.
func WithLastModified(t time.Time) EntryOption {
	return func(c *entryConfig) {
		c.lastModified = t
	}
}
