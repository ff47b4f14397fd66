// Package manifest implements the JAR manifest (META-INF/MANIFEST.MF) model
// that carries file-level and per-entry attributes of a GEDCOM X file.
//
// See https://docs.oracle.com/javase/8/docs/technotes/guides/jar/jar.html#JARManifest
package manifest

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// Path is the archive entry holding the manifest.
	Path = "META-INF/MANIFEST.MF"

	VersionAttr     = "Manifest-Version"
	NameAttr        = "Name"
	ContentTypeAttr = "Content-Type"
	CreatedByAttr   = "Created-By"

	// Version is the only manifest version written.
	Version = "1.0"

	maxLineBytes = 72
	maxNameBytes = 70
)

var (
	ErrDuplicateSection = errors.New("manifest: duplicate section")
	ErrInvalidName      = errors.New("manifest: invalid attribute name")
	ErrInvalidValue     = errors.New("manifest: invalid attribute value")
	ErrMalformed        = errors.New("manifest: malformed")
)

// Manifest holds the main attributes and the per-entry sections in insertion
// order.
type Manifest struct {
	main     *Section
	sections map[string]*Section
	order    []string
}

// New returns a manifest whose main section holds Manifest-Version: 1.0.
func New() *Manifest {
	m := newEmpty()
	m.main.Set(VersionAttr, Version)
	return m
}

func newEmpty() *Manifest {
	return &Manifest{
		main:     NewSection(),
		sections: make(map[string]*Section),
	}
}

// Main returns the main section.
func (m *Manifest) Main() *Section {
	return m.main
}

// SetMain inserts or overwrites a main attribute.
func (m *Manifest) SetMain(name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}
	m.main.Set(name, value)
	return nil
}

// AddSection creates an empty section for entryName.
func (m *Manifest) AddSection(entryName string) (*Section, error) {
	if _, ok := m.sections[entryName]; ok {
		return nil, errors.Wrapf(ErrDuplicateSection, "%q", entryName)
	}
	if err := ValidateValue(entryName); err != nil {
		return nil, err
	}
	return m.addSection(entryName), nil
}

func (m *Manifest) addSection(entryName string) *Section {
	s := NewSection()
	m.sections[entryName] = s
	m.order = append(m.order, entryName)
	return s
}

// PutSection sets an attribute on the named section, creating the section if
// it does not exist yet.
func (m *Manifest) PutSection(entryName, name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}
	s, ok := m.sections[entryName]
	if !ok {
		var err error
		if s, err = m.AddSection(entryName); err != nil {
			return err
		}
	}
	s.Set(name, value)
	return nil
}

// Section returns the section recorded for entryName.
func (m *Manifest) Section(entryName string) (*Section, bool) {
	s, ok := m.sections[entryName]
	return s, ok
}

// SectionNames returns the entry names of all sections in insertion order.
func (m *Manifest) SectionNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// WriteTo writes the manifest in the JAR manifest format: UTF-8, CRLF line
// endings, lines folded at 72 bytes, main section first and every section
// terminated by a blank line.
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	if v, ok := m.main.Get(VersionAttr); ok {
		writeAttribute(&buf, VersionAttr, v)
	}
	_ = m.main.each(func(name, value string) error {
		if !strings.EqualFold(name, VersionAttr) {
			writeAttribute(&buf, name, value)
		}
		return nil
	})
	buf.WriteString("\r\n")

	for _, entry := range m.order {
		writeAttribute(&buf, NameAttr, entry)
		_ = m.sections[entry].each(func(name, value string) error {
			writeAttribute(&buf, name, value)
			return nil
		})
		buf.WriteString("\r\n")
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), errors.Wrap(err, "writing manifest")
	}
	return int64(n), nil
}

// writeAttribute emits "name: value" split into physical lines of at most 72
// bytes. Continuation lines start with a single space and multi-byte
// characters are never split.
func writeAttribute(buf *bytes.Buffer, name, value string) {
	line := name + ": " + value
	limit := maxLineBytes
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineBytes - 1
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}

// ValidateName reports whether name is a legal attribute name:
// 1-70 characters from [A-Za-z0-9_-].
func ValidateName(name string) error {
	if name == "" || len(name) > maxNameBytes {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '_') {
			return errors.Wrapf(ErrInvalidName, "%q: character %q", name, c)
		}
	}
	return nil
}

// ValidateValue reports whether value can be stored in a manifest.
func ValidateValue(value string) error {
	if !utf8.ValidString(value) {
		return errors.Wrap(ErrInvalidValue, "not valid UTF-8")
	}
	if strings.ContainsAny(value, "\r\n\x00") {
		return errors.Wrapf(ErrInvalidValue, "%q contains a line break or NUL", value)
	}
	return nil
}
