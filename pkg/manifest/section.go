package manifest

import "strings"

// Section is an ordered set of manifest attributes. Names are matched
// case-insensitively; the spelling of the first insertion is kept.
type Section struct {
	index  map[string]int
	names  []string
	values []string
}

// NewSection creates an empty section.
func NewSection() *Section {
	return &Section{index: make(map[string]int)}
}

// Set adds or overwrites an attribute while keeping its original position.
func (s *Section) Set(name, value string) {
	key := strings.ToLower(name)
	if i, ok := s.index[key]; ok {
		s.values[i] = value
		return
	}
	s.index[key] = len(s.names)
	s.names = append(s.names, name)
	s.values = append(s.values, value)
}

// Get returns the value of the named attribute.
func (s *Section) Get(name string) (string, bool) {
	i, ok := s.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return s.values[i], true
}

// Names returns the attribute names in insertion order.
func (s *Section) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of attributes.
func (s *Section) Len() int {
	return len(s.names)
}

// Map returns a copy of the attributes.
func (s *Section) Map() map[string]string {
	out := make(map[string]string, len(s.names))
	for i, n := range s.names {
		out[n] = s.values[i]
	}
	return out
}

func (s *Section) each(fn func(name, value string) error) error {
	for i, n := range s.names {
		if err := fn(n, s.values[i]); err != nil {
			return err
		}
	}
	return nil
}
