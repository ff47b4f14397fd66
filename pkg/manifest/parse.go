package manifest

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type logicalLine struct {
	text   string
	lineNo int
}

// Parse reads a manifest. CRLF, LF and CR line endings are accepted and
// continuation lines are joined. Sections that repeat an entry name are
// merged, later attributes overwriting earlier ones.
func Parse(r io.Reader) (*Manifest, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))

	raw := strings.Split(string(content), "\n")
	var lines []logicalLine
	for i, l := range raw {
		if strings.HasPrefix(l, " ") {
			if len(lines) == 0 || lines[len(lines)-1].text == "" {
				return nil, errors.Wrapf(ErrMalformed, "line %d: unexpected continuation line", i+1)
			}
			lines[len(lines)-1].text += l[1:]
			continue
		}
		lines = append(lines, logicalLine{text: l, lineNo: i + 1})
	}

	m := newEmpty()
	current := m.main
	for _, l := range lines {
		if l.text == "" {
			current = nil
			continue
		}
		name, value, err := splitAttribute(l)
		if err != nil {
			return nil, err
		}
		if current == nil {
			if !strings.EqualFold(name, NameAttr) || value == "" {
				return nil, errors.Wrapf(ErrMalformed, "line %d: section must start with %s", l.lineNo, NameAttr)
			}
			var ok bool
			if current, ok = m.sections[value]; !ok {
				current = m.addSection(value)
			}
			continue
		}
		current.Set(name, value)
	}
	return m, nil
}

func splitAttribute(l logicalLine) (string, string, error) {
	idx := strings.IndexByte(l.text, ':')
	if idx == -1 {
		return "", "", errors.Wrapf(ErrMalformed, "line %d: missing colon", l.lineNo)
	}
	name := l.text[:idx]
	if err := ValidateName(name); err != nil {
		return "", "", errors.Wrapf(ErrMalformed, "line %d: %v", l.lineNo, err)
	}
	return name, strings.TrimPrefix(l.text[idx+1:], " "), nil
}
