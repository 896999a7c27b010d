package cook2tex

import (
	"fmt"
	"strings"
)

// Placeholder marker delimiters. A marker is written %{{name}} so that an
// unrendered template is still valid LaTeX: the line reads as a comment
// until substitution replaces it.
const (
	markerOpen  = "%{{"
	markerClose = "}}"
)

// segment is one compiled piece of a template: literal text, or a
// placeholder to be filled.
type segment struct {
	literal     string
	placeholder string
}

// Template is a parsed LaTeX skeleton with named insertion points.
// Compiled once at registry load and reused read-only across recipes.
type Template struct {
	Name     string
	segments []segment
	names    map[string]struct{}
}

// ParseTemplate compiles template source into segments and placeholders.
// Returns ErrInvalidTemplate for unterminated markers or malformed names.
func ParseTemplate(name, source string) (*Template, error) {
	t := &Template{
		Name:  name,
		names: make(map[string]struct{}),
	}

	rest := source
	for {
		open := strings.Index(rest, markerOpen)
		if open < 0 {
			break
		}
		if open > 0 {
			t.segments = append(t.segments, segment{literal: rest[:open]})
		}
		rest = rest[open+len(markerOpen):]

		end := strings.Index(rest, markerClose)
		if end < 0 {
			return nil, fmt.Errorf("%w: %s: unterminated %q marker", ErrInvalidTemplate, name, markerOpen)
		}

		ph := rest[:end]
		if err := validatePlaceholderName(name, ph); err != nil {
			return nil, err
		}
		t.segments = append(t.segments, segment{placeholder: ph})
		t.names[ph] = struct{}{}
		rest = rest[end+len(markerClose):]
	}
	if rest != "" {
		t.segments = append(t.segments, segment{literal: rest})
	}

	return t, nil
}

// Has reports whether the template contains the named placeholder.
func (t *Template) Has(name string) bool {
	_, ok := t.names[name]
	return ok
}

// Placeholders returns the set of placeholder names in the template.
func (t *Template) Placeholders() []string {
	names := make([]string, 0, len(t.names))
	for n := range t.names {
		names = append(names, n)
	}
	return names
}

// HasPlaceholders reports whether the template has any insertion point.
// Files without placeholders are support files, not templates.
func (t *Template) HasPlaceholders() bool {
	return len(t.names) > 0
}

// fill substitutes every placeholder from values. The caller guarantees
// values covers all placeholders; a gap here is a programmer error.
func (t *Template) fill(values map[string]string) string {
	var b strings.Builder
	for _, s := range t.segments {
		if s.placeholder != "" {
			b.WriteString(values[s.placeholder])
		} else {
			b.WriteString(s.literal)
		}
	}
	return b.String()
}

// validatePlaceholderName rejects empty or non-identifier placeholder names.
func validatePlaceholderName(template, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s: empty placeholder name", ErrInvalidTemplate, template)
	}
	for _, r := range name {
		valid := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !valid {
			return fmt.Errorf("%w: %s: bad placeholder name %q", ErrInvalidTemplate, template, name)
		}
	}
	return nil
}
