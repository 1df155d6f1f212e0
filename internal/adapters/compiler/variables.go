package compiler

import (
	"regexp"
	"strings"

	"go.trai.ch/lesscache/internal/core/domain"
)

var referencePattern = regexp.MustCompile(`@\{([A-Za-z_][\w-]*)\}|@([A-Za-z_][\w-]*)`)

// atRules are CSS at-rule keywords that are never variable references.
var atRules = map[string]bool{
	"charset":             true,
	"container":           true,
	"counter-style":       true,
	"document":            true,
	"font-face":           true,
	"font-feature-values": true,
	"import":              true,
	"keyframes":           true,
	"layer":               true,
	"media":               true,
	"namespace":           true,
	"page":                true,
	"property":            true,
	"supports":            true,
	"viewport":            true,
	"-webkit-keyframes":   true,
	"-moz-keyframes":      true,
}

// variableError is raised while expanding a value; it is positioned at the reference site.
type variableError struct {
	name      string
	recursive bool
}

func (e *variableError) Error() string {
	if e.recursive {
		return "recursive variable definition for @" + e.name
	}
	return "variable @" + e.name + " is undefined"
}

// substitute writes sc.text[from:to] with variable references replaced.
// Plain references inside strings are left alone; @{name} interpolates everywhere.
func (s *session) substitute(out *strings.Builder, sc *scanned, from, to int) error {
	prev := from
	for _, m := range referencePattern.FindAllStringSubmatchIndex(sc.mask[from:to], -1) {
		start, end := from+m[0], from+m[1]
		braced := m[2] >= 0

		var name string
		if braced {
			name = sc.mask[from+m[2] : from+m[3]]
		} else {
			name = sc.mask[from+m[4] : from+m[5]]
			if atRules[name] || sc.inQuotes(start) {
				continue
			}
		}

		value, err := s.resolve(name, nil)
		if err != nil {
			return errorAt(sc.name, sc.text, start, domain.ErrUndefinedVariable, err.Error())
		}
		out.WriteString(sc.text[prev:start])
		out.WriteString(value)
		prev = end
	}
	out.WriteString(sc.text[prev:to])
	return nil
}

// resolve returns the fully expanded value of the named variable.
func (s *session) resolve(name string, visiting map[string]bool) (string, error) {
	raw, ok := s.vars[name]
	if !ok {
		return "", &variableError{name: name}
	}
	if visiting[name] {
		return "", &variableError{name: name, recursive: true}
	}
	if visiting == nil {
		visiting = make(map[string]bool)
	}
	visiting[name] = true
	defer delete(visiting, name)

	if !strings.Contains(raw, "@") {
		return raw, nil
	}

	var b strings.Builder
	prev := 0
	for _, m := range referencePattern.FindAllStringSubmatchIndex(raw, -1) {
		var ref string
		if m[2] >= 0 {
			ref = raw[m[2]:m[3]]
		} else {
			ref = raw[m[4]:m[5]]
		}
		value, err := s.resolve(ref, visiting)
		if err != nil {
			return "", err
		}
		b.WriteString(raw[prev:m[0]])
		b.WriteString(value)
		prev = m[1]
	}
	b.WriteString(raw[prev:])
	return b.String(), nil
}
