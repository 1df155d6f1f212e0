package compiler

import (
	"strings"

	"go.trai.ch/lesscache/internal/core/domain"
)

type span struct {
	start, end int
}

func (s span) contains(off int) bool {
	return off >= s.start && off < s.end
}

// scanned is a source with comments masked out. text and mask have the same
// length as the input so offsets map back to lines and columns.
type scanned struct {
	name string
	// text is what gets emitted: line comments blanked, block comments blanked unless kept.
	text string
	// mask has every comment blanked and is what patterns are matched against.
	mask string
	// quoted are string literals and url() arguments.
	quoted []span
}

// scan masks comments, records quoted spans and checks that braces balance.
func scan(name, content string, keepBlockComments bool) (*scanned, error) {
	text := []byte(content)
	mask := []byte(content)
	var quoted []span
	var open []int

	for i := 0; i < len(content); {
		c := content[i]
		switch {
		case c == '"' || c == '\'':
			end := closingQuote(content, i)
			if end < 0 {
				return nil, errorAt(name, content, i, nil, "unterminated string")
			}
			quoted = append(quoted, span{i, end})
			i = end
		case isURLStart(content, i):
			end := strings.IndexByte(content[i:], ')')
			if end < 0 {
				return nil, errorAt(name, content, i, nil, "unterminated url()")
			}
			quoted = append(quoted, span{i, i + end + 1})
			i += end + 1
		case strings.HasPrefix(content[i:], "/*"):
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				return nil, errorAt(name, content, i, nil, "unterminated comment")
			}
			stop := i + 2 + end + 2
			blank(mask, i, stop)
			if !keepBlockComments {
				blank(text, i, stop)
			}
			i = stop
		case strings.HasPrefix(content[i:], "//"):
			stop := len(content)
			if end := strings.IndexByte(content[i:], '\n'); end >= 0 {
				stop = i + end
			}
			blank(mask, i, stop)
			blank(text, i, stop)
			i = stop
		case c == '{':
			open = append(open, i)
			i++
		case c == '}':
			if len(open) == 0 {
				return nil, errorAt(name, content, i, domain.ErrUnbalancedBraces, "unexpected '}'")
			}
			open = open[:len(open)-1]
			i++
		default:
			i++
		}
	}

	if len(open) > 0 {
		return nil, errorAt(name, content, open[len(open)-1], domain.ErrUnbalancedBraces, "unclosed '{'")
	}

	return &scanned{
		name:   name,
		text:   string(text),
		mask:   string(mask),
		quoted: quoted,
	}, nil
}

// inQuotes reports whether off lies inside a string literal or url() argument.
func (s *scanned) inQuotes(off int) bool {
	for _, q := range s.quoted {
		if q.contains(off) {
			return true
		}
		if q.start > off {
			break
		}
	}
	return false
}

// erase blanks [start, end) in both text and mask.
func (s *scanned) erase(start, end int) {
	text := []byte(s.text)
	mask := []byte(s.mask)
	blank(text, start, end)
	blank(mask, start, end)
	s.text = string(text)
	s.mask = string(mask)
}

// closingQuote returns the offset just past the quote closing the string at
// start, or -1 if the string runs into a newline or the end of input.
func closingQuote(content string, start int) int {
	quote := content[start]
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '\n':
			return -1
		case quote:
			return i + 1
		}
	}
	return -1
}

func isURLStart(content string, i int) bool {
	if len(content)-i < 4 || !strings.EqualFold(content[i:i+4], "url(") {
		return false
	}
	return i == 0 || !isIdentByte(content[i-1])
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// blank replaces everything but line breaks in b[start:end] with spaces.
func blank(b []byte, start, end int) {
	for i := start; i < end; i++ {
		if b[i] != '\n' && b[i] != '\r' {
			b[i] = ' '
		}
	}
}

// position converts a byte offset into a 1-based line and column.
func position(content string, off int) (int, int) {
	if off > len(content) {
		off = len(content)
	}
	line := 1 + strings.Count(content[:off], "\n")
	col := off - strings.LastIndexByte(content[:off], '\n')
	return line, col
}

func errorAt(name, content string, off int, cause error, msg string) *domain.CompileError {
	line, col := position(content, off)
	return &domain.CompileError{
		Source:  name,
		Line:    line,
		Column:  col,
		Message: msg,
		Cause:   cause,
	}
}
