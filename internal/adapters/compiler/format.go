package compiler

import "strings"

// tidy trims trailing whitespace, collapses blank line runs and ends the output with a newline.
func tidy(css string) string {
	lines := strings.Split(css, "\n")
	out := make([]string, 0, len(lines))
	gap := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			gap = len(out) > 0
			continue
		}
		if gap {
			out = append(out, "")
			gap = false
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

// compress removes insignificant whitespace and the last semicolon of each block.
func compress(css string) string {
	out := make([]byte, 0, len(css))
	depth := 0
	space := false

	for i := 0; i < len(css); i++ {
		c := css[i]
		switch {
		case c == '"' || c == '\'':
			end := closingQuote(css, i)
			if end < 0 {
				end = len(css)
			}
			out = flushSpace(out, space, c)
			out = append(out, css[i:end]...)
			space = false
			i = end - 1
		case isSpace(c):
			space = len(out) > 0
		case c == ':' && depth > 0:
			out = append(out, c)
			space = false
			for i+1 < len(css) && isSpace(css[i+1]) {
				i++
			}
		case c == '}':
			if n := len(out); n > 0 && out[n-1] == ';' {
				out = out[:n-1]
			}
			out = append(out, c)
			space = false
			depth--
		default:
			if c == '{' {
				depth++
			}
			out = flushSpace(out, space, c)
			out = append(out, c)
			space = false
		}
	}
	return string(out)
}

// flushSpace appends a pending space unless it sits next to punctuation.
func flushSpace(out []byte, space bool, next byte) []byte {
	if !space || isPunct(next) || (len(out) > 0 && isPunct(out[len(out)-1])) {
		return out
	}
	return append(out, ' ')
}

func isPunct(c byte) bool {
	return strings.IndexByte("{};,>", c) >= 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
