package compiler

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	importPattern = regexp.MustCompile(
		`@import\s*(?:\(([^)]*)\)\s*)?(url\(\s*)?(?:"([^"]*)"|'([^']*)'|([^\s;"'()]+))\s*\)?\s*([^;{}]*);`,
	)
	declarationPattern = regexp.MustCompile(`@([A-Za-z_][\w-]*)\s*:\s*([^;{}]*?)\s*;`)
)

type stmtKind int

const (
	stmtDeclaration stmtKind = iota + 1
	stmtImport
)

// statement is a variable declaration or an import found in a source.
type statement struct {
	kind       stmtKind
	start, end int
	source     string

	// declarations
	name, value string

	// imports
	ref     string
	url     bool
	media   string
	options importOptions
	unknown string
}

type importOptions struct {
	reference bool
	inline    bool
	css       bool
	less      bool
	optional  bool
	multiple  bool
}

// statements returns the declarations and imports of sc in document order.
func statements(sc *scanned) []statement {
	var stmts []statement

	for _, m := range declarationPattern.FindAllStringSubmatchIndex(sc.mask, -1) {
		name := sc.mask[m[2]:m[3]]
		if sc.inQuotes(m[0]) || atRules[name] {
			continue
		}
		stmts = append(stmts, statement{
			kind:   stmtDeclaration,
			start:  m[0],
			end:    m[1],
			source: sc.text[m[0]:m[1]],
			name:   name,
			value:  sc.mask[m[4]:m[5]],
		})
	}

	for _, m := range importPattern.FindAllStringSubmatchIndex(sc.mask, -1) {
		if sc.inQuotes(m[0]) {
			continue
		}
		stmt := statement{
			kind:   stmtImport,
			start:  m[0],
			end:    m[1],
			source: sc.text[m[0]:m[1]],
			url:    m[4] >= 0,
			media:  strings.TrimSpace(group(sc.mask, m, 6)),
		}
		for _, g := range []int{3, 4, 5} {
			if m[2*g] >= 0 {
				stmt.ref = sc.mask[m[2*g]:m[2*g+1]]
				break
			}
		}
		stmt.options, stmt.unknown = parseImportOptions(group(sc.mask, m, 1))
		stmts = append(stmts, stmt)
	}

	slices.SortFunc(stmts, func(a, b statement) int {
		return a.start - b.start
	})
	return stmts
}

func group(s string, m []int, g int) string {
	if m[2*g] < 0 {
		return ""
	}
	return s[m[2*g]:m[2*g+1]]
}

// parseImportOptions parses the parenthesised option list. It returns the first unknown option, if any.
func parseImportOptions(raw string) (importOptions, string) {
	var opts importOptions
	for _, field := range strings.Split(raw, ",") {
		switch strings.TrimSpace(field) {
		case "":
		case "reference":
			opts.reference = true
		case "inline":
			opts.inline = true
		case "css":
			opts.css = true
		case "less":
			opts.less = true
		case "optional":
			opts.optional = true
		case "once":
			opts.multiple = false
		case "multiple":
			opts.multiple = true
		default:
			return opts, strings.TrimSpace(field)
		}
	}
	return opts, ""
}

// plainCSS reports whether the import is left for the browser to resolve.
func (st statement) plainCSS() bool {
	if st.options.less || st.options.inline {
		return false
	}
	if st.options.css {
		return true
	}
	ref := st.ref
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "//") ||
		strings.EqualFold(path.Ext(ref), ".css")
}

// loadImport resolves one import of u and records it for rendering.
func (s *session) loadImport(u *unit, stmt statement) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	if stmt.unknown != "" {
		return errorAt(u.name, u.text, stmt.start, nil, fmt.Sprintf("unknown import option %q", stmt.unknown))
	}
	if stmt.plainCSS() {
		u.inserts = append(u.inserts, insert{pos: stmt.start, verbatim: stmt.source})
		return nil
	}

	importing, ok := u.src.(ports.ImportingSource)
	if !ok {
		return errorAt(u.name, u.text, stmt.start, domain.ErrImportsUnsupported,
			fmt.Sprintf("cannot resolve import %q", stmt.ref))
	}
	if s.chain.Depth() > s.cfg.ImportDepth() {
		return errorAt(u.name, u.text, stmt.start, domain.ErrImportTooDeep,
			fmt.Sprintf("imports nested deeper than %d", s.cfg.ImportDepth()))
	}

	child, err := importing.Relative(stmt.ref)
	if err != nil {
		return errorAt(u.name, u.text, stmt.start, domain.ErrImportNotFound,
			fmt.Sprintf("cannot resolve import %q: %v", stmt.ref, err))
	}

	if err := s.chain.Push(child.Key()); err != nil {
		return errorAt(u.name, u.text, stmt.start, domain.ErrImportCycle, cycleMessage(err))
	}
	s.chain.Pop()

	if loaded, ok := s.units[child.Key()]; ok {
		u.addImport(loaded.src)
		u.inserts = append(u.inserts, insert{pos: stmt.start, child: loaded, options: stmt.options})
		return nil
	}

	content, err := child.Content()
	if err != nil {
		// Tracked so the compilation goes stale once the file appears.
		u.addImport(child)
		switch {
		case stmt.options.optional:
			return nil
		case s.cfg.StrictImports:
			return errorAt(u.name, u.text, stmt.start, domain.ErrImportNotFound,
				fmt.Sprintf("import %q not found", stmt.ref))
		default:
			u.inserts = append(u.inserts, insert{pos: stmt.start, verbatim: stmt.source})
			return nil
		}
	}

	u.addImport(child)
	if stmt.options.inline {
		u.inserts = append(u.inserts, insert{pos: stmt.start, raw: content})
		return nil
	}

	loaded, err := s.load(child, content)
	if err != nil {
		return err
	}
	u.inserts = append(u.inserts, insert{pos: stmt.start, child: loaded, options: stmt.options})
	return nil
}

func (u *unit) addImport(src ports.Source) {
	for _, existing := range u.imports {
		if existing.Key() == src.Key() {
			return
		}
	}
	u.imports = append(u.imports, src)
}

func cycleMessage(err error) string {
	var ze *zerr.Error
	if errors.As(err, &ze) {
		if cycle, ok := ze.Metadata()["cycle"].(string); ok {
			return "import cycle: " + cycle
		}
	}
	return err.Error()
}
