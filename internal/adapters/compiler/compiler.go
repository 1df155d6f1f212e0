// Package compiler implements a compiler for a subset of the LESS style-sheet language.
//
// Supported are imports, global variables with interpolation, comments and
// output compression. Mixins, nesting and operations are passed through untouched.
package compiler

import (
	"context"
	"strings"

	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler compiles LESS sources. It holds no state between compilations.
type Compiler struct{}

// New creates a Compiler.
func New() *Compiler {
	return &Compiler{}
}

// Compile inlines the imports of content, substitutes variables and formats the result.
// On success every importing source in the tree has its direct imports recorded.
func (c *Compiler) Compile(
	ctx context.Context,
	src ports.Source,
	content string,
	cfg *domain.Configuration,
) (string, error) {
	if cfg == nil {
		cfg = domain.DefaultConfiguration()
	}

	s := newSession(ctx, cfg)
	root, err := s.load(src, content)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := s.render(&out, root); err != nil {
		return "", err
	}

	for _, u := range s.order {
		if importing, ok := u.src.(ports.ImportingSource); ok {
			importing.SetImports(u.imports)
		}
	}

	if cfg.Compress {
		return compress(out.String()), nil
	}
	return tidy(out.String()), nil
}

// session is the state of a single compilation.
type session struct {
	ctx   context.Context
	cfg   *domain.Configuration
	chain domain.ImportChain

	vars    map[string]string
	units   map[domain.SourceKey]*unit
	order   []*unit
	emitted map[domain.SourceKey]bool
}

func newSession(ctx context.Context, cfg *domain.Configuration) *session {
	s := &session{
		ctx:     ctx,
		cfg:     cfg,
		vars:    make(map[string]string, len(cfg.Variables)),
		units:   make(map[domain.SourceKey]*unit),
		emitted: make(map[domain.SourceKey]bool),
	}
	for name, value := range cfg.Variables {
		s.vars[strings.TrimPrefix(name, "@")] = value
	}
	return s
}

// unit is a loaded source with its imports resolved.
type unit struct {
	*scanned
	src     ports.Source
	inserts []insert
	imports []ports.Source
}

// insert is output spliced into a unit at pos.
type insert struct {
	pos      int
	child    *unit
	raw      string
	verbatim string
	options  importOptions
}

// load scans a source, collects its variables and recursively loads its imports.
func (s *session) load(src ports.Source, content string) (*unit, error) {
	if err := s.chain.Push(src.Key()); err != nil {
		return nil, err
	}
	defer s.chain.Pop()

	sc, err := scan(src.Key().String(), content, !s.cfg.Compress)
	if err != nil {
		return nil, err
	}

	u := &unit{scanned: sc, src: src}
	s.units[src.Key()] = u
	s.order = append(s.order, u)

	for _, stmt := range statements(sc) {
		switch stmt.kind {
		case stmtDeclaration:
			s.vars[stmt.name] = stmt.value
			u.erase(stmt.start, stmt.end)
		case stmtImport:
			u.erase(stmt.start, stmt.end)
			if err := s.loadImport(u, stmt); err != nil {
				return nil, err
			}
		}
	}
	return u, nil
}

// render writes u with variables substituted and imports spliced in.
func (s *session) render(out *strings.Builder, u *unit) error {
	s.emitted[u.src.Key()] = true

	prev := 0
	for _, ins := range u.inserts {
		if err := s.substitute(out, u.scanned, prev, ins.pos); err != nil {
			return err
		}
		prev = ins.pos

		switch {
		case ins.verbatim != "":
			out.WriteString(ins.verbatim)
		case ins.raw != "":
			out.WriteString(ins.raw)
		case ins.child != nil:
			if ins.options.reference {
				continue
			}
			if s.emitted[ins.child.src.Key()] && !ins.options.multiple {
				continue
			}
			if err := s.render(out, ins.child); err != nil {
				return err
			}
			out.WriteByte('\n')
		}
	}
	return s.substitute(out, u.scanned, prev, len(u.text))
}
