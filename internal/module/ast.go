package module

import (
	"fmt"
	"strings"
)

// AstKind tags a syntax tree with the kind of source it came from.
type AstKind int

const (
	// KindScript is a JavaScript/TypeScript module.
	KindScript AstKind = iota
	// KindStyle is a stylesheet.
	KindStyle
	// KindAsset is a binary asset wrapped in a generated script module.
	KindAsset
)

// String returns the lower-case name of the kind.
func (k AstKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindStyle:
		return "style"
	case KindAsset:
		return "asset"
	default:
		return fmt.Sprintf("AstKind(%d)", int(k))
	}
}

// Ast is the lightweight syntax tree flowing through the pipeline. Each
// statement may carry at most one import reference; the transform stage
// rewrites statement text in place and records any runtime helpers it
// injected on the tree.
type Ast struct {
	Kind  AstKind
	Stmts []Stmt
	// Helpers lists the runtime helper specifiers referenced by the tree
	// after transformation. Populated by the transform stage only.
	Helpers []string
}

// Stmt is a single statement of the tree.
type Stmt struct {
	Text string
	// Ref is the import reference carried by this statement, or nil.
	Ref *Ref
}

// Ref is one import/reference site as written in the source.
type Ref struct {
	Specifier string
	Kind      ResolveKind
}

// ExternalAst builds the wrapper tree for an external module: a single
// statement re-exporting the runtime global.
func ExternalAst(binding string) *Ast {
	return &Ast{
		Kind:  KindScript,
		Stmts: []Stmt{{Text: fmt.Sprintf("module.exports = %s;", binding)}},
	}
}

// Source renders the tree back to source text. Statement texts carry their
// own line breaks, so the concatenation reproduces the parsed source.
func (a *Ast) Source() string {
	var b strings.Builder
	for _, s := range a.Stmts {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Refs returns every import reference of the tree in source order.
func (a *Ast) Refs() []Ref {
	var refs []Ref
	for _, s := range a.Stmts {
		if s.Ref != nil {
			refs = append(refs, *s.Ref)
		}
	}
	return refs
}
