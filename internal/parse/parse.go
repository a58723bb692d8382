package parse

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vk/loom/internal/ctxlog"
	"github.com/vk/loom/internal/load"
	"github.com/vk/loom/internal/module"
)

// ErrParse marks content the scanner could not make sense of.
var ErrParse = errors.New("parse error")

var (
	staticImportRe  = regexp.MustCompile(`^\s*import\s+(?:[\w$*{},\s]+\s+from\s+)?["']([^"']+)["']\s*;?`)
	exportFromRe    = regexp.MustCompile(`^\s*export\s+[\w$*{},\s]+\s+from\s+["']([^"']+)["']\s*;?`)
	dynamicImportRe = regexp.MustCompile(`\bimport\s*\(\s*["']([^"']+)["']\s*\)`)
	requireRe       = regexp.MustCompile(`\brequire\s*\(\s*["']([^"']+)["']\s*\)`)
	importishRe     = regexp.MustCompile(`^\s*(?:import|export)\b`)
	fromClauseRe    = regexp.MustCompile(`\bfrom\b`)

	styleImportRe = regexp.MustCompile(`@import\s+(?:url\(\s*)?["']?([^"'()\s;]+)["']?`)
	styleURLRe    = regexp.MustCompile(`\burl\(\s*["']?([^"')]+?)["']?\s*\)`)
)

// Parse builds a syntax tree from raw content.
func Parse(ctx context.Context, content *load.Content, path string) (*module.Ast, error) {
	logger := ctxlog.FromContext(ctx)

	var ast *module.Ast
	var err error
	switch content.Kind {
	case module.KindScript, module.KindAsset:
		// Asset wrappers are generated scripts and parse as such.
		ast, err = parseScript(content.Data, path, content.Kind)
	case module.KindStyle:
		ast = parseStyle(content.Data)
	default:
		return nil, fmt.Errorf("%w: unknown content kind %d for %s", ErrParse, content.Kind, path)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Parsed module.", "path", path, "kind", ast.Kind.String(), "statements", len(ast.Stmts))
	return ast, nil
}

// match is one reference found inside a line, with its byte span.
type match struct {
	start, end int
	ref        module.Ref
}

func parseScript(src, path string, kind module.AstKind) (*module.Ast, error) {
	ast := &module.Ast{Kind: kind}

	lines := strings.Split(src, "\n")
	for lineNo, line := range lines {
		matches := scanLine(line, []lineScanner{
			{exportFromRe, module.ResolveExportFrom},
			{staticImportRe, module.ResolveImport},
			{dynamicImportRe, module.ResolveDynamicImport},
			{requireRe, module.ResolveRequire},
		})

		if len(matches) == 0 && importishRe.MatchString(line) && fromClauseRe.MatchString(line) {
			return nil, fmt.Errorf("%w: %s:%d: malformed import statement", ErrParse, path, lineNo+1)
		}

		ast.Stmts = append(ast.Stmts, splitStmts(line, matches, lineNo < len(lines)-1)...)
	}
	return ast, nil
}

func parseStyle(src string) *module.Ast {
	ast := &module.Ast{Kind: module.KindStyle}

	lines := strings.Split(src, "\n")
	for lineNo, line := range lines {
		matches := scanLine(line, []lineScanner{
			{styleImportRe, module.ResolveStyleImport},
			{styleURLRe, module.ResolveStyleURL},
		})

		kept := matches[:0]
		for _, m := range matches {
			if isRemoteRef(m.ref.Specifier) {
				continue
			}
			kept = append(kept, m)
		}
		ast.Stmts = append(ast.Stmts, splitStmts(line, kept, lineNo < len(lines)-1)...)
	}
	return ast
}

type lineScanner struct {
	re   *regexp.Regexp
	kind module.ResolveKind
}

// scanLine collects reference matches from every scanner, in source order,
// dropping matches that overlap an earlier one (e.g. url() inside @import url()).
func scanLine(line string, scanners []lineScanner) []match {
	var all []match
	for _, s := range scanners {
		for _, idx := range s.re.FindAllStringSubmatchIndex(line, -1) {
			all = append(all, match{
				start: idx[0],
				end:   idx[1],
				ref:   module.Ref{Specifier: line[idx[2]:idx[3]], Kind: s.kind},
			})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].start < all[j].start })

	kept := all[:0]
	lastEnd := -1
	for _, m := range all {
		if m.start < lastEnd {
			continue
		}
		kept = append(kept, m)
		lastEnd = m.end
	}
	return kept
}

// splitStmts carves a line into statements, preserving the full text across
// them. A reference statement holds exactly the matched text, so a later
// rewrite of that statement cannot touch surrounding code on the same line.
// The line break, when present, stays attached to the last statement.
func splitStmts(line string, matches []match, newline bool) []module.Stmt {
	if newline {
		line += "\n"
	}
	if len(matches) == 0 {
		return []module.Stmt{{Text: line}}
	}

	var stmts []module.Stmt
	cursor := 0
	for _, m := range matches {
		if m.start > cursor {
			stmts = append(stmts, module.Stmt{Text: line[cursor:m.start]})
		}
		ref := m.ref
		stmts = append(stmts, module.Stmt{Text: line[m.start:m.end], Ref: &ref})
		cursor = m.end
	}
	if cursor < len(line) {
		stmts = append(stmts, module.Stmt{Text: line[cursor:]})
	}
	return stmts
}

// isRemoteRef reports whether a stylesheet reference points outside the
// project and should not become a graph edge.
func isRemoteRef(spec string) bool {
	return strings.HasPrefix(spec, "data:") ||
		strings.HasPrefix(spec, "http://") ||
		strings.HasPrefix(spec, "https://") ||
		strings.HasPrefix(spec, "//") ||
		strings.HasPrefix(spec, "#")
}
