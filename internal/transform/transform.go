// Package transform rewrites syntax trees after dependency analysis. The
// reference transform downlevels ESM import forms to require calls and
// records the runtime helpers it injects on the tree; style and asset trees
// pass through unchanged.
package transform

import (
	"context"
	"fmt"

	"github.com/vk/loom/internal/ctxlog"
	"github.com/vk/loom/internal/module"
)

// Runtime helper specifiers injected by the downleveling rewrite. They
// resolve to virtual modules served by the loader's helper plugin.
const (
	HelperInterop = "@loom/helpers/interop"
	HelperESM     = "@loom/helpers/esm"
)

// Transform rewrites the tree in place. Statement references are preserved:
// the rewrite changes how a reference is expressed, never which target it
// points at.
func Transform(ctx context.Context, ast *module.Ast) {
	if ast.Kind != module.KindScript {
		return
	}
	logger := ctxlog.FromContext(ctx)

	needsInterop := false
	needsESM := false
	importSeq := 0

	for i := range ast.Stmts {
		stmt := &ast.Stmts[i]
		if stmt.Ref == nil {
			continue
		}
		switch stmt.Ref.Kind {
		case module.ResolveImport:
			stmt.Text = fmt.Sprintf("var __loom_mod_%d = _interop(require(%q));", importSeq, stmt.Ref.Specifier)
			importSeq++
			needsInterop = true
		case module.ResolveExportFrom:
			stmt.Text = fmt.Sprintf("_esm(exports); var __loom_reexport_%d = _interop(require(%q));", importSeq, stmt.Ref.Specifier)
			importSeq++
			needsInterop = true
			needsESM = true
		}
		// Dynamic imports and require calls keep their written form; the
		// async-split decision belongs to chunk generation.
	}

	if needsInterop {
		ast.Helpers = append(ast.Helpers, HelperInterop)
	}
	if needsESM {
		ast.Helpers = append(ast.Helpers, HelperESM)
	}
	if len(ast.Helpers) > 0 {
		logger.Debug("Transform injected runtime helpers.", "helpers", ast.Helpers)
	}
}
