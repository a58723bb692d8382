package analyze

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/loom/internal/module"
)

func TestDeps_SourceOrder(t *testing.T) {
	t.Parallel()

	ast := &module.Ast{
		Kind: module.KindScript,
		Stmts: []module.Stmt{
			{Text: `import a from "./a";`, Ref: &module.Ref{Specifier: "./a", Kind: module.ResolveImport}},
			{Text: "var x = 1;"},
			{Text: `var b = require("./b");`, Ref: &module.Ref{Specifier: "./b", Kind: module.ResolveRequire}},
		},
	}

	deps := Deps(ast)
	require.Len(t, deps, 2)
	require.Equal(t, "./a", deps[0].Specifier)
	require.Equal(t, 0, deps[0].Order)
	require.Equal(t, "./b", deps[1].Specifier)
	require.Equal(t, 1, deps[1].Order)
}

func TestAugmentHelperDeps_AppendsMissingHelpers(t *testing.T) {
	t.Parallel()

	// Arrange: analysis ran before the transform injected helpers.
	deps := []module.Dependency{
		{Specifier: "./a", Kind: module.ResolveImport, Order: 0},
	}
	ast := &module.Ast{
		Kind:    module.KindScript,
		Helpers: []string{"@loom/helpers/interop", "@loom/helpers/esm"},
	}

	// Act.
	deps = AugmentHelperDeps(deps, ast)

	// Assert: helpers appended after the original deps, tagged as such.
	require.Len(t, deps, 3)
	require.Equal(t, "@loom/helpers/interop", deps[1].Specifier)
	require.Equal(t, module.ResolveHelper, deps[1].Kind)
	require.Equal(t, 1, deps[1].Order)
	require.Equal(t, "@loom/helpers/esm", deps[2].Specifier)
	require.Equal(t, 2, deps[2].Order)
}

func TestAugmentHelperDeps_NoDuplicates(t *testing.T) {
	t.Parallel()

	deps := []module.Dependency{
		{Specifier: "@loom/helpers/interop", Kind: module.ResolveImport, Order: 0},
	}
	ast := &module.Ast{
		Kind:    module.KindScript,
		Helpers: []string{"@loom/helpers/interop", "@loom/helpers/interop"},
	}

	deps = AugmentHelperDeps(deps, ast)

	require.Len(t, deps, 1)
}
