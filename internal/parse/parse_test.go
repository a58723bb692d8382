package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/loom/internal/load"
	"github.com/vk/loom/internal/module"
)

func parseScriptSrc(t *testing.T, src string) *module.Ast {
	t.Helper()
	ast, err := Parse(context.Background(), &load.Content{Kind: module.KindScript, Data: src}, "/src/index.ts")
	require.NoError(t, err)
	return ast
}

func TestParse_ScriptImportForms(t *testing.T) {
	t.Parallel()

	ast := parseScriptSrc(t, `import foo from "./foo";
import "./side-effect.css";
export { bar } from "./bar";
var legacy = require("./legacy");
var lazy = import("./lazy");
var x = 1;`)

	refs := ast.Refs()
	require.Len(t, refs, 5)

	require.Equal(t, "./foo", refs[0].Specifier)
	require.Equal(t, module.ResolveImport, refs[0].Kind)

	require.Equal(t, "./side-effect.css", refs[1].Specifier)
	require.Equal(t, module.ResolveImport, refs[1].Kind)

	require.Equal(t, "./bar", refs[2].Specifier)
	require.Equal(t, module.ResolveExportFrom, refs[2].Kind)

	require.Equal(t, "./legacy", refs[3].Specifier)
	require.Equal(t, module.ResolveRequire, refs[3].Kind)

	require.Equal(t, "./lazy", refs[4].Specifier)
	require.Equal(t, module.ResolveDynamicImport, refs[4].Kind)
}

func TestParse_MultipleRefsOneLine(t *testing.T) {
	t.Parallel()

	ast := parseScriptSrc(t, `var a = require("./a"); var b = require("./b");`)

	refs := ast.Refs()
	require.Len(t, refs, 2)
	require.Equal(t, "./a", refs[0].Specifier)
	require.Equal(t, "./b", refs[1].Specifier)
	// The statement split preserves the full source text.
	require.Equal(t, `var a = require("./a"); var b = require("./b");`, ast.Source())
}

func TestParse_MalformedImport(t *testing.T) {
	t.Parallel()

	_, err := Parse(context.Background(), &load.Content{
		Kind: module.KindScript,
		Data: "import { x } from",
	}, "/src/broken.ts")

	require.ErrorIs(t, err, ErrParse)
	require.Contains(t, err.Error(), "/src/broken.ts:1")
}

func TestParse_StyleRefs(t *testing.T) {
	t.Parallel()

	ast, err := Parse(context.Background(), &load.Content{
		Kind: module.KindStyle,
		Data: `@import "./foo.css";
.logo { background: url(umi-logo.png); }
.remote { background: url(https://cdn.example.com/x.png); }
.inline { background: url(data:image/png;base64,AAAA); }`,
	}, "/src/index.css")
	require.NoError(t, err)

	refs := ast.Refs()
	require.Len(t, refs, 2)
	require.Equal(t, "./foo.css", refs[0].Specifier)
	require.Equal(t, module.ResolveStyleImport, refs[0].Kind)
	require.Equal(t, "umi-logo.png", refs[1].Specifier)
	require.Equal(t, module.ResolveStyleURL, refs[1].Kind)
}

func TestParse_StyleImportURLNotDoubleCounted(t *testing.T) {
	t.Parallel()

	ast, err := Parse(context.Background(), &load.Content{
		Kind: module.KindStyle,
		Data: `@import url("./foo.css");`,
	}, "/src/index.css")
	require.NoError(t, err)

	refs := ast.Refs()
	require.Len(t, refs, 1)
	require.Equal(t, "./foo.css", refs[0].Specifier)
	require.Equal(t, module.ResolveStyleImport, refs[0].Kind)
}

func TestParse_AssetWrapperHasNoRefs(t *testing.T) {
	t.Parallel()

	ast, err := Parse(context.Background(), &load.Content{
		Kind: module.KindAsset,
		Data: `module.exports = "data:image/png;base64,AAAA";`,
	}, "/src/logo.png")
	require.NoError(t, err)

	require.Equal(t, module.KindAsset, ast.Kind)
	require.Empty(t, ast.Refs())
}
