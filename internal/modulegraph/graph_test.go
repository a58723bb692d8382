package modulegraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/loom/internal/module"
)

func builtModule(path string) *module.Module {
	return module.New(module.NewID(path), false, &module.Info{Path: path})
}

func TestAddModule_OneNodePerIdentifier(t *testing.T) {
	t.Parallel()

	g := New()

	require.NoError(t, g.AddModule(builtModule("/src/a.ts")))
	require.True(t, g.HasModule(module.NewID("/src/a.ts")))
	require.Equal(t, 1, g.ModuleCount())

	// A second complete module under the same identifier is a bug.
	require.Error(t, g.AddModule(builtModule("/src/a.ts")))
	require.Equal(t, 1, g.ModuleCount())
}

func TestAddModule_UpgradesPlaceholder(t *testing.T) {
	t.Parallel()

	// Arrange: the identifier was reserved at discovery time.
	g := New()
	id := module.NewID("/src/entry.ts")
	require.NoError(t, g.AddModule(module.NewPlaceholder(id)))

	// Act: the entry's own build result arrives.
	built := module.New(id, true, &module.Info{Path: "/src/entry.ts"})
	require.NoError(t, g.AddModule(built))

	// Assert: still one node, now complete and entry-flagged.
	require.Equal(t, 1, g.ModuleCount())
	m, ok := g.Module(id)
	require.True(t, ok)
	require.True(t, m.IsEntry())
	require.NotNil(t, m.Info())
}

func TestAttachInfo_RequiresExistingNode(t *testing.T) {
	t.Parallel()

	g := New()
	err := g.AttachInfo(module.NewID("/src/ghost.ts"), &module.Info{})
	require.Error(t, err)
}

func TestAddDependency_AccumulatesParallelEdges(t *testing.T) {
	t.Parallel()

	// Arrange: importer references the same target twice via distinct forms.
	g := New()
	from := module.NewID("/src/a.ts")
	to := module.NewID("/src/b.ts")
	require.NoError(t, g.AddModule(builtModule("/src/a.ts")))
	require.NoError(t, g.AddModule(builtModule("/src/b.ts")))

	// Act.
	require.NoError(t, g.AddDependency(from, to, module.Dependency{Specifier: "./b", Kind: module.ResolveImport, Order: 0}))
	require.NoError(t, g.AddDependency(from, to, module.Dependency{Specifier: "./b.ts", Kind: module.ResolveRequire, Order: 1}))

	// Assert: one importer->target pair carrying both payloads, in order.
	refs := g.References()
	require.Len(t, refs, 1)
	require.Equal(t, from, refs[0].From)
	require.Equal(t, to, refs[0].To)
	require.Len(t, refs[0].Deps, 2)
	require.Equal(t, module.ResolveImport, refs[0].Deps[0].Kind)
	require.Equal(t, module.ResolveRequire, refs[0].Deps[1].Kind)
}

func TestListings_Sorted(t *testing.T) {
	t.Parallel()

	g := New()
	for _, path := range []string{"/src/c.ts", "/src/a.ts", "/src/b.ts"} {
		require.NoError(t, g.AddModule(builtModule(path)))
	}
	require.NoError(t, g.AddDependency(module.NewID("/src/c.ts"), module.NewID("/src/a.ts"), module.Dependency{Specifier: "./a"}))
	require.NoError(t, g.AddDependency(module.NewID("/src/a.ts"), module.NewID("/src/b.ts"), module.Dependency{Specifier: "./b"}))

	ids := g.ModuleIDs()
	require.Equal(t, []module.ID{"/src/a.ts", "/src/b.ts", "/src/c.ts"}, ids)

	refs := g.References()
	require.Len(t, refs, 2)
	require.Equal(t, module.ID("/src/a.ts"), refs[0].From)
	require.Equal(t, module.ID("/src/c.ts"), refs[1].From)

	require.Equal(t, []module.ID{"/src/b.ts"}, g.DependenciesOf(module.NewID("/src/a.ts")))
}
