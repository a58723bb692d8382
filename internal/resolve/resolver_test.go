package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/loom/internal/config"
)

func projectWithFiles(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// fixture"), 0o644))
	}
	return root
}

func TestResolve_RelativeWithExtensionProbing(t *testing.T) {
	t.Parallel()

	root := projectWithFiles(t, "src/index.ts", "src/foo.ts")
	r := New(root, config.Default())

	res, err := r.Resolve(filepath.Join(root, "src/index.ts"), "./foo")
	require.NoError(t, err)
	require.Empty(t, res.External)
	require.Equal(t, filepath.Join(root, "src/foo.ts"), res.Path)
}

func TestResolve_DirectoryIndexFallback(t *testing.T) {
	t.Parallel()

	root := projectWithFiles(t, "src/index.ts", "src/lib/index.ts")
	r := New(root, config.Default())

	res, err := r.Resolve(filepath.Join(root, "src/index.ts"), "./lib")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "src/lib/index.ts"), res.Path)
}

func TestResolve_BareSpecifierRelativeToImporter(t *testing.T) {
	t.Parallel()

	// Stylesheets reference siblings without a leading ./ marker.
	root := projectWithFiles(t, "src/index.css", "src/umi-logo.png")
	r := New(root, config.Default())

	res, err := r.Resolve(filepath.Join(root, "src/index.css"), "umi-logo.png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "src/umi-logo.png"), res.Path)
}

func TestResolve_Alias(t *testing.T) {
	t.Parallel()

	root := projectWithFiles(t, "src/index.ts", "src/components/button.ts")
	cfg := config.Default()
	cfg.Resolve.Alias = map[string]string{"@": "src"}
	r := New(root, cfg)

	res, err := r.Resolve(filepath.Join(root, "src/index.ts"), "@/components/button")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "src/components/button.ts"), res.Path)
}

func TestResolve_External(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Externals = map[string]string{"react": "React"}
	r := New(t.TempDir(), cfg)

	res, err := r.Resolve("/src/index.ts", "react")
	require.NoError(t, err)
	require.Equal(t, "react", res.Path)
	require.Equal(t, "React", res.External)
}

func TestResolve_Helper(t *testing.T) {
	t.Parallel()

	r := New(t.TempDir(), config.Default())

	res, err := r.Resolve("/src/index.ts", "@loom/helpers/interop")
	require.NoError(t, err)
	require.Empty(t, res.External)
	require.Equal(t, "loom:helper/interop.js", res.Path)
}

func TestResolve_Failure(t *testing.T) {
	t.Parallel()

	root := projectWithFiles(t, "src/index.ts")
	r := New(root, config.Default())

	importer := filepath.Join(root, "src/index.ts")
	_, err := r.Resolve(importer, "./missing")
	require.ErrorIs(t, err, ErrResolve)
	require.Contains(t, err.Error(), importer)
	require.Contains(t, err.Error(), "./missing")
}
