package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{Root: ""})
	require.Error(t, err)

	_, err = NewConfig(Config{Root: ".", MaxWorkers: -1})
	require.Error(t, err)

	cfg, err := NewConfig(Config{Root: "."})
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(cfg.Root))
}

func TestRun_BuildsProject(t *testing.T) {
	t.Parallel()

	// Arrange: a minimal project relying on the conventional entry search.
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.ts"), []byte(`var foo = require("./foo");`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "foo.ts"), []byte(`module.exports = 1;`), 0o644))

	cfg, err := NewConfig(Config{Root: root, LogLevel: "error", LogFormat: "text"})
	require.NoError(t, err)

	// Act.
	var out bytes.Buffer
	err = NewApp(&out, cfg).Run(context.Background())

	// Assert.
	require.NoError(t, err)
	require.Contains(t, out.String(), "2 modules")
}

func TestRun_SurfacesBuildFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.ts"), []byte(`var gone = require("./missing");`), 0o644))

	cfg, err := NewConfig(Config{Root: root, LogLevel: "error", LogFormat: "text"})
	require.NoError(t, err)

	var out bytes.Buffer
	err = NewApp(&out, cfg).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}
