package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{}, &out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 0, cfg.MaxWorkers)
	require.False(t, cfg.Watch)
	require.NotEmpty(t, cfg.Root)
}

func TestParse_PositionalRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{dir}, &out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, dir, cfg.Root)
}

func TestParse_Flags(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"--root", dir, "--log-level", "debug", "--log-format", "json", "--max-workers", "4", "--watch"}, &out)

	require.NoError(t, err)
	require.Equal(t, dir, cfg.Root)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 4, cfg.MaxWorkers)
	require.True(t, cfg.Watch)
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, _, err := Parse([]string{"--log-level", "verbose"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, _, err := Parse([]string{"--log-format", "xml"}, &out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, shouldExit, err := Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Contains(t, out.String(), "Usage:")
}
