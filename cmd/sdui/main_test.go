package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

const scene = `{"hasNavigationBar":false,"container":{"componentId":"root","layout":{"type":"v","alignment":"leading"},"views":[{"type":"text","component":{"componentId":"a","text":"Hello"}},{"type":"text","component":{"componentId":"b","text":"World"}}]}}`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeScene(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2025-10-03"

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "1.2.3")
	require.Contains(t, out, "abcdef1")
	require.Contains(t, out, "2025-10-03")
}

func TestRenderCommand(t *testing.T) {
	path := writeScene(t, scene)

	out, stderr, err := execute(t, "render", path, "--width", "20")
	require.NoError(t, err)
	require.Equal(t, "Hello\nWorld\n", out)
	require.Contains(t, stderr, "Rendered")
}

func TestRenderCommandUsesConfiguredWidth(t *testing.T) {
	path := writeScene(t, scene)
	cfgPath := filepath.Join(t.TempDir(), "sdui.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[render]\nwidth = 3\n"), 0o644))

	out, _, err := execute(t, "--config", cfgPath, "render", path)
	require.NoError(t, err)
	require.Contains(t, out, "Hel")
	require.NotContains(t, out, "Hello")
}

func TestRenderCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorContains(t, err, "read scene")
}

func TestValidateCommand(t *testing.T) {
	good := writeScene(t, scene)
	bad := writeScene(t, `{"hasNavigationBar":false,"container":{"componentId":"root","layout":{"type":"v","alignment":"leading"},"views":[{"type":"marquee","component":{}}]}}`)

	out, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	require.Equal(t, good+": ok\n", out)

	out, _, err = execute(t, "validate", good, bad)
	require.ErrorContains(t, err, "1 of 2 documents invalid")
	require.Contains(t, out, bad+": invalid at container.views[0].type")
}

func TestFmtCommand(t *testing.T) {
	path := writeScene(t, scene)

	out, _, err := execute(t, "fmt", path)
	require.NoError(t, err)
	require.Contains(t, out, "\n  \"container\"")

	_, _, err = execute(t, "fmt", "-w", path)
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, out, string(written))

	// Formatting is stable.
	again, _, err := execute(t, "fmt", path)
	require.NoError(t, err)
	require.Equal(t, out, again)
}

func TestFmtDiff(t *testing.T) {
	path := writeScene(t, scene)

	out, _, err := execute(t, "fmt", "--diff", path)
	require.NoError(t, err)
	require.Contains(t, out, "--- "+path+"\n")
	require.Contains(t, out, "-"+scene+"\n")
	require.Contains(t, out, "+{\n")

	_, _, err = execute(t, "fmt", "-w", path)
	require.NoError(t, err)
	out, _, err = execute(t, "fmt", "-d", path)
	require.NoError(t, err)
	require.Empty(t, out)

	_, _, err = execute(t, "fmt", "-w", "-d", path)
	require.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := execute(t, "explode")
	require.Error(t, err)
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false)

	ctx := withLogger(context.Background(), logger)
	require.Same(t, logger, loggerFromContext(ctx))
	require.Same(t, log.Default(), loggerFromContext(context.Background()))

	logger.Debug("hidden")
	require.Empty(t, buf.String())
	newLogger(&buf, true).Debug("shown")
	require.Contains(t, buf.String(), "shown")
}
