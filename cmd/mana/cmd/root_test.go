package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/mana/cmd/mana/cmd"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.Root.SetOut(&stdout)
	cmd.Root.SetErr(&stderr)
	cmd.Root.SetArgs(args)
	err := cmd.Root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLoadCommand_PrintsExportTable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.mana"), "pub fn f() -> i32 { 0 }\n")

	stdout, _, err := run(t, "load", "a",
		"--manifest", filepath.Join(root, "does-not-exist.yaml"),
		"--project-root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "module a")
	assert.Contains(t, stdout, "func f")
}

func TestDocCommand_RendersMarkdown(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "shapes.mana"), "pub fn area() -> f64 { 0.0 }\n")

	stdout, _, err := run(t, "doc", "shapes",
		"--manifest", filepath.Join(root, "does-not-exist.yaml"),
		"--project-root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Module: shapes")
	assert.Contains(t, stdout, "## Functions")
}

func TestCheckCommand_ReportsZeroDiagnosticsOnCleanTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.mana"), "pub fn f() -> i32 { 0 }\n")
	writeFile(t, filepath.Join(root, "src", "b.mana"), "pub fn g() -> i32 { 0 }\n")

	stdout, _, err := run(t, "check", filepath.Join(root, "src"),
		"--manifest", filepath.Join(root, "does-not-exist.yaml"),
		"--project-root", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 module(s) loaded, 0 diagnostic(s)")
}

func TestCheckCommand_ReportsDiagnosticsAndFailsOnBrokenFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "broken.mana"), "pub fn ( {\n")

	_, stderr, err := run(t, "check", filepath.Join(root, "src"),
		"--manifest", filepath.Join(root, "does-not-exist.yaml"),
		"--project-root", root)
	require.Error(t, err)
	assert.Contains(t, stderr, "error:")
}
