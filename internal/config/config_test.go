package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/mana/internal/config"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "mana.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ParsesManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "search_paths:\n  - vendor/mana\nproject_root: .\nstd_lib_root: /opt/mana/lib\n")

	m, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/mana"}, m.SearchPaths)
	assert.Equal(t, ".", m.ProjectRoot)
	assert.Equal(t, "/opt/mana/lib", m.StdLibRoot)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadIfExists_ReturnsEmptyWhenAbsent(t *testing.T) {
	m, err := config.LoadIfExists(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, m.SearchPaths)
	assert.Empty(t, m.ProjectRoot)
}

func TestDefaultStdLibRoot_PrefersManaLib(t *testing.T) {
	t.Setenv("MANA_LIB", "/custom/lib")
	assert.Equal(t, "/custom/lib", config.DefaultStdLibRoot())
}

func TestDefaultStdLibRoot_FallsBackToHome(t *testing.T) {
	t.Setenv("MANA_LIB", "")
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".mana", "lib"), config.DefaultStdLibRoot())
}

func TestResolve_ManifestOverridesEnvironmentStdLib(t *testing.T) {
	t.Setenv("MANA_LIB", "/env/lib")
	m := &config.Manifest{StdLibRoot: "/manifest/lib", ProjectRoot: "proj"}

	r := config.Resolve(m)
	assert.Equal(t, "/manifest/lib", r.StdLibRoot)
	assert.Equal(t, "proj", r.ProjectRoot)
}

func TestResolve_NilManifestUsesEnvironmentDefault(t *testing.T) {
	t.Setenv("MANA_LIB", "/env/lib")
	r := config.Resolve(nil)
	assert.Equal(t, "/env/lib", r.StdLibRoot)
	assert.Empty(t, r.SearchPaths)
}
