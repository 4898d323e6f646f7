package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/mana/internal/diag"
	"github.com/hassan/mana/internal/loader"
	"github.com/hassan/mana/internal/symtab"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// Scenario 1: happy path.
func TestLoadModule_HappyPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.mana"), "pub fn f() -> i32 { 0 }\n")

	sink := diag.NewCollectingSink()
	l := loader.New(loader.Options{ProjectRoot: root, Sink: sink})

	mod, err := l.LoadModule(context.Background(), "a", "")
	require.NoError(t, err)
	require.NotNil(t, mod)
	assert.False(t, sink.HasErrors())
	assert.True(t, filepath.IsAbs(mod.FilePath))

	sym, ok := l.GetExport("a", "f")
	require.True(t, ok)
	assert.Equal(t, symtab.SymbolFunc, sym.Kind)
	assert.True(t, sym.IsPublic)
	assert.Equal(t, "a", sym.SourceModule)
}

// Scenario 2: std lookup via a configured standard-library root.
func TestLoadModule_StdLookup(t *testing.T) {
	stdRoot := t.TempDir()
	writeFile(t, filepath.Join(stdRoot, "std", "io.mana"), "pub fn read_line() { }\n")

	l := loader.New(loader.Options{StdLibRoot: stdRoot, Sink: diag.NewCollectingSink()})

	mod, err := l.LoadModule(context.Background(), "std::io", "")
	require.NoError(t, err)
	require.NotNil(t, mod)

	sym, ok := l.GetExport("std::io", "read_line")
	require.True(t, ok)
	assert.Equal(t, symtab.SymbolFunc, sym.Kind)
	assert.True(t, sym.IsPublic)
}

// Scenario 3: directory-form module (mod.mana).
func TestLoadModule_DirectoryForm(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "util", "mod.mana"), "pub struct V { }\n")

	l := loader.New(loader.Options{ProjectRoot: root, Sink: diag.NewCollectingSink()})

	mod, err := l.LoadModule(context.Background(), "util", "")
	require.NoError(t, err)
	require.NotNil(t, mod)

	sym, ok := l.GetExport("util", "V")
	require.True(t, ok)
	assert.Equal(t, symtab.SymbolStruct, sym.Kind)
}

// Scenario 4: circular module dependency.
func TestLoadModule_Cycle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.mana"), "use b;\n")
	writeFile(t, filepath.Join(root, "src", "b.mana"), "use a;\n")

	sink := diag.NewCollectingSink()
	l := loader.New(loader.Options{ProjectRoot: root, Sink: sink})

	_, err := l.LoadModule(context.Background(), "a", "")
	require.Error(t, err)

	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, diag.Cycle, sink.Errors()[0].Kind)
	assert.Contains(t, sink.Errors()[0].Error(), "circular module dependency:")

	_, ok := l.GetModule("a")
	assert.False(t, ok)
	_, ok = l.GetModule("b")
	assert.False(t, ok)
}

// Scenario 5: missing module.
func TestLoadModule_MissingModule(t *testing.T) {
	sink := diag.NewCollectingSink()
	l := loader.New(loader.Options{Sink: sink})

	_, err := l.LoadModule(context.Background(), "does::not::exist", "")
	require.Error(t, err)

	require.Len(t, sink.Errors(), 1)
	assert.Equal(t, "module not found: does::not::exist", sink.Errors()[0].Error())
	assert.Empty(t, l.Modules())
}

// Scenario 6: sibling import wins over configured search paths.
func TestLoadModule_SiblingImportWins(t *testing.T) {
	projectDir := t.TempDir()
	searchDir := t.TempDir()

	writeFile(t, filepath.Join(projectDir, "main.mana"), "use sibling;\n")
	writeFile(t, filepath.Join(projectDir, "sibling.mana"), "pub fn near() { }\n")
	writeFile(t, filepath.Join(searchDir, "sibling.mana"), "pub fn far() { }\n")

	l := loader.New(loader.Options{SearchPaths: []string{searchDir}, Sink: diag.NewCollectingSink()})

	mainPath := filepath.Join(projectDir, "main.mana")
	mod, err := l.LoadFile(context.Background(), mainPath)
	require.NoError(t, err)
	require.Len(t, mod.Dependencies, 1)

	sibling, ok := l.GetModule(mod.Dependencies[0])
	require.True(t, ok)
	assert.Equal(t, filepath.Join(projectDir, "sibling.mana"), sibling.FilePath)

	_, ok = l.GetExport(sibling.Name, "near")
	assert.True(t, ok)
}

func TestLoadModule_CachedSecondLoadReturnsSameReference(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.mana"), "pub fn f() { }\n")

	l := loader.New(loader.Options{ProjectRoot: root, Sink: diag.NewCollectingSink()})

	first, err := l.LoadModule(context.Background(), "a", "")
	require.NoError(t, err)
	second, err := l.LoadModule(context.Background(), "a", "")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoadModule_NoLeakageAfterFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "broken.mana"), "pub fn ( {\n")

	l := loader.New(loader.Options{ProjectRoot: root, Sink: diag.NewCollectingSink()})

	_, err := l.LoadModule(context.Background(), "broken", "")
	require.Error(t, err)

	_, ok := l.GetModule("broken")
	assert.False(t, ok)
}

func TestGetModuleByPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.mana"), "pub fn f() { }\n")

	l := loader.New(loader.Options{ProjectRoot: root, Sink: diag.NewCollectingSink()})
	mod, err := l.LoadModule(context.Background(), "a", "")
	require.NoError(t, err)

	found, ok := l.GetModuleByPath(mod.FilePath)
	require.True(t, ok)
	assert.Equal(t, "a", found.Name)
}

func TestGetExport_ResolvesSelectiveReexport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "inner.mana"), "pub fn helper() { }\n")
	writeFile(t, filepath.Join(root, "src", "outer.mana"), "pub use inner::{helper};\n")

	l := loader.New(loader.Options{ProjectRoot: root, Sink: diag.NewCollectingSink()})

	_, err := l.LoadModule(context.Background(), "outer", "")
	require.NoError(t, err)

	sym, ok := l.GetExport("outer", "helper")
	require.True(t, ok)
	assert.Equal(t, symtab.SymbolFunc, sym.Kind)
}

func TestModuleNameForFile_ModStemUsesParentDir(t *testing.T) {
	assert.Equal(t, "util", loader.ModuleNameForFile(filepath.Join("src", "util", "mod.mana")))
	assert.Equal(t, "a", loader.ModuleNameForFile(filepath.Join("src", "a.mana")))
}
