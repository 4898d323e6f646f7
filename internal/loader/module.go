package loader

import (
	"path/filepath"
	"strings"

	"github.com/hassan/mana/internal/ast"
	"github.com/hassan/mana/internal/symtab"
)

// LoadedModule is a successfully parsed, export-registered module. It owns
// its AST and export table for the lifetime of the cache entry; consumers
// treat both as read-only (spec.md §5 shared-resource policy).
type LoadedModule struct {
	Name         string
	FilePath     string // absolute, canonical
	AST          *ast.Module
	Exports      *symtab.Table
	Dependencies []string // module names referenced by this module's use/import decls
	Analysed     bool     // set by a later pass; the loader never sets this itself
}

// ModuleNameForFile derives a module name from a file path the way
// load_file does: the file stem, unless the stem is "mod", in which case
// the parent directory name stands in for it (spec.md §4.4.4,
// original_source/frontend/ModuleLoader.cpp file_path_to_module).
func ModuleNameForFile(filePath string) string {
	stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	if stem == "mod" {
		return filepath.Base(filepath.Dir(filePath))
	}
	return stem
}
