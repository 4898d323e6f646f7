package symtab

import (
	"github.com/hassan/mana/internal/ast"
	"github.com/hassan/mana/internal/diag"
	"github.com/hassan/mana/internal/typeref"
)

// Reexport is one `pub use ...` entry a module could not eagerly resolve:
// resolving it means loading ModulePath and looking ImportedName up there
// (spec §4.4.6, re-exports are lazy, not materialized at registration
// time). Glob re-exports leave ImportedName empty and set Glob instead.
type Reexport struct {
	ModulePath   string
	ImportedName string // empty when Glob is set
	LocalName    string // the name importers of this module see
	Glob         bool
}

// Table is one module's export table: every publicly visible name it
// declares directly, plus the re-export entries that require consulting
// another module's table to resolve (spec §4.3).
type Table struct {
	moduleName string
	exports    map[string]*Symbol
	order      []string // registration order, for deterministic GetAllExports
	reexports  []Reexport
}

// New creates an empty export table for moduleName.
func New(moduleName string) *Table {
	return &Table{
		moduleName: moduleName,
		exports:    make(map[string]*Symbol),
	}
}

// RegisterExports walks mod's top-level declarations once and registers
// every publicly visible name (spec §4.4.6: at-most-once per module).
// Duplicate exports are reported to sink and the first registration wins;
// registration continues past a duplicate so the rest of the file is still
// checked (spec §7: the sole locally-recovered error kind).
func RegisterExports(mod *ast.Module, sink diag.Sink) *Table {
	t := New(mod.Name)

	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.IsPublic() && !d.IsMethod() {
				t.define(&Symbol{
					Name:         d.Name,
					Kind:         SymbolFunc,
					Type:         typeref.Ref{Kind: typeref.Unknown},
					IsPublic:     true,
					SourceModule: mod.Name,
					Pos:          d.Pos(),
				}, sink)
			}

		case *ast.GlobalVarDecl:
			if d.IsPublic() {
				t.define(&Symbol{
					Name:         d.Var.Name,
					Kind:         SymbolVariable,
					Type:         typeref.Ref{Kind: typeref.Variable, Name: d.Var.TypeName},
					IsPublic:     true,
					SourceModule: mod.Name,
					Pos:          d.Pos(),
				}, sink)
			}

		case *ast.StructDecl:
			if d.IsPublic() {
				t.define(&Symbol{
					Name:         d.Name,
					Kind:         SymbolStruct,
					Type:         typeref.Ref{Kind: typeref.Struct, Name: d.Name},
					IsPublic:     true,
					SourceModule: mod.Name,
					Pos:          d.Pos(),
				}, sink)
			}

		case *ast.EnumDecl:
			if d.IsPublic() {
				t.define(&Symbol{
					Name:         d.Name,
					Kind:         SymbolEnum,
					Type:         typeref.Ref{Kind: typeref.Enum, Name: d.Name},
					IsPublic:     true,
					SourceModule: mod.Name,
					Pos:          d.Pos(),
				}, sink)
			}

		case *ast.TraitDecl:
			if d.IsPublic() {
				t.define(&Symbol{
					Name:         d.Name,
					Kind:         SymbolTrait,
					Type:         typeref.Ref{Kind: typeref.Struct, Name: d.Name},
					IsPublic:     true,
					SourceModule: mod.Name,
					Pos:          d.Pos(),
				}, sink)
			}

		case *ast.TypeAliasDecl:
			if d.IsPublic() {
				t.define(&Symbol{
					Name:         d.AliasName,
					Kind:         SymbolTypeAlias,
					Type:         typeref.Ref{Kind: typeref.Unknown},
					IsPublic:     true,
					SourceModule: mod.Name,
					Pos:          d.Pos(),
				}, sink)
			}

		case *ast.UseDecl:
			if d.IsPubReexport {
				t.registerReexport(d)
			}

			// ImplDecl and ImportDecl never export a name directly.
		}
	}

	return t
}

func (t *Table) registerReexport(d *ast.UseDecl) {
	switch {
	case d.IsGlob:
		t.reexports = append(t.reexports, Reexport{ModulePath: d.ModulePath, Glob: true})

	case len(d.ImportedNames) > 0:
		for _, name := range d.ImportedNames {
			t.reexports = append(t.reexports, Reexport{
				ModulePath:   d.ModulePath,
				ImportedName: name,
				LocalName:    name,
			})
		}

	default:
		// Re-exporting the module path's own last segment: `pub use a::b;`
		local := d.Alias
		importedName := lastPathSegment(d.ModulePath)
		if local == "" {
			local = importedName
		}
		t.reexports = append(t.reexports, Reexport{
			ModulePath:   d.ModulePath,
			ImportedName: importedName,
			LocalName:    local,
		})
	}
}

func lastPathSegment(path string) string {
	last := path
	for i := len(path) - 1; i >= 1; i-- {
		if path[i] == ':' && path[i-1] == ':' {
			last = path[i+1:]
			break
		}
	}
	return last
}

// define registers symbol under symbol.Name, reporting a duplicate-export
// diagnostic and keeping the existing registration if the name is already
// taken (spec §4.3: fatal to the registration, first wins).
func (t *Table) define(symbol *Symbol, sink diag.Sink) {
	if _, exists := t.exports[symbol.Name]; exists {
		if sink != nil {
			sink.Report(diag.DuplicateExport(t.moduleName, symbol.Name))
		}
		return
	}
	t.exports[symbol.Name] = symbol
	t.order = append(t.order, symbol.Name)
}

// GetExport looks up a directly registered export by name. It does not
// resolve re-exports; callers that need the full, re-export-aware lookup
// use loader.GetExport, which has access to every loaded module's table.
func (t *Table) GetExport(name string) (*Symbol, bool) {
	s, ok := t.exports[name]
	return s, ok
}

// GetAllExports returns every directly registered export, in registration
// (source) order.
func (t *Table) GetAllExports() []*Symbol {
	out := make([]*Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.exports[name])
	}
	return out
}

// Reexports returns the module's unresolved re-export entries.
func (t *Table) Reexports() []Reexport {
	return t.reexports
}
