package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/mana/internal/ast"
	"github.com/hassan/mana/internal/diag"
	"github.com/hassan/mana/internal/lexer"
	"github.com/hassan/mana/internal/typeref"
)

func TestSymbol_String(t *testing.T) {
	symbol := &Symbol{
		Name: "x",
		Kind: SymbolVariable,
		Type: typeref.Ref{Kind: typeref.Variable, Name: "i32"},
		Pos:  lexer.Position{Filename: "test.mana", Line: 1, Column: 5},
	}

	assert.Equal(t, "variable x at test.mana:1:5", symbol.String())
}

func TestSymbolKind_String(t *testing.T) {
	tests := []struct {
		kind     SymbolKind
		expected string
	}{
		{SymbolFunc, "func"},
		{SymbolVariable, "variable"},
		{SymbolStruct, "struct"},
		{SymbolEnum, "enum"},
		{SymbolTrait, "trait"},
		{SymbolTypeAlias, "type_alias"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func pubFunc(name string) *ast.FuncDecl {
	d := &ast.FuncDecl{Name: name, IsPub: true}
	return d
}

func pubStruct(name string) *ast.StructDecl {
	return &ast.StructDecl{Name: name, IsPub: true}
}

func TestRegisterExports_PublicDeclsRegistered(t *testing.T) {
	mod := &ast.Module{
		Name: "shapes",
		Decls: []ast.Decl{
			pubFunc("area"),
			pubStruct("Circle"),
			&ast.StructDecl{Name: "internalHelper"}, // not pub
		},
	}

	sink := diag.NewCollectingSink()
	table := RegisterExports(mod, sink)

	assert.False(t, sink.HasErrors())

	area, ok := table.GetExport("area")
	require.True(t, ok)
	assert.Equal(t, SymbolFunc, area.Kind)

	circle, ok := table.GetExport("Circle")
	require.True(t, ok)
	assert.Equal(t, SymbolStruct, circle.Kind)

	_, ok = table.GetExport("internalHelper")
	assert.False(t, ok)
}

func TestRegisterExports_DuplicateIsFatalFirstWins(t *testing.T) {
	first := pubFunc("run")
	first.Position = lexer.Position{Line: 1}
	second := pubFunc("run")
	second.Position = lexer.Position{Line: 10}

	mod := &ast.Module{
		Name:  "m",
		Decls: []ast.Decl{first, second},
	}

	sink := diag.NewCollectingSink()
	table := RegisterExports(mod, sink)

	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.Resolution, sink.Errors()[0].Kind)

	sym, ok := table.GetExport("run")
	require.True(t, ok)
	assert.Equal(t, 1, sym.Pos.Line)
}

func TestRegisterExports_GlobalVarRespectsIsPub(t *testing.T) {
	mod := &ast.Module{
		Name: "m",
		Decls: []ast.Decl{
			&ast.GlobalVarDecl{Var: &ast.VarDeclStmt{Name: "Count", IsPub: true}},
			&ast.GlobalVarDecl{Var: &ast.VarDeclStmt{Name: "hidden", IsPub: false}},
		},
	}

	table := RegisterExports(mod, diag.NewCollectingSink())

	_, ok := table.GetExport("Count")
	assert.True(t, ok)
	_, ok = table.GetExport("hidden")
	assert.False(t, ok)
}

func TestRegisterExports_GlobReexportDeferred(t *testing.T) {
	mod := &ast.Module{
		Name: "m",
		Decls: []ast.Decl{
			&ast.UseDecl{ModulePath: "std::io", IsGlob: true, IsPubReexport: true},
		},
	}

	table := RegisterExports(mod, diag.NewCollectingSink())

	require.Len(t, table.Reexports(), 1)
	assert.True(t, table.Reexports()[0].Glob)
	assert.Equal(t, "std::io", table.Reexports()[0].ModulePath)
	assert.Empty(t, table.GetAllExports())
}

func TestRegisterExports_SelectiveReexportDeferred(t *testing.T) {
	mod := &ast.Module{
		Name: "m",
		Decls: []ast.Decl{
			&ast.UseDecl{
				ModulePath:    "std::io",
				ImportedNames: []string{"Reader", "Writer"},
				IsPubReexport: true,
			},
		},
	}

	table := RegisterExports(mod, diag.NewCollectingSink())

	reexports := table.Reexports()
	require.Len(t, reexports, 2)
	assert.Equal(t, "Reader", reexports[0].ImportedName)
	assert.Equal(t, "Writer", reexports[1].ImportedName)
}

func TestRegisterExports_OrderIsDeterministic(t *testing.T) {
	mod := &ast.Module{
		Name: "m",
		Decls: []ast.Decl{
			pubFunc("c"),
			pubFunc("a"),
			pubFunc("b"),
		},
	}

	table := RegisterExports(mod, diag.NewCollectingSink())
	var names []string
	for _, s := range table.GetAllExports() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
