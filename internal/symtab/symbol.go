// Package symtab implements the module loader's export table: a flat,
// per-module mapping from exported name to symbol (spec §4.3). Unlike a
// full compiler's lexically-scoped symbol table, this package never nests
// scopes or resolves local bindings — that is the parser/walker's job over
// the AST directly. A symtab.Table exists once per loaded module and holds
// exactly the names that module makes visible to importers.
package symtab

import (
	"github.com/hassan/mana/internal/lexer"
	"github.com/hassan/mana/internal/typeref"
)

// SymbolKind classifies what top-level declaration produced a Symbol.
type SymbolKind int

const (
	SymbolFunc SymbolKind = iota
	SymbolVariable
	SymbolStruct
	SymbolEnum
	SymbolTrait
	SymbolTypeAlias
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunc:
		return "func"
	case SymbolVariable:
		return "variable"
	case SymbolStruct:
		return "struct"
	case SymbolEnum:
		return "enum"
	case SymbolTrait:
		return "trait"
	case SymbolTypeAlias:
		return "type_alias"
	default:
		return "unknown"
	}
}

// Symbol is one exported name in a module's export table (spec §3 Symbol).
type Symbol struct {
	Name         string
	Kind         SymbolKind
	Type         typeref.Ref
	IsPublic     bool
	SourceModule string
	Pos          lexer.Position
}

func (s *Symbol) String() string {
	return s.Kind.String() + " " + s.Name + " at " + s.Pos.String()
}
