package ast

import "github.com/hassan/mana/internal/lexer"

// Comment is a single comment captured by the lexer/parser outside the main
// grammar, kept for tooling (doc generation, formatters) rather than
// semantics.
type Comment struct {
	Position lexer.Position
	Text     string
	IsBlock  bool
}

// Module is the parsed representation of one .mana file: an ordered list
// of top-level declarations plus the comments encountered alongside them
// (spec §3 AstModule). A Module is owned by the LoadedModule that produced
// it and is not mutated after parse returns (spec §4.2).
type Module struct {
	Name     string
	Filename string
	Decls    []Decl
	Comments []Comment
}

func (m *Module) Kind() NodeKind       { return KindModule }
func (m *Module) Pos() lexer.Position {
	if len(m.Decls) == 0 {
		return lexer.Position{Filename: m.Filename, Line: 1, Column: 1}
	}
	return m.Decls[0].Pos()
}
