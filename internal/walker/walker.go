// Package walker visits a parsed module's top-level declarations by kind
// (spec.md §4.5). It is polymorphic over the node-kind taxonomy by type
// switch rather than double dispatch, matching the AST's tagged-variant
// design: adding a declaration kind without a matching case here is a
// review-visible defect rather than a runtime cast failure.
package walker

import "github.com/hassan/mana/internal/ast"

// Visitor receives one callback per declaration kind the walker knows how
// to surface. Impl blocks, imports, use-declarations and global variables
// have no hook; consumers that need them read mod.Decls directly.
type Visitor interface {
	VisitTypeAlias(*ast.TypeAliasDecl)
	VisitStruct(*ast.StructDecl)
	VisitEnum(*ast.EnumDecl)
	VisitTrait(*ast.TraitDecl)
	VisitFunc(*ast.FuncDecl)
}

// WalkSourceOrder visits mod's declarations in source order, dispatching
// each to the Visitor hook for its kind. Methods (FuncDecls with a
// receiver type) are skipped here; they are surfaced as attributes of
// their receiver type by consumers that care, not as top-level entries
// (spec.md §4.5).
func WalkSourceOrder(mod *ast.Module, v Visitor) {
	for _, decl := range mod.Decls {
		dispatch(decl, v)
	}
}

func dispatch(decl ast.Decl, v Visitor) {
	switch d := decl.(type) {
	case *ast.TypeAliasDecl:
		v.VisitTypeAlias(d)
	case *ast.StructDecl:
		v.VisitStruct(d)
	case *ast.EnumDecl:
		v.VisitEnum(d)
	case *ast.TraitDecl:
		v.VisitTrait(d)
	case *ast.FuncDecl:
		if !d.IsMethod() {
			v.VisitFunc(d)
		}
	}
}

// WalkGrouped visits mod's declarations grouped the way the documentation
// generator wants them: type aliases, then structs, then enums, then
// traits, then functions, preserving source order within each group. This
// grouping is policy belonging to the doc-generation consumer, not an
// invariant of the AST (spec.md §4.5, §9) — other consumers should use
// WalkSourceOrder instead.
func WalkGrouped(mod *ast.Module, v Visitor) {
	var typeAliases []*ast.TypeAliasDecl
	var structs []*ast.StructDecl
	var enums []*ast.EnumDecl
	var traits []*ast.TraitDecl
	var funcs []*ast.FuncDecl

	for _, decl := range mod.Decls {
		switch d := decl.(type) {
		case *ast.TypeAliasDecl:
			typeAliases = append(typeAliases, d)
		case *ast.StructDecl:
			structs = append(structs, d)
		case *ast.EnumDecl:
			enums = append(enums, d)
		case *ast.TraitDecl:
			traits = append(traits, d)
		case *ast.FuncDecl:
			if !d.IsMethod() {
				funcs = append(funcs, d)
			}
		}
	}

	for _, d := range typeAliases {
		v.VisitTypeAlias(d)
	}
	for _, d := range structs {
		v.VisitStruct(d)
	}
	for _, d := range enums {
		v.VisitEnum(d)
	}
	for _, d := range traits {
		v.VisitTrait(d)
	}
	for _, d := range funcs {
		v.VisitFunc(d)
	}
}
