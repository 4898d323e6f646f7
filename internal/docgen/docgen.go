// Package docgen renders a parsed module as Markdown documentation,
// grouped the way original_source/backend-cpp/DocGenerator.cpp does:
// type aliases, structs, enums, traits, then functions, each as a fenced
// mana signature block followed by a parameter/field table and the
// declaration's doc comment verbatim. It is a thin, optional consumer of
// internal/walker — deleting this package would not affect module loading
// or symbol resolution.
package docgen

import (
	"fmt"
	"strings"

	"github.com/hassan/mana/internal/ast"
	"github.com/hassan/mana/internal/walker"
)

// Generate renders documentation for mod's type aliases, structs, enums,
// traits and free functions as a Markdown string; private declarations are
// included alongside public ones.
func Generate(mod *ast.Module) string {
	g := &generator{}
	g.emitModule(mod)
	return g.out.String()
}

type generator struct {
	out strings.Builder
}

func (g *generator) emitModule(mod *ast.Module) {
	fmt.Fprintf(&g.out, "# Module: %s\n\n", mod.Name)

	groups := newGroupCollector()
	walker.WalkGrouped(mod, groups)

	if len(groups.typeAliases) > 0 {
		g.out.WriteString("## Type Aliases\n\n")
		for _, t := range groups.typeAliases {
			g.emitTypeAlias(t)
		}
	}
	if len(groups.structs) > 0 {
		g.out.WriteString("## Structs\n\n")
		for _, s := range groups.structs {
			g.emitStruct(s)
		}
	}
	if len(groups.enums) > 0 {
		g.out.WriteString("## Enums\n\n")
		for _, e := range groups.enums {
			g.emitEnum(e)
		}
	}
	if len(groups.traits) > 0 {
		g.out.WriteString("## Traits\n\n")
		for _, t := range groups.traits {
			g.emitTrait(t)
		}
	}
	if len(groups.funcs) > 0 {
		g.out.WriteString("## Functions\n\n")
		for _, fn := range groups.funcs {
			g.emitFunc(fn)
		}
	}
}

// groupCollector satisfies walker.Visitor by bucketing declarations in
// visit order, which WalkGrouped already delivers grouped and in source
// order within each group.
type groupCollector struct {
	typeAliases []*ast.TypeAliasDecl
	structs     []*ast.StructDecl
	enums       []*ast.EnumDecl
	traits      []*ast.TraitDecl
	funcs       []*ast.FuncDecl
}

func newGroupCollector() *groupCollector { return &groupCollector{} }

func (g *groupCollector) VisitTypeAlias(d *ast.TypeAliasDecl) { g.typeAliases = append(g.typeAliases, d) }
func (g *groupCollector) VisitStruct(d *ast.StructDecl)       { g.structs = append(g.structs, d) }
func (g *groupCollector) VisitEnum(d *ast.EnumDecl)           { g.enums = append(g.enums, d) }
func (g *groupCollector) VisitTrait(d *ast.TraitDecl)         { g.traits = append(g.traits, d) }
func (g *groupCollector) VisitFunc(d *ast.FuncDecl)           { g.funcs = append(g.funcs, d) }

func (g *generator) emitFunc(fn *ast.FuncDecl) {
	fmt.Fprintf(&g.out, "### ")
	if fn.IsPub {
		g.out.WriteString("`pub` ")
	}
	if fn.IsAsync {
		g.out.WriteString("`async` ")
	}
	fmt.Fprintf(&g.out, "`fn %s`\n\n", fn.Name)

	g.out.WriteString("```mana\n")
	if fn.IsPub {
		g.out.WriteString("pub ")
	}
	if fn.IsAsync {
		g.out.WriteString("async ")
	}
	g.out.WriteString("fn ")
	if fn.ReceiverType != "" {
		fmt.Fprintf(&g.out, "%s.", fn.ReceiverType)
	}
	g.out.WriteString(fn.Name)

	if len(fn.TypeParams) > 0 {
		fmt.Fprintf(&g.out, "<%s>", strings.Join(fn.TypeParams, ", "))
	}

	g.out.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			g.out.WriteString(", ")
		}
		fmt.Fprintf(&g.out, "%s: %s", p.Name, p.TypeName)
		if p.HasDefault() {
			g.out.WriteString(" = ...")
		}
	}
	g.out.WriteString(")")

	if fn.ReturnType != "" && fn.ReturnType != "void" {
		fmt.Fprintf(&g.out, " -> %s", fn.ReturnType)
	}

	if len(fn.Constraints) > 0 {
		g.out.WriteString("\n    where ")
		for i, c := range fn.Constraints {
			if i > 0 {
				g.out.WriteString(", ")
			}
			fmt.Fprintf(&g.out, "%s: %s", c.TypeParam, strings.Join(c.Traits, " + "))
		}
	}
	g.out.WriteString("\n```\n\n")

	if fn.HasDoc() {
		fmt.Fprintf(&g.out, "%s\n\n", fn.DocComment)
	}

	if len(fn.Params) > 0 {
		g.out.WriteString("**Parameters:**\n\n")
		g.out.WriteString("| Name | Type | Default |\n")
		g.out.WriteString("|------|------|--------|\n")
		for _, p := range fn.Params {
			fmt.Fprintf(&g.out, "| `%s` | `%s` | %s |\n", p.Name, p.TypeName, yesOrDash(p.HasDefault()))
		}
		g.out.WriteString("\n")
	}

	if fn.ReturnType != "" && fn.ReturnType != "void" {
		fmt.Fprintf(&g.out, "**Returns:** `%s`\n\n", fn.ReturnType)
	}

	g.out.WriteString("---\n\n")
}

func (g *generator) emitStruct(s *ast.StructDecl) {
	fmt.Fprintf(&g.out, "### ")
	if s.IsPub {
		g.out.WriteString("`pub` ")
	}
	fmt.Fprintf(&g.out, "`struct %s`\n\n", s.Name)

	g.out.WriteString("```mana\n")
	if s.IsPub {
		g.out.WriteString("pub ")
	}
	fmt.Fprintf(&g.out, "struct %s", s.Name)
	if len(s.TypeParams) > 0 {
		fmt.Fprintf(&g.out, "<%s>", strings.Join(s.TypeParams, ", "))
	}
	g.out.WriteString(" {\n")
	for _, f := range s.Fields {
		fmt.Fprintf(&g.out, "    %s: %s", f.Name, f.TypeName)
		if f.DefaultValue != nil {
			g.out.WriteString(" = ...")
		}
		g.out.WriteString(",\n")
	}
	g.out.WriteString("}\n```\n\n")

	if s.HasDoc() {
		fmt.Fprintf(&g.out, "%s\n\n", s.DocComment)
	}

	if len(s.Fields) > 0 {
		g.out.WriteString("**Fields:**\n\n")
		g.out.WriteString("| Name | Type | Default |\n")
		g.out.WriteString("|------|------|--------|\n")
		for _, f := range s.Fields {
			fmt.Fprintf(&g.out, "| `%s` | `%s` | %s |\n", f.Name, f.TypeName, yesOrDash(f.DefaultValue != nil))
		}
		g.out.WriteString("\n")
	}

	g.out.WriteString("---\n\n")
}

func (g *generator) emitEnum(e *ast.EnumDecl) {
	fmt.Fprintf(&g.out, "### ")
	if e.IsPub {
		g.out.WriteString("`pub` ")
	}
	fmt.Fprintf(&g.out, "`enum %s`\n\n", e.Name)

	g.out.WriteString("```mana\n")
	if e.IsPub {
		g.out.WriteString("pub ")
	}
	fmt.Fprintf(&g.out, "enum %s {\n", e.Name)
	for _, v := range e.Variants {
		fmt.Fprintf(&g.out, "    %s", v.Name)
		switch {
		case v.IsTupleVariant():
			fmt.Fprintf(&g.out, "(%s)", strings.Join(v.TupleTypes, ", "))
		case v.IsStructVariant():
			g.out.WriteString(" { ")
			for i, f := range v.StructFields {
				if i > 0 {
					g.out.WriteString(", ")
				}
				fmt.Fprintf(&g.out, "%s: %s", f.Name, f.TypeName)
			}
			g.out.WriteString(" }")
		case v.HasValue:
			fmt.Fprintf(&g.out, " = %d", v.Value)
		}
		g.out.WriteString(",\n")
	}
	g.out.WriteString("}\n```\n\n")

	if e.HasDoc() {
		fmt.Fprintf(&g.out, "%s\n\n", e.DocComment)
	}

	if len(e.Variants) > 0 {
		g.out.WriteString("**Variants:**\n\n")
		g.out.WriteString("| Name | Data |\n")
		g.out.WriteString("|------|------|\n")
		for _, v := range e.Variants {
			fmt.Fprintf(&g.out, "| `%s` | ", v.Name)
			switch {
			case v.IsTupleVariant():
				fmt.Fprintf(&g.out, "tuple(%s)", strings.Join(v.TupleTypes, ", "))
			case v.IsStructVariant():
				g.out.WriteString("struct")
			case v.HasValue:
				fmt.Fprintf(&g.out, "= %d", v.Value)
			default:
				g.out.WriteString("-")
			}
			g.out.WriteString(" |\n")
		}
		g.out.WriteString("\n")
	}

	g.out.WriteString("---\n\n")
}

func (g *generator) emitTrait(t *ast.TraitDecl) {
	fmt.Fprintf(&g.out, "### ")
	if t.IsPub {
		g.out.WriteString("`pub` ")
	}
	fmt.Fprintf(&g.out, "`trait %s`\n\n", t.Name)

	g.out.WriteString("```mana\n")
	if t.IsPub {
		g.out.WriteString("pub ")
	}
	fmt.Fprintf(&g.out, "trait %s {\n", t.Name)

	for _, at := range t.AssociatedTypes {
		fmt.Fprintf(&g.out, "    type %s;\n", at.Name)
	}
	for _, m := range t.Methods {
		fmt.Fprintf(&g.out, "    fn %s(", m.Name)
		for i, p := range m.Params {
			if i > 0 {
				g.out.WriteString(", ")
			}
			fmt.Fprintf(&g.out, "%s: %s", p.Name, p.TypeName)
		}
		g.out.WriteString(")")
		if m.ReturnType != "" && m.ReturnType != "void" {
			fmt.Fprintf(&g.out, " -> %s", m.ReturnType)
		}
		if m.HasDefault() {
			g.out.WriteString(" { ... }")
		}
		g.out.WriteString("\n")
	}
	g.out.WriteString("}\n```\n\n")

	if t.HasDoc() {
		fmt.Fprintf(&g.out, "%s\n\n", t.DocComment)
	}

	if len(t.Methods) > 0 {
		g.out.WriteString("**Methods:**\n\n")
		g.out.WriteString("| Name | Signature | Default |\n")
		g.out.WriteString("|------|-----------|--------|\n")
		for _, m := range t.Methods {
			fmt.Fprintf(&g.out, "| `%s` | `fn(", m.Name)
			types := make([]string, len(m.Params))
			for i, p := range m.Params {
				types[i] = p.TypeName
			}
			g.out.WriteString(strings.Join(types, ", "))
			g.out.WriteString(")")
			if m.ReturnType != "" && m.ReturnType != "void" {
				fmt.Fprintf(&g.out, " -> %s", m.ReturnType)
			}
			fmt.Fprintf(&g.out, "` | %s |\n", yesOrDash(m.HasDefault()))
		}
		g.out.WriteString("\n")
	}

	g.out.WriteString("---\n\n")
}

func (g *generator) emitTypeAlias(t *ast.TypeAliasDecl) {
	fmt.Fprintf(&g.out, "### ")
	if t.IsPub {
		g.out.WriteString("`pub` ")
	}
	fmt.Fprintf(&g.out, "`type %s`\n\n", t.AliasName)

	g.out.WriteString("```mana\n")
	if t.IsPub {
		g.out.WriteString("pub ")
	}
	fmt.Fprintf(&g.out, "type %s = %s;\n", t.AliasName, t.TargetType)
	g.out.WriteString("```\n\n")

	if t.HasDoc() {
		fmt.Fprintf(&g.out, "%s\n\n", t.DocComment)
	}

	g.out.WriteString("---\n\n")
}

func yesOrDash(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
