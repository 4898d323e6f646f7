package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/mana/internal/ast"
	"github.com/hassan/mana/internal/lexer"
	"github.com/hassan/mana/internal/parser"
)

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	lex := lexer.New(src, "test.mana")
	p := parser.New(lex)
	mod, errs := p.ParseModule("test", "test.mana")
	require.Empty(t, errs)
	require.NotNil(t, mod)
	return mod
}

func TestParseModule_ImportsAndUseDecls(t *testing.T) {
	mod := parseModule(t, `
import std::io;
import "helpers.mana";
use shapes::{Circle, Square};
pub use shapes::*;
`)
	require.Len(t, mod.Decls, 4)

	imp, ok := mod.Decls[0].(*ast.ImportDecl)
	require.True(t, ok)
	assert.Equal(t, "std::io", imp.Name)
	assert.False(t, imp.IsFileImport)

	fileImp, ok := mod.Decls[1].(*ast.ImportDecl)
	require.True(t, ok)
	assert.True(t, fileImp.IsFileImport)
	assert.Equal(t, "helpers.mana", fileImp.Path)

	use, ok := mod.Decls[2].(*ast.UseDecl)
	require.True(t, ok)
	assert.Equal(t, "shapes", use.ModulePath)
	assert.Equal(t, []string{"Circle", "Square"}, use.ImportedNames)
	assert.False(t, use.IsGlob)
	assert.False(t, use.IsPublic())

	glob, ok := mod.Decls[3].(*ast.UseDecl)
	require.True(t, ok)
	assert.True(t, glob.IsGlob)
	assert.True(t, glob.IsPublic())
}

func TestParseModule_FuncDeclWithGenericsAndDefaults(t *testing.T) {
	mod := parseModule(t, `
pub fn clamp<T>(value: T, low: T = 0, high: T = 100) -> T where T: Ord {
    return value;
}
`)
	require.Len(t, mod.Decls, 1)
	fn, ok := mod.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "clamp", fn.Name)
	assert.True(t, fn.IsPub)
	assert.True(t, fn.IsGeneric())
	assert.True(t, fn.HasConstraints())
	require.Len(t, fn.Params, 3)
	assert.True(t, fn.Params[1].HasDefault())
	assert.Equal(t, "T", fn.ReturnType)
	require.NotNil(t, fn.Body)
}

func TestParseModule_StructDecl(t *testing.T) {
	mod := parseModule(t, `
pub struct Point {
    x: f64,
    y: f64 = 0.0,
}
`)
	s, ok := mod.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", s.Name)
	require.Len(t, s.Fields, 2)
	assert.False(t, s.Fields[0].DefaultValue != nil)
	assert.True(t, s.Fields[1].DefaultValue != nil)
}

func TestParseModule_EnumDeclWithMixedVariants(t *testing.T) {
	mod := parseModule(t, `
pub enum Shape {
    None,
    Circle(f64),
    Rect { width: f64, height: f64 },
}
`)
	e, ok := mod.Decls[0].(*ast.EnumDecl)
	require.True(t, ok)
	require.Len(t, e.Variants, 3)
	assert.False(t, e.Variants[0].HasData())
	assert.True(t, e.Variants[1].IsTupleVariant())
	assert.True(t, e.Variants[2].IsStructVariant())
	assert.True(t, e.HasDataVariants())
}

func TestParseModule_TraitDeclWithDefaultMethod(t *testing.T) {
	mod := parseModule(t, `
pub trait Area {
    fn area(self) -> f64;
    fn describe(self) -> f64 {
        return self.area();
    }
}
`)
	tr, ok := mod.Decls[0].(*ast.TraitDecl)
	require.True(t, ok)
	require.Len(t, tr.Methods, 2)
	assert.False(t, tr.Methods[0].HasDefault())
	assert.True(t, tr.Methods[1].HasDefault())
}

func TestParseModule_ImplDecl(t *testing.T) {
	mod := parseModule(t, `
impl Area for Circle {
    fn area(self) -> f64 {
        return self.radius * self.radius;
    }
}
`)
	impl, ok := mod.Decls[0].(*ast.ImplDecl)
	require.True(t, ok)
	assert.Equal(t, "Area", impl.TraitName)
	assert.Equal(t, "Circle", impl.TypeName)
	assert.True(t, impl.IsTraitImpl())
	require.Len(t, impl.Methods, 1)
	assert.True(t, impl.Methods[0].IsMethod())
}

func TestParseModule_TypeAliasDecl(t *testing.T) {
	mod := parseModule(t, `pub type Meters = f64;`)
	alias, ok := mod.Decls[0].(*ast.TypeAliasDecl)
	require.True(t, ok)
	assert.Equal(t, "Meters", alias.AliasName)
	assert.Equal(t, "f64", alias.TargetType)
	assert.True(t, alias.IsPub)
}

func TestParsePrecedence_MulBindsTighterThanAdd(t *testing.T) {
	mod := parseModule(t, `
fn f() -> i32 {
    return 1 + 2 * 3;
}
`)
	fn := mod.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenPlus, bin.Operator)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenStar, rhs.Operator)
}

func TestParseModule_ControlFlowStatements(t *testing.T) {
	mod := parseModule(t, `
fn f() {
    if true {
        return;
    } else {
        return;
    }
    while true {
        break;
    }
    loop {
        continue;
    }
    for i in range {
        return;
    }
}
`)
	fn := mod.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Body.Stmts, 4)
	_, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	assert.True(t, ok)
	_, ok = fn.Body.Stmts[1].(*ast.WhileStmt)
	assert.True(t, ok)
	_, ok = fn.Body.Stmts[2].(*ast.LoopStmt)
	assert.True(t, ok)
	forIn, ok := fn.Body.Stmts[3].(*ast.ForInStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forIn.Binding)
}

func TestParseModule_MatchExpr(t *testing.T) {
	mod := parseModule(t, `
fn f(shape: Shape) -> f64 {
    return match shape {
        Shape::Circle(r) => r,
        _ => 0.0,
    };
}
`)
	fn := mod.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	m, ok := ret.Value.(*ast.MatchExpr)
	require.True(t, ok)
	assert.Len(t, m.Arms, 2)
}
