// Package ast defines the Mana abstract syntax tree.
//
// The node taxonomy is a closed set (spec §4.1): every concrete node type
// reports a Kind from the NodeKind enum below, and the Kind a constructor
// assigns must always match the concrete Go type it is attached to. Walkers
// dispatch with a type switch rather than runtime downcasts; a missing case
// is a compile-time-adjacent defect caught by review, not a cast panic.
package ast

import "github.com/hassan/mana/internal/lexer"

// NodeKind tags every AST node with its variant. The set is fixed; adding a
// kind requires a coordinated change to the parser and every exhaustive
// walker switch.
type NodeKind int

const (
	KindModule NodeKind = iota
	KindImportDecl
	KindUseDecl

	// Declarations
	KindFuncDecl
	KindGlobalVarDecl
	KindStructDecl
	KindEnumDecl
	KindTraitDecl
	KindImplDecl
	KindTypeAliasDecl

	// Statements
	KindBlockStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindForInStmt
	KindBreakStmt
	KindContinueStmt
	KindDeferStmt
	KindAssignStmt
	KindVarDeclStmt
	KindScopeStmt
	KindReturnStmt
	KindExprStmt
	KindLoopStmt

	// Expressions
	KindIdentifierExpr
	KindLiteralExpr
	KindCallExpr
	KindMethodCallExpr
	KindBinaryExpr
	KindUnaryExpr
	KindIndexExpr
	KindArrayLiteralExpr
	KindMemberAccessExpr
	KindStructLiteralExpr
	KindScopeAccessExpr
	KindSelfExpr
	KindMatchExpr
	KindClosureExpr
	KindTryExpr
	KindOptionalChainExpr
	KindNullCoalesceExpr
	KindAwaitExpr
	KindRangeExpr
	KindTupleExpr
	KindTupleIndexExpr
	KindFStringExpr
	KindNoneExpr
	KindOptionPattern
	KindEnumPattern
	KindCastExpr
	KindIfExpr
	KindSliceExpr
)

var kindNames = map[NodeKind]string{
	KindModule:            "Module",
	KindImportDecl:        "ImportDecl",
	KindUseDecl:           "UseDecl",
	KindFuncDecl:          "FuncDecl",
	KindGlobalVarDecl:     "GlobalVarDecl",
	KindStructDecl:        "StructDecl",
	KindEnumDecl:          "EnumDecl",
	KindTraitDecl:         "TraitDecl",
	KindImplDecl:          "ImplDecl",
	KindTypeAliasDecl:     "TypeAliasDecl",
	KindBlockStmt:         "BlockStmt",
	KindIfStmt:            "IfStmt",
	KindWhileStmt:         "WhileStmt",
	KindForStmt:           "ForStmt",
	KindForInStmt:         "ForInStmt",
	KindBreakStmt:         "BreakStmt",
	KindContinueStmt:      "ContinueStmt",
	KindDeferStmt:         "DeferStmt",
	KindAssignStmt:        "AssignStmt",
	KindVarDeclStmt:       "VarDeclStmt",
	KindScopeStmt:         "ScopeStmt",
	KindReturnStmt:        "ReturnStmt",
	KindExprStmt:          "ExprStmt",
	KindLoopStmt:          "LoopStmt",
	KindIdentifierExpr:    "IdentifierExpr",
	KindLiteralExpr:       "LiteralExpr",
	KindCallExpr:          "CallExpr",
	KindMethodCallExpr:    "MethodCallExpr",
	KindBinaryExpr:        "BinaryExpr",
	KindUnaryExpr:         "UnaryExpr",
	KindIndexExpr:         "IndexExpr",
	KindArrayLiteralExpr:  "ArrayLiteralExpr",
	KindMemberAccessExpr:  "MemberAccessExpr",
	KindStructLiteralExpr: "StructLiteralExpr",
	KindScopeAccessExpr:   "ScopeAccessExpr",
	KindSelfExpr:          "SelfExpr",
	KindMatchExpr:         "MatchExpr",
	KindClosureExpr:       "ClosureExpr",
	KindTryExpr:           "TryExpr",
	KindOptionalChainExpr: "OptionalChainExpr",
	KindNullCoalesceExpr:  "NullCoalesceExpr",
	KindAwaitExpr:         "AwaitExpr",
	KindRangeExpr:         "RangeExpr",
	KindTupleExpr:         "TupleExpr",
	KindTupleIndexExpr:    "TupleIndexExpr",
	KindFStringExpr:       "FStringExpr",
	KindNoneExpr:          "NoneExpr",
	KindOptionPattern:     "OptionPattern",
	KindEnumPattern:       "EnumPattern",
	KindCastExpr:          "CastExpr",
	KindIfExpr:            "IfExpr",
	KindSliceExpr:         "SliceExpr",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is satisfied by every AST node: a kind tag plus a source position.
type Node interface {
	Kind() NodeKind
	Pos() lexer.Position
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is any top-level declaration. Declarations also satisfy Stmt, but the
// parser only produces them at module level (and methods inside impl blocks),
// never inside a block.
type Decl interface {
	Stmt
	declNode()
	IsPublic() bool
}

// base carries the fields every node has regardless of variant.
type base struct {
	Position lexer.Position
}

func (b base) Pos() lexer.Position { return b.Position }

// declBase is embedded by every Decl; it carries the fields common to all
// declaration variants (spec §4.2's doc-comment and source-module slots).
type declBase struct {
	base
	SourceModule string
	DocComment   string
}

// HasDoc reports whether a non-empty documentation comment was captured.
func (d declBase) HasDoc() bool { return d.DocComment != "" }

func (declBase) stmtNode() {}
func (declBase) declNode() {}
