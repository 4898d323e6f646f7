package ast

import "github.com/hassan/mana/internal/lexer"

type stmtBase struct{ base }

func (stmtBase) stmtNode() {}

// BlockStmt is a sequence of statements introducing a new lexical scope.
type BlockStmt struct {
	stmtBase
	Stmts []Stmt
}

func (s *BlockStmt) Kind() NodeKind { return KindBlockStmt }

// IfStmt is a conditional with an optional else branch. Else may itself be
// an *IfStmt (else if) or a *BlockStmt.
type IfStmt struct {
	stmtBase
	Cond Expr
	Then *BlockStmt
	Else Stmt // nil, *IfStmt, or *BlockStmt
}

func (s *IfStmt) Kind() NodeKind { return KindIfStmt }

// WhileStmt loops while Cond evaluates truthy.
type WhileStmt struct {
	stmtBase
	Cond Expr
	Body *BlockStmt
}

func (s *WhileStmt) Kind() NodeKind { return KindWhileStmt }

// ForStmt is a C-style counted loop.
type ForStmt struct {
	stmtBase
	Init Stmt // may be nil
	Cond Expr // may be nil
	Post Stmt // may be nil
	Body *BlockStmt
}

func (s *ForStmt) Kind() NodeKind { return KindForStmt }

// ForInStmt iterates the elements produced by Iterable, binding each to
// Binding in turn.
type ForInStmt struct {
	stmtBase
	Binding  string
	Iterable Expr
	Body     *BlockStmt
}

func (s *ForInStmt) Kind() NodeKind { return KindForInStmt }

// LoopStmt is an unconditional loop, broken only by break/return.
type LoopStmt struct {
	stmtBase
	Body *BlockStmt
}

func (s *LoopStmt) Kind() NodeKind { return KindLoopStmt }

// BreakStmt exits the nearest enclosing loop.
type BreakStmt struct{ stmtBase }

func (s *BreakStmt) Kind() NodeKind { return KindBreakStmt }

// ContinueStmt jumps to the next iteration of the nearest enclosing loop.
type ContinueStmt struct{ stmtBase }

func (s *ContinueStmt) Kind() NodeKind { return KindContinueStmt }

// DeferStmt schedules Call to run when the enclosing function returns.
type DeferStmt struct {
	stmtBase
	Call Expr
}

func (s *DeferStmt) Kind() NodeKind { return KindDeferStmt }

// AssignStmt assigns Value to Target via Operator (=, +=, -=, ...).
type AssignStmt struct {
	stmtBase
	Target   Expr
	Operator lexer.TokenType
	Value    Expr
}

func (s *AssignStmt) Kind() NodeKind { return KindAssignStmt }

// VarDeclStmt introduces a new binding, optionally typed and initialized.
// IsPub is only meaningful when this statement is wrapped by a
// *GlobalVarDecl at module scope; it is ignored for local bindings.
type VarDeclStmt struct {
	stmtBase
	Name     string
	TypeName string // empty ⇒ inferred
	Init     Expr   // nil ⇒ no initializer
	IsConst  bool
	IsPub    bool
}

func (s *VarDeclStmt) Kind() NodeKind { return KindVarDeclStmt }

// ScopeStmt is a bare block used purely to limit binding lifetime; distinct
// from BlockStmt so a loop/if body and a standalone `{ ... }` are
// distinguishable to consumers that care about syntactic origin.
type ScopeStmt struct {
	stmtBase
	Body *BlockStmt
}

func (s *ScopeStmt) Kind() NodeKind { return KindScopeStmt }

// ReturnStmt exits the enclosing function, optionally carrying a value.
type ReturnStmt struct {
	stmtBase
	Value Expr // nil for bare `return;`
}

func (s *ReturnStmt) Kind() NodeKind { return KindReturnStmt }

// ExprStmt evaluates an expression for its side effects and discards the
// result.
type ExprStmt struct {
	stmtBase
	Expr Expr
}

func (s *ExprStmt) Kind() NodeKind { return KindExprStmt }
