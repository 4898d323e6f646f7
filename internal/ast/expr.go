package ast

import "github.com/hassan/mana/internal/lexer"

type exprBase struct{ base }

func (exprBase) exprNode() {}

// IdentifierExpr references a bound name.
type IdentifierExpr struct {
	exprBase
	Name string
}

func (e *IdentifierExpr) Kind() NodeKind { return KindIdentifierExpr }

// LiteralKind classifies the Go type stashed in LiteralExpr.Value.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralChar
	LiteralBool
)

// LiteralExpr is a scalar literal; Value holds int64, float64, string,
// rune (for LiteralChar), or bool per LitKind. `true`/`false` parse to LiteralExpr; `none` is its own
// NoneExpr node since Option has no payload type at this value.
type LiteralExpr struct {
	exprBase
	LitKind LiteralKind
	Value   interface{}
}

func (e *LiteralExpr) Kind() NodeKind { return KindLiteralExpr }

// NoneExpr is the `none` literal for Option-typed values.
type NoneExpr struct{ exprBase }

func (e *NoneExpr) Kind() NodeKind { return KindNoneExpr }

// SelfExpr is the implicit receiver inside a method with HasSelf set.
type SelfExpr struct{ exprBase }

func (e *SelfExpr) Kind() NodeKind { return KindSelfExpr }

// CallExpr applies Callee to Args: `f(1, 2)`.
type CallExpr struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) Kind() NodeKind { return KindCallExpr }

// MethodCallExpr applies a named method to Receiver: `obj.method(args)`.
// Distinct from a CallExpr whose Callee is a MemberAccessExpr so the
// receiver and method name are directly available without unwrapping.
type MethodCallExpr struct {
	exprBase
	Receiver Expr
	Method   string
	Args     []Expr
}

func (e *MethodCallExpr) Kind() NodeKind { return KindMethodCallExpr }

// BinaryExpr is a two-operand operation: arithmetic, comparison, logical,
// or bitwise, distinguished by Operator.
type BinaryExpr struct {
	exprBase
	Left     Expr
	Operator lexer.TokenType
	Right    Expr
}

func (e *BinaryExpr) Kind() NodeKind { return KindBinaryExpr }

// UnaryExpr is a prefix or postfix single-operand operation: `-x`, `!x`,
// `~x`, `x++`, `++x`.
type UnaryExpr struct {
	exprBase
	Operator  lexer.TokenType
	Operand   Expr
	IsPostfix bool
}

func (e *UnaryExpr) Kind() NodeKind { return KindUnaryExpr }

// IndexExpr is subscript access: `arr[i]`.
type IndexExpr struct {
	exprBase
	Object Expr
	Index  Expr
}

func (e *IndexExpr) Kind() NodeKind { return KindIndexExpr }

// SliceExpr is a range subscript: `arr[start..end]`.
type SliceExpr struct {
	exprBase
	Object Expr
	Start  Expr // nil ⇒ from beginning
	End    Expr // nil ⇒ to end
}

func (e *SliceExpr) Kind() NodeKind { return KindSliceExpr }

// ArrayLiteralExpr is `[e1, e2, ...]`.
type ArrayLiteralExpr struct {
	exprBase
	Elements []Expr
}

func (e *ArrayLiteralExpr) Kind() NodeKind { return KindArrayLiteralExpr }

// MemberAccessExpr is field access: `obj.field`.
type MemberAccessExpr struct {
	exprBase
	Object Expr
	Member string
}

func (e *MemberAccessExpr) Kind() NodeKind { return KindMemberAccessExpr }

// FieldInit is a single `name: value` pair inside a StructLiteralExpr.
type FieldInit struct {
	Name     string
	Value    Expr
	Position lexer.Position
}

// StructLiteralExpr constructs a value of TypeName: `Point{x: 1, y: 2}`.
type StructLiteralExpr struct {
	exprBase
	TypeName string
	Fields   []FieldInit
}

func (e *StructLiteralExpr) Kind() NodeKind { return KindStructLiteralExpr }

// ScopeAccessExpr is a namespaced reference: `Module::item` or
// `Enum::Variant`.
type ScopeAccessExpr struct {
	exprBase
	Scope Expr
	Name  string
}

func (e *ScopeAccessExpr) Kind() NodeKind { return KindScopeAccessExpr }

// MatchArm pairs a pattern with the expression or block it guards.
type MatchArm struct {
	Pattern  Expr // an OptionPattern, EnumPattern, LiteralExpr, or IdentifierExpr (catch-all)
	Guard    Expr // optional `if` guard; nil if absent
	Body     Expr
	Position lexer.Position
}

// MatchExpr dispatches on Subject's shape across an ordered list of arms.
type MatchExpr struct {
	exprBase
	Subject Expr
	Arms    []MatchArm
}

func (e *MatchExpr) Kind() NodeKind { return KindMatchExpr }

// OptionPattern matches Option/Result shapes in a match arm: `Some(x)`,
// `None`, `Ok(x)`, `Err(e)`.
type OptionPattern struct {
	exprBase
	Constructor string // "Some", "None", "Ok", "Err"
	Binding     string // bound name inside the payload; empty for None
}

func (e *OptionPattern) Kind() NodeKind { return KindOptionPattern }

// EnumPattern destructures a user enum variant in a match arm:
// `Enum::Variant(x, y)` or `Enum::Variant { field: x }`.
type EnumPattern struct {
	exprBase
	EnumName     string
	VariantName  string
	TupleBinds   []string // non-empty ⇒ tuple-shaped destructure
	FieldBinds   map[string]string // non-empty ⇒ struct-shaped destructure; field name -> bound name
}

func (e *EnumPattern) Kind() NodeKind { return KindEnumPattern }

// ClosureExpr is an anonymous function value.
type ClosureExpr struct {
	exprBase
	Params []Param
	Body   *BlockStmt
}

func (e *ClosureExpr) Kind() NodeKind { return KindClosureExpr }

// TryExpr is the `?` error-propagation operator.
type TryExpr struct {
	exprBase
	Operand Expr
}

func (e *TryExpr) Kind() NodeKind { return KindTryExpr }

// OptionalChainExpr is `?.`: access Member on Object only if Object is
// present, short-circuiting to none otherwise.
type OptionalChainExpr struct {
	exprBase
	Object Expr
	Member string
}

func (e *OptionalChainExpr) Kind() NodeKind { return KindOptionalChainExpr }

// NullCoalesceExpr is `??`: evaluates to Left if present, else Right.
type NullCoalesceExpr struct {
	exprBase
	Left  Expr
	Right Expr
}

func (e *NullCoalesceExpr) Kind() NodeKind { return KindNullCoalesceExpr }

// AwaitExpr suspends until Operand, an async call, resolves.
type AwaitExpr struct {
	exprBase
	Operand Expr
}

func (e *AwaitExpr) Kind() NodeKind { return KindAwaitExpr }

// RangeExpr is `start..end` or, when Inclusive, `start..=end`.
type RangeExpr struct {
	exprBase
	Start     Expr
	End       Expr
	Inclusive bool
}

func (e *RangeExpr) Kind() NodeKind { return KindRangeExpr }

// TupleExpr is `(e1, e2, ...)`.
type TupleExpr struct {
	exprBase
	Elements []Expr
}

func (e *TupleExpr) Kind() NodeKind { return KindTupleExpr }

// TupleIndexExpr is positional tuple access: `t.0`, `t.1`.
type TupleIndexExpr struct {
	exprBase
	Object Expr
	Index  int
}

func (e *TupleIndexExpr) Kind() NodeKind { return KindTupleIndexExpr }

// FStringPart is one piece of an interpolated string: either literal text
// or an embedded expression.
type FStringPart struct {
	Literal string // set when Expr is nil
	Expr    Expr   // set when this part is an interpolation
}

// FStringExpr is an interpolated string literal: `f"Hello {name}!"`.
type FStringExpr struct {
	exprBase
	Parts []FStringPart
}

func (e *FStringExpr) Kind() NodeKind { return KindFStringExpr }

// CastExpr converts Operand to TargetType: `expr as Type`.
type CastExpr struct {
	exprBase
	Operand    Expr
	TargetType string
}

func (e *CastExpr) Kind() NodeKind { return KindCastExpr }

// IfExpr is the expression-valued form of if/else: `if cond { a } else { b }`.
// Unlike IfStmt, both branches are expressions and the else branch is
// mandatory.
type IfExpr struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (e *IfExpr) Kind() NodeKind { return KindIfExpr }
