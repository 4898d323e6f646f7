package ast

import "github.com/hassan/mana/internal/lexer"

// Param is a function or method parameter, with an optional default value
// expression (spec §3 Parameter).
type Param struct {
	Name         string
	TypeName     string
	DefaultValue Expr // nil if absent
	Position     lexer.Position
}

// HasDefault reports whether the parameter carries a default value.
func (p Param) HasDefault() bool { return p.DefaultValue != nil }

// TypeConstraint binds one generic type parameter to a non-empty set of
// required traits, the where-clause shape of spec §4.2 Generics.
type TypeConstraint struct {
	TypeParam string
	Traits    []string
	Position  lexer.Position
}

// ImportDecl is a bare module-path import or a quoted file import
// (spec §3 ImportDecl; is_file_import distinguishes the two surface forms).
type ImportDecl struct {
	declBase
	Name         string
	Path         string // set only when IsFileImport
	IsFileImport bool
}

func (d *ImportDecl) Kind() NodeKind { return KindImportDecl }
func (d *ImportDecl) IsPublic() bool { return false }

// UseDecl imports named or globbed symbols from a module path, optionally
// re-exporting them (is_pub) under an alias (spec §3 UseDecl).
type UseDecl struct {
	declBase
	ModulePath     string
	ImportedNames  []string // selective import list; empty when not selective
	Alias          string
	IsGlob         bool
	IsPubReexport  bool
}

func (d *UseDecl) Kind() NodeKind { return KindUseDecl }
func (d *UseDecl) IsPublic() bool { return d.IsPubReexport }

// FuncDecl is a free function or, when ReceiverType is non-empty, a method
// (spec §3 FuncDecl). IsInstanceMethod must agree with HasSelf by
// construction (spec §3 invariant "is_instance_method ⇔ has_self").
type FuncDecl struct {
	declBase
	Name          string
	ReceiverType  string // non-empty ⇒ method
	TypeParams    []string
	Constraints   []TypeConstraint
	Params        []Param
	ReturnType    string
	Body          *BlockStmt // nil for extern declarations
	IsPub         bool
	IsAsync       bool
	IsStatic      bool
	IsTest        bool
	IsExtern      bool
	HasSelf       bool
}

func (d *FuncDecl) Kind() NodeKind         { return KindFuncDecl }
func (d *FuncDecl) IsPublic() bool         { return d.IsPub }
func (d *FuncDecl) IsMethod() bool         { return d.ReceiverType != "" }
func (d *FuncDecl) IsInstanceMethod() bool { return d.HasSelf }
func (d *FuncDecl) IsGeneric() bool        { return len(d.TypeParams) > 0 }
func (d *FuncDecl) HasConstraints() bool   { return len(d.Constraints) > 0 }

// GlobalVarDecl wraps a top-level var-decl statement (spec §3 GlobalVarDecl).
type GlobalVarDecl struct {
	declBase
	Var *VarDeclStmt
}

func (d *GlobalVarDecl) Kind() NodeKind { return KindGlobalVarDecl }
func (d *GlobalVarDecl) IsPublic() bool { return d.Var != nil && d.Var.IsPub }

// StructField is one ordered field of a StructDecl, optionally defaulted.
type StructField struct {
	Name         string
	TypeName     string
	DefaultValue Expr // nil if absent
	Position     lexer.Position
}

// StructDecl is a product type with an ordered field list (spec §3 StructDecl).
type StructDecl struct {
	declBase
	Name       string
	TypeParams []string
	Fields     []StructField
	IsPub      bool
}

func (d *StructDecl) Kind() NodeKind  { return KindStructDecl }
func (d *StructDecl) IsPublic() bool  { return d.IsPub }
func (d *StructDecl) IsGeneric() bool { return len(d.TypeParams) > 0 }

// EnumVariant is exactly one of unit, tuple or struct shape; the three
// shapes are mutually exclusive (spec §3 EnumDecl invariant).
type EnumVariant struct {
	Name           string
	HasValue       bool // explicit integer discriminant (unit variant only)
	Value          int64
	TupleTypes     []string      // non-empty ⇒ tuple variant
	StructFields   []StructField // non-empty ⇒ struct variant
	Position       lexer.Position
}

// HasData reports whether the variant carries associated data.
func (v EnumVariant) HasData() bool { return v.IsTupleVariant() || v.IsStructVariant() }

// IsTupleVariant reports whether the variant carries ordered, unnamed fields.
func (v EnumVariant) IsTupleVariant() bool { return len(v.TupleTypes) > 0 }

// IsStructVariant reports whether the variant carries named fields.
func (v EnumVariant) IsStructVariant() bool { return len(v.StructFields) > 0 }

// EnumDecl is an algebraic sum type over its ordered variant list
// (spec §3 EnumDecl). DeclaredAsVariant records the syntactic origin
// ('enum' vs 'variant' keyword) without affecting semantics.
type EnumDecl struct {
	declBase
	Name              string
	Variants          []EnumVariant
	IsPub             bool
	DeclaredAsVariant bool
}

func (d *EnumDecl) Kind() NodeKind { return KindEnumDecl }
func (d *EnumDecl) IsPublic() bool { return d.IsPub }

// HasDataVariants reports whether any variant carries associated data.
func (d *EnumDecl) HasDataVariants() bool {
	for _, v := range d.Variants {
		if v.HasData() {
			return true
		}
	}
	return false
}

// AssociatedType is a trait's `type Name;` member declaration.
type AssociatedType struct {
	Name     string
	Position lexer.Position
}

// TraitMethod is a method signature inside a trait, with an optional
// default body (spec §3 TraitDecl).
type TraitMethod struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       *BlockStmt // nil ⇒ no default; every impl must provide one
	TakesSelf  bool
	Position   lexer.Position
}

// HasDefault reports whether the trait method carries a default body.
func (m TraitMethod) HasDefault() bool { return m.Body != nil }

// TraitDecl declares a set of associated types and method signatures that
// implementations must satisfy (spec §3 TraitDecl).
type TraitDecl struct {
	declBase
	Name            string
	AssociatedTypes []AssociatedType
	Methods         []TraitMethod
	IsPub           bool
}

func (d *TraitDecl) Kind() NodeKind { return KindTraitDecl }
func (d *TraitDecl) IsPublic() bool { return d.IsPub }

// TypeAssignment binds a trait's associated type to a concrete type inside
// an impl block: `type Item = i32;`.
type TypeAssignment struct {
	Name       string
	TargetType string
	Position   lexer.Position
}

// ImplConst is a `const NAME: Type = value;` member of an impl block.
type ImplConst struct {
	Name     string
	TypeName string
	Init     Expr
	Position lexer.Position
}

// ImplDecl binds methods (and, for trait impls, associated types and
// constants) to a concrete type. TraitName empty means an inherent impl
// (spec §3 ImplDecl).
type ImplDecl struct {
	declBase
	TraitName       string
	TypeName        string
	TypeAssignments []TypeAssignment
	Methods         []*FuncDecl
	Constants       []ImplConst
}

func (d *ImplDecl) Kind() NodeKind    { return KindImplDecl }
func (d *ImplDecl) IsPublic() bool    { return false }
func (d *ImplDecl) IsTraitImpl() bool { return d.TraitName != "" }

// TypeAliasDecl binds a name to another type expression (spec §3 TypeAliasDecl).
type TypeAliasDecl struct {
	declBase
	AliasName  string
	TargetType string
	IsPub      bool
}

func (d *TypeAliasDecl) Kind() NodeKind { return KindTypeAliasDecl }
func (d *TypeAliasDecl) IsPublic() bool { return d.IsPub }
