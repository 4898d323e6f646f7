// Package typeref gives the symbol table a lightweight type reference
// without pulling in a full type-checking model. A Ref names what kind of
// declaration a symbol resolves to; it never carries a resolved, checked
// type the way a full compiler's type system would. Its kinds and their
// assignment are a closed, normative contract (spec §4.3): struct(name) for
// structs, enum(name) for enums, struct(name) (a nominal placeholder) for
// traits, unknown for functions and type aliases, variable(type name) for
// global variables.
package typeref

// Kind classifies what a Ref points at.
type Kind int

const (
	Unknown Kind = iota
	Struct
	Enum
	Variable
)

func (k Kind) String() string {
	switch k {
	case Struct:
		return "struct"
	case Enum:
		return "enum"
	case Variable:
		return "variable"
	default:
		return "unknown"
	}
}

// Ref is the symbol table's notion of a type: a name plus the declaration
// kind it names. Resolving Ref.Name to an actual declaration is the
// caller's job (via the owning module's export table); Ref itself holds no
// pointer.
type Ref struct {
	Kind Kind
	Name string
}

func (r Ref) String() string {
	if r.Name == "" {
		return r.Kind.String()
	}
	return r.Name
}
