package models

import "strings"

// TypeKind tags the variant held by a TypeDescriptor
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypePrimitive
	TypeBoxed
	TypeVoid
	TypePlain
	TypeList
	TypeAsyncSingle
	TypeAsyncMulti
)

// String returns the string representation of the type kind
func (k TypeKind) String() string {
	switch k {
	case TypePrimitive:
		return "Primitive"
	case TypeBoxed:
		return "BoxedPrimitive"
	case TypeVoid:
		return "Void"
	case TypePlain:
		return "PlainType"
	case TypeList:
		return "ListOf"
	case TypeAsyncSingle:
		return "AsyncSingle"
	case TypeAsyncMulti:
		return "AsyncMulti"
	default:
		return "Invalid"
	}
}

// IsAsync reports whether the kind is one of the asynchronous containers
func (k TypeKind) IsAsync() bool {
	return k == TypeAsyncSingle || k == TypeAsyncMulti
}

// TypeDescriptor describes a method return type. It is a value type: the
// constructors copy their arguments and no method mutates the receiver.
type TypeDescriptor struct {
	Kind      TypeKind
	Primitive PrimitiveKind    // Primitive and BoxedPrimitive only
	Name      string           // PlainType only, as written in source
	Args      []TypeDescriptor // type arguments of PlainType, ListOf and the async containers
}

// PrimitiveOf returns the descriptor of a primitive type
func PrimitiveOf(kind PrimitiveKind) TypeDescriptor {
	return TypeDescriptor{Kind: TypePrimitive, Primitive: kind}
}

// BoxedOf returns the descriptor of a boxed primitive reference type
func BoxedOf(kind PrimitiveKind) TypeDescriptor {
	return TypeDescriptor{Kind: TypeBoxed, Primitive: kind}
}

// VoidType returns the descriptor of the void return type
func VoidType() TypeDescriptor {
	return TypeDescriptor{Kind: TypeVoid}
}

// PlainOf returns the descriptor of a named reference type
func PlainOf(name string, args ...TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypePlain, Name: name, Args: cloneArgs(args)}
}

// ListOf returns the descriptor of a list with the given element type
func ListOf(elem TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeList, Args: []TypeDescriptor{elem}}
}

// AsyncSingleOf returns a single-value asynchronous container. Any number of
// type arguments is accepted so malformed source shapes stay representable.
func AsyncSingleOf(args ...TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeAsyncSingle, Args: cloneArgs(args)}
}

// AsyncMultiOf returns a multi-value asynchronous container
func AsyncMultiOf(args ...TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: TypeAsyncMulti, Args: cloneArgs(args)}
}

// Elem returns the single type argument and whether there was exactly one
func (t TypeDescriptor) Elem() (TypeDescriptor, bool) {
	if len(t.Args) != 1 {
		return TypeDescriptor{}, false
	}
	return t.Args[0], true
}

// IsPrimitiveOrVoid reports whether the descriptor has a boxed counterpart
func (t TypeDescriptor) IsPrimitiveOrVoid() bool {
	return t.Kind == TypePrimitive || t.Kind == TypeVoid
}

// Style returns the calling style implied by the outer type tag
func (t TypeDescriptor) Style() Style {
	if t.Kind.IsAsync() {
		return StyleAsync
	}
	return StyleDirect
}

// Equal reports structural equality
func (t TypeDescriptor) Equal(other TypeDescriptor) bool {
	if t.Kind != other.Kind || t.Primitive != other.Primitive || t.Name != other.Name {
		return false
	}
	if len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Walk calls fn for the descriptor and every nested type argument, depth first
func (t TypeDescriptor) Walk(fn func(TypeDescriptor)) {
	fn(t)
	for _, arg := range t.Args {
		arg.Walk(fn)
	}
}

// String renders the descriptor with its variant tags, e.g. AsyncSingle<Integer>.
// Source rendering with real container names lives in the templates package.
func (t TypeDescriptor) String() string {
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive.Keyword()
	case TypeBoxed:
		return t.Primitive.BoxedSimpleName()
	case TypeVoid:
		return "void"
	case TypePlain:
		return t.Name + formatArgs(t.Args)
	case TypeList, TypeAsyncSingle, TypeAsyncMulti:
		return t.Kind.String() + formatArgs(t.Args)
	default:
		return "<invalid>"
	}
}

func formatArgs(args []TypeDescriptor) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func cloneArgs(args []TypeDescriptor) []TypeDescriptor {
	if len(args) == 0 {
		return nil
	}
	out := make([]TypeDescriptor, len(args))
	copy(out, args)
	return out
}
