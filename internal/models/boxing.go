package models

// PrimitiveKind identifies a primitive value type. VoidKind is included so the
// boxing table can map void to its reference counterpart.
type PrimitiveKind int

const (
	NoPrimitive PrimitiveKind = iota
	IntKind
	CharKind
	ByteKind
	ShortKind
	LongKind
	FloatKind
	DoubleKind
	BooleanKind
	VoidKind
)

type primitiveInfo struct {
	keyword string
	boxed   string // simple name in java.lang
}

var primitives = map[PrimitiveKind]primitiveInfo{
	IntKind:     {"int", "Integer"},
	CharKind:    {"char", "Character"},
	ByteKind:    {"byte", "Byte"},
	ShortKind:   {"short", "Short"},
	LongKind:    {"long", "Long"},
	FloatKind:   {"float", "Float"},
	DoubleKind:  {"double", "Double"},
	BooleanKind: {"boolean", "Boolean"},
	VoidKind:    {"void", "Void"},
}

// Keyword returns the source keyword of the primitive, e.g. "int"
func (k PrimitiveKind) Keyword() string {
	return primitives[k].keyword
}

// BoxedSimpleName returns the simple name of the boxed type, e.g. "Integer"
func (k PrimitiveKind) BoxedSimpleName() string {
	return primitives[k].boxed
}

// BoxedQualifiedName returns the fully qualified boxed type name
func (k PrimitiveKind) BoxedQualifiedName() string {
	if info, ok := primitives[k]; ok {
		return "java.lang." + info.boxed
	}
	return ""
}

// String returns the keyword, or "none" for NoPrimitive
func (k PrimitiveKind) String() string {
	if info, ok := primitives[k]; ok {
		return info.keyword
	}
	return "none"
}

// AllPrimitiveKinds lists every kind the boxing table covers, void last
func AllPrimitiveKinds() []PrimitiveKind {
	return []PrimitiveKind{IntKind, CharKind, ByteKind, ShortKind, LongKind, FloatKind, DoubleKind, BooleanKind, VoidKind}
}

// BoxingTable maps primitive kinds to boxed reference types and back.
// The zero value is not usable; use DefaultBoxing.
type BoxingTable struct {
	byKeyword map[string]PrimitiveKind
	byBoxed   map[string]PrimitiveKind
}

// DefaultBoxing is the process-wide table. It is built once and never mutated.
var DefaultBoxing = newBoxingTable()

func newBoxingTable() BoxingTable {
	table := BoxingTable{
		byKeyword: make(map[string]PrimitiveKind, len(primitives)),
		byBoxed:   make(map[string]PrimitiveKind, 2*len(primitives)),
	}
	for kind, info := range primitives {
		table.byKeyword[info.keyword] = kind
		table.byBoxed[info.boxed] = kind
		table.byBoxed["java.lang."+info.boxed] = kind
	}
	return table
}

// KindForKeyword returns the primitive kind of a source keyword ("int", "void", ...)
func (b BoxingTable) KindForKeyword(keyword string) (PrimitiveKind, bool) {
	kind, ok := b.byKeyword[keyword]
	return kind, ok
}

// KindForBoxed returns the primitive kind of a boxed type name, simple or qualified
func (b BoxingTable) KindForBoxed(name string) (PrimitiveKind, bool) {
	kind, ok := b.byBoxed[name]
	return kind, ok
}

// Box maps a primitive or void descriptor to its boxed descriptor
func (b BoxingTable) Box(t TypeDescriptor) (TypeDescriptor, bool) {
	switch t.Kind {
	case TypePrimitive:
		if _, ok := primitives[t.Primitive]; ok && t.Primitive != VoidKind {
			return BoxedOf(t.Primitive), true
		}
	case TypeVoid:
		return BoxedOf(VoidKind), true
	}
	return TypeDescriptor{}, false
}

// Unbox maps a boxed descriptor back to its primitive or void descriptor
func (b BoxingTable) Unbox(t TypeDescriptor) (TypeDescriptor, bool) {
	if t.Kind != TypeBoxed {
		return TypeDescriptor{}, false
	}
	if t.Primitive == VoidKind {
		return VoidType(), true
	}
	if _, ok := primitives[t.Primitive]; !ok {
		return TypeDescriptor{}, false
	}
	return PrimitiveOf(t.Primitive), true
}
