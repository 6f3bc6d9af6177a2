package models

import (
	"fmt"
	"strings"
)

// SourceLocation represents a position in a source file
type SourceLocation struct {
	File   string // file path
	Line   int    // line number (1-based)
	Column int    // column number (1-based)
}

// String returns file:line:column, omitting the parts that are unknown
func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// DeclarationKind is the kind of a type declaration
type DeclarationKind int

const (
	DeclInterface DeclarationKind = iota
	DeclClass
	DeclEnum
	DeclRecord
	DeclAnnotation
)

// String returns the declaring keyword
func (k DeclarationKind) String() string {
	switch k {
	case DeclInterface:
		return "interface"
	case DeclClass:
		return "class"
	case DeclEnum:
		return "enum"
	case DeclRecord:
		return "record"
	case DeclAnnotation:
		return "@interface"
	default:
		return "unknown"
	}
}

// Modifier is a declaration modifier keyword
type Modifier string

const (
	ModPublic    Modifier = "public"
	ModProtected Modifier = "protected"
	ModPrivate   Modifier = "private"
	ModAbstract  Modifier = "abstract"
	ModStatic    Modifier = "static"
	ModFinal     Modifier = "final"
	ModDefault   Modifier = "default"
	ModSealed    Modifier = "sealed"
	ModNonSealed Modifier = "non-sealed"
	ModStrictfp  Modifier = "strictfp"
)

// Modifiers is an ordered modifier set; order is kept for rendering
type Modifiers []Modifier

// Has reports whether the set contains m
func (m Modifiers) Has(mod Modifier) bool {
	for _, existing := range m {
		if existing == mod {
			return true
		}
	}
	return false
}

// Exactly reports whether the set holds exactly the given modifiers, in any order
func (m Modifiers) Exactly(mods ...Modifier) bool {
	if len(m) != len(mods) {
		return false
	}
	for _, mod := range mods {
		if !m.Has(mod) {
			return false
		}
	}
	return true
}

// With returns a copy with mod appended when absent
func (m Modifiers) With(mod Modifier) Modifiers {
	if m.Has(mod) {
		return append(Modifiers(nil), m...)
	}
	return append(append(Modifiers(nil), m...), mod)
}

// String joins the modifiers with spaces
func (m Modifiers) String() string {
	parts := make([]string, len(m))
	for i, mod := range m {
		parts[i] = string(mod)
	}
	return strings.Join(parts, " ")
}

// Attribute is one name = value pair of a marker. Value is the verbatim
// source expression, string literals keep their quotes.
type Attribute struct {
	Name  string
	Value string
}

// Marker is a metadata tag attached to a declaration, member or parameter
type Marker struct {
	Name          string      // name as written, e.g. "GetExchange"
	QualifiedName string      // resolved through imports
	Attributes    []Attribute // in source order; a lone value is named "value"
	Raw           string      // verbatim source text, re-emitted as is
	Location      SourceLocation
}

// Attribute returns the verbatim value of the named attribute
func (m Marker) Attribute(name string) (string, bool) {
	for _, attr := range m.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Is reports whether the marker resolves to the qualified name
func (m Marker) Is(qualifiedName string) bool {
	return m.QualifiedName == qualifiedName
}

// Parameter is a method parameter
type Parameter struct {
	Name     string
	Type     string // verbatim type text
	Markers  []Marker
	Varargs  bool
	Raw      string // verbatim source text including markers and modifiers
	Location SourceLocation
}

// MethodSignature is an abstract or concrete method member
type MethodSignature struct {
	Name         string
	TypeParams   string // verbatim, including angle brackets
	Params       []Parameter
	Return       TypeDescriptor
	Thrown       []string // verbatim thrown types
	DefaultValue string   // annotation element default, verbatim
	HasBody      bool
	Modifiers    Modifiers // effective, implicit modifiers included
	Declared     Modifiers // as written
	Markers      []Marker
	Location     SourceLocation
}

// Field is a constant member, kept verbatim
type Field struct {
	Names    []string
	Raw      string // verbatim source text including markers, up to and including ';'
	Location SourceLocation
}

// OtherMember is any member that is neither a method nor a field
type OtherMember struct {
	Kind     string // class, interface, enum, record, annotation, constructor, initializer
	Name     string
	Location SourceLocation
}

// MemberKind tags the variant held by a Member
type MemberKind int

const (
	MemberMethod MemberKind = iota
	MemberField
	MemberOther
)

// Member is a tagged variant over the members of a type body
type Member struct {
	Kind   MemberKind
	Method *MethodSignature
	Field  *Field
	Other  *OtherMember
}

// Name returns the member's name for diagnostics
func (m Member) Name() string {
	switch m.Kind {
	case MemberMethod:
		return m.Method.Name
	case MemberField:
		return strings.Join(m.Field.Names, ", ")
	default:
		return m.Other.Name
	}
}

// Location returns the member's source location
func (m Member) Location() SourceLocation {
	switch m.Kind {
	case MemberMethod:
		return m.Method.Location
	case MemberField:
		return m.Field.Location
	default:
		return m.Other.Location
	}
}

// Import is one import declaration of a compilation unit
type Import struct {
	Path     string // qualified name without a trailing ".*"
	Static   bool
	Wildcard bool
}

// String renders the import target as written after the import keyword
func (i Import) String() string {
	target := i.Path
	if i.Wildcard {
		target += ".*"
	}
	if i.Static {
		return "static " + target
	}
	return target
}

// CompilationUnit is the source file that holds a declaration
type CompilationUnit struct {
	File    string
	Package string
	Imports []Import
}

// InterfaceDeclaration is a parsed type declaration handed to the generator.
// The generator treats it as read-only and derives new declarations from it.
type InterfaceDeclaration struct {
	Name            string
	Kind            DeclarationKind
	Namespace       string // package name
	Enclosing       string // enclosing type name, empty when top level
	Modifiers       Modifiers
	TypeParams      string   // verbatim, including angle brackets
	Superinterfaces []string // verbatim
	Members         []Member
	Markers         []Marker
	Unit            *CompilationUnit
	Location        SourceLocation
}

// QualifiedName returns namespace.Name, or Name in the default package.
// Nested declarations include their enclosing types.
func (d *InterfaceDeclaration) QualifiedName() string {
	name := d.Name
	if d.Enclosing != "" {
		name = d.Enclosing + "." + name
	}
	if d.Namespace == "" {
		return name
	}
	return d.Namespace + "." + name
}

// IsTopLevel reports whether the declaration is not nested in another type
func (d *InterfaceDeclaration) IsTopLevel() bool {
	return d.Enclosing == ""
}

// Methods returns the method members in declaration order
func (d *InterfaceDeclaration) Methods() []*MethodSignature {
	var methods []*MethodSignature
	for _, member := range d.Members {
		if member.Kind == MemberMethod {
			methods = append(methods, member.Method)
		}
	}
	return methods
}

// FindMarker returns the first marker resolving to one of the qualified names
func FindMarker(markers []Marker, qualifiedNames ...string) (Marker, bool) {
	for _, marker := range markers {
		for _, name := range qualifiedNames {
			if marker.Is(name) {
				return marker, true
			}
		}
	}
	return Marker{}, false
}
