package errors

import (
	"fmt"
	"strings"

	"github.com/toyz/dualgen/internal/models"
)

// Kind identifies a diagnostic in the fixed message catalogue
type Kind int

const (
	UnknownKind Kind = iota

	// Structural
	NotAnInterface
	NestedInterfaceUnsupported
	InvalidMemberKind
	NoMethodsDeclared

	// Contract and marker
	MissingRequiredMarker
	MissingOperationMarker
	InvalidMethodModifiers
	EmptyNamedBindingAttribute

	// Type shape
	MixedCallingStyles
	ReturnTypeNotParametrized

	// I/O
	IOError
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case NotAnInterface:
		return "NotAnInterface"
	case NestedInterfaceUnsupported:
		return "NestedInterfaceUnsupported"
	case InvalidMemberKind:
		return "InvalidMemberKind"
	case NoMethodsDeclared:
		return "NoMethodsDeclared"
	case MissingRequiredMarker:
		return "MissingRequiredMarker"
	case MissingOperationMarker:
		return "MissingOperationMarker"
	case InvalidMethodModifiers:
		return "InvalidMethodModifiers"
	case EmptyNamedBindingAttribute:
		return "EmptyNamedBindingAttribute"
	case MixedCallingStyles:
		return "MixedCallingStyles"
	case ReturnTypeNotParametrized:
		return "ReturnTypeNotParametrized"
	case IOError:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// Category returns the taxonomy group of the kind
func (k Kind) Category() string {
	switch k {
	case NotAnInterface, NestedInterfaceUnsupported, InvalidMemberKind, NoMethodsDeclared:
		return "structural"
	case MissingRequiredMarker, MissingOperationMarker, InvalidMethodModifiers, EmptyNamedBindingAttribute:
		return "contract"
	case MixedCallingStyles, ReturnTypeNotParametrized:
		return "type-shape"
	case IOError:
		return "io"
	default:
		return "unknown"
	}
}

// catalogue holds one message template per kind
var catalogue = map[Kind]string{
	NotAnInterface:             "annotation target %s is a %s, not an interface",
	NestedInterfaceUnsupported: "nested interface %s is not supported, declare it at top level",
	InvalidMemberKind:          "%s %s is not allowed, the interface must contain only methods and fields",
	NoMethodsDeclared:          "interface %s must contain at least one method",
	MissingRequiredMarker:      "interface %s must have %s annotation",
	MissingOperationMarker:     "method %s must have exactly one of %s annotations",
	InvalidMethodModifiers:     "method %s must be public abstract, found [%s]",
	EmptyNamedBindingAttribute: "annotation @%s on parameter %s must have non-empty \"name\" or \"value\" attribute",
	MixedCallingStyles:         "method %s is %s but interface %s is %s",
	ReturnTypeNotParametrized:  "method %s must return a parametrized single-value or multi-value asynchronous type, found %s",
	IOError:                    "cannot create %s: %v",
}

// Severity of a diagnostic. The generator only produces errors.
type Severity int

const (
	SeverityError Severity = iota
)

// String returns the string representation of the severity
func (s Severity) String() string {
	return "error"
}

// Diagnostic reports a problem with one client interface declaration
type Diagnostic struct {
	Kind        Kind
	Message     string
	Declaration string         // qualified name of the offending declaration
	Member      string         // offending member, if any
	Marker      *models.Marker // marker instance that triggered the diagnostic, if any
	Loc         models.SourceLocation
	Cause       error
}

// NewDiagnostic renders the catalogue template for kind with args
func NewDiagnostic(kind Kind, args ...interface{}) *Diagnostic {
	template, ok := catalogue[kind]
	if !ok {
		template = strings.TrimSpace(strings.Repeat("%v ", len(args)))
	}
	return &Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(template, args...),
	}
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	if d.Loc.File == "" {
		return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", d.Loc, d.Kind, d.Message)
}

// Severity is always SeverityError
func (d *Diagnostic) Severity() Severity {
	return SeverityError
}

// Unwrap returns the underlying cause, set for IOError
func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// ForDeclaration attaches the offending declaration
func (d *Diagnostic) ForDeclaration(decl *models.InterfaceDeclaration) *Diagnostic {
	d.Declaration = decl.QualifiedName()
	if d.Loc.File == "" {
		d.Loc = decl.Location
	}
	return d
}

// ForMember attaches the offending member and moves the location to it
func (d *Diagnostic) ForMember(name string, loc models.SourceLocation) *Diagnostic {
	d.Member = name
	if loc.File != "" {
		d.Loc = loc
	}
	return d
}

// WithMarker attaches the marker instance that triggered the diagnostic
func (d *Diagnostic) WithMarker(marker models.Marker) *Diagnostic {
	d.Marker = &marker
	if marker.Location.File != "" {
		d.Loc = marker.Location
	}
	return d
}

// WithCause records the underlying error
func (d *Diagnostic) WithCause(cause error) *Diagnostic {
	d.Cause = cause
	return d
}
