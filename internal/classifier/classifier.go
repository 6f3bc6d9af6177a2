// Package classifier decides the calling style of a client interface and
// checks that it is eligible for generation.
package classifier

import (
	"strings"

	"github.com/toyz/dualgen/internal/annotations"
	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
)

// Classifier validates declarations against the configured markers
type Classifier struct {
	markers config.MarkerConfig
}

// New creates a classifier for cfg
func New(cfg *config.Config) *Classifier {
	return &Classifier{markers: cfg.Markers}
}

// Classify returns the style of decl together with every diagnostic found.
// The style is only meaningful when no diagnostics are returned. The kind,
// nesting and root marker checks stop classification; member checks
// accumulate.
func (c *Classifier) Classify(decl *models.InterfaceDeclaration) (models.Style, []*errors.Diagnostic) {
	if decl.Kind != models.DeclInterface {
		return models.StyleUnknown, []*errors.Diagnostic{
			errors.NewDiagnostic(errors.NotAnInterface, decl.QualifiedName(), decl.Kind).ForDeclaration(decl),
		}
	}
	if !decl.IsTopLevel() {
		return models.StyleUnknown, []*errors.Diagnostic{
			errors.NewDiagnostic(errors.NestedInterfaceUnsupported, decl.QualifiedName()).ForDeclaration(decl),
		}
	}
	if _, ok := models.FindMarker(decl.Markers, c.markers.Root); !ok {
		return models.StyleUnknown, []*errors.Diagnostic{
			errors.NewDiagnostic(errors.MissingRequiredMarker, decl.QualifiedName(), "@"+config.SimpleName(c.markers.Root)).ForDeclaration(decl),
		}
	}

	var diagnostics []*errors.Diagnostic
	style := models.StyleUnknown
	methods := 0

	for _, member := range decl.Members {
		switch member.Kind {
		case models.MemberField:
			continue
		case models.MemberOther:
			diagnostics = append(diagnostics,
				errors.NewDiagnostic(errors.InvalidMemberKind, member.Other.Kind, member.Other.Name).
					ForDeclaration(decl).
					ForMember(member.Name(), member.Location()))
			continue
		}

		method := member.Method
		methods++
		diagnostics = append(diagnostics, c.checkMethod(decl, method)...)

		methodStyle := method.Return.Style()
		switch {
		case style == models.StyleUnknown:
			style = methodStyle
		case methodStyle != style:
			diagnostics = append(diagnostics,
				errors.NewDiagnostic(errors.MixedCallingStyles, method.Name, methodStyle, decl.Name, style).
					ForDeclaration(decl).
					ForMember(method.Name, method.Location))
		}
	}

	if methods == 0 {
		diagnostics = append(diagnostics, errors.NewDiagnostic(errors.NoMethodsDeclared, decl.QualifiedName()).ForDeclaration(decl))
	}

	return style, diagnostics
}

// checkMethod runs the marker, modifier and named binding checks of one method
func (c *Classifier) checkMethod(decl *models.InterfaceDeclaration, method *models.MethodSignature) []*errors.Diagnostic {
	var diagnostics []*errors.Diagnostic

	if operations := c.operationMarkers(method); len(operations) != 1 {
		d := errors.NewDiagnostic(errors.MissingOperationMarker, method.Name, c.operationList()).
			ForDeclaration(decl).
			ForMember(method.Name, method.Location)
		if len(operations) > 1 {
			d.WithMarker(operations[1])
		}
		diagnostics = append(diagnostics, d)
	}

	if !method.Modifiers.Exactly(models.ModPublic, models.ModAbstract) {
		diagnostics = append(diagnostics,
			errors.NewDiagnostic(errors.InvalidMethodModifiers, method.Name, method.Modifiers).
				ForDeclaration(decl).
				ForMember(method.Name, method.Location))
	}

	for _, param := range method.Params {
		for _, marker := range param.Markers {
			if !c.isNamedBinding(marker) {
				continue
			}
			if annotations.HasNonEmptyAttribute(marker, c.markers.NamedBindingAttributes...) {
				continue
			}
			diagnostics = append(diagnostics,
				errors.NewDiagnostic(errors.EmptyNamedBindingAttribute, config.SimpleName(marker.QualifiedName), param.Name).
					ForDeclaration(decl).
					ForMember(method.Name, method.Location).
					WithMarker(marker))
		}
	}

	return diagnostics
}

// operationMarkers returns the exchange-operation markers on method
func (c *Classifier) operationMarkers(method *models.MethodSignature) []models.Marker {
	var found []models.Marker
	for _, marker := range method.Markers {
		for _, op := range c.markers.Operations {
			if marker.Is(op) {
				found = append(found, marker)
				break
			}
		}
	}
	return found
}

func (c *Classifier) isNamedBinding(marker models.Marker) bool {
	for _, name := range c.markers.NamedBindings {
		if marker.Is(name) {
			return true
		}
	}
	return false
}

func (c *Classifier) operationList() string {
	names := make([]string, len(c.markers.Operations))
	for i, op := range c.markers.Operations {
		names[i] = "@" + config.SimpleName(op)
	}
	return strings.Join(names, ", ")
}
