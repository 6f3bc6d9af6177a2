package generator

import (
	"sort"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/models"
	"github.com/toyz/dualgen/internal/transform"
)

// Synthesize derives the complementary declaration of decl. Everything but
// the name, the trigger marker and the method return types is carried over
// unchanged; decl itself is not modified. Methods missing from results keep
// their original return type.
func Synthesize(decl *models.InterfaceDeclaration, source models.Style, results []transform.Result, cfg *config.Config) *models.GeneratedInterfaceSpec {
	returns := make(map[*models.MethodSignature]models.TypeDescriptor, len(results))
	for _, result := range results {
		returns[result.Method] = result.Return
	}

	derived := &models.InterfaceDeclaration{
		Name:            DeriveName(decl.Name, source, cfg.Naming),
		Kind:            decl.Kind,
		Namespace:       decl.Namespace,
		Modifiers:       append(models.Modifiers(nil), decl.Modifiers...),
		TypeParams:      decl.TypeParams,
		Superinterfaces: append([]string(nil), decl.Superinterfaces...),
		Markers:         withoutMarker(decl.Markers, cfg.Markers.Trigger),
		Unit:            decl.Unit,
		Location:        decl.Location,
	}

	var returnTypes []models.TypeDescriptor
	for _, member := range decl.Members {
		switch member.Kind {
		case models.MemberMethod:
			method := copyMethod(member.Method)
			if ret, ok := returns[member.Method]; ok {
				method.Return = ret
			}
			returnTypes = append(returnTypes, method.Return)
			derived.Members = append(derived.Members, models.Member{Kind: models.MemberMethod, Method: method})
		case models.MemberField:
			field := *member.Field
			field.Names = append([]string(nil), member.Field.Names...)
			derived.Members = append(derived.Members, models.Member{Kind: models.MemberField, Field: &field})
		default:
			other := *member.Other
			derived.Members = append(derived.Members, models.Member{Kind: models.MemberOther, Other: &other})
		}
	}

	return &models.GeneratedInterfaceSpec{
		Declaration: derived,
		Origin:      decl,
		Style:       source.Opposite(),
		Imports:     RequiredImports(cfg.Types, returnTypes...),
		Metadata: models.GenerationMetadata{
			Source: decl.QualifiedName(),
		},
	}
}

// RequiredImports returns the sorted container types referenced anywhere in
// the given types, type arguments included
func RequiredImports(types config.TypeConfig, descriptors ...models.TypeDescriptor) []string {
	seen := make(map[string]bool)
	for _, t := range descriptors {
		t.Walk(func(t models.TypeDescriptor) {
			switch t.Kind {
			case models.TypeList:
				seen[types.List] = true
			case models.TypeAsyncSingle:
				seen[types.AsyncSingle] = true
			case models.TypeAsyncMulti:
				seen[types.AsyncMulti] = true
			}
		})
	}

	imports := make([]string, 0, len(seen))
	for name := range seen {
		imports = append(imports, name)
	}
	sort.Strings(imports)
	return imports
}

func withoutMarker(markers []models.Marker, qualifiedName string) []models.Marker {
	result := make([]models.Marker, 0, len(markers))
	for _, marker := range markers {
		if !marker.Is(qualifiedName) {
			result = append(result, marker)
		}
	}
	return result
}

func copyMethod(m *models.MethodSignature) *models.MethodSignature {
	method := *m
	method.Params = make([]models.Parameter, len(m.Params))
	for i, param := range m.Params {
		param.Markers = append([]models.Marker(nil), param.Markers...)
		method.Params[i] = param
	}
	method.Thrown = append([]string(nil), m.Thrown...)
	method.Modifiers = append(models.Modifiers(nil), m.Modifiers...)
	method.Declared = append(models.Modifiers(nil), m.Declared...)
	method.Markers = append([]models.Marker(nil), m.Markers...)
	return &method
}
