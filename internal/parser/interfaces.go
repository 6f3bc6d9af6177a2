package parser

import (
	"context"

	"github.com/toyz/dualgen/internal/models"
)

// SourceParser reads source files into the declaration model
type SourceParser interface {
	ParseSource(filename, source string) (*SourceFile, error)
	ParseFile(path string) (*SourceFile, error)
	ParseFiles(ctx context.Context, paths []string) ([]*SourceFile, error)
}

// SourceFile is the parsed form of one source file
type SourceFile struct {
	Unit         *models.CompilationUnit
	Declarations []*models.InterfaceDeclaration // every type declaration, nested ones included, in source order
}

// Annotated returns the declarations carrying the marker, nested ones included
func (f *SourceFile) Annotated(marker string) []*models.InterfaceDeclaration {
	var result []*models.InterfaceDeclaration
	for _, decl := range f.Declarations {
		if _, ok := models.FindMarker(decl.Markers, marker); ok {
			result = append(result, decl)
		}
	}
	return result
}
