package generator

import (
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
	"github.com/toyz/dualgen/internal/transform"
)

// StyleClassifier decides the calling style of a declaration and reports
// every reason it cannot be generated from
type StyleClassifier interface {
	Classify(decl *models.InterfaceDeclaration) (models.Style, []*errors.Diagnostic)
}

// ReturnTransformer maps the return types of a classified declaration to the
// opposite style
type ReturnTransformer interface {
	TransformAll(decl *models.InterfaceDeclaration, source models.Style) ([]transform.Result, []*errors.Diagnostic)
}
