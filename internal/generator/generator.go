// Package generator derives the complementary client interface of a
// declaration and writes it out.
//
// A declaration written in the direct style gets an asynchronous twin and the
// other way round. Generation runs in four steps: classify, transform the
// return types, synthesize the new declaration, emit it through a filer.
// Generator covers the first three and is stateless; Run adds emission and
// the per-run bookkeeping.
package generator

import (
	"github.com/toyz/dualgen/internal/classifier"
	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
	"github.com/toyz/dualgen/internal/transform"
)

// Generator turns eligible declarations into generated interface specs
type Generator struct {
	cfg         *config.Config
	classifier  StyleClassifier
	transformer ReturnTransformer
}

// NewGenerator creates a generator for cfg; a nil cfg uses the defaults
func NewGenerator(cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Generator{
		cfg:         cfg,
		classifier:  classifier.New(cfg),
		transformer: transform.New(),
	}
}

// Config returns the configuration the generator was created with
func (g *Generator) Config() *config.Config {
	return g.cfg
}

// Generate classifies decl, transforms its return types and synthesizes the
// complementary declaration. It returns either a spec or the diagnostics
// explaining why none could be produced. Classification diagnostics stop
// generation before any return type is looked at.
func (g *Generator) Generate(decl *models.InterfaceDeclaration) (*models.GeneratedInterfaceSpec, []*errors.Diagnostic) {
	style, diagnostics := g.classifier.Classify(decl)
	if len(diagnostics) > 0 {
		return nil, diagnostics
	}

	results, diagnostics := g.transformer.TransformAll(decl, style)
	if len(diagnostics) > 0 {
		return nil, diagnostics
	}

	return Synthesize(decl, style, results, g.cfg), nil
}
