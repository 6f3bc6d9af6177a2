package models

import "time"

// GenerationMetadata is recorded once per generated file
type GenerationMetadata struct {
	Generator string    // generator identity
	Timestamp time.Time // generation time
	RunID     string    // identifies the generation run
	Source    string    // qualified name of the originating declaration
}

// GeneratedInterfaceSpec is the derived declaration plus everything the
// emitter needs to render it. It lives for a single generation pass.
type GeneratedInterfaceSpec struct {
	Declaration *InterfaceDeclaration // derived declaration
	Origin      *InterfaceDeclaration // declaration it was derived from
	Style       Style                 // style of the derived declaration
	Imports     []string              // qualified names referenced by the generated signatures
	Metadata    GenerationMetadata
}

// QualifiedName returns the qualified name of the generated type
func (s *GeneratedInterfaceSpec) QualifiedName() string {
	return s.Declaration.QualifiedName()
}
