package generator

import (
	"context"
	"time"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/filer"
	"github.com/toyz/dualgen/internal/models"
	"github.com/toyz/dualgen/internal/templates"
)

// ErrAlreadyGenerated is the cause of the IOError reported when a run emits
// the same qualified name twice
var ErrAlreadyGenerated = errors.New("type was already generated in this run")

// ErrSourceTypeExists is the cause of the IOError reported when the generated
// name belongs to a type among the input sources
var ErrSourceTypeExists = errors.New("type already exists among the input sources")

// Emitter renders generated declarations and hands them to a filer. It
// remembers every qualified name it emitted; use one emitter per run.
type Emitter struct {
	cfg      *config.Config
	renderer *templates.Renderer
	filer    filer.Filer
	emitted  map[string]bool
	reserved map[string]bool
}

// NewEmitter creates an emitter writing through f
func NewEmitter(cfg *config.Config, f filer.Filer) *Emitter {
	return &Emitter{
		cfg:      cfg,
		renderer: templates.NewRenderer(cfg.Types),
		filer:    f,
		emitted:  make(map[string]bool),
		reserved: make(map[string]bool),
	}
}

// Reserve marks qualified names that must not be emitted because a source
// type already has them
func (e *Emitter) Reserve(qualifiedNames ...string) {
	for _, name := range qualifiedNames {
		e.reserved[name] = true
	}
}

// Render returns the complete source text of spec
func (e *Emitter) Render(spec *models.GeneratedInterfaceSpec) (string, error) {
	decl := spec.Declaration

	imports := templates.NewImportManager(e.cfg.Markers.Trigger, e.cfg.Types.AsyncSingle, e.cfg.Types.AsyncMulti)
	if spec.Origin != nil && spec.Origin.Unit != nil {
		imports.AddSourceImports(spec.Origin.Unit.Imports...)
	}
	for _, name := range spec.Imports {
		imports.AddImport(name)
	}

	data := templates.FileData{
		Package:    decl.Namespace,
		Imports:    imports.Imports(),
		Generated:  e.generatedData(spec.Metadata),
		Markers:    rawMarkers(decl.Markers),
		Modifiers:  decl.Modifiers.String(),
		Name:       decl.Name,
		TypeParams: decl.TypeParams,
		Extends:    decl.Superinterfaces,
	}

	for _, member := range decl.Members {
		switch member.Kind {
		case models.MemberField:
			data.Members = append(data.Members, member.Field.Raw)
		case models.MemberMethod:
			rendered, err := e.renderer.RenderMethod(e.methodData(member.Method))
			if err != nil {
				return "", errors.Wrapf(err, "render method %s", member.Method.Name)
			}
			data.Members = append(data.Members, rendered)
		}
	}

	return e.renderer.RenderFile(data)
}

func (e *Emitter) generatedData(meta models.GenerationMetadata) templates.GeneratedData {
	comments := "source: " + meta.Source
	if meta.RunID != "" {
		comments += ", run: " + meta.RunID
	}
	return templates.GeneratedData{
		Annotation: e.cfg.Generator.Annotation,
		Value:      meta.Generator,
		Date:       meta.Timestamp.UTC().Format(time.RFC3339),
		Comments:   comments,
	}
}

func (e *Emitter) methodData(method *models.MethodSignature) templates.MethodData {
	params := make([]string, len(method.Params))
	for i, param := range method.Params {
		params[i] = param.Raw
	}
	return templates.MethodData{
		Markers:    rawMarkers(method.Markers),
		Modifiers:  method.Declared.String(),
		TypeParams: method.TypeParams,
		Return:     e.renderer.RenderType(method.Return),
		Name:       method.Name,
		Params:     params,
		Throws:     method.Thrown,
		Default:    method.DefaultValue,
	}
}

func rawMarkers(markers []models.Marker) []string {
	raw := make([]string, len(markers))
	for i, marker := range markers {
		raw[i] = marker.Raw
	}
	return raw
}

// Emit renders spec and writes it through the filer, returning the written
// location. Every failure is an IOError diagnostic, including a second
// emission of the same qualified name.
func (e *Emitter) Emit(ctx context.Context, spec *models.GeneratedInterfaceSpec) (string, error) {
	qualified := spec.QualifiedName()
	origin := spec.Origin

	ioError := func(cause error) error {
		d := errors.NewDiagnostic(errors.IOError, qualified, cause).WithCause(cause)
		if origin != nil {
			d.ForDeclaration(origin)
		}
		return d
	}

	if e.reserved[qualified] {
		return "", ioError(ErrSourceTypeExists)
	}
	if e.emitted[qualified] {
		return "", ioError(ErrAlreadyGenerated)
	}
	e.emitted[qualified] = true

	content, err := e.Render(spec)
	if err != nil {
		return "", ioError(err)
	}

	file := filer.SourceFile{
		Package: spec.Declaration.Namespace,
		Name:    spec.Declaration.Name,
		Content: []byte(content),
	}
	if origin != nil && origin.Unit != nil {
		file.Origin = origin.Unit.File
	}

	location, err := e.filer.CreateSource(ctx, file)
	if err != nil {
		return "", ioError(err)
	}
	return location, nil
}

// Emitted reports whether qualifiedName was emitted by this emitter
func (e *Emitter) Emitted(qualifiedName string) bool {
	return e.emitted[qualifiedName]
}
