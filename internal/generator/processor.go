package generator

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/filer"
	"github.com/toyz/dualgen/internal/models"
)

// GeneratedFile describes one file written during a round
type GeneratedFile struct {
	QualifiedName string // generated type
	Source        string // qualified name of the originating declaration
	Location      string // as returned by the filer
}

// RoundResult summarizes one processing round
type RoundResult struct {
	Generated   []GeneratedFile
	Diagnostics int
	Skipped     int // declarations without the trigger marker
}

// RunOption configures a Run
type RunOption func(*Run)

// WithClock sets the time source used for generation timestamps
func WithClock(now func() time.Time) RunOption {
	return func(r *Run) {
		r.now = now
	}
}

// WithRunID sets the run id instead of a random one
func WithRunID(id string) RunOption {
	return func(r *Run) {
		r.id = id
	}
}

// WithSourceTypes registers the declarations found among the inputs, marked
// or not. The run never generates a type under one of their names, except
// over files this generator wrote itself.
func WithSourceTypes(decls ...*models.InterfaceDeclaration) RunOption {
	return func(r *Run) {
		r.sourceTypes = append(r.sourceTypes, decls...)
	}
}

// Run holds the state of one compilation: the emitted qualified names, the
// run id and the clock. Nothing is shared between runs, so a fresh run may
// emit names an earlier run already wrote. A Run is not safe for concurrent use.
type Run struct {
	id        string
	now       func() time.Time
	generator *Generator
	emitter   *Emitter
	sink      errors.Sink
	generated []GeneratedFile

	sourceTypes []*models.InterfaceDeclaration
}

// NewRun creates a run writing through f and reporting diagnostics to sink.
// A nil cfg uses the defaults; a nil sink drops diagnostics.
func NewRun(cfg *config.Config, f filer.Filer, sink errors.Sink, opts ...RunOption) *Run {
	if cfg == nil {
		cfg = config.Default()
	}
	if sink == nil {
		sink = errors.SinkFunc(func(*errors.Diagnostic) {})
	}

	r := &Run{
		id:        uuid.NewString(),
		now:       time.Now,
		generator: NewGenerator(cfg),
		emitter:   NewEmitter(cfg, f),
		sink:      sink,
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, decl := range r.sourceTypes {
		if !r.isOwnOutput(decl) {
			r.emitter.Reserve(decl.QualifiedName())
		}
	}
	return r
}

// isOwnOutput reports whether decl carries the metadata block of this generator
func (r *Run) isOwnOutput(decl *models.InterfaceDeclaration) bool {
	gen := r.generator.Config().Generator
	marker, ok := models.FindMarker(decl.Markers, gen.Annotation)
	if !ok {
		return false
	}
	value, _ := marker.Attribute("value")
	value = strings.Trim(value, `"`)
	return value == gen.Name || strings.HasPrefix(value, gen.Name+" ")
}

// ID returns the run id recorded in generated metadata
func (r *Run) ID() string {
	return r.id
}

// ProcessRound processes the declarations presented in one round, in order.
// A declaration that fails never stops its siblings; its diagnostics go to
// the sink. The only error returned is a cancelled context.
func (r *Run) ProcessRound(ctx context.Context, decls []*models.InterfaceDeclaration) (*RoundResult, error) {
	result := &RoundResult{}
	trigger := r.generator.Config().Markers.Trigger

	for _, decl := range decls {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, ok := models.FindMarker(decl.Markers, trigger); !ok {
			result.Skipped++
			continue
		}

		file, diagnostics := r.process(ctx, decl)
		for _, d := range diagnostics {
			r.sink.Report(d)
		}
		result.Diagnostics += len(diagnostics)
		if file != nil {
			result.Generated = append(result.Generated, *file)
			r.generated = append(r.generated, *file)
		}
	}

	return result, nil
}

func (r *Run) process(ctx context.Context, decl *models.InterfaceDeclaration) (*GeneratedFile, []*errors.Diagnostic) {
	spec, diagnostics := r.generator.Generate(decl)
	if len(diagnostics) > 0 {
		return nil, diagnostics
	}

	spec.Metadata.Generator = r.generator.Config().Generator.Identity()
	spec.Metadata.Timestamp = r.now()
	spec.Metadata.RunID = r.id

	location, err := r.emitter.Emit(ctx, spec)
	if err != nil {
		var d *errors.Diagnostic
		if errors.As(err, &d) {
			return nil, []*errors.Diagnostic{d}
		}
		return nil, []*errors.Diagnostic{
			errors.NewDiagnostic(errors.IOError, spec.QualifiedName(), err).ForDeclaration(decl).WithCause(err),
		}
	}

	return &GeneratedFile{
		QualifiedName: spec.QualifiedName(),
		Source:        decl.QualifiedName(),
		Location:      location,
	}, nil
}

// Generated returns every file written by this run, sorted by qualified name
func (r *Run) Generated() []GeneratedFile {
	files := append([]GeneratedFile(nil), r.generated...)
	sort.Slice(files, func(i, j int) bool {
		return files[i].QualifiedName < files[j].QualifiedName
	})
	return files
}
