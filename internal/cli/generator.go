package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/filer"
	"github.com/toyz/dualgen/internal/generator"
	"github.com/toyz/dualgen/internal/models"
	"github.com/toyz/dualgen/internal/parser"
	"github.com/toyz/dualgen/internal/templates"
	"github.com/toyz/dualgen/internal/utils"
)

// ErrGenerationFailed is returned when any declaration or file failed. The
// details were already reported as they happened.
var ErrGenerationFailed = errors.New("generation reported errors")

// Generator coordinates the CLI generation process: scan, parse, generate
// and write
type Generator struct {
	config      *config.Config
	scanner     *DirectoryScanner
	parser      parser.SourceParser
	filer       filer.Filer
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
	runOptions  []generator.RunOption
	cache       *utils.FileCache[*parser.SourceFile] // nil parses every file every time
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	FilesScanned   int
	FilesParsed    int // files read this time; the rest came from the cache
	FilesFailed    int // files that could not be parsed
	Declarations   int // declarations carrying the trigger marker
	Diagnostics    int
	GeneratedFiles []string
	RunID          string
	Duration       time.Duration
}

// Failed reports whether anything went wrong
func (s GenerationSummary) Failed() bool {
	return s.FilesFailed > 0 || s.Diagnostics > 0
}

// NewGenerator creates a CLI generator writing to the filesystem
func NewGenerator(cfg *config.Config, diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if reporter == nil {
		reporter = NewDiagnosticReporter(diagnostics.Level() >= utils.DiagnosticVerbose)
	}
	return &Generator{
		config:      cfg,
		scanner:     NewDirectoryScanner(cfg.Output.Extension),
		parser:      parser.NewParser(cfg),
		filer:       newDiskFiler(cfg),
		reporter:    reporter,
		diagnostics: diagnostics,
	}
}

// newDiskFiler returns a filesystem filer that only replaces files this
// generator wrote
func newDiskFiler(cfg *config.Config) *filer.FilesystemFiler {
	f := filer.NewFilesystemFiler(cfg.Output.Dir, cfg.Output.Extension)
	f.Replaceable = func(existing []byte) bool {
		return templates.IsGeneratedBy(string(existing), cfg.Generator.Annotation, cfg.Generator.Name)
	}
	return f
}

// WithFiler replaces the output filer
func (g *Generator) WithFiler(f filer.Filer) *Generator {
	g.filer = f
	return g
}

// WithRunOptions sets options applied to every run, e.g. a fixed clock
func (g *Generator) WithRunOptions(opts ...generator.RunOption) *Generator {
	g.runOptions = opts
	return g
}

// EnableCache keeps parsed files between generations and only reparses the
// files that changed. Used by watch mode.
func (g *Generator) EnableCache() *Generator {
	if g.cache == nil {
		g.cache = utils.NewFileCache[*parser.SourceFile]()
	}
	return g
}

// Config returns the configuration in use
func (g *Generator) Config() *config.Config {
	return g.config
}

// Generate runs one complete generation over the patterns. Every call is a
// fresh run, so files generated by an earlier call are written again.
func (g *Generator) Generate(ctx context.Context, patterns []string) (GenerationSummary, error) {
	return g.generate(ctx, patterns, g.filer)
}

func (g *Generator) generate(ctx context.Context, patterns []string, out filer.Filer) (GenerationSummary, error) {
	start := time.Now()
	summary := GenerationSummary{GeneratedFiles: make([]string, 0)}

	g.diagnostics.PhaseHeader("Scanning")
	files, err := g.scanner.ScanSources(patterns)
	if err != nil {
		return summary, err
	}
	summary.FilesScanned = len(files)
	g.diagnostics.Indent()
	g.diagnostics.PhaseItem("found %d source files", len(files))
	g.diagnostics.Unindent()

	g.diagnostics.PhaseHeader("Parsing")
	sources, parsed, err := g.parseSources(ctx, files)
	summary.FilesParsed = parsed
	if err != nil {
		var fileErrs *parser.FileErrors
		if !errors.As(err, &fileErrs) {
			return summary, err
		}
		summary.FilesFailed = len(fileErrs.Errors)
		g.reporter.ReportError(fileErrs)
	}

	decls := g.collectDeclarations(sources)
	summary.Declarations = len(decls)
	g.diagnostics.Indent()
	if summary.FilesParsed < summary.FilesScanned {
		g.diagnostics.Verbose("%d unchanged files reused", summary.FilesScanned-summary.FilesParsed)
	}
	g.diagnostics.PhaseItem("found %d client interfaces", len(decls))
	g.diagnostics.Unindent()

	g.diagnostics.PhaseHeader("Generating")
	opts := append([]generator.RunOption{generator.WithSourceTypes(sourceTypes(sources)...)}, g.runOptions...)
	run := generator.NewRun(g.config, out, g.diagnostics, opts...)
	summary.RunID = run.ID()
	g.diagnostics.Verbose("run %s", run.ID())

	result, err := run.ProcessRound(ctx, decls)
	if result != nil {
		summary.Diagnostics = result.Diagnostics
		g.diagnostics.Indent()
		for _, file := range result.Generated {
			summary.GeneratedFiles = append(summary.GeneratedFiles, file.Location)
			g.diagnostics.PhaseProgress("%s -> %s", file.Source, file.QualifiedName)
			g.diagnostics.Verbose("wrote %s", file.Location)
		}
		g.diagnostics.Unindent()
	}
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}

	if summary.Failed() {
		return summary, ErrGenerationFailed
	}
	return summary, nil
}

// parseSources parses the files, reusing cached results for files that have
// not changed. Failures are collected into a *parser.FileErrors like
// ParseFiles does.
func (g *Generator) parseSources(ctx context.Context, files []string) ([]*parser.SourceFile, int, error) {
	if g.cache == nil {
		sources, err := g.parser.ParseFiles(ctx, files)
		return sources, len(files), err
	}
	g.cache.Retain(files)

	sources := make([]*parser.SourceFile, 0, len(files))
	var failures parser.FileErrors
	parsed := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return sources, parsed, err
		}
		if source, ok := g.cache.Get(file); ok {
			sources = append(sources, source)
			continue
		}

		info, err := os.Stat(file)
		if err != nil {
			failures.Errors = append(failures.Errors, errors.Wrapf(err, "failed to read %s", file))
			continue
		}
		parsed++
		source, err := g.parser.ParseFile(file)
		if err != nil {
			failures.Errors = append(failures.Errors, err)
			continue
		}
		g.cache.Set(file, info, source)
		sources = append(sources, source)
	}

	if len(failures.Errors) > 0 {
		return sources, parsed, &failures
	}
	return sources, parsed, nil
}

// collectDeclarations returns the triggered declarations of every file
func (g *Generator) collectDeclarations(sources []*parser.SourceFile) []*models.InterfaceDeclaration {
	var decls []*models.InterfaceDeclaration
	for _, source := range sources {
		found := source.Annotated(g.config.Markers.Trigger)
		if len(found) > 0 {
			g.diagnostics.Debug("%s: %d client interfaces", filepath.ToSlash(source.Unit.File), len(found))
		}
		decls = append(decls, found...)
	}
	return decls
}

// sourceTypes returns every declaration of every file, triggered or not
func sourceTypes(sources []*parser.SourceFile) []*models.InterfaceDeclaration {
	var decls []*models.InterfaceDeclaration
	for _, source := range sources {
		decls = append(decls, source.Declarations...)
	}
	return decls
}

// PrintSummary prints the final summary of a generation
func (g *Generator) PrintSummary(summary GenerationSummary) {
	title := "Generation completed"
	if summary.Failed() {
		title = "Generation completed with errors"
	}
	g.diagnostics.Summary(title,
		[]string{"Files scanned", "Parse failures", "Client interfaces", "Generated", "Errors", "Duration"},
		map[string]interface{}{
			"Files scanned":     summary.FilesScanned,
			"Parse failures":    summary.FilesFailed,
			"Client interfaces": summary.Declarations,
			"Generated":         len(summary.GeneratedFiles),
			"Errors":            summary.Diagnostics,
			"Duration":          summary.Duration.Round(time.Millisecond),
		})
}
