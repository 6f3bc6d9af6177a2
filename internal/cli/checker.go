package cli

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/filer"
	"github.com/toyz/dualgen/internal/templates"
)

// ErrOutOfDate is returned by Check when generated files are missing or stale
var ErrOutOfDate = errors.New("generated files are out of date")

// CheckResult lists the generated files compared against disk
type CheckResult struct {
	UpToDate []string
	Missing  []string
	Stale    []string
}

// OK reports whether every generated file matches disk
func (r CheckResult) OK() bool {
	return len(r.Missing) == 0 && len(r.Stale) == 0
}

// planFiler keeps generated files in memory under the paths a
// FilesystemFiler would write them to
type planFiler struct {
	disk   *filer.FilesystemFiler
	memory *filer.MemoryFiler

	mu      sync.Mutex
	targets map[string]string // disk path -> memory path
}

func newPlanFiler(disk *filer.FilesystemFiler) *planFiler {
	return &planFiler{
		disk:    disk,
		memory:  filer.NewMemoryFiler(disk.Extension),
		targets: make(map[string]string),
	}
}

func (p *planFiler) CreateSource(ctx context.Context, file filer.SourceFile) (string, error) {
	target, err := p.disk.WritableTarget(file)
	if err != nil {
		return "", err
	}
	rel, err := p.memory.CreateSource(ctx, file)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.targets[target] = rel
	p.mu.Unlock()
	return target, nil
}

// Check generates into memory and compares each file with what is on disk,
// ignoring the generation metadata block. Nothing is written.
func (g *Generator) Check(ctx context.Context, patterns []string) (CheckResult, GenerationSummary, error) {
	var result CheckResult

	plan := newPlanFiler(newDiskFiler(g.config))
	summary, err := g.generate(ctx, patterns, plan)
	if err != nil && !errors.Is(err, ErrGenerationFailed) {
		return result, summary, err
	}
	genErr := err

	targets := make([]string, 0, len(plan.targets))
	for target := range plan.targets {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	annotation := g.config.Generator.Annotation
	for _, target := range targets {
		want := templates.StripGenerated(string(plan.memory.Get(plan.targets[target])), annotation)

		current, err := os.ReadFile(target)
		switch {
		case os.IsNotExist(err):
			result.Missing = append(result.Missing, target)
		case err != nil:
			return result, summary, errors.Wrapf(err, "failed to read %s", target)
		case templates.StripGenerated(string(current), annotation) != want:
			result.Stale = append(result.Stale, target)
		default:
			result.UpToDate = append(result.UpToDate, target)
		}
	}

	if genErr != nil {
		return result, summary, genErr
	}
	if !result.OK() {
		return result, summary, ErrOutOfDate
	}
	return result, summary, nil
}
