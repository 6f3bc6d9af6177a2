package cli

import (
	"os"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/templates"
	"github.com/toyz/dualgen/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner     *DirectoryScanner
	config      *config.Config
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a new cleaner
func NewCleaner(cfg *config.Config, diagnostics *utils.DiagnosticSystem) *Cleaner {
	if cfg == nil {
		cfg = config.Default()
	}
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	return &Cleaner{
		scanner:     NewDirectoryScanner(cfg.Output.Extension),
		config:      cfg,
		diagnostics: diagnostics,
	}
}

// CleanGeneratedFiles removes the files this generator produced below the
// patterns and the configured output directory. A file counts as generated
// when its metadata block names this generator; hand-written files and other
// generators' output are left alone.
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	if dir := c.config.Output.Dir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			patterns = append(append([]string(nil), patterns...), dir+utils.RecursiveSuffix)
		}
	}

	files, err := c.scanner.ScanSources(patterns)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0)
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return removed, errors.Wrapf(err, "failed to read %s", file)
		}
		if !templates.IsGeneratedBy(string(content), c.config.Generator.Annotation, c.config.Generator.Name) {
			continue
		}
		if err := os.Remove(file); err != nil {
			return removed, errors.Wrapf(err, "failed to remove %s", file)
		}
		removed = append(removed, file)
		c.diagnostics.PhaseProgress("removed %s", file)
	}
	return removed, nil
}
