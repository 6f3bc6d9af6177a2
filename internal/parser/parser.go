// Package parser reads Java source files into the declaration model. It
// understands the subset of Java needed for type and member declarations:
// method bodies, initializers and enum constants are skipped as balanced
// token runs.
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/dualgen/internal/annotations"
	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/models"
)

// Parser implements the SourceParser interface
type Parser struct {
	config  *config.Config
	markers *annotations.ParticipleParser
	known   []string
}

// NewParser creates a parser that resolves names against cfg
func NewParser(cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Parser{
		config:  cfg,
		markers: annotations.NewParticipleParser(),
		known:   cfg.KnownNames(),
	}
}

// ParseSource parses source code from a string
func (p *Parser) ParseSource(filename, source string) (*SourceFile, error) {
	if filepath.Base(filename) == ModuleInfoFile {
		return &SourceFile{Unit: &models.CompilationUnit{File: filename}}, nil
	}

	stream, err := newTokenStream(filename, source)
	if err != nil {
		return nil, err
	}

	fp := &fileParser{
		tokenStream: stream,
		config:      p.config,
		markers:     p.markers,
		known:       p.known,
		unit:        &models.CompilationUnit{File: filename},
	}
	if err := fp.parseCompilationUnit(); err != nil {
		return nil, err
	}

	return &SourceFile{Unit: fp.unit, Declarations: fp.decls}, nil
}

// ParseFile reads and parses one file
func (p *Parser) ParseFile(path string) (*SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return p.ParseSource(path, string(content))
}

// ParseFiles parses every path. A file that fails does not stop the others:
// the successfully parsed files are returned together with a *FileErrors
// describing the failures.
func (p *Parser) ParseFiles(ctx context.Context, paths []string) ([]*SourceFile, error) {
	files := make([]*SourceFile, 0, len(paths))
	var failures FileErrors

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		file, err := p.ParseFile(path)
		if err != nil {
			failures.Errors = append(failures.Errors, err)
			continue
		}
		files = append(files, file)
	}

	if len(failures.Errors) > 0 {
		return files, &failures
	}
	return files, nil
}

// FileErrors collects per-file parse failures
type FileErrors struct {
	Errors []error
}

// Error implements the error interface
func (e *FileErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = fmt.Sprintf("  %d. %s", i+1, err)
	}
	return fmt.Sprintf("%d files failed to parse:\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// Unwrap returns the individual failures
func (e *FileErrors) Unwrap() []error {
	return e.Errors
}
