package cli

import (
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/utils"
)

// DirectoryScanner finds the source files named by path patterns
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a scanner for files with the given extension
func NewDirectoryScanner(extension string) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(extension),
	}
}

// ScanSources expands the patterns into source files. Supports Go-style
// patterns like "./..." for recursive scanning.
func (s *DirectoryScanner) ScanSources(patterns []string) ([]string, error) {
	files, err := s.fileProcessor.FindSourceFiles(patterns)
	if err != nil {
		return nil, errors.WithHint(err, "paths may be files, directories, or directories followed by /... to recurse")
	}
	return files, nil
}
