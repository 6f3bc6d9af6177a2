package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/dualgen/internal/errors"
)

// RecursiveSuffix marks a Go-style recursive path pattern such as ./...
const RecursiveSuffix = "/..."

// FileProcessor walks source trees and selects the files to process
type FileProcessor struct {
	extension       string
	directoryFilter DirectoryFilter
}

// NewFileProcessor creates a file processor for source files with the given
// extension, e.g. ".java"
func NewFileProcessor(extension string) *FileProcessor {
	return &FileProcessor{
		extension:       extension,
		directoryFilter: DefaultDirectoryFilter(),
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	Recursive       bool
	SkipErrors      bool
}

// SourceFileFilter filters for files with the given extension
func SourceFileFilter(extension string) FileFilter {
	return func(path string, info os.DirEntry) bool {
		return !info.IsDir() && strings.HasSuffix(info.Name(), extension)
	}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
		"target":       true,
		"out":          true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !skipDirs[name]
	}
}

// WalkFiles walks through files in a directory tree with filtering. The root
// itself is never filtered out.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path == rootDir {
				return nil
			}
			if !options.Recursive {
				return filepath.SkipDir
			}
			if options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	return matchedFiles, err
}

// FindSourceFiles expands path patterns into a sorted, de-duplicated list of
// source files. A pattern is a file, a directory (its own files only) or a
// directory followed by /... (the whole tree).
func (fp *FileProcessor) FindSourceFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		root, recursive := SplitPattern(pattern)

		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(errors.ErrNotFound, "path %s", root)
			}
			return nil, errors.Wrapf(err, "failed to access %s", root)
		}

		var matched []string
		if !info.IsDir() {
			matched = []string{root}
		} else {
			matched, err = fp.WalkFiles(root, FileWalkOptions{
				FileFilter:      SourceFileFilter(fp.extension),
				DirectoryFilter: fp.directoryFilter,
				Recursive:       recursive,
			})
			if err != nil {
				return nil, errors.Wrapf(err, "failed to scan %s", root)
			}
		}

		for _, file := range matched {
			if !seen[file] {
				seen[file] = true
				files = append(files, file)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// SplitPattern splits a path pattern into its root and whether it recurses
func SplitPattern(pattern string) (string, bool) {
	pattern = filepath.ToSlash(pattern)
	if pattern == "..." {
		return ".", true
	}
	if strings.HasSuffix(pattern, RecursiveSuffix) {
		root := strings.TrimSuffix(pattern, RecursiveSuffix)
		if root == "" {
			root = "."
		}
		return filepath.FromSlash(root), true
	}
	return filepath.FromSlash(pattern), false
}
