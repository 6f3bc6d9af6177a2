package filer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/dualgen/internal/errors"
)

// ErrSourceExists is returned when the target holds a file that may not be
// replaced, such as a hand-written source
var ErrSourceExists = errors.New("source file already exists")

// FilesystemFiler writes generated sources to the local filesystem
type FilesystemFiler struct {
	// Root is the output source root. When empty, each file is written to
	// the source root of the file it was generated from.
	Root string

	// Extension of generated files (default: .java)
	Extension string

	// Mode is the file permission mode (default: 0644)
	Mode os.FileMode

	// Replaceable reports whether an existing file may be overwritten, given
	// its content. When nil, existing files are never overwritten.
	Replaceable func(existing []byte) bool
}

// NewFilesystemFiler creates a filer writing below root
func NewFilesystemFiler(root, extension string) *FilesystemFiler {
	return &FilesystemFiler{
		Root:      root,
		Extension: extension,
		Mode:      0644,
	}
}

// Target returns the path a file would be written to
func (f *FilesystemFiler) Target(file SourceFile) (string, error) {
	if file.Name == "" {
		return "", errors.New("source file has no type name")
	}
	rel := file.RelPath(f.Extension)
	if err := ValidatePath(rel); err != nil {
		return "", errors.Wrapf(err, "invalid path %q", rel)
	}

	root := f.Root
	if root == "" && file.Origin != "" {
		sourceRoot, mirrored := SourceRoot(file.Origin, file.Package)
		if !mirrored {
			return filepath.Join(sourceRoot, filepath.Base(filepath.FromSlash(rel))), nil
		}
		root = sourceRoot
	}
	if root == "" {
		root = "."
	}

	full := filepath.Join(root, filepath.FromSlash(rel))

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve root directory")
	}
	absPath, err := filepath.Abs(full)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve path")
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, strings.TrimSuffix(absRoot, string(filepath.Separator))+string(filepath.Separator)) {
		return "", errors.Newf("path escapes root directory: %q", rel)
	}
	return full, nil
}

// WritableTarget returns the target of file after checking that any file
// already there may be replaced
func (f *FilesystemFiler) WritableTarget(file SourceFile) (string, error) {
	full, err := f.Target(file)
	if err != nil {
		return "", err
	}

	existing, err := os.ReadFile(full)
	switch {
	case os.IsNotExist(err):
		return full, nil
	case err != nil:
		return "", errors.Wrapf(err, "failed to read %s", full)
	case f.Replaceable == nil || !f.Replaceable(existing):
		return "", errors.WithHint(
			errors.Wrapf(ErrSourceExists, "%s", full),
			"only files previously generated by this tool are replaced")
	}
	return full, nil
}

// CreateSource writes the file atomically via temp file + rename, creating
// parent directories as needed. An existing file is only replaced when
// Replaceable accepts it.
func (f *FilesystemFiler) CreateSource(ctx context.Context, file SourceFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full, err := f.WritableTarget(file)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create directory %s", dir)
	}

	mode := f.Mode
	if mode == 0 {
		mode = 0644
	}

	tempFile, err := os.CreateTemp(dir, ".dualgen-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	_, writeErr := tempFile.Write(file.Content)
	closeErr := tempFile.Close()
	if writeErr != nil {
		cleanup()
		return "", errors.Wrap(writeErr, "failed to write temp file")
	}
	if closeErr != nil {
		cleanup()
		return "", errors.Wrap(closeErr, "failed to close temp file")
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		cleanup()
		return "", errors.Wrap(err, "failed to set file mode")
	}

	if err := ctx.Err(); err != nil {
		cleanup()
		return "", err
	}
	if err := os.Rename(tempPath, full); err != nil {
		cleanup()
		return "", errors.Wrapf(err, "failed to write %s", full)
	}

	return full, nil
}
