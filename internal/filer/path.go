package filer

import (
	"path/filepath"
	"strings"

	"github.com/toyz/dualgen/internal/errors"
)

// ValidatePath checks that a relative output path stays inside its root.
// Paths must be relative, slash separated, clean and free of ".." components.
func ValidatePath(rel string) error {
	if rel == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return errors.New("absolute paths not allowed")
	}
	if len(rel) >= 2 && rel[1] == ':' {
		return errors.New("absolute paths not allowed")
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if cleaned := filepath.ToSlash(filepath.Clean(rel)); cleaned != rel {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, rel)
	}
	return nil
}

// SourceRoot returns the source root of a file declared in pkg: its directory
// with the package path removed. The boolean is false when the directory
// layout does not mirror the package; the file's own directory is returned then.
func SourceRoot(file, pkg string) (string, bool) {
	dir := filepath.Dir(file)
	if pkg == "" {
		return dir, true
	}

	pkgDir := filepath.FromSlash(PackagePath(pkg))
	if dir == pkgDir {
		return ".", true
	}
	suffix := string(filepath.Separator) + pkgDir
	if !strings.HasSuffix(dir, suffix) {
		return dir, false
	}
	root := strings.TrimSuffix(dir, suffix)
	if root == "" {
		root = string(filepath.Separator)
	}
	return root, true
}
