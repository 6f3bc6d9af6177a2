// Package filer is the output channel generated sources are written through.
package filer

import (
	"context"
	"path"
	"strings"
)

// DefaultExtension is the file extension of generated sources
const DefaultExtension = ".java"

// SourceFile is one generated compilation unit addressed by package and type name
type SourceFile struct {
	Package string // dotted package name, empty for the default package
	Name    string // simple type name
	Origin  string // path of the originating source file, if known
	Content []byte
}

// QualifiedName returns package.Name, or Name in the default package
func (f SourceFile) QualifiedName() string {
	if f.Package == "" {
		return f.Name
	}
	return f.Package + "." + f.Name
}

// RelPath returns the slash-separated path of the file below a source root
func (f SourceFile) RelPath(ext string) string {
	if ext == "" {
		ext = DefaultExtension
	}
	if f.Package == "" {
		return f.Name + ext
	}
	return path.Join(PackagePath(f.Package), f.Name+ext)
}

// PackagePath converts a dotted package name to a slash-separated path
func PackagePath(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "/")
}

// Filer creates generated source files. It returns the location the file was
// written to. Implementations must be safe for concurrent calls.
type Filer interface {
	CreateSource(ctx context.Context, file SourceFile) (string, error)
}
