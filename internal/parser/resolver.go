package parser

import (
	"strings"

	"github.com/toyz/dualgen/internal/models"
)

// resolver maps names as written to qualified names using the imports of one
// compilation unit. Wildcard imports can only be resolved for names the
// generator knows, since the parser never loads other files.
type resolver struct {
	pkg       string
	single    map[string]string   // simple name -> qualified name
	wildcards map[string]bool     // imported packages
	known     map[string][]string // simple name -> known qualified names
}

func newResolver(unit *models.CompilationUnit, known []string) *resolver {
	r := &resolver{
		pkg:       unit.Package,
		single:    make(map[string]string),
		wildcards: map[string]bool{ImplicitPackage: true},
		known:     make(map[string][]string),
	}

	for _, imp := range unit.Imports {
		if imp.Static {
			continue
		}
		if imp.Wildcard {
			r.wildcards[imp.Path] = true
			continue
		}
		r.single[simpleName(imp.Path)] = imp.Path
	}

	for _, name := range known {
		simple := simpleName(name)
		r.known[simple] = append(r.known[simple], name)
	}
	return r
}

// resolve returns the qualified name of a type or marker name as written
func (r *resolver) resolve(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		// Outer.Inner with Outer imported; otherwise the name is already qualified
		if qualified, ok := r.single[name[:i]]; ok {
			return qualified + name[i:]
		}
		return name
	}

	if qualified, ok := r.single[name]; ok {
		return qualified
	}

	for _, candidate := range r.known[name] {
		if r.wildcards[packageOf(candidate)] {
			return candidate
		}
	}

	if _, ok := models.DefaultBoxing.KindForBoxed(name); ok {
		return ImplicitPackage + "." + name
	}

	if r.pkg == "" {
		return name
	}
	return r.pkg + "." + name
}

func simpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func packageOf(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[:i]
	}
	return ""
}
