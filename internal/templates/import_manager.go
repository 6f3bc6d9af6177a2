package templates

import (
	"sort"

	"github.com/toyz/dualgen/internal/models"
)

// ImportManager builds the import section of a generated compilation unit.
// Imports carried over from the source keep their order; added imports follow,
// sorted.
type ImportManager struct {
	kept     []models.Import
	excluded map[string]bool
	added    map[string]bool
}

// NewImportManager creates an import manager that drops single-type imports
// of the excluded qualified names
func NewImportManager(excluded ...string) *ImportManager {
	im := &ImportManager{
		excluded: make(map[string]bool),
		added:    make(map[string]bool),
	}
	for _, name := range excluded {
		if name != "" {
			im.excluded[name] = true
		}
	}
	return im
}

// AddSourceImports carries over the imports of the originating unit
func (im *ImportManager) AddSourceImports(imports ...models.Import) {
	for _, imp := range imports {
		if !imp.Static && !imp.Wildcard && im.excluded[imp.Path] {
			continue
		}
		if im.containsKept(imp) {
			continue
		}
		im.kept = append(im.kept, imp)
	}
}

// AddImport adds a required single-type import unless already present
func (im *ImportManager) AddImport(qualifiedName string) {
	if qualifiedName == "" || im.Has(qualifiedName) {
		return
	}
	im.added[qualifiedName] = true
}

// Has reports whether a single-type import of qualifiedName is present
func (im *ImportManager) Has(qualifiedName string) bool {
	if im.added[qualifiedName] {
		return true
	}
	return im.containsKept(models.Import{Path: qualifiedName})
}

// containsKept checks if an identical import was already kept
func (im *ImportManager) containsKept(imp models.Import) bool {
	for _, existing := range im.kept {
		if existing == imp {
			return true
		}
	}
	return false
}

// Imports returns the import targets in emission order
func (im *ImportManager) Imports() []string {
	result := make([]string, 0, len(im.kept)+len(im.added))
	for _, imp := range im.kept {
		result = append(result, imp.String())
	}

	added := make([]string, 0, len(im.added))
	for name := range im.added {
		added = append(added, name)
	}
	sort.Strings(added)
	return append(result, added...)
}
