package filer

import (
	"context"
	"sort"
	"sync"

	"github.com/toyz/dualgen/internal/errors"
)

// MemoryFiler stores generated files in memory, keyed by relative path.
// All operations are thread-safe.
type MemoryFiler struct {
	Extension string

	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryFiler creates an empty in-memory filer
func NewMemoryFiler(extension string) *MemoryFiler {
	return &MemoryFiler{
		Extension: extension,
		files:     make(map[string][]byte),
	}
}

// CreateSource stores a copy of the file content and returns its relative path
func (m *MemoryFiler) CreateSource(ctx context.Context, file SourceFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if file.Name == "" {
		return "", errors.New("source file has no type name")
	}
	rel := file.RelPath(m.Extension)
	if err := ValidatePath(rel); err != nil {
		return "", errors.Wrapf(err, "invalid path %q", rel)
	}

	content := make([]byte, len(file.Content))
	copy(content, file.Content)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[rel] = content
	return rel, nil
}

// Files returns a copy of all stored files
func (m *MemoryFiler) Files() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string][]byte, len(m.files))
	for rel, content := range m.files {
		result[rel] = append([]byte(nil), content...)
	}
	return result
}

// Paths returns the stored relative paths, sorted
func (m *MemoryFiler) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.files))
	for rel := range m.files {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	return paths
}

// Get returns the content of a single file, or nil if not found
func (m *MemoryFiler) Get(rel string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[rel]
	if !ok {
		return nil
	}
	return append([]byte(nil), content...)
}

// Reset clears all stored files
func (m *MemoryFiler) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files = make(map[string][]byte)
}
