package utils

import (
	"os"
	"sort"
	"sync"
	"time"
)

// cacheItem is a value remembered together with the state of its file
type cacheItem[V any] struct {
	value   V
	modTime time.Time
	size    int64
}

// FileCache remembers values derived from files, keyed by path. An entry is
// only returned while the file's modification time and size are unchanged.
// All operations are thread-safe.
type FileCache[V any] struct {
	items map[string]*cacheItem[V]
	mutex sync.RWMutex
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{
		items: make(map[string]*cacheItem[V]),
	}
}

// Get returns the value stored for path if the file has not changed since.
// Stale entries are dropped.
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[path]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	if stat, err := os.Stat(path); err == nil {
		if stat.ModTime().Equal(item.modTime) && stat.Size() == item.size {
			return item.value, true
		}
	}

	c.mutex.Lock()
	if c.items[path] == item {
		delete(c.items, path)
	}
	c.mutex.Unlock()
	return zero, false
}

// Set stores value for path. info must be taken before the file was read, so
// a concurrent edit invalidates the entry instead of being masked by it.
func (c *FileCache[V]) Set(path string, info os.FileInfo, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[path] = &cacheItem[V]{
		value:   value,
		modTime: info.ModTime(),
		size:    info.Size(),
	}
}

// Retain drops every entry whose path is not in keep
func (c *FileCache[V]) Retain(keep []string) {
	wanted := make(map[string]bool, len(keep))
	for _, path := range keep {
		wanted[path] = true
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for path := range c.items {
		if !wanted[path] {
			delete(c.items, path)
		}
	}
}

// Size returns the number of entries
func (c *FileCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// Paths returns the cached paths, sorted
func (c *FileCache[V]) Paths() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	paths := make([]string, 0, len(c.items))
	for path := range c.items {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
