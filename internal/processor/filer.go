package processor

import (
	"sort"
	"sync"

	"github.com/toyz/taglib/internal/models"
)

// MemoryFiler keeps committed artifacts in memory, keyed by path
type MemoryFiler struct {
	mu    sync.Mutex
	files map[string]*models.GeneratedFile
}

// NewMemoryFiler creates an empty in-memory filer
func NewMemoryFiler() *MemoryFiler {
	return &MemoryFiler{files: make(map[string]*models.GeneratedFile)}
}

// Commit stores every file, replacing earlier files with the same path
func (f *MemoryFiler) Commit(files []*models.GeneratedFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, file := range files {
		f.files[file.Path] = file
	}
	return nil
}

// File returns the artifact stored under path
func (f *MemoryFiler) File(path string) (*models.GeneratedFile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[path]
	return file, ok
}

// Paths returns the stored paths, sorted
func (f *MemoryFiler) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	paths := make([]string, 0, len(f.files))
	for path := range f.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of stored artifacts
func (f *MemoryFiler) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}
