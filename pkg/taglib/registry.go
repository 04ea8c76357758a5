package taglib

import (
	"fmt"
	"sort"
	"sync"
)

// TagConstructor creates a fresh, unbound-to-any-page tag handler
type TagConstructor func() JspTag

// Registry maps proxy class names (as listed in the descriptor) to constructors
type Registry interface {
	// Register adds a constructor; generated proxies call it from init
	Register(className string, ctor TagConstructor)

	// Lookup returns the constructor registered under className
	Lookup(className string) (TagConstructor, bool)

	// New instantiates the tag registered under className
	New(className string) (JspTag, error)

	// ClassNames returns all registered class names, sorted
	ClassNames() []string
}

// InMemoryRegistry implements Registry with a map guarded for concurrent readers
type InMemoryRegistry struct {
	mu    sync.RWMutex
	ctors map[string]TagConstructor
}

// NewInMemoryRegistry creates an empty registry
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		ctors: make(map[string]TagConstructor),
	}
}

func (r *InMemoryRegistry) Register(className string, ctor TagConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[className] = ctor
}

func (r *InMemoryRegistry) Lookup(className string) (TagConstructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[className]
	return ctor, ok
}

func (r *InMemoryRegistry) New(className string) (JspTag, error) {
	ctor, ok := r.Lookup(className)
	if !ok {
		return nil, fmt.Errorf("no tag class registered as %s", className)
	}
	return ctor(), nil
}

func (r *InMemoryRegistry) ClassNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global registry generated proxies register with
var DefaultRegistry Registry = NewInMemoryRegistry()

// RegisterTag registers a constructor with the global registry (convenience function)
func RegisterTag(className string, ctor TagConstructor) {
	DefaultRegistry.Register(className, ctor)
}

// NewTag instantiates a tag from the global registry (convenience function)
func NewTag(className string) (JspTag, error) {
	return DefaultRegistry.New(className)
}
