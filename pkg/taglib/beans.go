package taglib

import (
	"fmt"
	"sync"
)

// MapBeanFactory is a minimal in-memory BeanFactory. Prototype beans are created by a
// constructor on every lookup; singletons are returned as stored.
type MapBeanFactory struct {
	mu         sync.RWMutex
	prototypes map[string]func() any
	singletons map[string]any
}

// NewMapBeanFactory creates an empty factory
func NewMapBeanFactory() *MapBeanFactory {
	return &MapBeanFactory{
		prototypes: make(map[string]func() any),
		singletons: make(map[string]any),
	}
}

// Prototype registers a constructor under name and returns the factory for chaining
func (f *MapBeanFactory) Prototype(name string, ctor func() any) *MapBeanFactory {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.singletons, name)
	f.prototypes[name] = ctor
	return f
}

// Singleton registers a shared instance under name and returns the factory for chaining
func (f *MapBeanFactory) Singleton(name string, bean any) *MapBeanFactory {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.prototypes, name)
	f.singletons[name] = bean
	return f
}

func (f *MapBeanFactory) IsPrototype(name string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if _, ok := f.prototypes[name]; ok {
		return true, nil
	}
	if _, ok := f.singletons[name]; ok {
		return false, nil
	}
	return false, &NoSuchBeanError{Name: name}
}

func (f *MapBeanFactory) Bean(name string) (any, error) {
	f.mu.RLock()
	ctor, isPrototype := f.prototypes[name]
	bean, isSingleton := f.singletons[name]
	f.mu.RUnlock()

	switch {
	case isPrototype:
		return ctor(), nil
	case isSingleton:
		return bean, nil
	default:
		return nil, &NoSuchBeanError{Name: name}
	}
}

// NoSuchBeanError reports a bean name the factory does not know
type NoSuchBeanError struct {
	Name string
}

// Error implements the error interface
func (e *NoSuchBeanError) Error() string {
	return fmt.Sprintf("no bean named '%s' is defined", e.Name)
}

// RegisterContainer stores factory in application scope so DiscoverContainer finds it
func RegisterContainer(app AttributeStore, name string, factory BeanFactory) {
	app.Set(ContainerAttributePrefix+name, factory)
}
