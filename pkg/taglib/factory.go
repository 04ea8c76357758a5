package taglib

import "strings"

const (
	// ContainerAttributePrefix marks application attributes holding a BeanFactory
	ContainerAttributePrefix = "taglib.container."

	// ContainerCacheAttribute is the application attribute caching the discovered BeanFactory
	ContainerCacheAttribute = "taglib.proxy.beanFactory"
)

// BeanFactory is the lookup-by-name protocol of the dependency injection container
type BeanFactory interface {
	// IsPrototype reports whether every Bean call for name returns a fresh instance
	IsPrototype(name string) (bool, error)

	// Bean returns the instance registered under name
	Bean(name string) (any, error)
}

// BeanLocator names the bean a proxy delegates to
type BeanLocator interface {
	BeanName() string
}

// FactoryLocator is the optional capability of a BeanLocator that knows where its
// BeanFactory lives. Locators without it use DiscoverContainer.
type FactoryLocator interface {
	BeanFactory(pc PageContext) (BeanFactory, error)
}

// ContainerLookup resolves the BeanFactory for a page
type ContainerLookup func(pc PageContext) (BeanFactory, error)

var _ ContainerLookup = DiscoverContainer

// DiscoverContainer returns the BeanFactory cached in application scope, or scans the
// application attributes for one stored under ContainerAttributePrefix and caches the hit.
// Concurrent discoveries may both write the cache; they store the same factory.
func DiscoverContainer(pc PageContext) (BeanFactory, error) {
	if cached, ok := pc.Attribute(ContainerCacheAttribute, ApplicationScope).(BeanFactory); ok {
		return cached, nil
	}

	for _, name := range pc.AttributeNamesInScope(ApplicationScope) {
		if !strings.HasPrefix(name, ContainerAttributePrefix) {
			continue
		}
		if factory, ok := pc.Attribute(name, ApplicationScope).(BeanFactory); ok {
			pc.SetAttribute(ContainerCacheAttribute, factory, ApplicationScope)
			return factory, nil
		}
	}

	return nil, ErrContainerNotFound
}

// InvalidateContainer drops the cached BeanFactory so the next lookup scans again
func InvalidateContainer(pc PageContext) {
	pc.RemoveAttribute(ContainerCacheAttribute, ApplicationScope)
}

// AttributeFactory returns the BeanFactory stored under key in any scope.
// Generated proxies use it for //taglib::factory keys.
func AttributeFactory(pc PageContext, key string) (BeanFactory, error) {
	value := pc.FindAttribute(key)
	if value == nil {
		return nil, &MissingAttributeError{Name: key}
	}
	factory, ok := value.(BeanFactory)
	if !ok {
		return nil, &BeanTypeError{Name: key, Want: "taglib.BeanFactory", Got: value}
	}
	return factory, nil
}
