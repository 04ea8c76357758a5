package taglib

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerNotFound is returned when no bean factory is reachable from the page context
	ErrContainerNotFound = errors.New("could not find a BeanFactory: register one under the " +
		ContainerAttributePrefix + " application attribute prefix or use //taglib::factory")

	// ErrNotInitialized is returned when a proxy is used before its target bean was resolved
	ErrNotInitialized = errors.New("tag proxy has no target bean: page context not set")

	// ErrNotBound is returned when a proxy has no bean locator
	ErrNotBound = errors.New("tag proxy is not bound to a bean locator")
)

// MissingAttributeError reports a factory lookup key that is absent from every scope
type MissingAttributeError struct {
	Name string
}

// Error implements the error interface
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("attribute '%s' not set", e.Name)
}

// ScopeError reports a bean that is not registered as a prototype (fresh instance per lookup)
type ScopeError struct {
	BeanName string
}

// Error implements the error interface
func (e *ScopeError) Error() string {
	return fmt.Sprintf("bean %s must be prototype scoped", e.BeanName)
}

// BeanTypeError reports a container value of an unexpected type
type BeanTypeError struct {
	Name string
	Want string
	Got  any
}

// Error implements the error interface
func (e *BeanTypeError) Error() string {
	return fmt.Sprintf("bean %s is %T, expected %s", e.Name, e.Got, e.Want)
}

// UnknownParameterError reports an attribute name the tag does not declare
type UnknownParameterError struct {
	Tag  string
	Name string
}

// Error implements the error interface
func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("tag %s: missing property '%s'", e.Tag, e.Name)
}

// ParameterTypeError reports an attribute value that cannot be assigned to its field
type ParameterTypeError struct {
	Tag   string
	Name  string
	Want  string
	Value any
}

// Error implements the error interface
func (e *ParameterTypeError) Error() string {
	return fmt.Sprintf("tag %s: property '%s' expects %s, got %T", e.Tag, e.Name, e.Want, e.Value)
}
