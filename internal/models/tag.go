package models

import (
	"fmt"
	"sort"
)

// Tag collects everything known about one tag implementation. Name and class name are
// fixed at creation, the rest is filled in by the processor passes.
type Tag struct {
	name        string
	className   string
	bodyContent string
	category    TypeCategory
	attributes  map[string]*Attribute

	Info            string
	ProxyClassName  string
	FactoryKey      string
	BeanName        string
	TryCatchFinally bool
	PackageName     string
	PackageDir      string
	Imports         []Import
}

// Import is an import spec of the source file declaring a tag
type Import struct {
	Name string
	Path string
}

// NewTag creates a tag model. className is the fully qualified "<import path>.<TypeName>".
func NewTag(name, className, bodyContent string, category TypeCategory) *Tag {
	if bodyContent == "" {
		bodyContent = BodyContentJSP
	}
	return &Tag{
		name:           name,
		className:      className,
		bodyContent:    bodyContent,
		category:       category,
		attributes:     make(map[string]*Attribute),
		ProxyClassName: className + "Proxy",
	}
}

func (t *Tag) Name() string { return t.name }

func (t *Tag) ClassName() string { return t.className }

func (t *Tag) BodyContent() string { return t.bodyContent }

func (t *Tag) Category() TypeCategory { return t.category }

// TypeName returns the unqualified implementation type name
func (t *Tag) TypeName() string { return Unqualify(t.className) }

// ImportPath returns the import path of the package declaring the implementation
func (t *Tag) ImportPath() string { return PackageOf(t.className) }

// AddAttribute registers an attribute. A duplicate name is rejected and leaves the
// existing attribute untouched.
func (t *Tag) AddAttribute(attr *Attribute) error {
	if _, exists := t.attributes[attr.Name()]; exists {
		return fmt.Errorf("Tag %s: parameter %s already defined", t.name, attr.Name())
	}
	t.attributes[attr.Name()] = attr
	return nil
}

// Attribute returns the attribute registered under name
func (t *Tag) Attribute(name string) (*Attribute, bool) {
	attr, ok := t.attributes[name]
	return attr, ok
}

// SortedAttributes returns the attributes in ascending name order
func (t *Tag) SortedAttributes() []*Attribute {
	attrs := make([]*Attribute, 0, len(t.attributes))
	for _, attr := range t.attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Less(attrs[j]) })
	return attrs
}

// EffectiveFactoryKey returns the tag's own factory key, or fallback when it has none
func (t *Tag) EffectiveFactoryKey(fallback string) string {
	if t.FactoryKey != "" {
		return t.FactoryKey
	}
	return fallback
}

// Less orders tags by name
func (t *Tag) Less(other *Tag) bool {
	return t.name < other.name
}
