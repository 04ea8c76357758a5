package models

import "github.com/toyz/taglib/internal/annotations"

// Element is one directive occurrence together with the program element it is attached to
type Element struct {
	Target     annotations.Target
	Annotation *annotations.ParsedAnnotation

	// ClassName is "<import path>.<TypeName>" of the annotated type, or of the
	// struct owning an annotated field. Empty for package targets.
	ClassName string
	FieldName string
	FieldType string

	ImportPath  string
	PackageName string
	PackageDir  string
	FileName    string
	Imports     []Import
}

// Kind returns the directive kind
func (e Element) Kind() annotations.AnnotationType {
	return e.Annotation.Type
}

// Location returns where the directive was written
func (e Element) Location() annotations.SourceLocation {
	return e.Annotation.Location
}

// Batch is the ordered result of scanning one or more packages
type Batch struct {
	Elements []Element
}

// Add appends elements in scan order
func (b *Batch) Add(elements ...Element) {
	b.Elements = append(b.Elements, elements...)
}

// Merge appends every element of other
func (b *Batch) Merge(other *Batch) {
	if other == nil {
		return
	}
	b.Elements = append(b.Elements, other.Elements...)
}

// AnnotatedWith returns the elements carrying a directive of the given kind, in scan order
func (b *Batch) AnnotatedWith(kind annotations.AnnotationType) []Element {
	var result []Element
	for _, e := range b.Elements {
		if e.Kind() == kind {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of elements
func (b *Batch) Len() int {
	return len(b.Elements)
}
