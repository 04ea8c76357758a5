package models

import "fmt"

// Attribute is one settable attribute of a tag. It is immutable once created.
type Attribute struct {
	name     string
	typ      string
	field    string
	required bool
	dynamic  bool
}

// NewAttribute creates an attribute. field is the Go struct field the attribute is stored in.
func NewAttribute(name, typ, field string, required, dynamic bool) (*Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("attribute name must not be empty")
	}
	if field == "" {
		field = name
	}
	return &Attribute{name: name, typ: typ, field: field, required: required, dynamic: dynamic}, nil
}

func (a *Attribute) Name() string { return a.name }

// Type returns the declared Go type of the field, as source text
func (a *Attribute) Type() string { return a.typ }

func (a *Attribute) Field() string { return a.field }

func (a *Attribute) Required() bool { return a.required }

// Dynamic reports whether the attribute accepts runtime expressions (rtexprvalue)
func (a *Attribute) Dynamic() bool { return a.dynamic }

// Less orders attributes by name
func (a *Attribute) Less(other *Attribute) bool {
	return a.name < other.name
}
