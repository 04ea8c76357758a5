package models

import "fmt"

// TypeCategory is the page engine contract a tag implementation satisfies
type TypeCategory int

const (
	TypeCategoryUnknown TypeCategory = iota
	TypeCategoryTag
	TypeCategoryIteration
	TypeCategoryBody
	TypeCategorySimple
)

var typeCategoryNames = map[TypeCategory]string{
	TypeCategoryTag:       "tag",
	TypeCategoryIteration: "iteration",
	TypeCategoryBody:      "body",
	TypeCategorySimple:    "simple",
}

// proxyBases maps every supported category to the runtime proxy type the generated code embeds
var proxyBases = map[TypeCategory]string{
	TypeCategoryTag:       "TagProxy",
	TypeCategoryIteration: "IterationTagProxy",
	TypeCategoryBody:      "BodyTagProxy",
	TypeCategorySimple:    "SimpleTagProxy",
}

// ParseTypeCategory resolves the -Type value of a //taglib::tag directive
func ParseTypeCategory(s string) (TypeCategory, error) {
	for category, name := range typeCategoryNames {
		if name == s {
			return category, nil
		}
	}
	return TypeCategoryUnknown, fmt.Errorf("No proxy for tag type %s", s)
}

// String returns the directive spelling of the category
func (c TypeCategory) String() string {
	if name, ok := typeCategoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ProxyBase returns the runtime proxy type name for the category
func (c TypeCategory) ProxyBase() (string, bool) {
	base, ok := proxyBases[c]
	return base, ok
}

// SupportsTryCatchFinally reports whether proxies of this category can bridge DoCatch/DoFinally
func (c TypeCategory) SupportsTryCatchFinally() bool {
	return c != TypeCategorySimple
}

// TypeCategoryNames lists the accepted -Type values
func TypeCategoryNames() []string {
	return []string{"tag", "iteration", "body", "simple"}
}

// Body content modes of the tag library descriptor
const (
	BodyContentEmpty        = "empty"
	BodyContentJSP          = "JSP"
	BodyContentScriptless   = "scriptless"
	BodyContentTagDependent = "tagdependent"
)

// BodyContentModes lists the accepted -BodyContent values
func BodyContentModes() []string {
	return []string{BodyContentEmpty, BodyContentJSP, BodyContentScriptless, BodyContentTagDependent}
}

// Library defaults
const (
	DefaultEngineVersion  = "1.1"
	DefaultDescriptorName = "META-INF/taglib.tld"
)
