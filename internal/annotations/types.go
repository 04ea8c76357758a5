package annotations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/toyz/taglib/internal/errors"
)

// Prefix starts every taglib directive comment
const Prefix = "//taglib::"

// AnnotationType represents the kind of a taglib directive
type AnnotationType int

const (
	TagAnnotation AnnotationType = iota
	LibraryAnnotation
	InfoAnnotation
	FactoryAnnotation
	ParamAnnotation
)

// String returns the directive spelling of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case TagAnnotation:
		return "tag"
	case LibraryAnnotation:
		return "library"
	case InfoAnnotation:
		return "info"
	case FactoryAnnotation:
		return "factory"
	case ParamAnnotation:
		return "param"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts a directive kind to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "tag":
		return TagAnnotation, nil
	case "library":
		return LibraryAnnotation, nil
	case "info":
		return InfoAnnotation, nil
	case "factory":
		return FactoryAnnotation, nil
	case "param":
		return ParamAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// Target is the kind of program element a directive is attached to
type Target int

const (
	PackageTarget Target = iota
	TypeTarget
	FieldTarget
)

func (t Target) String() string {
	switch t {
	case PackageTarget:
		return "package"
	case TypeTarget:
		return "type"
	case FieldTarget:
		return "field"
	default:
		return "unknown"
	}
}

// SourceLocation is the position of a directive in source code
type SourceLocation = errors.SourceLocation

// ParsedAnnotation represents a fully parsed directive with typed parameters
type ParsedAnnotation struct {
	Type       AnnotationType         // Directive kind
	Parameters map[string]interface{} // Typed -Key parameters, defaults applied
	Positional []string               // Arguments that are not -Key parameters
	Location   SourceLocation         // Source location
	Raw        string                 // Original comment text
}

// GetString returns a string parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (p *ParsedAnnotation) GetBool(paramName string, defaultValue ...bool) bool {
	if value, exists := p.Parameters[paramName]; exists {
		if boolValue, ok := value.(bool); ok {
			return boolValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// HasParameter checks if a parameter exists
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// Text joins the positional arguments with single spaces
func (p *ParsedAnnotation) Text() string {
	return strings.Join(p.Positional, " ")
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for a -Key parameter
type ParameterSpec struct {
	Type         ParameterType           // Parameter type
	Required     bool                    // Whether parameter is required
	DefaultValue interface{}             // Default value if not provided
	Description  string                  // Parameter description
	Validator    func(interface{}) error // Custom validator function
}

// PositionalSpec describes the arguments a directive takes without a -Key
type PositionalSpec struct {
	Name        string // Name used in diagnostics
	Description string
	Variadic    bool // Free text made of several words
}

// CustomValidator represents a custom validation function for annotations
type CustomValidator func(*ParsedAnnotation) error

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Description string                   // Human-readable description
	Targets     []Target                 // Elements the directive may be attached to
	Parameters  map[string]ParameterSpec // Parameter specifications
	Positional  *PositionalSpec          // nil when positional arguments are rejected
	Validators  []CustomValidator        // Custom validation functions
	Examples    []string                 // Usage examples
}

// AllowsTarget reports whether the directive may be attached to target
func (s AnnotationSchema) AllowsTarget(target Target) bool {
	for _, t := range s.Targets {
		if t == target {
			return true
		}
	}
	return false
}

// ConvertToBool converts a directive value to boolean
func ConvertToBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean string: %s", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot convert %T to bool", value)
	}
}
