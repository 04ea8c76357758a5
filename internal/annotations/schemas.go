package annotations

import "fmt"

// Built-in annotation schemas

// TagAnnotationSchema defines the schema for //taglib::tag directives
var TagAnnotationSchema = AnnotationSchema{
	Type:        TagAnnotation,
	Description: "Declares a struct as the implementation of a tag",
	Targets:     []Target{TypeTarget},
	Parameters: map[string]ParameterSpec{
		"Type": {
			Type:        StringType,
			Required:    true,
			Description: "Page engine contract: 'tag', 'iteration', 'body' or 'simple'",
			Validator:   ValidateNotBlank,
		},
		"Name": {
			Type:        StringType,
			Description: "Tag name, derived from the type name when omitted",
			Validator:   ValidateNotBlank,
		},
		"BodyContent": {
			Type:         StringType,
			DefaultValue: "JSP",
			Description:  "Body content mode: 'empty', 'JSP' (default), 'scriptless' or 'tagdependent'",
			Validator:    ValidateOneOf("empty", "JSP", "scriptless", "tagdependent"),
		},
		"Bean": {
			Type:        StringType,
			Description: "Container bean name, derived from the type name when omitted",
			Validator:   ValidateNotBlank,
		},
		"TryCatchFinally": {
			Type:         BoolType,
			DefaultValue: false,
			Description:  "Bridge DoCatch/DoFinally to the implementation",
		},
	},
	Examples: []string{
		"//taglib::tag -Type=tag",
		"//taglib::tag -Type=body -Name=format -BodyContent=tagdependent",
		"//taglib::tag -Type=simple -Bean=greeter",
		"//taglib::tag -Type=iteration -TryCatchFinally",
	},
}

// LibraryAnnotationSchema defines the schema for //taglib::library directives
var LibraryAnnotationSchema = AnnotationSchema{
	Type:        LibraryAnnotation,
	Description: "Declares the tag library on a package clause",
	Targets:     []Target{PackageTarget},
	Parameters: map[string]ParameterSpec{
		"Version": {
			Type:        StringType,
			Required:    true,
			Description: "Version of the tag library (tlibversion)",
			Validator:   ValidateNotBlank,
		},
		"Engine": {
			Type:         StringType,
			DefaultValue: "1.1",
			Description:  "Page engine version the library requires (jspversion)",
			Validator:    ValidateNotBlank,
		},
		"ShortName": {
			Type:        StringType,
			Required:    true,
			Description: "Preferred prefix of the library",
			Validator:   ValidateNotBlank,
		},
		"URI": {
			Type:        StringType,
			Description: "Unique URI identifying the library",
		},
		"Descriptor": {
			Type:         StringType,
			DefaultValue: "META-INF/taglib.tld",
			Description:  "Path of the generated descriptor, relative to the output directory",
			Validator:    ValidateNotBlank,
		},
	},
	Examples: []string{
		"//taglib::library -Version=1.0 -ShortName=demo",
		`//taglib::library -Version=1.0 -ShortName=demo -URI="http://example.com/demo" -Descriptor=demo.tld`,
	},
}

// InfoAnnotationSchema defines the schema for //taglib::info directives
var InfoAnnotationSchema = AnnotationSchema{
	Type:        InfoAnnotation,
	Description: "Attaches a description to the library or to a tag",
	Targets:     []Target{PackageTarget, TypeTarget},
	Positional: &PositionalSpec{
		Name:        "text",
		Description: "Free text, several words or one quoted string",
		Variadic:    true,
	},
	Validators: []CustomValidator{ValidateNotEmptyText("a description")},
	Examples: []string{
		"//taglib::info Renders a friendly greeting.",
		`//taglib::info "Tags for <b>demo</b> pages"`,
		"//taglib::info Use -Name to rename the attribute",
	},
}

// FactoryAnnotationSchema defines the schema for //taglib::factory directives
var FactoryAnnotationSchema = AnnotationSchema{
	Type:        FactoryAnnotation,
	Description: "Names the page attribute holding the bean factory, library-wide or for one tag",
	Targets:     []Target{PackageTarget, TypeTarget},
	Positional: &PositionalSpec{
		Name:        "lookup key",
		Description: "Attribute name searched in page, request, session and application scope",
	},
	Validators: []CustomValidator{ValidateSingleWord("lookup key")},
	Examples: []string{
		"//taglib::factory appContainer",
		`//taglib::factory "admin.container"`,
	},
}

// ParamAnnotationSchema defines the schema for //taglib::param directives
var ParamAnnotationSchema = AnnotationSchema{
	Type:        ParamAnnotation,
	Description: "Exposes a struct field as a tag attribute",
	Targets:     []Target{FieldTarget},
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:        StringType,
			Description: "Attribute name, the field name when omitted",
			Validator:   ValidateIdentifier,
		},
		"Required": {
			Type:         BoolType,
			DefaultValue: false,
			Description:  "Whether the attribute must be set",
		},
		"Dynamic": {
			Type:         BoolType,
			DefaultValue: true,
			Description:  "Whether the attribute accepts runtime expressions (rtexprvalue)",
		},
	},
	Examples: []string{
		"//taglib::param",
		"//taglib::param -Required",
		"//taglib::param -Name=value -Dynamic=false",
	},
}

// BuiltinSchemas returns the schemas of every taglib directive
func BuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		TagAnnotationSchema,
		LibraryAnnotationSchema,
		InfoAnnotationSchema,
		FactoryAnnotationSchema,
		ParamAnnotationSchema,
	}
}

// RegisterBuiltinSchemas registers the taglib directives in registry
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range BuiltinSchemas() {
		if err := registry.Register(schema.Type, schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", schema.Type, err)
		}
	}
	return nil
}
