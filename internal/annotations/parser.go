package annotations

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/taglib/internal/errors"
)

// ParserEngine turns directive comments into ParsedAnnotations
type ParserEngine interface {
	// IsAnnotation reports whether comment is a taglib directive at all
	IsAnnotation(comment string) bool

	// ParseAnnotation parses and validates a single directive comment
	ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error)
}

// directive is the grammar root: //taglib::<kind> [args...]
type directive struct {
	Kind string      `parser:"Marker @Word"`
	Args []*argument `parser:"@@*"`
}

type argument struct {
	Pos lexer.Position

	Assign *assignment `parser:"  @@"`
	Flag   *string     `parser:"| @Flag"`
	Value  *value      `parser:"| @@"`
}

type assignment struct {
	Key   string `parser:"@Assign"`
	Value *value `parser:"@@"`
}

type value struct {
	Quoted *string `parser:"  @String"`
	Bare   *string `parser:"| @Word"`
}

func (v *value) String() string {
	if v.Quoted != nil {
		return *v.Quoted
	}
	if v.Bare != nil {
		return *v.Bare
	}
	return ""
}

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Marker", Pattern: `//taglib::`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Assign", Pattern: `-[A-Za-z][A-Za-z0-9_]*=`},
	{Name: "Flag", Pattern: `-[A-Za-z][A-Za-z0-9_]*`},
	{Name: "Word", Pattern: `[^\s"]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type parser struct {
	grammar  *participle.Parser[directive]
	registry AnnotationRegistry
}

// NewParser creates a directive parser validating against registry
func NewParser(registry AnnotationRegistry) ParserEngine {
	return &parser{
		grammar: participle.MustBuild[directive](
			participle.Lexer(directiveLexer),
			participle.Unquote("String"),
			participle.Elide("Whitespace"),
		),
		registry: registry,
	}
}

func (p *parser) IsAnnotation(comment string) bool {
	return strings.HasPrefix(strings.TrimSpace(comment), Prefix)
}

func (p *parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	comment = strings.TrimSpace(comment)
	if !p.IsAnnotation(comment) {
		return nil, errors.Newf(errors.SyntaxErrorCode, "annotation must start with '%s'", Prefix).
			WithLocation(location)
	}

	ast, err := p.grammar.ParseString(location.File, comment)
	if err != nil {
		return nil, syntaxError(err, comment, location)
	}

	annotationType, err := ParseAnnotationType(ast.Kind)
	if err != nil {
		return nil, errors.Wrap(errors.SyntaxErrorCode, err.Error(), err).
			WithLocation(location).
			WithSuggestion(fmt.Sprintf("Use one of: %s", strings.Join(kindNames(), ", ")))
	}

	schema, err := p.registry.GetSchema(annotationType)
	if err != nil {
		return nil, errors.Wrap(errors.SchemaErrorCode, err.Error(), err).WithLocation(location)
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        comment,
	}

	var problems *errors.MultipleErrors
	for _, arg := range ast.Args {
		argLoc := offset(location, arg.Pos)
		if err := p.applyArgument(parsed, schema, arg); err != nil {
			errors.AddToMultiple(&problems, err.WithLocation(argLoc))
		}
	}

	validate(parsed, schema, &problems)

	if problems != nil && !problems.IsEmpty() {
		if problems.Count() == 1 {
			return nil, problems.Errors[0]
		}
		return nil, problems
	}
	return parsed, nil
}

func (p *parser) applyArgument(parsed *ParsedAnnotation, schema AnnotationSchema, arg *argument) *errors.BaseError {
	// directives without parameters take dashes as text: //taglib::info Use -Name to rename
	if len(schema.Parameters) == 0 && schema.Positional != nil {
		switch {
		case arg.Assign != nil:
			parsed.Positional = append(parsed.Positional, arg.Assign.Key+arg.Assign.Value.String())
			return nil
		case arg.Flag != nil:
			parsed.Positional = append(parsed.Positional, *arg.Flag)
			return nil
		}
	}

	switch {
	case arg.Assign != nil:
		key := strings.TrimSuffix(strings.TrimPrefix(arg.Assign.Key, "-"), "=")
		spec, err := lookupParameter(schema, key)
		if err != nil {
			return err
		}
		raw := arg.Assign.Value.String()
		if spec.Type == BoolType {
			b, convErr := ConvertToBool(raw)
			if convErr != nil {
				return errors.Newf(errors.ValidationErrorCode, "parameter '%s' expects a bool, got '%s'", key, raw).
					WithSuggestion(fmt.Sprintf("Use -%s, -%s=true or -%s=false", key, key, key))
			}
			return setParameter(parsed, key, b)
		}
		return setParameter(parsed, key, raw)

	case arg.Flag != nil:
		key := strings.TrimPrefix(*arg.Flag, "-")
		spec, err := lookupParameter(schema, key)
		if err != nil {
			return err
		}
		if spec.Type != BoolType {
			return errors.Newf(errors.ValidationErrorCode, "parameter '%s' requires a value", key).
				WithSuggestion(fmt.Sprintf("Write -%s=<value>", key))
		}
		return setParameter(parsed, key, true)

	default:
		text := arg.Value.String()
		if schema.Positional == nil {
			return errors.Newf(errors.ValidationErrorCode, "unexpected argument '%s' for //taglib::%s", text, schema.Type).
				WithSuggestion("Parameters are written as -Key=value")
		}
		parsed.Positional = append(parsed.Positional, text)
		return nil
	}
}

func lookupParameter(schema AnnotationSchema, key string) (ParameterSpec, *errors.BaseError) {
	if spec, ok := schema.Parameters[key]; ok {
		return spec, nil
	}

	err := errors.Newf(errors.ValidationErrorCode, "unknown parameter '%s' for //taglib::%s", key, schema.Type)
	known := make([]string, 0, len(schema.Parameters))
	for name := range schema.Parameters {
		if strings.EqualFold(name, key) {
			return ParameterSpec{}, err.WithSuggestion(fmt.Sprintf("Did you mean -%s?", name))
		}
		known = append(known, "-"+name)
	}
	sort.Strings(known)
	return ParameterSpec{}, err.WithSuggestion(fmt.Sprintf("Known parameters: %s", strings.Join(known, ", ")))
}

func setParameter(parsed *ParsedAnnotation, key string, v interface{}) *errors.BaseError {
	if _, exists := parsed.Parameters[key]; exists {
		return errors.Newf(errors.ValidationErrorCode, "parameter '%s' given more than once", key)
	}
	parsed.Parameters[key] = v
	return nil
}

// validate checks required parameters, runs validators and applies defaults
func validate(parsed *ParsedAnnotation, schema AnnotationSchema, problems **errors.MultipleErrors) {
	names := make([]string, 0, len(schema.Parameters))
	for name := range schema.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := schema.Parameters[name]
		v, exists := parsed.Parameters[name]
		if !exists {
			if spec.Required {
				errors.AddToMultiple(problems, errors.Newf(errors.ValidationErrorCode,
					"missing required parameter '%s' for //taglib::%s", name, schema.Type).
					WithLocation(parsed.Location).
					WithSuggestion(fmt.Sprintf("Add -%s=<value> to the annotation", name)))
				continue
			}
			if spec.DefaultValue != nil {
				parsed.Parameters[name] = spec.DefaultValue
			}
			continue
		}
		if spec.Validator != nil {
			if err := spec.Validator(v); err != nil {
				errors.AddToMultiple(problems, errors.Newf(errors.ValidationErrorCode,
					"parameter '%s' validation failed: %s", name, err).
					WithLocation(parsed.Location))
			}
		}
	}

	for _, custom := range schema.Validators {
		if err := custom(parsed); err != nil {
			errors.AddToMultiple(problems, errors.Wrap(errors.ValidationErrorCode, err.Error(), err).
				WithLocation(parsed.Location))
		}
	}
}

func syntaxError(err error, comment string, location SourceLocation) *errors.BaseError {
	result := errors.Wrap(errors.SyntaxErrorCode, fmt.Sprintf("invalid directive: %s", err.Error()), err).
		WithLocation(location).
		WithContext("directive", comment)

	var perr participle.Error
	if stderrors.As(err, &perr) {
		result.Message = fmt.Sprintf("invalid directive: %s", perr.Message())
		result.Loc = offset(location, perr.Position())
	}
	if strings.Count(comment, `"`)%2 != 0 {
		result = result.WithSuggestion("Check for an unterminated quoted string")
	}
	return result.WithSuggestion(`Directives look like //taglib::<kind> -Key=value or -Key="quoted value"`)
}

// offset shifts a comment-relative lexer position onto the file location of the comment
func offset(location SourceLocation, pos lexer.Position) SourceLocation {
	if pos.Column <= 0 {
		return location
	}
	loc := location
	if loc.Column > 0 {
		loc.Column += pos.Column - 1
	} else {
		loc.Column = pos.Column
	}
	return loc
}

func kindNames() []string {
	return []string{"tag", "library", "info", "factory", "param"}
}
