package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/toyz/taglib/internal/annotations"
	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/models"
	"github.com/toyz/taglib/internal/utils"
)

// Parser implements the AnnotationParser interface
type Parser struct {
	fileSet    *token.FileSet
	directives annotations.ParserEngine
	registry   annotations.AnnotationRegistry
}

var _ AnnotationParser = (*Parser)(nil)

// NewParser creates a parser for the built-in taglib directives
func NewParser() *Parser {
	return NewParserWithRegistry(annotations.DefaultRegistry())
}

// NewParserWithRegistry creates a parser validating directives against registry
func NewParserWithRegistry(registry annotations.AnnotationRegistry) *Parser {
	return &Parser{
		fileSet:    token.NewFileSet(),
		directives: annotations.NewParser(registry),
		registry:   registry,
	}
}

// ParseSource parses source code from a string, mostly for tests
func (p *Parser) ParseSource(filename, source, importPath string) (*models.Batch, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError(filename, err)
	}

	elements, err := p.ExtractAnnotations(file, filename, filepath.Dir(filename), importPath)
	if err != nil {
		return nil, err
	}

	batch := &models.Batch{}
	batch.Add(elements...)
	return batch, nil
}

// ParseDirectory scans the non-test, non-generated Go files of one package directory.
// Files are visited in name order so batches are deterministic.
func (p *Parser) ParseDirectory(dir, importPath string) (*models.Batch, error) {
	filter := func(fi fs.FileInfo) bool { return utils.IsScannableGoFile(fi.Name()) }

	pkgs, err := parser.ParseDir(p.fileSet, dir, filter, parser.ParseComments)
	if err != nil {
		return nil, errors.WrapParseError("directory "+dir, err)
	}

	batch := &models.Batch{}
	if len(pkgs) == 0 {
		return batch, nil
	}
	if len(pkgs) > 1 {
		names := make([]string, 0, len(pkgs))
		for name := range pkgs {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, errors.Newf(errors.SyntaxErrorCode, "multiple packages found in directory %s: %v", dir, names).
			WithSuggestion("Keep a single package per directory, or exclude the extra files with build tags")
	}

	var pkg *ast.Package
	for _, only := range pkgs {
		pkg = only
	}

	fileNames := make([]string, 0, len(pkg.Files))
	for name := range pkg.Files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	var problems *errors.MultipleErrors
	for _, fileName := range fileNames {
		elements, err := p.ExtractAnnotations(pkg.Files[fileName], fileName, dir, importPath)
		if err != nil {
			collect(&problems, err)
			continue
		}
		batch.Add(elements...)
	}

	if problems != nil {
		return nil, problems
	}
	return batch, nil
}

// ExtractAnnotations walks a file and returns every taglib directive with the element it
// is attached to. All malformed directives of the file are reported together.
func (p *Parser) ExtractAnnotations(file *ast.File, fileName, dir, importPath string) ([]models.Element, error) {
	scan := &fileScan{
		parser: p,
		base: models.Element{
			ImportPath:  importPath,
			PackageName: file.Name.Name,
			PackageDir:  dir,
			FileName:    fileName,
			Imports:     importsOf(file),
		},
	}

	scan.comments(file.Doc, annotations.PackageTarget, "", "", "")

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				scan.rejectAll(d.Doc, d.Tok.String()+" declaration")
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				scan.typeSpec(ts, doc, importPath)
			}
		case *ast.FuncDecl:
			scan.rejectAll(d.Doc, "function")
		}
	}

	if scan.problems != nil {
		return nil, scan.problems
	}
	return scan.elements, nil
}

type fileScan struct {
	parser   *Parser
	base     models.Element
	elements []models.Element
	problems *errors.MultipleErrors
}

func (s *fileScan) typeSpec(ts *ast.TypeSpec, doc *ast.CommentGroup, importPath string) {
	className := importPath + "." + ts.Name.Name
	st, isStruct := ts.Type.(*ast.StructType)

	if !isStruct {
		s.rejectAll(doc, "non-struct type "+ts.Name.Name)
		return
	}
	s.comments(doc, annotations.TypeTarget, className, "", "")

	for _, field := range st.Fields.List {
		fieldType := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			s.rejectAll(field.Doc, "embedded field "+fieldType)
			s.rejectAll(field.Comment, "embedded field "+fieldType)
			continue
		}
		for _, name := range field.Names {
			s.comments(field.Doc, annotations.FieldTarget, className, name.Name, fieldType)
			s.comments(field.Comment, annotations.FieldTarget, className, name.Name, fieldType)
		}
	}
}

func (s *fileScan) comments(group *ast.CommentGroup, target annotations.Target, className, fieldName, fieldType string) {
	if group == nil {
		return
	}
	for _, c := range group.List {
		if !s.parser.directives.IsAnnotation(c.Text) {
			continue
		}

		loc := s.location(c)
		parsed, err := s.parser.directives.ParseAnnotation(c.Text, loc)
		if err != nil {
			collect(&s.problems, err)
			continue
		}

		schema, err := s.parser.registry.GetSchema(parsed.Type)
		if err != nil {
			collect(&s.problems, err)
			continue
		}
		if !schema.AllowsTarget(target) {
			errors.AddToMultiple(&s.problems, misplaced(parsed.Type, target.String(), schema, loc))
			continue
		}

		element := s.base
		element.Target = target
		element.Annotation = parsed
		element.ClassName = className
		element.FieldName = fieldName
		element.FieldType = fieldType
		s.elements = append(s.elements, element)
	}
}

// rejectAll reports every directive in group as attached to an element that cannot carry one
func (s *fileScan) rejectAll(group *ast.CommentGroup, what string) {
	if group == nil {
		return
	}
	for _, c := range group.List {
		if !s.parser.directives.IsAnnotation(c.Text) {
			continue
		}
		loc := s.location(c)
		parsed, err := s.parser.directives.ParseAnnotation(c.Text, loc)
		if err != nil {
			collect(&s.problems, err)
			continue
		}
		schema, _ := s.parser.registry.GetSchema(parsed.Type)
		errors.AddToMultiple(&s.problems, misplaced(parsed.Type, what, schema, loc))
	}
}

func (s *fileScan) location(c *ast.Comment) annotations.SourceLocation {
	pos := s.parser.fileSet.Position(c.Slash)
	return annotations.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

func misplaced(kind annotations.AnnotationType, what string, schema annotations.AnnotationSchema, loc annotations.SourceLocation) *errors.BaseError {
	allowed := make([]string, 0, len(schema.Targets))
	for _, t := range schema.Targets {
		allowed = append(allowed, t.String())
	}
	return errors.Newf(errors.ValidationErrorCode, "//taglib::%s cannot be attached to a %s", kind, what).
		WithLocation(loc).
		WithSuggestion(fmt.Sprintf("//taglib::%s belongs on: %v", kind, allowed))
}

func importsOf(file *ast.File) []models.Import {
	imports := make([]models.Import, 0, len(file.Imports))
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := models.Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		imports = append(imports, imp)
	}
	return imports
}

// collect flattens err into problems
func collect(problems **errors.MultipleErrors, err error) {
	switch e := err.(type) {
	case *errors.MultipleErrors:
		for _, inner := range e.Errors {
			errors.AddToMultiple(problems, inner)
		}
	case errors.TaglibError:
		errors.AddToMultiple(problems, e)
	default:
		errors.AddToMultiple(problems, errors.Wrap(errors.UnknownErrorCode, err.Error(), err))
	}
}
