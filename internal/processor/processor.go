package processor

import (
	"fmt"

	"github.com/toyz/taglib/internal/annotations"
	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/generator"
	"github.com/toyz/taglib/internal/models"
)

// Result summarizes a successful pass
type Result struct {
	Library *models.Library
	Files   []*models.GeneratedFile
}

// TagCount returns the number of tags registered by the pass
func (r *Result) TagCount() int {
	if r == nil || r.Library == nil {
		return 0
	}
	return r.Library.Len()
}

// Names returns the names of the generated artifacts in commit order
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		names = append(names, f.Name)
	}
	return names
}

// Processor turns a batch of directive occurrences into proxy sources and one descriptor.
// A Processor holds state only while Process runs and may be reused for further batches.
type Processor struct {
	proxies     generator.SourceGenerator
	descriptors generator.ResourceGenerator
	filer       Filer
	reporter    Reporter

	library        *models.Library
	libraryDefined bool
}

// Option configures a Processor
type Option func(*Processor)

// WithProxyGenerator replaces the proxy source generator
func WithProxyGenerator(g generator.SourceGenerator) Option {
	return func(p *Processor) { p.proxies = g }
}

// WithDescriptorGenerator replaces the descriptor generator
func WithDescriptorGenerator(g generator.ResourceGenerator) Option {
	return func(p *Processor) { p.descriptors = g }
}

// NewProcessor creates a processor committing to filer and reporting to reporter
func NewProcessor(filer Filer, reporter Reporter, opts ...Option) *Processor {
	p := &Processor{
		proxies:     generator.NewProxyGenerator(),
		descriptors: generator.NewDescriptorGenerator(),
		filer:       filer,
		reporter:    reporter,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the tag, info, factory, param and library passes over batch, renders every
// artifact and commits them in one call to the Filer. On any error nothing is committed,
// the error is reported and returned.
func (p *Processor) Process(batch *models.Batch) (*Result, error) {
	defer p.reset()
	p.library = models.NewLibrary()

	result, err := p.process(batch)
	if err != nil {
		p.reportError(err)
		return nil, err
	}
	return result, nil
}

func (p *Processor) process(batch *models.Batch) (*Result, error) {
	if batch == nil {
		batch = &models.Batch{}
	}

	passes := []struct {
		kind annotations.AnnotationType
		fn   func(models.Element) error
	}{
		{annotations.TagAnnotation, p.processTag},
		{annotations.InfoAnnotation, p.processInfo},
		{annotations.FactoryAnnotation, p.processFactory},
		{annotations.ParamAnnotation, p.processParam},
		{annotations.LibraryAnnotation, p.processLibrary},
	}

	for _, pass := range passes {
		for _, element := range batch.AnnotatedWith(pass.kind) {
			if err := pass.fn(element); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{Library: p.library}
	if p.library.Len() == 0 {
		return result, nil
	}

	if !p.libraryDefined {
		p.warn(errors.SourceLocation{}, "no //taglib::library declared, descriptor %s has no library metadata", p.library.DescriptorName)
	}

	files, err := p.render()
	if err != nil {
		return nil, err
	}

	if err := p.filer.Commit(files); err != nil {
		return nil, errors.Wrap(errors.FileSystemErrorCode, "failed to commit generated files", err)
	}

	result.Files = files
	return result, nil
}

func (p *Processor) render() ([]*models.GeneratedFile, error) {
	tags := p.library.SortedTags()
	files := make([]*models.GeneratedFile, 0, len(tags)+1)
	owners := make(map[string]string, len(tags))

	for _, tag := range tags {
		file, err := p.proxies.Generate(tag, p.library.FactoryKey)
		if err != nil {
			return nil, errors.WrapGenerateError(tag.ProxyClassName, err)
		}
		if owner, ok := owners[file.Path]; ok {
			return nil, errors.Newf(errors.DuplicateErrorCode,
				"Proxies of %s and %s would both be written to %s", owner, tag.ClassName(), file.Path).
				WithContext("path", file.Path).
				WithSuggestion("Rename one of the types so their snake_case names differ")
		}
		owners[file.Path] = tag.ClassName()
		p.note("rendered %s", file.Name)
		files = append(files, file)
	}

	descriptor, err := p.descriptors.Generate(p.library)
	if err != nil {
		return nil, errors.WrapGenerateError(p.library.DescriptorName, err)
	}
	p.note("rendered %s", descriptor.Name)

	return append(files, descriptor), nil
}

func (p *Processor) processTag(e models.Element) error {
	a := e.Annotation

	typeName := a.GetString("Type")
	category, err := models.ParseTypeCategory(typeName)
	if err != nil {
		return errors.UnsupportedTypeError(typeName, e.Location())
	}

	name := models.TagNameFor(a.GetString("Name"), e.ClassName)
	if name == "" {
		return errors.InvalidDeclarationError(
			fmt.Sprintf("Tag name of %s must not be empty", e.ClassName), e.Location())
	}

	if existing, ok := p.library.TagForClass(e.ClassName); ok {
		return errors.InvalidDeclarationError(
			fmt.Sprintf("Type %s already declares tag %s", e.ClassName, existing.Name()), e.Location())
	}

	tryCatch := a.GetBool("TryCatchFinally")
	if tryCatch && !category.SupportsTryCatchFinally() {
		return errors.InvalidDeclarationError(
			fmt.Sprintf("Tag %s: -TryCatchFinally is not available for %s tags", name, category), e.Location())
	}

	tag := models.NewTag(name, e.ClassName, a.GetString("BodyContent"), category)
	tag.BeanName = models.BeanNameFor(a.GetString("Bean"), e.ClassName)
	tag.TryCatchFinally = tryCatch
	tag.PackageName = e.PackageName
	tag.PackageDir = e.PackageDir
	tag.Imports = e.Imports

	if err := p.library.AddTag(tag); err != nil {
		return errors.DuplicateTagError(name, e.ClassName, e.Location())
	}

	p.note("tag %s -> %s", name, e.ClassName)
	return nil
}

func (p *Processor) processInfo(e models.Element) error {
	text := e.Annotation.Text()

	if e.Target == annotations.PackageTarget {
		p.library.Info = text
		return nil
	}

	tag, ok := p.library.TagForClass(e.ClassName)
	if !ok {
		return errors.MissingTagError(e.ClassName, e.Location())
	}
	tag.Info = text
	return nil
}

func (p *Processor) processFactory(e models.Element) error {
	key := e.Annotation.Text()

	if e.Target == annotations.PackageTarget {
		if p.library.FactoryKey != "" {
			return errors.DuplicateFactoryError(e.Location())
		}
		p.library.FactoryKey = key
		return nil
	}

	tag, ok := p.library.TagForClass(e.ClassName)
	if !ok {
		return errors.MissingTagError(e.ClassName, e.Location())
	}
	tag.FactoryKey = key
	return nil
}

func (p *Processor) processParam(e models.Element) error {
	a := e.Annotation

	tag, ok := p.library.TagForClass(e.ClassName)
	if !ok {
		return errors.MissingTagError(e.ClassName, e.Location())
	}

	name := models.AttributeNameFor(a.GetString("Name"), models.Uncapitalize(e.FieldName))
	method := generator.SetterName(name)
	if generator.ReservedSetterNames[method] {
		return errors.InvalidDeclarationError(
			fmt.Sprintf("Tag %s: parameter %s clashes with proxy method %s", tag.Name(), name, method), e.Location()).
			WithSuggestion("Rename the attribute with -Name")
	}
	for _, other := range tag.SortedAttributes() {
		if other.Name() != name && generator.SetterName(other.Name()) == method {
			return errors.InvalidDeclarationError(
				fmt.Sprintf("Tag %s: parameter %s clashes with parameter %s on %s", tag.Name(), name, other.Name(), method), e.Location()).
				WithSuggestion("Rename one of the attributes with -Name")
		}
	}

	attr, err := models.NewAttribute(name, e.FieldType, e.FieldName, a.GetBool("Required"), a.GetBool("Dynamic", true))
	if err != nil {
		return errors.InvalidDeclarationError(fmt.Sprintf("Tag %s: %v", tag.Name(), err), e.Location())
	}

	if err := tag.AddAttribute(attr); err != nil {
		return errors.DuplicateAttributeError(tag.Name(), name, e.Location())
	}
	return nil
}

func (p *Processor) processLibrary(e models.Element) error {
	if p.libraryDefined {
		return errors.DuplicateLibraryError(e.Location())
	}

	a := e.Annotation
	p.library.TLibVersion = a.GetString("Version")
	p.library.ShortName = a.GetString("ShortName")
	p.library.URI = a.GetString("URI")
	if engine := a.GetString("Engine"); engine != "" {
		p.library.JSPVersion = engine
	}
	if descriptor := a.GetString("Descriptor"); descriptor != "" {
		p.library.DescriptorName = descriptor
	}

	p.libraryDefined = true
	return nil
}

func (p *Processor) reset() {
	p.library = nil
	p.libraryDefined = false
}

func (p *Processor) reportError(err error) {
	if p.reporter == nil {
		return
	}
	if taglibErr, ok := err.(errors.TaglibError); ok {
		p.reporter.Error(taglibErr)
		return
	}
	p.reporter.Error(errors.Wrap(errors.UnknownErrorCode, err.Error(), err))
}

func (p *Processor) warn(loc errors.SourceLocation, format string, args ...interface{}) {
	if p.reporter != nil {
		p.reporter.Warning(loc, format, args...)
	}
}

func (p *Processor) note(format string, args ...interface{}) {
	if p.reporter != nil {
		p.reporter.Note(format, args...)
	}
}
