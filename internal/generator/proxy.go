package generator

import (
	"fmt"
	"path/filepath"

	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/models"
	"github.com/toyz/taglib/internal/templates"
	"github.com/toyz/taglib/internal/utils"
)

// ReservedSetterNames are methods every generated proxy already has. An attribute whose
// setter would get one of these names cannot be generated.
var ReservedSetterNames = map[string]bool{
	"SetPageContext": true,
	"SetParent":      true,
	"SetBodyContent": true,
	"SetJspContext":  true,
	"SetJspBody":     true,
	"SetParameter":   true,
}

// SetterName returns the proxy method that assigns an attribute
func SetterName(attributeName string) string {
	return "Set" + models.Capitalize(attributeName)
}

// ProxyGenerator renders one Go proxy source file per tag
type ProxyGenerator struct {
	templates *templates.TemplateRegistry
}

// NewProxyGenerator creates a proxy generator
func NewProxyGenerator() *ProxyGenerator {
	return &ProxyGenerator{templates: templates.NewTemplateRegistry()}
}

// Generate renders the proxy of tag. libraryFactoryKey is used when the tag's package
// declares no factory of its own.
func (g *ProxyGenerator) Generate(tag *models.Tag, libraryFactoryKey string) (*models.GeneratedFile, error) {
	if tag == nil {
		return nil, fmt.Errorf("tag cannot be nil")
	}
	base, ok := tag.Category().ProxyBase()
	if !ok {
		return nil, errors.UnsupportedTypeError(tag.Category().String(), errors.SourceLocation{})
	}

	data, err := g.proxyData(tag, base, libraryFactoryKey)
	if err != nil {
		return nil, err
	}

	fileName := utils.GeneratedFileName(models.SnakeCase(tag.TypeName()))

	raw, err := g.templates.Execute(templates.ProxyTemplate, data)
	if err != nil {
		return nil, errors.WrapTemplateError(templates.ProxyTemplate, "execute", err)
	}

	content, err := utils.FormatGoCode(fileName, raw)
	if err != nil {
		return nil, errors.WrapGenerateError(tag.ProxyClassName, err)
	}

	return &models.GeneratedFile{
		Kind:    models.SourceFile,
		Name:    tag.ProxyClassName,
		Path:    filepath.Join(tag.PackageDir, fileName),
		Content: content,
	}, nil
}

func (g *ProxyGenerator) proxyData(tag *models.Tag, base, libraryFactoryKey string) (*templates.ProxyData, error) {
	imports := templates.NewImportManager()
	for _, imp := range tag.Imports {
		imports.AddImport(imp.Name, imp.Path)
	}
	runtime := imports.RuntimeQualifier()

	data := &templates.ProxyData{
		PackageName:    tag.PackageName,
		Runtime:        runtime,
		ProxyName:      models.Unqualify(tag.ProxyClassName),
		ProxyClassName: tag.ProxyClassName,
		TypeName:       tag.TypeName(),
		TagName:        tag.Name(),
		Base:           base,
		BeanName:       tag.BeanName,
		FactoryKey:     tag.EffectiveFactoryKey(libraryFactoryKey),
		TryCatch:       tag.TryCatchFinally,
	}

	setters := make(map[string]string)
	for _, attr := range tag.SortedAttributes() {
		method := SetterName(attr.Name())
		if ReservedSetterNames[method] {
			return nil, errors.InvalidDeclarationError(
				fmt.Sprintf("Tag %s: parameter %s clashes with proxy method %s", tag.Name(), attr.Name(), method),
				errors.SourceLocation{})
		}
		if other, taken := setters[method]; taken {
			return nil, errors.InvalidDeclarationError(
				fmt.Sprintf("Tag %s: parameter %s clashes with parameter %s on %s", tag.Name(), attr.Name(), other, method),
				errors.SourceLocation{})
		}
		setters[method] = attr.Name()
		data.Attributes = append(data.Attributes, templates.AttributeData{
			Name:   attr.Name(),
			Method: method,
			Field:  attr.Field(),
			Type:   attr.Type(),
		})
	}

	data.Imports = imports.Imports()
	return data, nil
}
