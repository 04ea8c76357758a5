package generator

import (
	"fmt"

	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/models"
	"github.com/toyz/taglib/internal/templates"
)

// DescriptorGenerator renders the tag library descriptor
type DescriptorGenerator struct {
	templates *templates.TemplateRegistry
}

// NewDescriptorGenerator creates a descriptor generator
func NewDescriptorGenerator() *DescriptorGenerator {
	return &DescriptorGenerator{templates: templates.NewTemplateRegistry()}
}

// Generate renders library as a TLD 1.1 document. Tags are listed by name, their
// attributes by name.
func (g *DescriptorGenerator) Generate(library *models.Library) (*models.GeneratedFile, error) {
	if library == nil {
		return nil, fmt.Errorf("library cannot be nil")
	}

	name := library.DescriptorName
	if name == "" {
		name = models.DefaultDescriptorName
	}
	jspVersion := library.JSPVersion
	if jspVersion == "" {
		jspVersion = models.DefaultEngineVersion
	}

	data := templates.DescriptorData{
		TLibVersion: library.TLibVersion,
		JSPVersion:  jspVersion,
		ShortName:   library.ShortName,
		URI:         library.URI,
		Info:        library.Info,
	}

	for _, tag := range library.SortedTags() {
		dt := templates.DescriptorTag{
			Name:        tag.Name(),
			TagClass:    tag.ProxyClassName,
			BodyContent: tag.BodyContent(),
			Info:        tag.Info,
			HasInfo:     tag.Info != "",
		}
		for _, attr := range tag.SortedAttributes() {
			dt.Attributes = append(dt.Attributes, templates.DescriptorAttribute{
				Name:        attr.Name(),
				Required:    attr.Required(),
				RTExprValue: attr.Dynamic(),
			})
		}
		data.Tags = append(data.Tags, dt)
	}

	content, err := g.templates.Execute(templates.DescriptorTemplate, data)
	if err != nil {
		return nil, errors.WrapTemplateError(templates.DescriptorTemplate, "execute", err)
	}

	return &models.GeneratedFile{
		Kind:    models.ResourceFile,
		Name:    name,
		Path:    name,
		Content: content,
	}, nil
}
