package generator

import "github.com/toyz/taglib/internal/models"

// SourceGenerator renders the proxy source of one tag
type SourceGenerator interface {
	Generate(tag *models.Tag, libraryFactoryKey string) (*models.GeneratedFile, error)
}

// ResourceGenerator renders the descriptor of a library
type ResourceGenerator interface {
	Generate(library *models.Library) (*models.GeneratedFile, error)
}

var (
	_ SourceGenerator   = (*ProxyGenerator)(nil)
	_ ResourceGenerator = (*DescriptorGenerator)(nil)
)
