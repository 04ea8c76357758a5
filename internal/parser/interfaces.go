package parser

import (
	"go/ast"

	"github.com/toyz/taglib/internal/models"
)

// AnnotationParser defines the interface for parsing Go source files into a batch of annotated elements
type AnnotationParser interface {
	ParseDirectory(dir, importPath string) (*models.Batch, error)
	ParseSource(filename, source, importPath string) (*models.Batch, error)
	ExtractAnnotations(file *ast.File, fileName, dir, importPath string) ([]models.Element, error)
}
