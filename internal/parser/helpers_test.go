package parser

import "github.com/toyz/taglib/internal/models"

func modelsImport(name, path string) models.Import {
	return models.Import{Name: name, Path: path}
}
