package processor

import (
	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/models"
)

// Filer persists the artifacts of one successful pass. Commit receives every artifact at
// once and either stores all of them or none.
type Filer interface {
	Commit(files []*models.GeneratedFile) error
}

// Reporter receives the diagnostics of a pass
type Reporter interface {
	Error(err errors.TaglibError)
	Warning(loc errors.SourceLocation, format string, args ...interface{})
	Note(format string, args ...interface{})
}
