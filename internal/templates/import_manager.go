package templates

import (
	"path"
	"sort"
	"strconv"
	"strings"
)

// RuntimeImportPath is the import path of the runtime proxy package
const RuntimeImportPath = "github.com/toyz/taglib/pkg/taglib"

// ImportSpec is one line of an import block
type ImportSpec struct {
	Name string
	Path string
}

// ImportManager builds the import block of a generated file. It starts from the imports
// of the annotated source file, so attribute types resolve the same way, and adds the
// runtime package under a name that does not clash. Unused entries are pruned later by
// the formatter.
type ImportManager struct {
	imports map[string]string // path -> explicit name ("" for default)
	runtime string
}

// NewImportManager creates an empty import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		imports: make(map[string]string),
	}
}

// AddImport adds an import with an optional explicit name. The first name wins for a path.
func (im *ImportManager) AddImport(name, importPath string) {
	if importPath == "" || name == "_" || name == "." {
		return
	}
	if _, exists := im.imports[importPath]; exists {
		return
	}
	im.imports[importPath] = name
}

// RuntimeQualifier returns the identifier generated code uses for the runtime package,
// adding the runtime import if needed
func (im *ImportManager) RuntimeQualifier() string {
	if im.runtime != "" {
		return im.runtime
	}

	if name, exists := im.imports[RuntimeImportPath]; exists {
		im.runtime = effectiveName(name, RuntimeImportPath)
		return im.runtime
	}

	taken := make(map[string]bool, len(im.imports))
	for p, name := range im.imports {
		taken[effectiveName(name, p)] = true
	}

	qualifier := "taglib"
	for i := 1; taken[qualifier]; i++ {
		qualifier = "taglibrt" + suffix(i)
	}

	if qualifier == "taglib" {
		im.imports[RuntimeImportPath] = ""
	} else {
		im.imports[RuntimeImportPath] = qualifier
	}
	im.runtime = qualifier
	return im.runtime
}

// Imports returns the import specs sorted by path
func (im *ImportManager) Imports() []ImportSpec {
	specs := make([]ImportSpec, 0, len(im.imports))
	for p, name := range im.imports {
		specs = append(specs, ImportSpec{Name: name, Path: p})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Path < specs[j].Path })
	return specs
}

// effectiveName guesses the package name of an import the way goimports does:
// the last path element without a major version suffix or a gopkg.in ".vN" suffix
func effectiveName(name, importPath string) string {
	if name != "" {
		return name
	}
	base := path.Base(importPath)
	if strings.HasPrefix(base, "v") && isDigits(base[1:]) {
		if parent := path.Dir(importPath); parent != "." {
			base = path.Base(parent)
		}
	}
	if i := strings.Index(base, ".v"); i > 0 && isDigits(base[i+2:]) {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	return strings.ReplaceAll(base, "-", "_")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func suffix(i int) string {
	if i == 1 {
		return ""
	}
	return strconv.Itoa(i)
}
