package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/taglib/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	workDir string
	root    string
	goMod   *utils.GoModParser
}

// NewModuleResolver creates a module resolver rooted at the current directory
func NewModuleResolver() *ModuleResolver {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}
	return NewModuleResolverAt(workDir)
}

// NewModuleResolverAt creates a module resolver that searches for go.mod starting at workDir
func NewModuleResolverAt(workDir string) *ModuleResolver {
	return &ModuleResolver{
		workDir: workDir,
		goMod:   utils.NewGoModParser(),
	}
}

// ResolveModuleName resolves the module name for imports.
// If customModule is provided, it uses that and the working directory is the module root;
// otherwise the nearest go.mod decides both.
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		root, err := filepath.Abs(r.workDir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		r.root = root
		return customModule, nil
	}

	goModPath, err := r.goMod.FindGoModFile(r.workDir)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using -module flag)", err)
	}

	moduleName, err := r.goMod.ParseModuleName(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w", err)
	}

	r.root = filepath.Dir(goModPath)
	return moduleName, nil
}

// ModuleRoot returns the directory the module path maps to. Valid after ResolveModuleName.
func (r *ModuleResolver) ModuleRoot() string {
	return r.root
}

// BuildPackagePath builds the full import path for a package directory
func (r *ModuleResolver) BuildPackagePath(moduleName, packageDir string) (string, error) {
	root := r.root
	if root == "" {
		var err error
		if root, err = filepath.Abs(r.workDir); err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}

	absPackageDir, err := filepath.Abs(packageDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package directory: %w", err)
	}

	relPath, err := filepath.Rel(root, absPackageDir)
	if err != nil {
		return "", fmt.Errorf("failed to calculate relative path: %w", err)
	}

	// Convert file path separators to forward slashes for import paths
	importPath := filepath.ToSlash(relPath)
	if importPath == ".." || strings.HasPrefix(importPath, "../") {
		return "", fmt.Errorf("package directory %s is outside module root %s", packageDir, root)
	}

	if importPath == "." {
		return moduleName, nil
	}

	return fmt.Sprintf("%s/%s", moduleName, importPath), nil
}
