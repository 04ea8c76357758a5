package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/models"
	"github.com/toyz/taglib/internal/parser"
	"github.com/toyz/taglib/internal/processor"
	"github.com/toyz/taglib/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         parser.AnnotationParser
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(verbose bool) *Generator {
	level := utils.DiagnosticInfo
	if verbose {
		level = utils.DiagnosticVerbose
	}
	return NewGeneratorWithDiagnostics(verbose, utils.NewDiagnosticSystem(level))
}

// NewGeneratorWithDiagnostics creates a new CLI generator reporting progress to diagnostics
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		parser:         parser.NewParser(),
		reporter:       NewDiagnosticReporter(verbose),
		diagnostics:    diagnostics,
	}
}

// WithModuleResolver replaces the module resolver, e.g. to resolve relative to another directory
func (g *Generator) WithModuleResolver(resolver *ModuleResolver) *Generator {
	g.moduleResolver = resolver
	return g
}

// Reporter returns the reporter errors are printed with
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	if err := config.Validate(); err != nil {
		return err
	}

	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Configuration: %s", config)

	if config.Clean {
		return g.clean(config)
	}

	moduleName, err := g.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		return errors.Wrap(errors.ConfigurationErrorCode, "failed to resolve module name", err).
			WithContext("provided_module", config.ModuleName).
			WithSuggestions(
				"Check your go.mod file exists and is valid",
				"Ensure you're running from the correct directory",
				"Try specifying -module explicitly",
			)
	}
	g.diagnostics.Debug("Resolved module name: %s (root %s)", moduleName, g.moduleResolver.ModuleRoot())

	g.diagnostics.PhaseHeader("Scanning")
	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return err
	}
	if len(packageDirs) == 0 {
		g.diagnostics.Warn("No Go packages found in %v", config.Directories)
		return nil
	}

	batch, err := g.parsePackages(moduleName, packageDirs)
	if err != nil {
		return err
	}
	g.summary.PackagesProcessed = len(packageDirs)

	g.diagnostics.PhaseHeader("Generating")
	filer := NewDiskFiler(config.OutputDir)
	result, err := processor.NewProcessor(filer, g.reporter).Process(batch)
	if err != nil {
		// already printed by the reporter
		return &reportedError{err: err}
	}

	g.summary.TagsFound = result.TagCount()
	if g.summary.TagsFound == 0 {
		g.diagnostics.Info("No //taglib::tag directives found, nothing to generate")
	}
	for _, path := range filer.Written() {
		g.diagnostics.PhaseProgress("Writing " + g.relative(path))
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
	}
	if len(result.Files) > 0 {
		g.summary.Descriptor = result.Files[len(result.Files)-1].Name
	}

	g.diagnostics.Verbose("Generation finished in %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

func (g *Generator) parsePackages(moduleName string, packageDirs []string) (*models.Batch, error) {
	batch := &models.Batch{}
	var problems *errors.MultipleErrors

	for _, dir := range packageDirs {
		importPath, err := g.moduleResolver.BuildPackagePath(moduleName, dir)
		if err != nil {
			return nil, errors.WrapWithOperation("resolve import path of", dir, err)
		}

		parsed, err := g.parser.ParseDirectory(dir, importPath)
		if err != nil {
			collect(&problems, err)
			continue
		}

		if parsed.Len() > 0 {
			g.diagnostics.PhaseItem(fmt.Sprintf("%s (%d directives)", importPath, parsed.Len()))
		} else {
			g.diagnostics.Debug("%s: no directives", importPath)
		}
		batch.Merge(parsed)
	}

	if problems != nil {
		return nil, problems
	}
	return batch, nil
}

func (g *Generator) clean(config Config) error {
	removed, err := NewCleaner().CleanGeneratedFiles(config.Directories)
	for _, path := range removed {
		g.diagnostics.PhaseProgress("Removing " + g.relative(path))
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
	}
	return err
}

func (g *Generator) relative(path string) string {
	if root := g.moduleResolver.ModuleRoot(); root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			return rel
		}
	}
	return path
}

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

// reportedError marks an error the processor already sent to the reporter
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed during processing
func IsReported(err error) bool {
	_, ok := err.(*reportedError)
	return ok
}
