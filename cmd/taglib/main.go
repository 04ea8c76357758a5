package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/taglib/internal/cli"
	"github.com/toyz/taglib/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("taglib", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		moduleFlag  = flags.String("module", "", "Custom module name for imports (defaults to go.mod module)")
		outFlag     = flags.String("out", "", "Directory the tag library descriptor is written below (default \".\")")
		configFlag  = flags.String("config", "", "YAML configuration file (default "+cli.DefaultConfigFile+" if present)")
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors")
		cleanFlag   = flags.Bool("clean", false, "Delete all autogen_*_proxy.go files from the specified directories")
		helpFlag    = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: taglib [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Tag Library Proxy Generator\n")
		fmt.Fprintf(stderr, "Scans Go packages for //taglib:: directives, generates container-backed tag proxies and a tag library descriptor.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(stderr, "  ./...              Scan current directory and all subdirectories recursively\n")
		fmt.Fprintf(stderr, "  ./web/tags         Scan only the specific directory (no recursion)\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  taglib ./...                           # Generate for the whole module\n")
		fmt.Fprintf(stderr, "  taglib -out ./web ./web/tags/...       # Write META-INF/taglib.tld below ./web\n")
		fmt.Fprintf(stderr, "  taglib -clean ./...                    # Delete all generated proxies\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	config := cli.Config{}
	configPath := *configFlag
	if configPath == "" {
		if _, err := os.Stat(cli.DefaultConfigFile); err == nil {
			configPath = cli.DefaultConfigFile
		}
	}
	if configPath != "" {
		loaded, err := cli.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		config = *loaded
	}

	config.Merge(cli.Config{
		Directories: flags.Args(),
		ModuleName:  *moduleFlag,
		OutputDir:   *outFlag,
		Verbose:     *verboseFlag,
		Quiet:       *quietFlag,
		Clean:       *cleanFlag,
	})

	var diagnostics *utils.DiagnosticSystem
	switch {
	case config.Quiet:
		diagnostics = utils.NewQuietDiagnostics()
	case config.Verbose:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stdout, stderr)

	if len(config.Directories) == 0 {
		diagnostics.Error("At least one directory path is required")
		fmt.Fprintln(stderr)
		flags.Usage()
		return 1
	}

	diagnostics.Header("Tag Library Proxy Generator")
	if config.Verbose {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(config.Directories, ", "))
		if config.ModuleName != "" {
			diagnostics.List("Custom module: %s", config.ModuleName)
		}
		if configPath != "" {
			diagnostics.List("Config file: %s", configPath)
		}
	}

	generator := cli.NewGeneratorWithDiagnostics(config.Verbose, diagnostics)
	generator.Reporter().SetOutput(stdout, stderr)

	if err := generator.Run(config); err != nil {
		if !cli.IsReported(err) {
			generator.Reporter().ReportError(err)
		}
		return 1
	}

	summary := generator.GetSummary()
	if config.Clean {
		diagnostics.Success("Removed %d generated files", len(summary.GeneratedFiles))
		return 0
	}

	diagnostics.Summary("Generation Complete!", map[string]interface{}{
		"Packages processed": summary.PackagesProcessed,
		"Tags found":         summary.TagsFound,
		"Files written":      len(summary.GeneratedFiles),
	})
	if config.Verbose && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
	diagnostics.GenerationComplete()
	return 0
}
