package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/taglib/internal/errors"
	"github.com/toyz/taglib/internal/processor"
)

var _ processor.Reporter = (*DiagnosticReporter)(nil)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// SetOutput redirects regular and error output
func (r *DiagnosticReporter) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// Error reports a processing error
func (r *DiagnosticReporter) Error(err errors.TaglibError) {
	r.ReportError(err)
}

// Warning reports a problem that does not abort the pass
func (r *DiagnosticReporter) Warning(loc errors.SourceLocation, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if loc.File != "" {
		message = loc.String() + ": " + message
	}
	r.ReportWarning(message)
}

// Note prints processing details in verbose mode
func (r *DiagnosticReporter) Note(format string, args ...interface{}) {
	r.Debug(format, args...)
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	color.New(color.FgYellow, color.Bold).Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	for _, s := range suggestions {
		fmt.Fprintf(r.errOut, "  - %s\n", s)
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.errOut, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.errOut, "=============================\n\n")

	var multiple *errors.MultipleErrors
	var taglibErr errors.TaglibError
	switch {
	case stderrors.As(err, &multiple):
		for i, e := range multiple.Errors {
			if i > 0 {
				fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", 29))
			}
			r.reportTaglibError(e)
		}
	case stderrors.As(err, &taglibErr):
		r.reportTaglibError(taglibErr)
	default:
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.errOut, "\n")
}

func (r *DiagnosticReporter) reportTaglibError(err errors.TaglibError) {
	r.printErrorHeader(err.ErrorCode())

	fmt.Fprintf(r.errOut, "Message: %s\n\n", messageOf(err))

	if loc := err.Location(); loc.File != "" {
		fmt.Fprintf(r.errOut, "Location: %s\n\n", loc.String())
	}

	if context := err.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(err.ErrorCode())
}

func messageOf(err errors.TaglibError) string {
	if base, ok := err.(*errors.BaseError); ok {
		return base.Detail()
	}
	return err.Error()
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	if strings.Contains(strings.ToLower(err.Error()), "module") {
		fmt.Fprintf(r.errOut, "This appears to be a module-related issue.\n")
		fmt.Fprintf(r.errOut, "Common solutions:\n")
		fmt.Fprintf(r.errOut, "  - Check your go.mod file\n")
		fmt.Fprintf(r.errOut, "  - Try specifying -module explicitly\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.SyntaxErrorCode:
		errorTypeStr = "Directive Syntax Error"
	case errors.ValidationErrorCode:
		errorTypeStr = "Validation Error"
	case errors.DuplicateErrorCode:
		errorTypeStr = "Duplicate Declaration"
	case errors.MissingDeclarationErrorCode:
		errorTypeStr = "Missing Declaration"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.GenerationErrorCode, errors.TemplateErrorCode:
		errorTypeStr = "Code Generation Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	// Print important context items first
	importantKeys := []string{"tag_name", "class_name", "attribute_name", "type"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	rest := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "tag_name":
		return "Tag"
	case "class_name":
		return "Type"
	case "attribute_name":
		return "Attribute"
	case "type":
		return "Tag Type"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.errOut, "\n")
}

// printAdditionalHelp prints additional help based on error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.SyntaxErrorCode:
		fmt.Fprintf(r.errOut, "Directive Syntax Help:\n")
		fmt.Fprintf(r.errOut, "  - Directives must start with //taglib:: and have no space after //\n")
		fmt.Fprintf(r.errOut, "  - Parameters are written -Key=value or -Flag\n")
		fmt.Fprintf(r.errOut, "  - Quote values containing spaces: -URI=\"http://example.com/tags\"\n\n")

	case errors.MissingDeclarationErrorCode:
		fmt.Fprintf(r.errOut, "Declaration Order:\n")
		fmt.Fprintf(r.errOut, "  - //taglib::param, //taglib::info and //taglib::factory on a type need //taglib::tag on that type\n\n")
	}

	if r.verbose {
		return
	}
	fmt.Fprintf(r.errOut, "For more help:\n")
	fmt.Fprintf(r.errOut, "  - Run with -verbose for more detailed output\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] "+format+"\n", args...)
	}
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Fprintf(r.out, "\nCode Generation Completed Successfully!\n")
	fmt.Fprintf(r.out, "=======================================\n\n")

	fmt.Fprintf(r.out, "Processed %d packages\n", summary.PackagesProcessed)
	fmt.Fprintf(r.out, "Found %d tags\n", summary.TagsFound)

	if len(summary.GeneratedFiles) > 0 {
		fmt.Fprintf(r.out, "\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Fprintf(r.out, "  - %s\n", file)
		}
	}
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesProcessed int
	TagsFound         int
	Descriptor        string
	GeneratedFiles    []string
}
