package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// TaglibError is implemented by every diagnostic the generator reports
type TaglibError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a diagnostic
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// directive parsing
	SyntaxErrorCode
	ValidationErrorCode
	SchemaErrorCode

	// processor passes
	ConfigurationErrorCode
	DuplicateErrorCode
	MissingDeclarationErrorCode

	// rendering and commit
	GenerationErrorCode
	TemplateErrorCode
	FileSystemErrorCode
)

var errorCodeNames = map[ErrorCode]string{
	SyntaxErrorCode:             "SyntaxError",
	ValidationErrorCode:         "ValidationError",
	SchemaErrorCode:             "SchemaError",
	ConfigurationErrorCode:      "ConfigurationError",
	DuplicateErrorCode:          "DuplicateError",
	MissingDeclarationErrorCode: "MissingDeclarationError",
	GenerationErrorCode:         "GenerationError",
	TemplateErrorCode:           "TemplateError",
	FileSystemErrorCode:         "FileSystemError",
}

func (e ErrorCode) String() string {
	if name, ok := errorCodeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// SourceLocation is the file position of a directive
type SourceLocation struct {
	File   string
	Line   int // 1-based, 0 if unknown
	Column int // 1-based, 0 if unknown
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// IsEmpty reports whether the location names no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the TaglibError used throughout the generator
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// Error returns "<location>: <message>: <cause>". The cause is left out when the message
// already contains it.
func (e *BaseError) Error() string {
	var b strings.Builder
	if !e.Loc.IsEmpty() {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Detail())
	return b.String()
}

// Detail returns the message followed by the cause, without the location
func (e *BaseError) Detail() string {
	if e.Cause == nil {
		return e.Message
	}
	cause := e.Cause.Error()
	if cause == "" || strings.Contains(e.Message, cause) {
		return e.Message
	}
	return e.Message + ": " + cause
}

func (e *BaseError) ErrorCode() ErrorCode { return e.Code }

func (e *BaseError) Location() SourceLocation { return e.Loc }

func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

func (e *BaseError) Suggestions() []string { return e.Hints }

func (e *BaseError) Unwrap() error { return e.Cause }

// WithLocation sets the directive position
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithContext records a key shown in the Context block of the diagnostic
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a diagnostic without a cause
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Newf creates a diagnostic with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a diagnostic caused by err
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{Code: code, Message: message, Cause: cause}
}

// MultipleErrors collects the diagnostics of a batch that kept going after the first failure.
// Code, location and cause are those of the first collected error.
type MultipleErrors struct {
	Errors []TaglibError
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, err.Error())
	}
	return fmt.Sprintf("%d errors:\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

func (e *MultipleErrors) first() TaglibError {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}

func (e *MultipleErrors) ErrorCode() ErrorCode {
	if first := e.first(); first != nil {
		return first.ErrorCode()
	}
	return UnknownErrorCode
}

func (e *MultipleErrors) Location() SourceLocation {
	if first := e.first(); first != nil {
		return first.Location()
	}
	return SourceLocation{}
}

func (e *MultipleErrors) Context() map[string]interface{} {
	if first := e.first(); first != nil {
		return first.Context()
	}
	return map[string]interface{}{}
}

// Suggestions returns the suggestions of all collected errors
func (e *MultipleErrors) Suggestions() []string {
	var suggestions []string
	for _, err := range e.Errors {
		suggestions = append(suggestions, err.Suggestions()...)
	}
	return suggestions
}

func (e *MultipleErrors) Unwrap() error {
	if first := e.first(); first != nil {
		return first
	}
	return nil
}

// Is matches target against every collected error, not only the first
func (e *MultipleErrors) Is(target error) bool {
	for _, err := range e.Errors {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

// As finds the first collected error matching target
func (e *MultipleErrors) As(target interface{}) bool {
	for _, err := range e.Errors {
		if stderrors.As(err, target) {
			return true
		}
	}
	return false
}

func (e *MultipleErrors) Add(err TaglibError) {
	e.Errors = append(e.Errors, err)
}

func (e *MultipleErrors) IsEmpty() bool {
	return len(e.Errors) == 0
}

func (e *MultipleErrors) Count() int {
	return len(e.Errors)
}

// AddToMultiple adds err to *multiple, allocating the collection on first use
func AddToMultiple(multiple **MultipleErrors, err TaglibError) {
	if *multiple == nil {
		*multiple = &MultipleErrors{}
	}
	(*multiple).Add(err)
}
