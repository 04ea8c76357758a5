package errors

import "fmt"

// Constructors for the build-time errors raised while turning annotations into a tag library.
// All of them abort the batch.

// DuplicateTagError reports two tag declarations resolving to the same tag name
func DuplicateTagError(tagName, className string, loc SourceLocation) *BaseError {
	return Newf(DuplicateErrorCode, "Tag '%s' already defined", tagName).
		WithLocation(loc).
		WithContext("tag_name", tagName).
		WithContext("class_name", className).
		WithSuggestion(fmt.Sprintf("Give %s an explicit, unique name with -Name=...", className))
}

// DuplicateAttributeError reports two parameters of one tag resolving to the same attribute name
func DuplicateAttributeError(tagName, attributeName string, loc SourceLocation) *BaseError {
	return Newf(DuplicateErrorCode, "Tag %s: parameter %s already defined", tagName, attributeName).
		WithLocation(loc).
		WithContext("tag_name", tagName).
		WithContext("attribute_name", attributeName).
		WithSuggestion("Rename one of the fields or set a distinct -Name on its //taglib::param")
}

// DuplicateLibraryError reports a second //taglib::library declaration in one batch
func DuplicateLibraryError(loc SourceLocation) *BaseError {
	return New(DuplicateErrorCode, "//taglib::library already defined").
		WithLocation(loc).
		WithSuggestion("Declare the tag library on exactly one package clause")
}

// DuplicateFactoryError reports a second library-wide //taglib::factory declaration
func DuplicateFactoryError(loc SourceLocation) *BaseError {
	return New(DuplicateErrorCode, "Package //taglib::factory already defined").
		WithLocation(loc).
		WithSuggestion("Keep a single library-wide factory key and use type-level //taglib::factory for exceptions")
}

// MissingTagError reports an annotation on a type that was never declared with //taglib::tag
func MissingTagError(className string, loc SourceLocation) *BaseError {
	return Newf(MissingDeclarationErrorCode, "Missing //taglib::tag on type: %s", className).
		WithLocation(loc).
		WithContext("class_name", className).
		WithSuggestion("Add //taglib::tag -Type=... to the type's doc comment")
}

// UnsupportedTypeError reports a tag type category without a proxy base
func UnsupportedTypeError(category string, loc SourceLocation) *BaseError {
	return Newf(ConfigurationErrorCode, "No proxy for tag type %s", category).
		WithLocation(loc).
		WithContext("type", category).
		WithSuggestion("Use one of -Type=tag, -Type=iteration, -Type=body, -Type=simple")
}

// InvalidDeclarationError reports an annotation whose values cannot form a valid model
func InvalidDeclarationError(message string, loc SourceLocation) *BaseError {
	return New(ValidationErrorCode, message).WithLocation(loc)
}
