package errors

import "fmt"

// Constructors for the reflector error taxonomy. Parser-level errors are
// created without a file; the parser stamps file and line once, at the
// per-file boundary.

// SyntaxError creates an error for malformed text or an expected-token mismatch
func SyntaxError(message string) *BaseError {
	return New(SyntaxErrorCode, message)
}

// SyntaxErrorf creates a formatted syntax error
func SyntaxErrorf(format string, args ...interface{}) *BaseError {
	return Newf(SyntaxErrorCode, format, args...)
}

// ExpectedToken creates the syntax error raised when a literal is missing
func ExpectedToken(literal string, column int) *BaseError {
	err := Newf(SyntaxErrorCode, "expected `%s`", literal).
		WithContext("expected", literal)
	err.Loc.Column = column
	return err
}

// AttributeDecodeError wraps a malformed attribute payload
func AttributeDecodeError(payload string, cause error) *BaseError {
	return Wrapf(AttributeDecodeErrorCode, cause, "invalid attribute list: %v", cause).
		WithContext("payload", payload).
		WithSuggestion("Attribute lists must be JSON objects, e.g. (\"Getter\": false)")
}

// OrphanAnnotation creates the error for a marker found outside its required context
func OrphanAnnotation(marker, context string) *BaseError {
	return Newf(OrphanAnnotationErrorCode, "%s() not in %s", marker, context).
		WithContext("marker", marker).
		WithSuggestion(fmt.Sprintf("Place %s() after the annotated %s declaration it belongs to", marker, context))
}

// MismatchedDelimiters creates the error for a nesting depth that went negative
func MismatchedDelimiters(what string, column int) *BaseError {
	err := Newf(MismatchedDelimitersErrorCode, "mismatched delimiters in %s", what)
	err.Loc.Column = column
	return err
}

// DuplicateAccessor creates the error for a second getter or setter of a property
func DuplicateAccessor(kind, property string, previousLine int) *BaseError {
	return Newf(DuplicateAccessorErrorCode, "%s for property `%s` already declared at line %d", kind, property, previousLine).
		WithContext("property", property).
		WithContext("previous_line", previousLine)
}

// ConflictingAttributes creates the error for attributes that cannot be combined
func ConflictingAttributes(first, second string) *BaseError {
	return Newf(ConflictingAttributesErrorCode, "only one of `%s` and `%s` can be declared", first, second).
		WithContext("attributes", []string{first, second})
}

// MissingParameter creates the error for a setter without parameters
func MissingParameter(method string) *BaseError {
	return Newf(MissingParameterErrorCode, "setter `%s` must have at least 1 argument", method).
		WithContext("method", method)
}

// UnknownEnum creates the error for a flag enum that has not been reflected
func UnknownEnum(name string) *BaseError {
	return Newf(UnknownEnumErrorCode, "enum `%s` not reflected", name).
		WithContext("enum", name).
		WithSuggestion("Enums used for flag accessors must be reflected in this file or in a file processed earlier")
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}
