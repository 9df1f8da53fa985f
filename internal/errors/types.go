package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ReflectorError is implemented by every error this module produces
type ReflectorError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
}

// ErrorCode classifies a failure
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Scanning and parsing
	SyntaxErrorCode
	AttributeDecodeErrorCode
	OrphanAnnotationErrorCode
	MismatchedDelimitersErrorCode

	// Model construction
	DuplicateAccessorErrorCode
	ConflictingAttributesErrorCode
	MissingParameterErrorCode
	UnknownEnumErrorCode

	// Driver
	FileSystemErrorCode
	ConfigurationErrorCode
)

// String returns the code name shown in reports, e.g. "SyntaxError"
func (e ErrorCode) String() string {
	switch e {
	case SyntaxErrorCode:
		return "SyntaxError"
	case AttributeDecodeErrorCode:
		return "AttributeDecodeError"
	case OrphanAnnotationErrorCode:
		return "OrphanAnnotation"
	case MismatchedDelimitersErrorCode:
		return "MismatchedDelimiters"
	case DuplicateAccessorErrorCode:
		return "DuplicateAccessor"
	case ConflictingAttributesErrorCode:
		return "ConflictingAttributes"
	case MissingParameterErrorCode:
		return "MissingParameter"
	case UnknownEnumErrorCode:
		return "UnknownEnum"
	case FileSystemErrorCode:
		return "FileSystemError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	default:
		return "UnknownError"
	}
}

// SourceLocation is a position in a source file. Line and Column are 1-based;
// zero means unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// String renders the location as file:line:column, omitting unknown parts
func (s SourceLocation) String() string {
	if s.File == "" {
		if s.Line == 0 {
			return "unknown location"
		}
		return fmt.Sprintf("line %d", s.Line)
	}
	if s.Line == 0 {
		return s.File
	}
	if s.Column == 0 {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty reports whether neither file nor line is known
func (s SourceLocation) IsEmpty() bool {
	return s.File == "" && s.Line == 0
}

// BaseError is the concrete error type. Loc is filled in as the error
// travels up from the scanner (column) to the parser (line) and the file
// loop (file).
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

// Error prefixes the message with the location when one is known
func (e *BaseError) Error() string {
	if e.Loc.IsEmpty() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Loc.String(), e.Message)
}

func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation replaces the location
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithFile sets the file of the location, keeping line and column.
func (e *BaseError) WithFile(file string) *BaseError {
	e.Loc.File = file
	return e
}

// WithLine sets the line of the location. A column recorded for a different
// line no longer applies and is dropped.
func (e *BaseError) WithLine(line int) *BaseError {
	if e.Loc.Line != 0 && e.Loc.Line != line {
		e.Loc.Column = 0
	}
	e.Loc.Line = line
	return e
}

// WithContext records a key shown by verbose reports
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion appends a hint line
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New returns an error with code and message and no location
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap is New with an underlying cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	e := New(code, message)
	e.Cause = cause
	return e
}

// Wrapf is Wrap with a formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// AsBase finds the first *BaseError in err's chain.
func AsBase(err error) (*BaseError, bool) {
	var base *BaseError
	if stderrors.As(err, &base) {
		return base, true
	}
	return nil, false
}

// CodeOf returns the code of the first ReflectorError in err's chain, or
// UnknownErrorCode.
func CodeOf(err error) ErrorCode {
	var re ReflectorError
	if stderrors.As(err, &re) {
		return re.ErrorCode()
	}
	return UnknownErrorCode
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// MultipleErrors collects the failures of several files
type MultipleErrors struct {
	Errors []ReflectorError
}

func (e *MultipleErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var messages []string
	for i, err := range e.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}

	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(messages, "\n"))
}

// Unwrap returns all collected errors for errors.Is/As inspection
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Add adds an error to the collection. Errors that are not ReflectorErrors
// are wrapped with UnknownErrorCode.
func (e *MultipleErrors) Add(err error) {
	if err == nil {
		return
	}
	var re ReflectorError
	if stderrors.As(err, &re) {
		e.Errors = append(e.Errors, re)
		return
	}
	e.Errors = append(e.Errors, Wrap(UnknownErrorCode, err.Error(), err))
}

func (e *MultipleErrors) IsEmpty() bool {
	return len(e.Errors) == 0
}

func (e *MultipleErrors) Count() int {
	return len(e.Errors)
}

// HasCode reports whether any collected error has code
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// ErrorOrNil returns nil for an empty collection
func (e *MultipleErrors) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{
		Errors: make([]ReflectorError, 0),
	}
}
