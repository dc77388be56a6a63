package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrTooDeep         = errors.New("JSON document is nested too deeply")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
	ErrNoHandlerName   = errors.New("no handler name: writing to a directory requires --name")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeGenerate ErrorType = "generate"
	ErrorTypeFormat   ErrorType = "format"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewGenerateError creates a new error related to code generation
func NewGenerateError(message string, err error) *AppError {
	return newError(ErrorTypeGenerate, message, err)
}

// NewFormatError creates a new error related to code formatting
func NewFormatError(message string, err error) *AppError {
	return newError(ErrorTypeFormat, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", detail(appErr))
		case ErrorTypeGenerate:
			return fmt.Sprintf("Code generation error: %s", detail(appErr))
		case ErrorTypeFormat:
			return fmt.Sprintf("Code formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Error: The input is empty. Please provide valid JSON data."
	case errors.Is(err, ErrInvalidJSON):
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	case errors.Is(err, ErrMultipleJSON):
		return "Error: Multiple JSON values found. Please provide a single JSON object or array."
	case errors.Is(err, ErrTooDeep):
		return "Error: The JSON document is nested too deeply."
	case errors.Is(err, ErrFileNotFound):
		return "Error: The specified file could not be found. Please check the file path."
	case errors.Is(err, ErrFileEmpty):
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	case errors.Is(err, ErrNoInput):
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	case errors.Is(err, ErrInvalidFilePath):
		return "Error: Invalid file path. Please provide a valid file path."
	case errors.Is(err, ErrNoHandlerName):
		return "Error: No handler name given. Please pass --name when writing to a directory."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}

// detail includes the wrapped cause, which for config and generation
// errors names the offending value.
func detail(e *AppError) string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}
