// Package declerrors provides structured error types for declgen.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to tell a broken input document apart from a
// bad configuration or from a generation pass that lost a required anchor.
//
// # Error Categories
//
//   - ParseError: JSON/YAML decoding failures of a doc tree or config file
//   - AnchorError: a structurally required declaration or doc node is missing
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	ns, err := generator.GenerateOptions(root)
//	if errors.Is(err, declerrors.ErrMissingAnchor) {
//	    var anchorErr *declerrors.AnchorError
//	    if errors.As(err, &anchorErr) {
//	        log.Printf("options pass lost %s", anchorErr.Anchor)
//	    }
//	}
package declerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a doc tree or config document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrMissingAnchor indicates a generation pass could not find a node it
	// needs to continue.
	ErrMissingAnchor = errors.New("missing anchor")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode an input document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// AnchorError reports that a generation pass aborted because a node it
// builds on was not present.
type AnchorError struct {
	// Pass names the generation pass, e.g. "options" or a product name
	Pass string
	// Anchor is the full name of the missing declaration or doc node
	Anchor string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *AnchorError) Error() string {
	msg := "missing anchor"
	if e.Anchor != "" {
		msg += " " + e.Anchor
	}
	if e.Pass != "" {
		msg += " in " + e.Pass + " pass"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *AnchorError) Is(target error) bool {
	return target == ErrMissingAnchor
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
