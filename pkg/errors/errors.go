package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel causes carried by the typed errors below. Match them with errors.Is.
var (
	ErrUnknownComponentType  = stderrors.New("unknown component type")
	ErrMissingField          = stderrors.New("missing required field")
	ErrTypeMismatch          = stderrors.New("type mismatch")
	ErrTypeTagMismatch       = stderrors.New("type tag does not match component")
	ErrUnknownDestination    = stderrors.New("destination not registered")
	ErrUnsupportedTransition = stderrors.New("unsupported transition")
	ErrNavigatorReleased     = stderrors.New("navigation host released")
	ErrInvalidURL            = stderrors.New("invalid url")
)

// DecodeError reports a document that could not be turned into a scene.
// Path is the JSON coding path of the failing node (for example
// "container.views[1].type"); Tag is set when a type tag was the problem.
type DecodeError struct {
	Path    string
	Tag     string
	Message string
	Err     error
}

// NewDecodeError constructs a DecodeError.
func NewDecodeError(path, message string, err error) error {
	return &DecodeError{Path: path, Message: message, Err: err}
}

// NewUnknownTypeError constructs the DecodeError raised for an unrecognized view type tag.
func NewUnknownTypeError(path, tag string) error {
	return &DecodeError{
		Path:    path,
		Tag:     tag,
		Message: fmt.Sprintf("unknown component type %q", tag),
		Err:     ErrUnknownComponentType,
	}
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("decode error: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EncodeError reports a scene that cannot be serialized.
type EncodeError struct {
	Path    string
	Message string
	Err     error
}

// NewEncodeError constructs an EncodeError.
func NewEncodeError(path, message string, err error) error {
	return &EncodeError{Path: path, Message: message, Err: err}
}

func (e *EncodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("encode error: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("encode error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *EncodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures value constraint failures.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DispatchError describes a failed action dispatch. Dispatch failures are
// logged and swallowed; the type exists so log entries carry structured context.
type DispatchError struct {
	Destination string
	Transition  string
	Message     string
	Err         error
}

// NewDispatchError constructs a DispatchError.
func NewDispatchError(destination, transition string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &DispatchError{Destination: destination, Transition: transition, Message: message, Err: err}
}

func (e *DispatchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Transition != "" {
		return fmt.Sprintf("dispatch error [%s -> %s]: %s", e.Transition, e.Destination, e.Message)
	}
	return fmt.Sprintf("dispatch error [%s]: %s", e.Destination, e.Message)
}

// Unwrap exposes the underlying error.
func (e *DispatchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfigError represents a host configuration file that could not be loaded.
type ConfigError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError.
func NewConfigError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ConfigError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("config error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("config error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PathOf returns the coding path of a decode, encode or validation error, or "" when err carries none.
func PathOf(err error) string {
	var decodeErr *DecodeError
	if stderrors.As(err, &decodeErr) {
		return decodeErr.Path
	}
	var encodeErr *EncodeError
	if stderrors.As(err, &encodeErr) {
		return encodeErr.Path
	}
	var validationErr *ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.Field
	}
	return ""
}
