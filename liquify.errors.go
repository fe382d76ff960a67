package liquify

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-liquify/internal"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Compilation errors
	ErrMsgCompileFailed = "template compilation failed"
	ErrMsgEmptySource   = "template source cannot be empty"
	ErrMsgParseFailed   = "template parsing failed"

	// Registration errors
	ErrMsgEmptyTagName    = "tag name cannot be empty"
	ErrMsgEmptyFilterName = "filter name cannot be empty"
	ErrMsgNilFilter       = "filter function cannot be nil"
	ErrMsgNilTag          = "tag cannot be nil"
	ErrMsgTagExists       = "tag already registered"
	ErrMsgFilterExists    = "filter already registered"

	// Rendering errors
	ErrMsgForeignBindings = "custom tag requires the engine's render context"

	// Snippet source errors
	ErrMsgSnippetNotFound  = "Snippet does not exist"
	ErrMsgInvalidSnippet   = "invalid snippet name"
	ErrMsgSourceClosed     = "snippet source is closed"
	ErrMsgNilSourceDriver  = "source driver is nil"
	ErrMsgDriverRegistered = "source driver already registered"
	ErrMsgDriverNotFound   = "source driver not found"
	ErrMsgOutsideRoot      = "Snippet is outside the include path"
	ErrMsgSnippetRead      = "failed to read snippet"
)

// Error code constants for categorization
const (
	ErrCodeCompile  = "LIQUIFY_COMPILE"
	ErrCodeRender   = "LIQUIFY_RENDER"
	ErrCodeRegistry = "LIQUIFY_REGISTRY"
	ErrCodeSource   = "LIQUIFY_SOURCE"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeySnippet = "snippet"
	MetaKeyTag     = "tag"
	MetaKeyFilter  = "filter"
	MetaKeyDriver  = "driver"
	MetaKeyLine    = "line"
	MetaKeyColumn  = "column"
	MetaKeyOffset  = "offset"
)

// NewCompileError creates a compilation error with position context
func NewCompileError(msg string, pos internal.Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeCompile, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeCompile, msg)
	}
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewTagExistsError creates a tag registration collision error
func NewTagExistsError(tagName string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgTagExists).
		WithMetadata(MetaKeyTag, tagName)
}

// NewFilterExistsError creates a filter registration collision error
func NewFilterExistsError(filterName string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgFilterExists).
		WithMetadata(MetaKeyFilter, filterName)
}

// NewRegistrationError creates a generic registration validation error
func NewRegistrationError(msg string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, msg)
}

// NewTagRenderError creates a rendering error attributed to a custom tag
func NewTagRenderError(msg, tagName string) error {
	return cuserr.NewValidationError(ErrCodeRender, msg).
		WithMetadata(MetaKeyTag, tagName)
}

// SourceError represents a snippet-source failure. It is deliberately a
// plain typed error (not a wrapped CustomError) so the not-found condition
// stays distinguishable from lex and parse failures at every recursion
// level.
type SourceError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// NewSnippetNotFoundError creates the "Snippet does not exist" condition
func NewSnippetNotFoundError(name string) error {
	return &SourceError{
		Message: ErrMsgSnippetNotFound,
		Name:    name,
	}
}

// NewInvalidSnippetNameError creates an error for unusable snippet names
func NewInvalidSnippetNameError(name string) error {
	return &SourceError{
		Message: ErrMsgInvalidSnippet,
		Name:    name,
	}
}

// NewSourceClosedError creates an error for operations on a closed source
func NewSourceClosedError() error {
	return &SourceError{
		Message: ErrMsgSourceClosed,
	}
}

// NewSourceError creates a source error wrapping an underlying cause
func NewSourceError(msg, name string, cause error) error {
	return &SourceError{
		Message: msg,
		Name:    name,
		Cause:   cause,
	}
}

// IsSnippetNotFound reports whether err carries the not-found condition,
// at any depth of the trace chain
func IsSnippetNotFound(err error) bool {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Message == ErrMsgSnippetNotFound
	}
	return false
}

// NewSnippetOutsideRootError creates an error for names escaping the
// filesystem source's root directory
func NewSnippetOutsideRootError(name string) error {
	return &SourceError{
		Message: ErrMsgOutsideRoot,
		Name:    name,
	}
}

// NewSourceDriverNotFoundError creates an error for a missing source driver
func NewSourceDriverNotFoundError(name string) error {
	return &SourceError{
		Message: ErrMsgDriverNotFound,
		Name:    name,
	}
}

// Trace returns the ordered include-site annotations attached to err,
// innermost first, or nil if err carries no trace
func Trace(err error) []string {
	var te *internal.TraceError
	if errors.As(err, &te) {
		return te.Trace
	}
	return nil
}
