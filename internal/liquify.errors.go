package internal

import (
	"fmt"
	"strings"
)

// TraceError wraps a failure with an ordered chain of context annotations.
// Each boundary the error crosses (an enclosing include directive, at compile
// or render time) appends one annotation, so Trace[0] is the innermost site
// and the last entry is the outermost.
type TraceError struct {
	Cause error
	Trace []string
}

// Error renders the cause followed by the trace chain, innermost first
func (e *TraceError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Cause.Error())
	for _, entry := range e.Trace {
		sb.WriteString(TraceEntrySeparator)
		sb.WriteString(TraceEntryPrefix)
		sb.WriteString(entry)
	}
	return sb.String()
}

// Unwrap returns the original failure
func (e *TraceError) Unwrap() error {
	return e.Cause
}

// TraceWith appends a context annotation to err. If err already carries a
// trace the annotation is appended to the existing chain; otherwise err is
// wrapped. A nil err passes through unchanged.
func TraceWith(err error, annotation string) error {
	if err == nil {
		return nil
	}
	if te, ok := err.(*TraceError); ok {
		te.Trace = append(te.Trace, annotation)
		return te
	}
	return &TraceError{
		Cause: err,
		Trace: []string{annotation},
	}
}

// TraceInclude appends the standard annotation for an include directive
func TraceInclude(err error, snippetName string) error {
	return TraceWith(err, fmt.Sprintf(TraceFmtInclude, snippetName))
}

// Trace formatting constants
const (
	TraceEntrySeparator = "\n  "
	TraceEntryPrefix    = "from: "
	TraceFmtInclude     = "{%% include %s %%}"
)
