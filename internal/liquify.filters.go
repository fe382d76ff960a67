package internal

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RegisterBuiltinFilters installs the standard filters into a compiler
// configuration.
func RegisterBuiltinFilters(opts *Options) {
	opts.Filters[FilterNameSize] = filterSize
	opts.Filters[FilterNameUpcase] = filterUpcase
	opts.Filters[FilterNameDowncase] = filterDowncase
	opts.Filters[FilterNameCapitalize] = filterCapitalize
	opts.Filters[FilterNameAppend] = filterAppend
	opts.Filters[FilterNamePrepend] = filterPrepend
	opts.Filters[FilterNameStrip] = filterStrip
	opts.Filters[FilterNameDefault] = filterDefault
}

// Builtin filter name constants
const (
	FilterNameSize       = "size"
	FilterNameUpcase     = "upcase"
	FilterNameDowncase   = "downcase"
	FilterNameCapitalize = "capitalize"
	FilterNameAppend     = "append"
	FilterNamePrepend    = "prepend"
	FilterNameStrip      = "strip"
	FilterNameDefault    = "default"
)

// filterSize returns the length of a string (in runes), slice, or map
func filterSize(input any, args []any) (any, error) {
	switch v := input.(type) {
	case nil:
		return 0, nil
	case string:
		return utf8.RuneCountInString(v), nil
	case []any:
		return len(v), nil
	case []string:
		return len(v), nil
	case map[string]any:
		return len(v), nil
	default:
		return 0, nil
	}
}

// filterUpcase uppercases the input
func filterUpcase(input any, args []any) (any, error) {
	return strings.ToUpper(FormatValue(input)), nil
}

// filterDowncase lowercases the input
func filterDowncase(input any, args []any) (any, error) {
	return strings.ToLower(FormatValue(input)), nil
}

// filterCapitalize uppercases the first rune of the input
func filterCapitalize(input any, args []any) (any, error) {
	s := FormatValue(input)
	if s == StringValueEmpty {
		return s, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:], nil
}

// filterAppend concatenates the argument after the input
func filterAppend(input any, args []any) (any, error) {
	if len(args) != 1 {
		return nil, newFilterArgCountError(FilterNameAppend, 1, len(args))
	}
	return FormatValue(input) + FormatValue(args[0]), nil
}

// filterPrepend concatenates the argument before the input
func filterPrepend(input any, args []any) (any, error) {
	if len(args) != 1 {
		return nil, newFilterArgCountError(FilterNamePrepend, 1, len(args))
	}
	return FormatValue(args[0]) + FormatValue(input), nil
}

// filterStrip trims surrounding whitespace
func filterStrip(input any, args []any) (any, error) {
	return strings.TrimSpace(FormatValue(input)), nil
}

// filterDefault substitutes the argument when the input is nil, false, or
// an empty string
func filterDefault(input any, args []any) (any, error) {
	if len(args) != 1 {
		return nil, newFilterArgCountError(FilterNameDefault, 1, len(args))
	}
	if input == nil {
		return args[0], nil
	}
	if b, ok := input.(bool); ok && !b {
		return args[0], nil
	}
	if s, ok := input.(string); ok && s == StringValueEmpty {
		return args[0], nil
	}
	return input, nil
}

// newFilterArgCountError reports a filter invoked with the wrong number of
// arguments
func newFilterArgCountError(name string, want, got int) error {
	return fmt.Errorf(ErrFmtFilterArgCount, name, want, got)
}

// ErrFmtFilterArgCount formats filter argument count mismatches
const ErrFmtFilterArgCount = "filter %s expects %d argument(s), got %d"
