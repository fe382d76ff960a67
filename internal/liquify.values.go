package internal

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Argument is a compiled tag or filter argument: either a literal value or
// a dot-notation variable path resolved against the bindings at render time.
type Argument struct {
	literal   any
	path      string
	isLiteral bool
}

// NewLiteralArgument creates an argument holding a fixed value
func NewLiteralArgument(value any) Argument {
	return Argument{
		literal:   value,
		isLiteral: true,
	}
}

// NewPathArgument creates an argument resolved from the bindings
func NewPathArgument(path string) Argument {
	return Argument{
		path: path,
	}
}

// IsLiteral reports whether the argument is a fixed value
func (a Argument) IsLiteral() bool {
	return a.isLiteral
}

// Path returns the variable path of a non-literal argument
func (a Argument) Path() string {
	return a.path
}

// Resolve produces the argument's value. Literals always resolve; paths
// report found=false when the bindings hold no such variable.
func (a Argument) Resolve(b Bindings) (any, bool) {
	if a.isLiteral {
		return a.literal, true
	}
	if b == nil {
		return nil, false
	}
	return b.Get(a.path)
}

// String returns a human-readable representation
func (a Argument) String() string {
	if a.isLiteral {
		return fmt.Sprintf("%v", a.literal)
	}
	return a.path
}

// ArgumentFromToken converts a literal or identifier token into an argument
func ArgumentFromToken(tok Token) Argument {
	switch tok.Type {
	case TokenTypeString:
		return NewLiteralArgument(tok.Value)
	case TokenTypeNumber:
		if strings.ContainsRune(tok.Value, CharDot) {
			f, _ := strconv.ParseFloat(tok.Value, 64)
			return NewLiteralArgument(f)
		}
		i, _ := strconv.Atoi(tok.Value)
		return NewLiteralArgument(i)
	case TokenTypeBool:
		return NewLiteralArgument(tok.Value == KeywordTrue)
	default:
		if tok.Value == KeywordNil {
			return NewLiteralArgument(nil)
		}
		return NewPathArgument(tok.Value)
	}
}

// FilterCall is a single step in an output filter chain. The filter
// function is bound at compile time so unknown filters fail compilation.
type FilterCall struct {
	Name string
	Fn   FilterFunc
	Args []Argument
}

// Apply resolves the call's arguments and runs the filter
func (fc FilterCall) Apply(input any, b Bindings) (any, error) {
	args := make([]any, len(fc.Args))
	for i, a := range fc.Args {
		args[i], _ = a.Resolve(b)
	}
	out, err := fc.Fn(input, args)
	if err != nil {
		return nil, NewFilterError(fc.Name, err)
	}
	return out, nil
}

// Condition is a compiled if-tag condition: a bare truthiness test or a
// binary comparison.
type Condition struct {
	Lhs   Argument
	Op    string
	Rhs   Argument
	HasOp bool
}

// String returns a human-readable representation
func (c Condition) String() string {
	if !c.HasOp {
		return c.Lhs.String()
	}
	return fmt.Sprintf("%s %s %s", c.Lhs, c.Op, c.Rhs)
}

// Evaluate resolves both sides and applies the operator. Comparisons never
// fail: incomparable operands simply evaluate to false.
func (c Condition) Evaluate(b Bindings) bool {
	lhs, _ := c.Lhs.Resolve(b)
	if !c.HasOp {
		return IsTruthy(lhs)
	}
	rhs, _ := c.Rhs.Resolve(b)

	switch c.Op {
	case OpEquals:
		return valuesEqual(lhs, rhs)
	case OpNotEquals:
		return !valuesEqual(lhs, rhs)
	case OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
		return compareOrdered(lhs, rhs, c.Op)
	case OpContains:
		return valueContains(lhs, rhs)
	default:
		return false
	}
}

// IsTruthy implements Liquid truthiness: only nil and false are falsy
func IsTruthy(v any) bool {
	if v == nil {
		return false
	}
	if bv, ok := v.(bool); ok {
		return bv
	}
	return true
}

// FormatValue renders a value the way template output writes it. Floats
// with no fractional part print without a decimal point, so 5.0 renders
// as "5".
func FormatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return StringValueEmpty
	case string:
		return tv
	case bool:
		return strconv.FormatBool(tv)
	case int:
		return strconv.Itoa(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(tv), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", tv)
	}
}

// valuesEqual compares two values, treating numeric types uniformly
func valuesEqual(a, b any) bool {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

// compareOrdered applies an ordering operator. Numbers compare
// numerically, strings lexicographically; anything else is false.
func compareOrdered(a, b any, op string) bool {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		switch op {
		case OpLess:
			return af < bf
		case OpGreater:
			return af > bf
		case OpLessEqual:
			return af <= bf
		case OpGreaterEqual:
			return af >= bf
		}
		return false
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		switch op {
		case OpLess:
			return as < bs
		case OpGreater:
			return as > bs
		case OpLessEqual:
			return as <= bs
		case OpGreaterEqual:
			return as >= bs
		}
	}
	return false
}

// valueContains implements the contains operator for strings and slices
func valueContains(haystack, needle any) bool {
	switch h := haystack.(type) {
	case string:
		return strings.Contains(h, FormatValue(needle))
	case []string:
		for _, item := range h {
			if item == FormatValue(needle) {
				return true
			}
		}
	case []any:
		for _, item := range h {
			if valuesEqual(item, needle) {
				return true
			}
		}
	}
	return false
}

// toFloat converts numeric values to float64 for comparison
func toFloat(v any) (float64, bool) {
	switch tv := v.(type) {
	case int:
		return float64(tv), true
	case int32:
		return float64(tv), true
	case int64:
		return float64(tv), true
	case float32:
		return float64(tv), true
	case float64:
		return tv, true
	default:
		return 0, false
	}
}

// FilterError reports a filter that failed during rendering
type FilterError struct {
	FilterName string
	Cause      error
}

// NewFilterError creates a new filter error
func NewFilterError(name string, cause error) *FilterError {
	return &FilterError{
		FilterName: name,
		Cause:      cause,
	}
}

// Error implements the error interface
func (e *FilterError) Error() string {
	return ErrMsgFilterFailed + ": " + e.FilterName + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause
func (e *FilterError) Unwrap() error {
	return e.Cause
}

// ErrMsgFilterFailed is the filter failure message prefix
const ErrMsgFilterFailed = "filter failed"
