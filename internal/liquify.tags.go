package internal

import (
	"strings"
)

// RegisterBuiltins installs the standard tag and block parsers into a
// compiler configuration.
func RegisterBuiltins(opts *Options) {
	opts.Tags[TagNameInclude] = ParseIncludeTag
	opts.Tags[TagNameAssign] = ParseAssignTag
	opts.Blocks[TagNameComment] = ParseCommentBlock
	opts.Blocks[TagNameRaw] = ParseRawBlock
	opts.Blocks[TagNameIf] = ParseIfBlock
}

// ParseCommentBlock compiles a {% comment %} block. The body is discarded.
func ParseCommentBlock(tagName string, args []Token, body []Element, opts *Options) (Node, error) {
	return nil, nil
}

// ParseRawBlock compiles a {% raw %} block. The body is emitted verbatim,
// tag delimiters included, without further compilation.
func ParseRawBlock(tagName string, args []Token, body []Element, opts *Options) (Node, error) {
	pos := Position{Line: 1, Column: 1}
	if len(body) > 0 {
		pos = body[0].Position
	}

	var sb strings.Builder
	for _, el := range body {
		sb.WriteString(el.Raw)
	}
	return NewRawNode(sb.String(), pos), nil
}

// ParseIfBlock compiles an {% if %} block with an optional {% else %}
// branch. The condition is either a single value (Liquid truthiness) or a
// binary comparison.
func ParseIfBlock(tagName string, args []Token, body []Element, opts *Options) (Node, error) {
	cond, err := parseCondition(args)
	if err != nil {
		return nil, err
	}

	thenBody, elseBody := splitElseBranch(body, opts)

	pos := Position{Line: 1, Column: 1}
	if len(args) > 0 {
		pos = args[0].Position
	}

	thenNodes, err := parseBranch(thenBody, opts)
	if err != nil {
		return nil, err
	}
	elseNodes, err := parseBranch(elseBody, opts)
	if err != nil {
		return nil, err
	}

	return NewConditionalNode(cond, thenNodes, elseNodes, pos), nil
}

// parseCondition compiles if-tag arguments into a condition
func parseCondition(args []Token) (Condition, error) {
	if len(args) == 0 {
		return Condition{}, NewUnexpectedTokenError(TokenKindValue, nil)
	}
	if !args[0].IsIdentifier() && !args[0].IsLiteral() {
		return Condition{}, NewUnexpectedTokenError(TokenKindValue, &args[0])
	}
	lhs := ArgumentFromToken(args[0])

	if len(args) == 1 {
		return Condition{Lhs: lhs}, nil
	}

	if args[1].Type != TokenTypeComparison {
		return Condition{}, NewUnexpectedTokenError(TokenKindComparison, &args[1])
	}
	if len(args) < 3 || (!args[2].IsIdentifier() && !args[2].IsLiteral()) {
		var found *Token
		if len(args) >= 3 {
			found = &args[2]
		}
		return Condition{}, NewUnexpectedTokenError(TokenKindValue, found)
	}

	return Condition{
		Lhs:   lhs,
		Op:    args[1].Value,
		Rhs:   ArgumentFromToken(args[2]),
		HasOp: true,
	}, nil
}

// splitElseBranch splits a block body at the first top-level {% else %}
// tag. Nested blocks are skipped by tracking registered block openings
// against their matching end tags.
func splitElseBranch(body []Element, opts *Options) (thenBody, elseBody []Element) {
	depth := 0
	for i, el := range body {
		if !el.IsTag() {
			continue
		}
		name := el.TagName()

		if _, ok := opts.Blocks[name]; ok {
			depth++
			continue
		}
		if strings.HasPrefix(name, EndTagPrefix) {
			if _, ok := opts.Blocks[strings.TrimPrefix(name, EndTagPrefix)]; ok {
				depth--
				continue
			}
		}
		if name == TagNameElse && depth == 0 {
			return body[:i], body[i+1:]
		}
	}
	return body, nil
}

// parseBranch compiles a branch's elements with the shared options
func parseBranch(body []Element, opts *Options) ([]Node, error) {
	if len(body) == 0 {
		return nil, nil
	}
	root, err := Parse(body, opts)
	if err != nil {
		return nil, err
	}
	return root.Children, nil
}

// ParseAssignTag compiles an {% assign x = value %} tag. The value may be
// a literal or a variable path, optionally followed by a filter chain.
func ParseAssignTag(tagName string, args []Token, opts *Options) (Node, error) {
	if len(args) == 0 || !args[0].IsIdentifier() {
		var found *Token
		if len(args) > 0 {
			found = &args[0]
		}
		return nil, NewUnexpectedTokenError(TokenKindIdentifier, found)
	}
	target := args[0].Value

	if len(args) < 2 || args[1].Type != TokenTypeAssign {
		var found *Token
		if len(args) >= 2 {
			found = &args[1]
		}
		return nil, NewUnexpectedTokenError(TokenKindAssignment, found)
	}

	if len(args) < 3 || (!args[2].IsIdentifier() && !args[2].IsLiteral()) {
		var found *Token
		if len(args) >= 3 {
			found = &args[2]
		}
		return nil, NewUnexpectedTokenError(TokenKindValue, found)
	}
	value := ArgumentFromToken(args[2])

	filters, err := parseFilters(args[3:], opts)
	if err != nil {
		return nil, err
	}

	return NewAssignNode(target, value, filters, args[0].Position), nil
}

// Additional token kind names used in tag diagnostics
const (
	TokenKindIdentifier = "identifier"
	TokenKindAssignment = "assignment"
	TokenKindComparison = "comparison operator"
)
