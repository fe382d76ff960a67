package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// Parser produces a renderable node tree from an element sequence
type Parser struct {
	elements []Element
	pos      int
	opts     *Options
	logger   *zap.Logger
}

// NewParser creates a new parser for the given elements and shared options
func NewParser(elements []Element, opts *Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldElements, len(elements)))
	return &Parser{
		elements: elements,
		pos:      0,
		opts:     opts,
		logger:   logger,
	}
}

// Parse compiles an element sequence against the shared compiler
// configuration. Snippet compilation re-enters here with the same options,
// so nested directives resolve against the identical registries and source.
func Parse(elements []Element, opts *Options) (*RootNode, error) {
	return NewParser(elements, opts).Parse()
}

// Parse produces the root node from the element sequence
func (p *Parser) Parse() (*RootNode, error) {
	p.logger.Debug(LogMsgParserStart)

	var nodes []Node
	for !p.isAtEnd() {
		node, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}

	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(nodes)))
	return &RootNode{Children: nodes}, nil
}

// parseElement compiles a single element into a node
func (p *Parser) parseElement() (Node, error) {
	el := p.advance()

	switch el.Type {
	case ElementTypeText:
		return NewTextNode(el.Raw, el.Position), nil
	case ElementTypeOutput:
		return parseOutput(el, p.opts)
	case ElementTypeTag:
		return p.parseTag(el)
	default:
		return nil, newParserError(ErrMsgUnknownElement, el.Position)
	}
}

// parseTag dispatches a tag element to its registered tag or block parser
func (p *Parser) parseTag(el Element) (Node, error) {
	name := el.TagName()
	if name == StringValueEmpty {
		return nil, newParserError(ErrMsgEmptyTagName, el.Position)
	}

	if tagParser, ok := p.opts.Tags[name]; ok {
		p.logger.Debug(LogMsgTagParsed, zap.String(LogFieldTag, name))
		return tagParser(name, el.Args(), p.opts)
	}

	if blockParser, ok := p.opts.Blocks[name]; ok {
		body, err := p.collectBlockBody(name, el.Position)
		if err != nil {
			return nil, err
		}
		p.logger.Debug(LogMsgBlockParsed, zap.String(LogFieldTag, name))
		return blockParser(name, el.Args(), body, p.opts)
	}

	return nil, newUnknownTagError(name, el.Position)
}

// collectBlockBody gathers the elements between a block's opening tag and
// its matching end tag, accounting for nested blocks of the same name
func (p *Parser) collectBlockBody(name string, openPos Position) ([]Element, error) {
	endName := EndTagPrefix + name
	depth := 1
	var body []Element

	for !p.isAtEnd() {
		el := p.advance()
		if el.IsTag() {
			switch el.TagName() {
			case name:
				depth++
			case endName:
				depth--
				if depth == 0 {
					return body, nil
				}
			}
		}
		body = append(body, el)
	}

	return nil, newUnclosedBlockError(name, openPos)
}

// parseOutput compiles an output element: a value followed by an optional
// filter chain
func parseOutput(el Element, opts *Options) (*OutputNode, error) {
	tokens := el.Tokens
	if len(tokens) == 0 {
		return nil, newParserError(ErrMsgEmptyOutput, el.Position)
	}

	first := tokens[0]
	if !first.IsIdentifier() && !first.IsLiteral() {
		return nil, NewUnexpectedTokenError(TokenKindValue, &first)
	}
	value := ArgumentFromToken(first)

	filters, err := parseFilters(tokens[1:], opts)
	if err != nil {
		return nil, err
	}

	return NewOutputNode(value, filters, el.Position), nil
}

// parseFilters compiles a filter chain: (PIPE name (COLON arg (COMMA arg)*)?)*
// Filter names bind at compile time, so an unknown filter fails here.
func parseFilters(tokens []Token, opts *Options) ([]FilterCall, error) {
	var filters []FilterCall
	i := 0

	for i < len(tokens) {
		if tokens[i].Type != TokenTypePipe {
			return nil, NewUnexpectedTokenError(TokenKindPipe, &tokens[i])
		}
		i++

		if i >= len(tokens) || !tokens[i].IsIdentifier() {
			return nil, newExpectedFilterNameError(tokens, i)
		}
		name := tokens[i].Value
		fn, ok := opts.Filters[name]
		if !ok {
			return nil, newUnknownFilterError(name, tokens[i].Position)
		}
		i++

		var args []Argument
		if i < len(tokens) && tokens[i].Type == TokenTypeColon {
			i++
			for {
				if i >= len(tokens) || (!tokens[i].IsIdentifier() && !tokens[i].IsLiteral()) {
					return nil, newExpectedFilterArgError(tokens, i)
				}
				args = append(args, ArgumentFromToken(tokens[i]))
				i++
				if i < len(tokens) && tokens[i].Type == TokenTypeComma {
					i++
					continue
				}
				break
			}
		}

		filters = append(filters, FilterCall{Name: name, Fn: fn, Args: args})
	}

	return filters, nil
}

// Helper methods

// current returns the current element without advancing
func (p *Parser) current() Element {
	return p.elements[p.pos]
}

// advance consumes and returns the current element
func (p *Parser) advance() Element {
	el := p.current()
	p.pos++
	return el
}

// isAtEnd returns true when all elements are consumed
func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.elements)
}

// Error helpers

func newExpectedFilterNameError(tokens []Token, i int) error {
	if i < len(tokens) {
		return NewUnexpectedTokenError(TokenKindFilterName, &tokens[i])
	}
	return NewUnexpectedTokenError(TokenKindFilterName, nil)
}

func newExpectedFilterArgError(tokens []Token, i int) error {
	if i < len(tokens) {
		return NewUnexpectedTokenError(TokenKindValue, &tokens[i])
	}
	return NewUnexpectedTokenError(TokenKindValue, nil)
}

// UnexpectedTokenError reports a directive argument of the wrong kind,
// naming the expected kind and the offending token
type UnexpectedTokenError struct {
	Expected string
	Found    *Token // nil when the token is absent entirely
}

// NewUnexpectedTokenError creates a new unexpected token error
func NewUnexpectedTokenError(expected string, found *Token) *UnexpectedTokenError {
	return &UnexpectedTokenError{
		Expected: expected,
		Found:    found,
	}
}

// Error implements the error interface
func (e *UnexpectedTokenError) Error() string {
	if e.Found == nil {
		return fmt.Sprintf(ErrFmtExpectedFoundNothing, e.Expected)
	}
	return fmt.Sprintf(ErrFmtExpectedFound, e.Expected, e.Found.String())
}

// ParserError represents a generic parser error with position
type ParserError struct {
	Message  string
	TagName  string
	Position Position
}

func newParserError(message string, pos Position) *ParserError {
	return &ParserError{
		Message:  message,
		Position: pos,
	}
}

func newUnknownTagError(name string, pos Position) *ParserError {
	return &ParserError{
		Message:  ErrMsgUnknownTag,
		TagName:  name,
		Position: pos,
	}
}

func newUnclosedBlockError(name string, pos Position) *ParserError {
	return &ParserError{
		Message:  ErrMsgUnclosedBlock,
		TagName:  name,
		Position: pos,
	}
}

func newUnknownFilterError(name string, pos Position) *ParserError {
	return &ParserError{
		Message:  ErrMsgUnknownFilter,
		TagName:  name,
		Position: pos,
	}
}

// Error implements the error interface
func (e *ParserError) Error() string {
	if e.TagName != StringValueEmpty {
		return fmt.Sprintf(ErrFmtWithPosition, e.Message+": "+e.TagName, e.Position.String())
	}
	return fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Position.String())
}

// Parser error message constants
const (
	ErrMsgUnknownElement = "unknown element type"
	ErrMsgEmptyTagName   = "tag name cannot be empty"
	ErrMsgEmptyOutput    = "output expression cannot be empty"
	ErrMsgUnknownTag     = "unknown tag"
	ErrMsgUnclosedBlock  = "block tag is never closed"
	ErrMsgUnknownFilter  = "unknown filter"
)

// Token kind names used in unexpected-token diagnostics
const (
	TokenKindValue      = "value"
	TokenKindPipe       = "pipe"
	TokenKindFilterName = "filter name"
)

// Unexpected-token diagnostic formats
const (
	ErrFmtExpectedFound        = "Expected %s, found `%s`"
	ErrFmtExpectedFoundNothing = "Expected %s, found nothing"
)
