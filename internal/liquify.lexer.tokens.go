package internal

import "fmt"

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token represents a lexical token inside an output or tag element
type Token struct {
	Type     TokenType // The type of token
	Value    string    // The token's value/content
	Position Position  // Source position
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	if t.Value == StringValueEmpty {
		return fmt.Sprintf("Token{%s @ %s}", t.Type, t.Position)
	}
	return fmt.Sprintf("Token{%s: %q @ %s}", t.Type, t.Value, t.Position)
}

// IsIdentifier returns true if this is an identifier token
func (t Token) IsIdentifier() bool {
	return t.Type == TokenTypeIdentifier
}

// IsString returns true if this is a string literal token
func (t Token) IsString() bool {
	return t.Type == TokenTypeString
}

// IsLiteral returns true for string, number, and bool literal tokens
func (t Token) IsLiteral() bool {
	return t.Type == TokenTypeString || t.Type == TokenTypeNumber || t.Type == TokenTypeBool
}

// NewToken creates a new token with the given type, value, and position
func NewToken(tokenType TokenType, value string, pos Position) Token {
	return Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	}
}

// NewIdentifierToken creates an identifier token
func NewIdentifierToken(name string, pos Position) Token {
	return Token{
		Type:     TokenTypeIdentifier,
		Value:    name,
		Position: pos,
	}
}

// NewStringToken creates a string literal token (value is the unquoted content)
func NewStringToken(value string, pos Position) Token {
	return Token{
		Type:     TokenTypeString,
		Value:    value,
		Position: pos,
	}
}

// NewNumberToken creates a number literal token
func NewNumberToken(value string, pos Position) Token {
	return Token{
		Type:     TokenTypeNumber,
		Value:    value,
		Position: pos,
	}
}

// NewBoolToken creates a boolean literal token
func NewBoolToken(value string, pos Position) Token {
	return Token{
		Type:     TokenTypeBool,
		Value:    value,
		Position: pos,
	}
}

// NewComparisonToken creates a comparison operator token
func NewComparisonToken(op string, pos Position) Token {
	return Token{
		Type:     TokenTypeComparison,
		Value:    op,
		Position: pos,
	}
}

// Element is a top-level template fragment produced by the lexer.
// Text elements carry no tokens; output and tag elements carry the
// token sequence found between their delimiters plus the raw source.
type Element struct {
	Type     ElementType
	Raw      string  // Original source text of the element
	Tokens   []Token // Tokens inside the delimiters (nil for text)
	Position Position
}

// String returns a human-readable representation of the element
func (e Element) String() string {
	raw := e.Raw
	if len(raw) > MaxStringDisplayLength {
		raw = raw[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("Element{%s: %q @ %s}", e.Type, raw, e.Position)
}

// IsText returns true if this is a text element
func (e Element) IsText() bool {
	return e.Type == ElementTypeText
}

// IsTag returns true if this is a tag element
func (e Element) IsTag() bool {
	return e.Type == ElementTypeTag
}

// TagName returns the tag name of a tag element, or "" for other elements
func (e Element) TagName() string {
	if e.Type != ElementTypeTag || len(e.Tokens) == 0 {
		return StringValueEmpty
	}
	if !e.Tokens[0].IsIdentifier() {
		return StringValueEmpty
	}
	return e.Tokens[0].Value
}

// Args returns the argument tokens of a tag element (everything after the name)
func (e Element) Args() []Token {
	if e.Type != ElementTypeTag || len(e.Tokens) < 2 {
		return nil
	}
	return e.Tokens[1:]
}

// NewTextElement creates a text element
func NewTextElement(raw string, pos Position) Element {
	return Element{
		Type:     ElementTypeText,
		Raw:      raw,
		Position: pos,
	}
}

// NewOutputElement creates an output element
func NewOutputElement(raw string, tokens []Token, pos Position) Element {
	return Element{
		Type:     ElementTypeOutput,
		Raw:      raw,
		Tokens:   tokens,
		Position: pos,
	}
}

// NewTagElement creates a tag element
func NewTagElement(raw string, tokens []Token, pos Position) Element {
	return Element{
		Type:     ElementTypeTag,
		Raw:      raw,
		Tokens:   tokens,
		Position: pos,
	}
}
