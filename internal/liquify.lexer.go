package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Lexer splits template source into text, output, and tag elements
type Lexer struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewLexer creates a new lexer for the given source
func NewLexer(source string, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns the element sequence.
// Tokenize is a convenience over constructing a Lexer by hand.
func Tokenize(source string, logger *zap.Logger) ([]Element, error) {
	return NewLexer(source, logger).Tokenize()
}

// Tokenize processes the source and returns the element sequence
func (l *Lexer) Tokenize() ([]Element, error) {
	l.logger.Debug(LogMsgTokenizerStart)
	var elements []Element

	for !l.isAtEnd() {
		if l.matchStr(StrOutputOpen) {
			el, err := l.scanDelimited(StrOutputOpen, StrOutputClose, ElementTypeOutput)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			continue
		}

		if l.matchStr(StrTagOpen) {
			el, err := l.scanDelimited(StrTagOpen, StrTagClose, ElementTypeTag)
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			if el.TagName() == TagNameRaw {
				body, err := l.scanRawBody()
				if err != nil {
					return nil, err
				}
				elements = append(elements, body...)
			}
			continue
		}

		el := l.scanText()
		if el.Raw != StringValueEmpty {
			elements = append(elements, el)
		}
	}

	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldElements, len(elements)))
	return elements, nil
}

// scanText scans literal text until the next output or tag delimiter
func (l *Lexer) scanText() Element {
	startPos := l.currentPosition()
	var sb strings.Builder

	for !l.isAtEnd() {
		if l.matchStr(StrOutputOpen) || l.matchStr(StrTagOpen) {
			break
		}
		sb.WriteByte(l.advance())
	}

	return NewTextElement(sb.String(), startPos)
}

// scanDelimited scans an output or tag element from its opening delimiter
// through its closing delimiter, tokenizing the content in between
func (l *Lexer) scanDelimited(open, close string, elType ElementType) (Element, error) {
	startPos := l.currentPosition()
	startOffset := l.pos
	l.advanceN(len(open))

	var tokens []Token
	for {
		l.skipWhitespace()

		if l.isAtEnd() {
			return Element{}, l.newUnterminatedElementError(startPos)
		}

		if l.matchStr(close) {
			l.advanceN(len(close))
			raw := l.source[startOffset:l.pos]
			if elType == ElementTypeOutput {
				return NewOutputElement(raw, tokens, startPos), nil
			}
			return NewTagElement(raw, tokens, startPos), nil
		}

		tok, err := l.scanToken()
		if err != nil {
			return Element{}, err
		}
		tokens = append(tokens, tok)
	}
}

// scanRawBody scans the body of a {% raw %} block up to the literal
// {% endraw %} tag. The body is never tokenized: it becomes a single text
// element, so template syntax inside it is plain content and invisible to
// block matching.
func (l *Lexer) scanRawBody() ([]Element, error) {
	startPos := l.currentPosition()
	startOffset := l.pos

	for !l.isAtEnd() {
		if l.matchStr(StrTagOpen) && l.atEndRawTag() {
			var elements []Element
			if l.pos > startOffset {
				elements = append(elements, NewTextElement(l.source[startOffset:l.pos], startPos))
			}
			el, err := l.scanDelimited(StrTagOpen, StrTagClose, ElementTypeTag)
			if err != nil {
				return nil, err
			}
			return append(elements, el), nil
		}
		l.advance()
	}

	return nil, l.newUnterminatedElementError(startPos)
}

// atEndRawTag reports whether the source at the current position is an
// {% endraw %} tag, allowing whitespace around the name.
func (l *Lexer) atEndRawTag() bool {
	i := l.pos + len(StrTagOpen)
	for i < len(l.source) && isWhitespace(l.source[i]) {
		i++
	}
	endName := EndTagPrefix + TagNameRaw
	if !strings.HasPrefix(l.source[i:], endName) {
		return false
	}
	i += len(endName)
	for i < len(l.source) && isWhitespace(l.source[i]) {
		i++
	}
	return strings.HasPrefix(l.source[i:], StrTagClose)
}

// scanToken scans a single token inside a delimited element
func (l *Lexer) scanToken() (Token, error) {
	pos := l.currentPosition()
	ch := l.peek()

	switch {
	case ch == CharDoubleQuote || ch == CharSingleQuote:
		return l.scanString()

	case isDigit(ch), ch == CharHyphen && isDigit(l.peekAt(1)):
		return l.scanNumber()

	case isLetter(ch) || ch == CharUnderscore:
		return l.scanIdentifier()

	case ch == CharPipe:
		l.advance()
		return NewToken(TokenTypePipe, StringValueEmpty, pos), nil

	case ch == CharColon:
		l.advance()
		return NewToken(TokenTypeColon, StringValueEmpty, pos), nil

	case ch == CharComma:
		l.advance()
		return NewToken(TokenTypeComma, StringValueEmpty, pos), nil

	case ch == '=' && l.peekAt(1) == '=':
		l.advanceN(2)
		return NewComparisonToken(OpEquals, pos), nil

	case ch == '!' && l.peekAt(1) == '=':
		l.advanceN(2)
		return NewComparisonToken(OpNotEquals, pos), nil

	case ch == '<':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return NewComparisonToken(OpLessEqual, pos), nil
		}
		return NewComparisonToken(OpLess, pos), nil

	case ch == '>':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return NewComparisonToken(OpGreaterEqual, pos), nil
		}
		return NewComparisonToken(OpGreater, pos), nil

	case ch == '=':
		l.advance()
		return NewToken(TokenTypeAssign, StringValueEmpty, pos), nil

	default:
		return Token{}, l.newUnexpectedCharError()
	}
}

// scanString scans a quoted string literal, handling backslash escapes
func (l *Lexer) scanString() (Token, error) {
	startPos := l.currentPosition()
	quote := l.advance()

	var sb strings.Builder
	for !l.isAtEnd() {
		ch := l.peek()

		if ch == quote {
			l.advance()
			return NewStringToken(sb.String(), startPos), nil
		}

		if ch == CharBackslash && l.pos+1 < len(l.source) {
			nextCh := l.source[l.pos+1]
			if nextCh == quote || nextCh == CharBackslash {
				l.advance()
				sb.WriteByte(l.advance())
				continue
			}
		}

		sb.WriteByte(l.advance())
	}

	return Token{}, l.newUnterminatedStrError()
}

// scanNumber scans an integer or float literal
func (l *Lexer) scanNumber() (Token, error) {
	startPos := l.currentPosition()
	var sb strings.Builder

	if l.peek() == CharHyphen {
		sb.WriteByte(l.advance())
	}
	for !l.isAtEnd() && isDigit(l.peek()) {
		sb.WriteByte(l.advance())
	}
	if !l.isAtEnd() && l.peek() == CharDot && isDigit(l.peekAt(1)) {
		sb.WriteByte(l.advance())
		for !l.isAtEnd() && isDigit(l.peek()) {
			sb.WriteByte(l.advance())
		}
	}

	return NewNumberToken(sb.String(), startPos), nil
}

// scanIdentifier scans an identifier or keyword. Dots are part of the
// identifier so variable paths like "user.profile.name" lex as one token.
// Hyphens are part of the identifier too, matching Liquid's variable
// naming: "num-1" lexes as the single path "num-1", never as a
// subtraction (the syntax has no arithmetic operators).
func (l *Lexer) scanIdentifier() (Token, error) {
	startPos := l.currentPosition()
	var sb strings.Builder

	sb.WriteByte(l.advance())
	for !l.isAtEnd() {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) || ch == CharUnderscore || ch == CharHyphen || ch == CharDot {
			sb.WriteByte(l.advance())
		} else {
			break
		}
	}

	name := sb.String()
	switch name {
	case KeywordTrue, KeywordFalse:
		return NewBoolToken(name, startPos), nil
	case OpContains:
		return NewComparisonToken(OpContains, startPos), nil
	}
	return NewIdentifierToken(name, startPos), nil
}

// Helper methods

// currentPosition returns the current position
func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// isAtEnd returns true if we've reached the end of source
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// peek returns the current character without advancing
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

// peekAt returns the character n positions ahead without advancing
func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// advanceN advances by n characters
func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

// matchStr returns true if the remaining source starts with s
func (l *Lexer) matchStr(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() && isWhitespace(l.peek()) {
		l.advance()
	}
}

// Character classification helpers

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWhitespace(ch byte) bool {
	return ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet
}

// Error helpers

func (l *Lexer) newUnterminatedElementError(pos Position) error {
	return &LexerError{
		Message:  ErrMsgUnterminatedElement,
		Position: pos,
	}
}

func (l *Lexer) newUnterminatedStrError() error {
	return &LexerError{
		Message:  ErrMsgUnterminatedStr,
		Position: l.currentPosition(),
	}
}

func (l *Lexer) newUnexpectedCharError() error {
	return &LexerError{
		Message:  ErrMsgUnexpectedChar,
		Position: l.currentPosition(),
	}
}

// LexerError represents a lexer error with position
type LexerError struct {
	Message  string
	Position Position
}

func (e *LexerError) Error() string {
	return e.Message + " at " + e.Position.String()
}

// Error message constants for lexer
const (
	ErrMsgUnterminatedElement = "unterminated tag"
	ErrMsgUnterminatedStr     = "unterminated string literal"
	ErrMsgUnexpectedChar      = "unexpected character"
)
