package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLexer_Tokenize_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Element
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:  "simple text",
			input: "Hello, world!",
			expected: []Element{
				{Type: ElementTypeText, Raw: "Hello, world!", Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "multiline text",
			input: "Line 1\nLine 2\nLine 3",
			expected: []Element{
				{Type: ElementTypeText, Raw: "Line 1\nLine 2\nLine 3", Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "text with special characters",
			input: "Hello <world> & \"friends\"!",
			expected: []Element{
				{Type: ElementTypeText, Raw: "Hello <world> & \"friends\"!", Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "lone braces are text",
			input: "a { b } c",
			expected: []Element{
				{Type: ElementTypeText, Raw: "a { b } c", Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements, err := Tokenize(tt.input, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, elements)
		})
	}
}

func TestLexer_Tokenize_Output(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTokens []Token
	}{
		{
			name:  "bare identifier",
			input: "{{ num }}",
			wantTokens: []Token{
				{Type: TokenTypeIdentifier, Value: "num", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			name:  "dotted path",
			input: "{{ user.name }}",
			wantTokens: []Token{
				{Type: TokenTypeIdentifier, Value: "user.name", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			// Hyphens join into the identifier; there is no subtraction
			name:  "hyphenated identifier",
			input: "{{ num-1 }}",
			wantTokens: []Token{
				{Type: TokenTypeIdentifier, Value: "num-1", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			name:  "double quoted string",
			input: `{{ "hello" }}`,
			wantTokens: []Token{
				{Type: TokenTypeString, Value: "hello", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			name:  "single quoted string",
			input: "{{ 'hello' }}",
			wantTokens: []Token{
				{Type: TokenTypeString, Value: "hello", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			name:  "integer",
			input: "{{ 42 }}",
			wantTokens: []Token{
				{Type: TokenTypeNumber, Value: "42", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			name:  "float",
			input: "{{ 4.2 }}",
			wantTokens: []Token{
				{Type: TokenTypeNumber, Value: "4.2", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			name:  "boolean",
			input: "{{ true }}",
			wantTokens: []Token{
				{Type: TokenTypeBool, Value: "true", Position: Position{Offset: 3, Line: 1, Column: 4}},
			},
		},
		{
			name:  "filter chain",
			input: "{{ num | size }}",
			wantTokens: []Token{
				{Type: TokenTypeIdentifier, Value: "num", Position: Position{Offset: 3, Line: 1, Column: 4}},
				{Type: TokenTypePipe, Position: Position{Offset: 7, Line: 1, Column: 8}},
				{Type: TokenTypeIdentifier, Value: "size", Position: Position{Offset: 9, Line: 1, Column: 10}},
			},
		},
		{
			name:  "filter with arguments",
			input: `{{ name | append: "!", "?" }}`,
			wantTokens: []Token{
				{Type: TokenTypeIdentifier, Value: "name", Position: Position{Offset: 3, Line: 1, Column: 4}},
				{Type: TokenTypePipe, Position: Position{Offset: 8, Line: 1, Column: 9}},
				{Type: TokenTypeIdentifier, Value: "append", Position: Position{Offset: 10, Line: 1, Column: 11}},
				{Type: TokenTypeColon, Position: Position{Offset: 16, Line: 1, Column: 17}},
				{Type: TokenTypeString, Value: "!", Position: Position{Offset: 18, Line: 1, Column: 19}},
				{Type: TokenTypeComma, Position: Position{Offset: 21, Line: 1, Column: 22}},
				{Type: TokenTypeString, Value: "?", Position: Position{Offset: 23, Line: 1, Column: 24}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements, err := Tokenize(tt.input, zap.NewNop())
			require.NoError(t, err)
			require.Len(t, elements, 1)
			assert.Equal(t, ElementTypeOutput, elements[0].Type)
			assert.Equal(t, tt.input, elements[0].Raw)
			assert.Equal(t, tt.wantTokens, elements[0].Tokens)
		})
	}
}

func TestLexer_Tokenize_Tags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantArgs []Token
	}{
		{
			name:     "include with quoted name",
			input:    `{% include "header" %}`,
			wantName: "include",
			wantArgs: []Token{
				{Type: TokenTypeString, Value: "header", Position: Position{Offset: 11, Line: 1, Column: 12}},
			},
		},
		{
			name:     "include with bare name",
			input:    "{% include header %}",
			wantName: "include",
			wantArgs: []Token{
				{Type: TokenTypeIdentifier, Value: "header", Position: Position{Offset: 11, Line: 1, Column: 12}},
			},
		},
		{
			name:     "include with path-like name",
			input:    "{% include example.liquid %}",
			wantName: "include",
			wantArgs: []Token{
				{Type: TokenTypeIdentifier, Value: "example.liquid", Position: Position{Offset: 11, Line: 1, Column: 12}},
			},
		},
		{
			name:     "assign",
			input:    "{% assign x = 5 %}",
			wantName: "assign",
			wantArgs: []Token{
				{Type: TokenTypeIdentifier, Value: "x", Position: Position{Offset: 10, Line: 1, Column: 11}},
				{Type: TokenTypeAssign, Position: Position{Offset: 12, Line: 1, Column: 13}},
				{Type: TokenTypeNumber, Value: "5", Position: Position{Offset: 14, Line: 1, Column: 15}},
			},
		},
		{
			name:     "if with comparison",
			input:    "{% if num > 3 %}",
			wantName: "if",
			wantArgs: []Token{
				{Type: TokenTypeIdentifier, Value: "num", Position: Position{Offset: 6, Line: 1, Column: 7}},
				{Type: TokenTypeComparison, Value: ">", Position: Position{Offset: 10, Line: 1, Column: 11}},
				{Type: TokenTypeNumber, Value: "3", Position: Position{Offset: 12, Line: 1, Column: 13}},
			},
		},
		{
			name:     "if with contains",
			input:    `{% if name contains "a" %}`,
			wantName: "if",
			wantArgs: []Token{
				{Type: TokenTypeIdentifier, Value: "name", Position: Position{Offset: 6, Line: 1, Column: 7}},
				{Type: TokenTypeComparison, Value: "contains", Position: Position{Offset: 11, Line: 1, Column: 12}},
				{Type: TokenTypeString, Value: "a", Position: Position{Offset: 20, Line: 1, Column: 21}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements, err := Tokenize(tt.input, zap.NewNop())
			require.NoError(t, err)
			require.Len(t, elements, 1)
			assert.Equal(t, ElementTypeTag, elements[0].Type)
			assert.Equal(t, tt.wantName, elements[0].TagName())
			assert.Equal(t, tt.wantArgs, elements[0].Args())
		})
	}
}

func TestLexer_Tokenize_Mixed(t *testing.T) {
	elements, err := Tokenize("before {{ num }} middle {% include 'x' %} after", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, elements, 5)
	assert.Equal(t, ElementTypeText, elements[0].Type)
	assert.Equal(t, "before ", elements[0].Raw)
	assert.Equal(t, ElementTypeOutput, elements[1].Type)
	assert.Equal(t, ElementTypeText, elements[2].Type)
	assert.Equal(t, " middle ", elements[2].Raw)
	assert.Equal(t, ElementTypeTag, elements[3].Type)
	assert.Equal(t, ElementTypeText, elements[4].Type)
	assert.Equal(t, " after", elements[4].Raw)
}

func TestLexer_Tokenize_Positions(t *testing.T) {
	elements, err := Tokenize("line one\n{{ num }}", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, elements, 2)
	assert.Equal(t, Position{Offset: 9, Line: 2, Column: 1}, elements[1].Position)
}

func TestLexer_Tokenize_StringEscapes(t *testing.T) {
	elements, err := Tokenize(`{{ "a\"b" }}`, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, elements, 1)
	require.Len(t, elements[0].Tokens, 1)
	assert.Equal(t, `a"b`, elements[0].Tokens[0].Value)
}

func TestLexer_Tokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "unterminated output",
			input:   "{{ num",
			wantMsg: ErrMsgUnterminatedElement,
		},
		{
			name:    "unterminated tag",
			input:   "{% include 'x'",
			wantMsg: ErrMsgUnterminatedElement,
		},
		{
			name:    "unterminated string",
			input:   `{{ "abc }}`,
			wantMsg: ErrMsgUnterminatedStr,
		},
		{
			name:    "unexpected character",
			input:   "{{ @ }}",
			wantMsg: ErrMsgUnexpectedChar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input, zap.NewNop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var le *LexerError
			assert.ErrorAs(t, err, &le)
		})
	}
}
