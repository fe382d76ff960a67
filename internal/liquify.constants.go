package internal

// TokenType represents the type of a lexical token
type TokenType string

// Token type constants
const (
	TokenTypeIdentifier TokenType = "IDENTIFIER"
	TokenTypeString     TokenType = "STRING"
	TokenTypeNumber     TokenType = "NUMBER"
	TokenTypeBool       TokenType = "BOOL"
	TokenTypePipe       TokenType = "PIPE"
	TokenTypeColon      TokenType = "COLON"
	TokenTypeComma      TokenType = "COMMA"
	TokenTypeAssign     TokenType = "ASSIGN"
	TokenTypeComparison TokenType = "COMPARISON"
)

// ElementType represents the kind of template element the lexer produces
type ElementType string

// Element type constants
const (
	ElementTypeText   ElementType = "TEXT"
	ElementTypeOutput ElementType = "OUTPUT"
	ElementTypeTag    ElementType = "TAG"
)

// NodeType identifies AST node types
type NodeType int

// Node type constants
const (
	NodeTypeRoot NodeType = iota
	NodeTypeText
	NodeTypeOutput
	NodeTypeInclude
	NodeTypeConditional
	NodeTypeAssign
	NodeTypeRaw
	NodeTypeCustom
)

// Node type string names for debugging
const (
	NodeTypeNameRoot        = "ROOT"
	NodeTypeNameText        = "TEXT"
	NodeTypeNameOutput      = "OUTPUT"
	NodeTypeNameInclude     = "INCLUDE"
	NodeTypeNameConditional = "CONDITIONAL"
	NodeTypeNameAssign      = "ASSIGN"
	NodeTypeNameRaw         = "RAW"
	NodeTypeNameCustom      = "CUSTOM"
)

// String returns the string representation of the node type
func (n NodeType) String() string {
	switch n {
	case NodeTypeRoot:
		return NodeTypeNameRoot
	case NodeTypeText:
		return NodeTypeNameText
	case NodeTypeOutput:
		return NodeTypeNameOutput
	case NodeTypeInclude:
		return NodeTypeNameInclude
	case NodeTypeConditional:
		return NodeTypeNameConditional
	case NodeTypeAssign:
		return NodeTypeNameAssign
	case NodeTypeRaw:
		return NodeTypeNameRaw
	case NodeTypeCustom:
		return NodeTypeNameCustom
	default:
		return NodeTypeNameRoot
	}
}

// Character constants
const (
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharBackslash   = '\\'
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
	CharPipe        = '|'
	CharColon       = ':'
	CharComma       = ','
	CharUnderscore  = '_'
	CharDot         = '.'
	CharHyphen      = '-'
)

// Delimiter constants - the standard Liquid {{ }} / {% %} syntax
const (
	StrOutputOpen  = "{{"
	StrOutputClose = "}}"
	StrTagOpen     = "{%"
	StrTagClose    = "%}"
)

// Tag name constants
const (
	TagNameInclude = "include"
	TagNameComment = "comment"
	TagNameRaw     = "raw"
	TagNameIf      = "if"
	TagNameElse    = "else"
	TagNameAssign  = "assign"
)

// EndTagPrefix prefixes the closing tag name of a block (e.g. "endif")
const EndTagPrefix = "end"

// Comparison operator constants
const (
	OpEquals       = "=="
	OpNotEquals    = "!="
	OpLess         = "<"
	OpGreater      = ">"
	OpLessEqual    = "<="
	OpGreaterEqual = ">="
	OpContains     = "contains"
)

// Literal keyword constants
const (
	KeywordTrue  = "true"
	KeywordFalse = "false"
	KeywordNil   = "nil"
)

// DefaultMaxIncludeDepth bounds snippet recursion so a self-including
// snippet fails with a diagnostic instead of exhausting the stack.
const DefaultMaxIncludeDepth = 100

// Token kind names used in diagnostics
const (
	TokenKindString = "string"
)

// Log message constants
const (
	LogMsgLexerCreated     = "lexer created"
	LogMsgTokenizerStart   = "starting tokenization"
	LogMsgTokenizerEnd     = "tokenization complete"
	LogMsgParserCreated    = "parser created"
	LogMsgParserStart      = "starting parse"
	LogMsgParserEnd        = "parse complete"
	LogMsgTagParsed        = "tag parsed"
	LogMsgBlockParsed      = "block parsed"
	LogMsgSnippetResolving = "resolving snippet"
	LogMsgSnippetCompiled  = "snippet compiled"
)

// Log field constants
const (
	LogFieldSource   = "source_len"
	LogFieldElements = "elements"
	LogFieldNodes    = "nodes"
	LogFieldTag      = "tag"
	LogFieldSnippet  = "snippet"
	LogFieldDepth    = "depth"
)

// String formatting constants
const (
	StringValueEmpty       = ""
	MaxStringDisplayLength = 40
	TruncatedStringLength  = 37
	TruncationSuffix       = "..."
	ErrFmtWithPosition     = "%s at %s"
)
