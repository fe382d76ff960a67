package liquify

// Version is the current library version
const Version = "0.1.0"

// Default engine limits
const (
	// DefaultMaxIncludeDepth bounds snippet recursion so self-including
	// snippets fail with a clear error instead of exhausting the stack.
	// Use 0 for unlimited depth.
	DefaultMaxIncludeDepth = 100
)

// Built-in tag and block names
const (
	TagNameInclude = "include"
	TagNameAssign  = "assign"
	TagNameComment = "comment"
	TagNameRaw     = "raw"
	TagNameIf      = "if"
	TagNameElse    = "else"
)

// Built-in filter names
const (
	FilterNameSize       = "size"
	FilterNameUpcase     = "upcase"
	FilterNameDowncase   = "downcase"
	FilterNameCapitalize = "capitalize"
	FilterNameAppend     = "append"
	FilterNamePrepend    = "prepend"
	FilterNameDefault    = "default"
	FilterNameStrip      = "strip"
)

// Source driver names
const (
	SourceDriverMemory     = "memory"
	SourceDriverFilesystem = "filesystem"
	SourceDriverPostgres   = "postgres"
)

// String value constants - no magic strings in code
const (
	StringValueEmpty = ""
	ParentDirName    = ".."
)

// Log message constants
const (
	LogMsgTemplateParsed   = "template parsed"
	LogMsgTemplateRendered = "template rendered"
	LogMsgTagRegistered    = "custom tag registered"
	LogMsgFilterRegistered = "custom filter registered"
)

// Log field name constants
const (
	LogFieldSource   = "source_length"
	LogFieldElements = "elements"
	LogFieldTag      = "tag"
	LogFieldFilter   = "filter"
	LogFieldSnippet  = "snippet"
	LogFieldOutput   = "output_length"
)
