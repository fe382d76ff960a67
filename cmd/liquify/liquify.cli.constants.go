package main

// Command names
const (
	CmdNameRender  = "render"
	CmdNameCheck   = "check"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagSnippets = "snippets"
	FlagOutput   = "output"
	FlagVerbose  = "verbose"
	FlagFormat   = "format"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagSnippetsShort = "s"
	FlagOutputShort   = "o"
	FlagVerboseShort  = "v"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// File permissions for output files
const (
	FilePermissions = 0644
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgInvalidData       = "invalid data document"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgParseFailed       = "template compilation failed"
	ErrMsgRenderFailed      = "template rendering failed"
	ErrMsgSourceFailed      = "failed to open snippet source"
	ErrMsgInvalidFormat     = "invalid output format"
)

// Status messages
const (
	MsgTemplateOK = "template OK"
)

// Help text templates
const (
	HelpMainUsage = `go-liquify - Liquid-style templating CLI

Usage:
    liquify <command> [options]

Commands:
    render      Render a template with data
    check       Compile a template without rendering
    version     Show version information
    help        Show help for a command

Use "liquify help <command>" for more information about a command.`

	HelpRenderUsage = `Render a template with data

Usage:
    liquify render [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -d, --data <doc>        Inline data document (YAML or JSON)
    -f, --data-file <file>  Data file (YAML or JSON)
    -s, --snippets <dir>    Snippet directory for {% include %} lookups
    -o, --output <file>     Output file (default: stdout)
    -v, --verbose           Enable debug logging

Examples:
    liquify render -t page.liquid -d '{"name": "Alice"}'
    liquify render -t page.liquid -f data.yaml -s ./snippets
    cat page.liquid | liquify render -t - -d 'name: Bob'
    liquify render -t page.liquid -f data.yaml -o page.txt`

	HelpCheckUsage = `Compile a template without rendering

Snippet lookups happen at compile time, so check also verifies that
every {% include %} resolves.

Usage:
    liquify check [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -s, --snippets <dir>    Snippet directory for {% include %} lookups

Examples:
    liquify check -t page.liquid -s ./snippets
    cat page.liquid | liquify check -t -`

	HelpVersionUsage = `Show version information

Usage:
    liquify version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    liquify help [command]`
)

// Version output
const (
	VersionTextTemplate = "go-liquify version %s\nGo: %s"
)

// Output format strings
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
