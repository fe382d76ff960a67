package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/itsatony/go-liquify"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	dataDoc      string
	dataFilePath string
	snippetsDir  string
	outputPath   string
	verbose      bool
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	// Read template
	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Parse data
	data, err := loadData(cfg.dataDoc, cfg.dataFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidData, err)
		return ExitCodeInputError
	}

	// Create engine
	engine, err := buildEngine(cfg.snippetsDir, cfg.verbose)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSourceFailed, err)
		return ExitCodeInputError
	}

	result, err := engine.RenderString(string(templateSource), data)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	// Write output
	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.dataDoc, FlagData, "", "")
	fs.StringVar(&cfg.dataDoc, FlagDataShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFileShort, "", "")
	fs.StringVar(&cfg.snippetsDir, FlagSnippets, "", "")
	fs.StringVar(&cfg.snippetsDir, FlagSnippetsShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.BoolVar(&cfg.verbose, FlagVerbose, false, "")
	fs.BoolVar(&cfg.verbose, FlagVerboseShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validation
	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}

// buildEngine assembles an engine from CLI options. YAML is a superset of
// JSON, so -d and -f accept both.
func buildEngine(snippetsDir string, verbose bool) (*liquify.Engine, error) {
	var options []liquify.Option

	if snippetsDir != "" {
		source, err := liquify.NewFilesystemSource(snippetsDir)
		if err != nil {
			return nil, err
		}
		options = append(options, liquify.WithIncludeSource(source))
	}

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		options = append(options, liquify.WithLogger(logger))
	}

	return liquify.New(options...)
}

func loadData(doc, filePath string) (map[string]any, error) {
	var raw []byte

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		raw = data
	} else if doc != "" {
		raw = []byte(doc)
	} else {
		// No data provided, return empty map
		return make(map[string]any), nil
	}

	var result map[string]any
	if err := yaml.Unmarshal(raw, &result); err != nil {
		return nil, err
	}

	return result, nil
}
