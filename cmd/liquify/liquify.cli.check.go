package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// checkConfig holds parsed check command configuration
type checkConfig struct {
	templatePath string
	snippetsDir  string
}

func runCheck(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseCheckFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgMissingTemplate, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	engine, err := buildEngine(cfg.snippetsDir, false)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSourceFailed, err)
		return ExitCodeInputError
	}

	if _, err := engine.Parse(string(templateSource)); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseFailed, err)
		return ExitCodeError
	}

	fmt.Fprintln(stdout, MsgTemplateOK)
	return ExitCodeSuccess
}

func parseCheckFlags(args []string) (*checkConfig, error) {
	fs := flag.NewFlagSet(CmdNameCheck, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &checkConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.snippetsDir, FlagSnippets, "", "")
	fs.StringVar(&cfg.snippetsDir, FlagSnippetsShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}
