package cmd

import "github.com/ardnew/kumihan/notation"

// Error is the structured error type returned by every subcommand. It is the
// parser's error type, so attributes attached by either layer are logged
// together.
type Error = notation.Error

var (
	ErrOpenSource   = notation.NewError("open source")
	ErrParserConfig = notation.NewError("invalid parser configuration")
	ErrFormat       = notation.NewError("format output")
	ErrFindings     = notation.NewError("validation found problems")
	ErrWriteConfig  = notation.NewError("write configuration file")
	ErrFileExists   = notation.NewError("file exists (use --force to overwrite)")
)
