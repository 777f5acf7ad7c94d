// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parse complete", slog.Int("nodes", 12))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below Debug and is used by the
// parser for per-lookup cache diagnostics.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. When pretty printing is enabled
// the text format styles keys and values with lipgloss, degrading to plain
// text when the output is not a terminal.
//
// # Zero Value
//
// The zero [Logger] discards everything, so components can embed one without
// requiring callers to configure logging.
package log
