// Package cli contains the command line interface for kumihan.
//
// # Usage
//
//	kumihan [flags] <command> [args]
//
// Commands:
//
//   - parse [source...]: print the node tree as JSON (default), YAML or an
//     indented tree, with --metrics writing Prometheus text to stderr
//   - validate [source...]: report problems; exits non-zero on findings
//   - info: print parser name, version, formats and capabilities
//   - init: write the configuration file from the current flag values
//
// parse is the default command, so "kumihan doc.txt" parses doc.txt. A
// source of "-" reads standard input.
//
// # Configuration
//
// Flags may be set in a YAML file at $XDG_CONFIG_HOME/kumihan/config.yaml
// (see [os.UserConfigDir]). Keys are flag names with hyphens or
// underscores, optionally grouped by prefix:
//
//	log_level: debug
//	parser:
//	  workers: 8
//	chunk_max_lines: 1000
//
// Command-line flags override the file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Parser Options
//
// --chunk-min-lines, --chunk-max-lines, --parallel-threshold, --workers,
// --memory-warning-mb, --memory-critical-mb, --memory-sample-interval,
// --chunk-timeout, --document-timeout, --line-cache-size and
// --result-cache-size map onto the fields of notation.Config.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o kumihan .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/kumihan/pprof)
package cli
