package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ardnew/kumihan/metrics"
	"github.com/ardnew/kumihan/notation"
)

// Parse parses documents and prints their node trees and diagnostics.
type Parse struct {
	Format  string `default:"json" enum:"json,yaml,tree" help:"Output format (${enum})." short:"f"`
	Indent  int    `default:"2"                          help:"Indent width for JSON and YAML output; 0 for compact." short:"i"`
	Metrics bool   `help:"Write Prometheus metrics to stderr when done."`

	Sources []string `arg:"" default:"-" help:"Source files or '-' for stdin." name:"source"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	return p.run(ctx, os.Stdout, os.Stderr)
}

func (p *Parse) run(ctx context.Context, stdout, stderr io.Writer) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	srcs, err := openSources(p.Sources)
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	registry := prometheus.NewRegistry()

	var opts []notation.Option
	if p.Metrics {
		opts = append(opts, notation.WithMetrics(metrics.NewPrometheus(registry)))
	}

	c, err := newCoordinator(ctx, opts...)
	if err != nil {
		return err
	}

	for _, src := range srcs {
		result, err := c.ParseReader(ctx, src, notation.NewParseContext(src.name))
		if err != nil {
			return err
		}

		if len(srcs) > 1 && p.Format == "tree" {
			fmt.Fprintf(stdout, "== %s\n", src.name)
		}

		err = p.write(ctx, stdout, result)
		if err != nil {
			return ErrFormat.Wrap(err).
				With(slog.String("format", p.Format), slog.String("source", src.name))
		}
	}

	if p.Metrics {
		err = metrics.WriteText(stderr, registry)
		if err != nil {
			return ErrFormat.Wrap(err).With(slog.String("format", "metrics"))
		}
	}

	return nil
}

func (p *Parse) write(ctx context.Context, w io.Writer, r *notation.ParseResult) error {
	switch p.Format {
	case "yaml":
		return r.FormatYAML(ctx, w, p.Indent)

	case "tree":
		r.Print(w)

		for _, e := range r.Errors {
			fmt.Fprintln(w, "error:", e)
		}

		for _, e := range r.Warnings {
			fmt.Fprintln(w, "warning:", e)
		}

		return nil

	default:
		return r.FormatJSON(ctx, w, p.Indent)
	}
}
