package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/klauspost/readahead"

	"github.com/ardnew/kumihan/notation"
)

var (
	styleSource  = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleFinding = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Validate reports structural and syntax problems without building output.
// It fails when any source has findings.
type Validate struct {
	Sources []string `arg:"" default:"-" help:"Source files or '-' for stdin." name:"source"`
}

// Run executes the validate command.
func (v *Validate) Run(ctx context.Context) error {
	return v.run(ctx, os.Stdout)
}

func (v *Validate) run(ctx context.Context, w io.Writer) error {
	srcs, err := openSources(v.Sources)
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	c, err := newCoordinator(ctx)
	if err != nil {
		return err
	}

	findings := 0

	for _, src := range srcs {
		data, err := readAll(src)
		if err != nil {
			return ErrOpenSource.Wrap(err).With(slog.String("path", src.name))
		}

		diags := c.Validate(ctx, data, notation.NewParseContext(src.name))
		findings += len(diags)

		if len(diags) == 0 {
			fmt.Fprintln(w, styleSource.Render(src.name)+" "+styleOK.Render("ok"))

			continue
		}

		fmt.Fprintln(w, styleSource.Render(src.name))

		for _, d := range diags {
			fmt.Fprintln(w, "  "+styleFinding.Render("✗ "+d))
		}
	}

	if findings > 0 {
		return ErrFindings.With(slog.Int("count", findings))
	}

	return nil
}

func readAll(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)

	return string(data), err
}
