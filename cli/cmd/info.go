package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Info prints the parser name, version, formats and capabilities.
type Info struct {
	Format string `default:"json" enum:"json,yaml" help:"Output format (${enum})." short:"f"`
}

// Run executes the info command.
func (i *Info) Run(ctx context.Context) error {
	return i.run(ctx, os.Stdout)
}

func (i *Info) run(ctx context.Context, w io.Writer) error {
	c, err := newCoordinator(ctx)
	if err != nil {
		return err
	}

	info := c.Info()

	var data []byte

	switch i.Format {
	case "yaml":
		data, err = yaml.MarshalContext(ctx, info)
	default:
		data, err = json.MarshalIndent(info, "", strings.Repeat(" ", 2))
		data = append(data, '\n')
	}

	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", i.Format))
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
