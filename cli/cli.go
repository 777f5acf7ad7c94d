package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kumihan/cli/cmd"
	"github.com/ardnew/kumihan/pkg"
)

// CLI is the top-level command-line interface for kumihan.
type CLI struct {
	Log    logConfig    `embed:"" group:"log"    prefix:"log-"`
	Pprof  pprofConfig  `embed:"" group:"pprof"  prefix:"pprof-"`
	Parser parserConfig `embed:"" group:"parser"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Parse    cmd.Parse    `cmd:"" default:"withargs" help:"Parse documents and print the node tree."`
	Validate cmd.Validate `cmd:""                    help:"Report problems in documents."`
	Info     cmd.Info     `cmd:""                    help:"Print parser information."`
	Init     cmd.Init     `cmd:""                    help:"Write a configuration file with the current settings."`
}

// Run executes the kumihan CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(configFile)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		"version":            pkg.Name + " " + pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Parser.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so that parse errors are logged with the
	// requested configuration regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), cli.Parser.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithParserConfig(ctx, cli.Parser.config())

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
