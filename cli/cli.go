package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/k3tzchen/conf/cli/cmd"
	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/log"
	"github.com/k3tzchen/conf/pkg"
	"github.com/k3tzchen/conf/store"
)

// CLI is the top-level command-line interface for conf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Root   string `default:"${root}"   help:"Store root receiving writes; ${pathVar} lists more roots to read" short:"r" type:"path"`
	Format string `default:"${format}" help:"Format of new versions (${formats}), optionally with .zst"`

	Get      cmd.Get      `cmd:"" help:"Print resolved values"`
	Raw      cmd.Raw      `cmd:"" help:"Print stored values without resolving them"`
	Eval     cmd.Eval     `cmd:"" help:"Evaluate a directive against a configuration"`
	Hash     cmd.Hash     `cmd:"" help:"Print the fingerprint of a configuration"`
	Versions cmd.Versions `cmd:"" help:"List stored versions"`
	Put      cmd.Put      `cmd:"" help:"Store a new version"`
	Repl     cmd.Repl     `cmd:"" help:"Explore a configuration interactively"`
	Fmt      cmd.Fmt      `cmd:"" help:"Convert between configuration formats"`
	Init     cmd.Init     `cmd:"" help:"Initialize configuration file"`
}

// Run executes the conf CLI with the given context and arguments.
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

	files := configFiles()

	vars := kong.Vars{
		cmd.ConfigIdentifier: files[0],
		cmd.CacheIdentifier:  pkg.CacheDir(),
		cmd.RootIdentifier:   pkg.DataDir(),
		"pathVar":            store.PathVar(),
		"format":             store.DefaultFormat,
		"formats":            strings.Join(format.Names(), ", "),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	opts := []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
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
		vars,
	}

	for _, file := range files {
		_, ext, _ := format.Split(file)
		opts = append(opts, kong.Configuration(resolve(ext), file))
	}

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	if _, err := format.Lookup(cli.Format); err != nil {
		return err
	}

	roots := store.Search(cli.Root)
	if len(roots) == 0 {
		roots = []string{pkg.DataDir()}
	}

	log.DebugContext(ctx, "store",
		slog.String("root", roots[0]),
		slog.Any("search", roots[1:]),
		slog.String("format", cli.Format),
	)

	s := store.New(roots[0],
		store.WithSearchPath(roots[1:]...),
		store.WithFormat(cli.Format),
		store.WithLogger(log.Default()),
	)

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithStore(ctx, s)

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
