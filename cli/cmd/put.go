package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/log"
	"github.com/k3tzchen/conf/version"
)

// Put stores a file as a version of a configuration.
type Put struct {
	Name    string `arg:""          help:"Configuration name"                                      name:"name"`
	Source  string `arg:""          help:"Source file or '-' for stdin"                            name:"source" default:"-"`
	From    string `default:"yaml"  help:"Format of stdin"`
	Version string `help:"Version to write (default: bump the latest if the content changed)"       short:"V"`
	Bump    string `default:"patch" enum:"major,minor,patch" help:"Version part bumped by a commit" short:"b"`
	Force   bool   `help:"Overwrite an existing version"                                           short:"f"`
}

// Run executes the put command.
func (p *Put) Run(ctx context.Context) error {
	s, err := storeFrom(ctx)
	if err != nil {
		return err
	}

	tree, err := readSource(p.Source, p.From)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	if p.Version != "" {
		v, err := version.Normalize(p.Version)
		if err != nil {
			return err
		}

		if err := s.Write(ctx, p.Name, v, tree, p.Force); err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, v)

		return err
	}

	part, err := version.ParsePart(p.Bump)
	if err != nil {
		return err
	}

	v, changed, err := s.Commit(ctx, p.Name, tree, part)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "commit",
		slog.String("name", p.Name),
		slog.String("version", v),
		slog.Bool("changed", changed),
	)

	_, err = fmt.Fprintln(w, v)

	return err
}

// readSource decodes a file, or stdin in the format named by from.
func readSource(source, from string) (any, error) {
	if source != stdinSource {
		return format.ReadFile(source)
	}

	c, err := format.Lookup(from)
	if err != nil {
		return nil, err
	}

	tree, err := c.Decode(os.Stdin)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("source", "stdin"))
	}

	return tree, nil
}
