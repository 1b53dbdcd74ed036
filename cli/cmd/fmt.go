package cmd

import (
	"context"
	"log/slog"

	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/log"
)

// Fmt converts a configuration file between formats.
type Fmt struct {
	Source string `arg:""         help:"Source file or '-' for stdin" name:"source" default:"-"`
	From   string `default:"yaml" help:"Format of stdin"`
	To     string `default:"yaml" help:"Output format (yaml, json, jsonc, hcl, cbor)" short:"t"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) error {
	tree, err := readSource(f.Source, f.From)
	if err != nil {
		return err
	}

	c, err := format.Lookup(f.To)
	if err != nil {
		return ErrOutput.Wrap(err).With(slog.String("format", f.To))
	}

	log.DebugContext(ctx, "fmt",
		slog.String("source", f.Source),
		slog.String("to", c.Name()),
	)

	return c.Encode(outputFrom(ctx), tree)
}
