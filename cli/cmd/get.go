package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/log"
)

// Get prints resolved values from a stored configuration.
type Get struct {
	Name      string   `arg:"" help:"Configuration name"                                    name:"name"`
	Paths     []string `arg:"" help:"Dotted paths to resolve (default: every top-level key)" name:"path" optional:""`
	Version   string   `default:"latest" help:"Version to read"                                short:"V"`
	Output    string   `default:"yaml"   enum:"yaml,json" help:"Output format"                 short:"o"`
	Transform string   `help:"Program applied to each value, with variables value and path" short:"t"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	s, err := storeFrom(ctx)
	if err != nil {
		return err
	}

	c, err := s.Load(ctx, g.Name, g.Version)
	if err != nil {
		return err
	}

	paths := g.Paths
	if len(paths) == 0 {
		paths = slices.Sorted(maps.Keys(c.Tree()))
	}

	var out map[string]any

	if g.Transform != "" {
		fn, err := compileTransform(g.Transform)
		if err != nil {
			return err
		}

		out, err = c.Transform(fn, paths...)
		if err != nil {
			return err
		}
	} else if out, err = c.Get(paths...); err != nil {
		return err
	}

	log.DebugContext(ctx, "get",
		slog.String("name", g.Name),
		slog.String("version", g.Version),
		slog.Int("paths", len(paths)),
	)

	return write(ctx, g.Output, out)
}

// Raw prints stored values without resolving directives or references.
type Raw struct {
	Name    string   `arg:"" help:"Configuration name"                              name:"name"`
	Paths   []string `arg:"" help:"Dotted paths to print (default: the whole tree)" name:"path" optional:""`
	Version string   `default:"latest" help:"Version to read"                          short:"V"`
	Output  string   `default:"yaml"   enum:"yaml,json" help:"Output format"           short:"o"`
}

// Run executes the raw command.
func (r *Raw) Run(ctx context.Context) error {
	s, err := storeFrom(ctx)
	if err != nil {
		return err
	}

	c, err := s.Load(ctx, r.Name, r.Version)
	if err != nil {
		return err
	}

	if len(r.Paths) == 0 {
		return write(ctx, r.Output, c.Tree())
	}

	return write(ctx, r.Output, c.Raw(r.Paths...))
}

// Hash prints the fingerprint of a stored configuration.
type Hash struct {
	Name    string `arg:"" help:"Configuration name" name:"name"`
	Version string `default:"latest" help:"Version to read" short:"V"`
}

// Run executes the hash command.
func (h *Hash) Run(ctx context.Context) error {
	s, err := storeFrom(ctx)
	if err != nil {
		return err
	}

	c, err := s.Load(ctx, h.Name, h.Version)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(outputFrom(ctx), c.Hash())

	return err
}

// Versions lists the stored versions of a configuration, newest last.
type Versions struct {
	Name string `arg:"" help:"Configuration name" name:"name"`
}

// Run executes the versions command.
func (v *Versions) Run(ctx context.Context) error {
	s, err := storeFrom(ctx)
	if err != nil {
		return err
	}

	vs, err := s.Versions(v.Name)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	for _, ver := range vs {
		if _, err := fmt.Fprintln(w, ver); err != nil {
			return err
		}
	}

	return nil
}

// write encodes v to the command output in the format named by ext.
func write(ctx context.Context, ext string, v any) error {
	c, err := format.Lookup(ext)
	if err != nil {
		return ErrOutput.Wrap(err).With(slog.String("format", ext))
	}

	return c.Encode(outputFrom(ctx), v)
}
