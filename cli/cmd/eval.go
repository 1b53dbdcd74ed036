package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/k3tzchen/conf/lang"
)

// Eval evaluates an ad-hoc directive against a stored configuration.
type Eval struct {
	Name      string   `arg:""             help:"Configuration name"                                     name:"name"`
	Directive []string `arg:""             help:"Directive, $reference, or directive body to evaluate" name:"directive"`
	Version   string   `default:"latest"   help:"Version to read"                                        short:"V"`
	Output    string   `default:"text"     enum:"text,yaml,json" help:"Output format"                    short:"o"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	s, err := storeFrom(ctx)
	if err != nil {
		return err
	}

	c, err := s.Load(ctx, e.Name, e.Version)
	if err != nil {
		return err
	}

	v, err := c.Eval(strings.Join(e.Directive, " "))
	if err != nil {
		return err
	}

	if e.Output != "text" {
		return write(ctx, e.Output, v)
	}

	_, err = fmt.Fprintln(outputFrom(ctx), lang.FromNative(v).String())

	return err
}
