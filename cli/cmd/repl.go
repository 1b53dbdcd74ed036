package cmd

import (
	"context"

	"github.com/k3tzchen/conf/cli/cmd/repl"
	"github.com/k3tzchen/conf/log"
	"github.com/k3tzchen/conf/pkg"
)

// Repl opens an interactive shell on a stored configuration.
type Repl struct {
	Name    string `arg:""           help:"Configuration name" name:"name"`
	Version string `default:"latest" help:"Version to open"    short:"V"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	s, err := storeFrom(ctx)
	if err != nil {
		return err
	}

	cacheDir := pkg.CacheDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cacheDir = dir
		}
	}

	return repl.Run(ctx, repl.Session{
		Store:   s,
		Name:    r.Name,
		Version: r.Version,
	}, cacheDir, log.Default())
}
