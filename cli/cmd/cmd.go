package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/k3tzchen/conf/store"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

type (
	contextKey struct{}
	storeKey   struct{}
	outputKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithStore returns a new context.Context containing the configuration store
// used by commands.
func WithStore(ctx context.Context, s *store.Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

func storeFrom(ctx context.Context) (*store.Store, error) {
	s, ok := ctx.Value(storeKey{}).(*store.Store)
	if !ok || s == nil {
		return nil, ErrNoStore
	}

	return s, nil
}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}
