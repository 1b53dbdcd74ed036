package cli

import (
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/k3tzchen/conf/config"
	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/log"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in the format named by ext.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("yaml"), "/path/to/config.yaml")
//
// The file is a configuration tree like any other, so its values may hold
// directives and references. A flag is looked up under its own name, with
// hyphens replaced by underscores, and with hyphens as path separators:
//
//	log-level: debug      # --log-level=debug
//	log_format: json      # --log-format=json
//	log:
//	  pretty: true        # --log-pretty
//	root: "{{ $CONF_ROOT ?? /srv/conf }}"
//
// Command-line flags override config file values. A file that cannot be
// decoded is logged and ignored.
func resolve(ext string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		codec, err := format.Lookup(ext)
		if err != nil {
			return nil, err
		}

		tree, err := codec.Decode(r)
		if err != nil {
			log.Warn("ignoring configuration file",
				slog.String("format", ext),
				slog.Any("error", err),
			)

			tree = nil
		}

		return resolver{config.New(tree, config.WithLogger(log.Default()))}, nil
	}
}

// resolver implements [kong.Resolver] over a configuration tree.
type resolver struct{ c *config.Config }

// Validate implements [kong.Resolver].
func (resolver) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r resolver) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, key := range flagKeys(flag.Name) {
		v, ok, err := r.c.Value(key)
		if err != nil {
			return nil, err
		}

		if ok {
			return flagValue(v), nil
		}
	}

	return nil, nil
}

// flagKeys returns the paths a flag may be configured under.
func flagKeys(name string) []string {
	return slices.Compact([]string{
		name,
		strings.ReplaceAll(name, "-", "_"),
		strings.ReplaceAll(name, "-", "."),
	})
}

// flagValue converts a resolved value to a form kong decodes. Kong requires
// numbers as strings for parsing.
func flagValue(v any) any {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)

	case int64:
		return strconv.FormatInt(t, 10)

	case uint64:
		return strconv.FormatUint(t, 10)

	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)

	case []any:
		l := make([]any, len(t))
		for i, e := range t {
			l[i] = flagValue(e)
		}

		return l
	}

	return v
}
