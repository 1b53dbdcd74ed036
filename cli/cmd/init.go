package cmd

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/k3tzchen/conf/format"
	"github.com/k3tzchen/conf/log"
	"github.com/k3tzchen/conf/profile"
	"github.com/k3tzchen/conf/store"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	data, err := format.Encode(confPath, i.buildTree(ctx))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = store.WriteFile(confPath, data, i.Force)
	if errors.Is(err, store.ErrExists) {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildTree maps every visible flag with a value to that value.
func (i *Init) buildTree(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)

	tree := make(map[string]any)

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if v := flagValue(ktx.FlagValue(flag)); v != nil {
			tree[flag.Name] = v
		}
	}

	return tree
}

// flagValue returns the value written for a flag, or nil if it is unset.
func flagValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		l := make([]any, len(v))
		for i, s := range v {
			l[i] = s
		}

		return l

	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v
	}

	// Named string and bool types, such as enum flags.
	switch rv := reflect.ValueOf(val); rv.Kind() {
	case reflect.String:
		return flagValue(rv.String())
	case reflect.Bool:
		return rv.Bool()
	}

	return nil
}
