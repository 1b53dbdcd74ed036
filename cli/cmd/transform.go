package cmd

import (
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/k3tzchen/conf/config"
)

// compileTransform compiles an expr-lang program into a transform applied
// to every resolved value. The program sees the variables value and path.
func compileTransform(source string) (config.TransformFunc, error) {
	program, err := expr.Compile(source, expr.Env(transformEnv(nil, "")))
	if err != nil {
		return nil, ErrTransform.Wrap(err).With(slog.String("source", source))
	}

	return func(path string, value any) (any, error) {
		return expr.Run(program, transformEnv(value, path))
	}, nil
}

func transformEnv(value any, path string) map[string]any {
	return map[string]any{
		"value": value,
		"path":  path,
	}
}
