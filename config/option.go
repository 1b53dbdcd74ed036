package config

import (
	"os"
	"strings"

	"github.com/k3tzchen/conf/log"
)

// Option configures a [Config].
type Option func(*Config)

// WithLogger sets the logger receiving Trace messages about resolution.
func WithLogger(l log.Logger) Option {
	return func(c *Config) { c.logger = l }
}

// WithEnviron replaces the process environment with env, a list of
// "KEY=VALUE" entries. Later entries override earlier ones.
func WithEnviron(env []string) Option {
	m := make(map[string]string, len(env))

	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			m[k] = v
		}
	}

	return WithLookupEnv(func(key string) (string, bool) {
		v, ok := m[key]

		return v, ok
	})
}

// WithLookupEnv sets the function used to look up environment variables.
// A nil function disables environment lookup.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(c *Config) {
		if fn == nil {
			fn = func(string) (string, bool) { return "", false }
		}

		c.lookupEnv = fn
	}
}

func applyDefaults(c *Config) {
	c.lookupEnv = os.LookupEnv
}

func applyOptions(c *Config, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
}
