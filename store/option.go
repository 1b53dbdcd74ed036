package store

import (
	"strings"

	"github.com/k3tzchen/conf/config"
	"github.com/k3tzchen/conf/log"
)

// DefaultFormat is the extension of files written by a new [Store].
const DefaultFormat = "yaml"

// Option configures a [Store].
type Option func(*Store)

// WithRegistry shares a registry between stores. Stores sharing a registry
// must read from the same roots.
func WithRegistry(r *Registry) Option {
	return func(s *Store) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithFormat sets the extension of newly written files, such as "json" or
// "yaml.zst".
func WithFormat(ext string) Option {
	return func(s *Store) {
		if ext = strings.TrimPrefix(ext, "."); ext != "" {
			s.format = ext
		}
	}
}

// WithLogger sets the logger for store operations. It is also passed to
// every loaded configuration.
func WithLogger(l log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithConfigOptions sets options applied to every loaded configuration.
func WithConfigOptions(opts ...config.Option) Option {
	return func(s *Store) { s.configOpts = append(s.configOpts, opts...) }
}

// WithSearchPath appends roots consulted for reads after the primary root.
func WithSearchPath(roots ...string) Option {
	return func(s *Store) { s.roots = append(s.roots, roots...) }
}

func applyDefaults(s *Store) {
	s.format = DefaultFormat
	s.registry = NewRegistry()
}

func applyOptions(s *Store, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
}
