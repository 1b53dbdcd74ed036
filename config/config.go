package config

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/k3tzchen/conf/lang"
	"github.com/k3tzchen/conf/log"
)

// Config resolves the values of one configuration tree.
type Config struct {
	tree      map[string]any
	lookupEnv func(string) (string, bool)
	logger    log.Logger
	hash      func() string

	mu   sync.Mutex
	memo map[string]*entry
	deps map[string]map[string]struct{}
}

// entry is a memoized resolution. An entry that is not done is the
// sentinel: either resolution is in progress or it produced nothing.
type entry struct {
	value lang.Value
	done  bool
}

// TransformFunc maps the resolved value at path to the value returned by
// [Config.Transform].
type TransformFunc func(path string, value any) (any, error)

// New returns a Config for tree, which is deep-copied. A tree that is not a
// map yields an empty configuration.
func New(tree any, opts ...Option) *Config {
	m, ok := normalize(tree).(map[string]any)
	if !ok {
		m = map[string]any{}
	}

	c := &Config{
		tree: m,
		memo: make(map[string]*entry),
		deps: make(map[string]map[string]struct{}),
	}

	applyDefaults(c)
	applyOptions(c, opts...)

	c.hash = sync.OnceValue(func() string { return fingerprint(c.tree) })

	return c
}

// Get resolves each path and returns the results nested by their dotted
// segments, so Get("a.b") returns {"a": {"b": value}}. Lists are resolved
// element by element; maps are returned as stored. Paths absent from the
// tree are omitted.
func (c *Config) Get(paths ...string) (map[string]any, error) {
	return c.collect(paths, func(_ string, v any) (any, error) { return v, nil })
}

// Transform is like [Config.Get] but passes each resolved value through fn.
func (c *Config) Transform(fn TransformFunc, paths ...string) (map[string]any, error) {
	if fn == nil {
		return nil, ErrNotCallable
	}

	return c.collect(paths, func(path string, v any) (any, error) {
		out, err := fn(path, v)
		if err != nil {
			return nil, ErrTransform.Wrap(err).With(slog.String("path", path))
		}

		return out, nil
	})
}

// Value returns the resolved value at path and whether it exists.
func (c *Config) Value(path string) (any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := lookup(c.tree, path); !ok {
		return nil, false, nil
	}

	v, ok, err := c.resolveChain("$"+path, nil)
	if err != nil || !ok {
		return nil, false, err
	}

	return normalize(v.Native()), true, nil
}

// Eval resolves text as if it were stored in the tree: a directive is
// evaluated, a lone "$path" reference is resolved, and anything else is
// treated as the body of a directive.
func (c *Config) Eval(text string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := strings.TrimSpace(text)
	ref := strings.HasPrefix(t, "$") && !strings.ContainsAny(t, " \t\n")
	if !ref && !lang.IsBlock(lang.Normalize(t)) {
		t = "{{ " + t + " }}"
	}

	v, err := c.translate(t, nil)
	if err != nil {
		return nil, err
	}

	return normalize(v.Native()), nil
}

// Raw returns the stored values at paths without resolving them, nested
// like [Config.Get].
func (c *Config) Raw(paths ...string) map[string]any {
	out := make(map[string]any)

	for _, p := range paths {
		if v, ok := lookup(c.tree, p); ok {
			insert(out, p, normalize(v))
		}
	}

	return out
}

// Tree returns a copy of the whole stored tree.
func (c *Config) Tree() map[string]any {
	return normalize(c.tree).(map[string]any)
}

// Paths returns every addressable path in sorted order.
func (c *Config) Paths() []string {
	return paths(c.tree)
}

// Hash returns the fingerprint of the stored tree. Equal trees have equal
// fingerprints regardless of map ordering.
func (c *Config) Hash() string {
	return c.hash()
}

// Dependencies returns the sorted paths whose resolution has reached path.
func (c *Config) Dependencies(path string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Sorted(maps.Keys(c.deps[path]))
}

func (c *Config) collect(paths []string, fn TransformFunc) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]any)

	for _, p := range paths {
		if _, ok := lookup(c.tree, p); !ok {
			c.logger.Trace("path not found", slog.String("path", p))

			continue
		}

		v, ok, err := c.resolveChain("$"+p, nil)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		x, err := fn(p, normalize(v.Native()))
		if err != nil {
			return nil, err
		}

		insert(out, p, x)
	}

	return out, nil
}

// resolveChain resolves the reference ref ("$path") while the paths in
// chain are being resolved. It returns ref itself, with ok false, when the
// reference is undefined. The caller must hold c.mu.
func (c *Config) resolveChain(ref string, chain []string) (lang.Value, bool, error) {
	path := strings.TrimSpace(strings.TrimPrefix(ref, "$"))
	if path == "" {
		return lang.String(ref), false, nil
	}

	if slices.Contains(chain, path) {
		cycle := strings.Join(append(slices.Clone(chain), path), " -> ")

		c.logger.Trace("cycle", slog.String("chain", cycle))

		return lang.Value{}, false, ErrCycle.Wrap(errors.New(cycle)).
			With(slog.String("path", path))
	}

	e, seen := c.memo[path]
	if !seen {
		e = &entry{}
		c.memo[path] = e

		if raw, ok := c.variable(path); ok {
			v, err := c.translate(raw, append(chain[:len(chain):len(chain)], path))
			if err != nil {
				delete(c.memo, path)

				return lang.Value{}, false, err
			}

			e.value, e.done = v, true
		}
	}

	c.logger.Trace("resolve",
		slog.String("path", path),
		slog.Bool("memo", seen),
		slog.Bool("found", e.done),
	)

	if len(chain) > 0 {
		set := c.deps[path]
		if set == nil {
			set = make(map[string]struct{}, len(chain))
			c.deps[path] = set
		}

		for _, p := range chain {
			set[p] = struct{}{}
		}
	}

	if !e.done {
		return lang.String(ref), false, nil
	}

	return e.value, true, nil
}

// variable looks up path in the tree and then in the environment.
func (c *Config) variable(path string) (any, bool) {
	if v, ok := lookup(c.tree, path); ok {
		return v, true
	}

	if v, ok := c.lookupEnv(path); ok {
		return v, true
	}

	return nil, false
}

// translate resolves a raw value: directives are evaluated, references are
// resolved, lists are translated element-wise, and the result is coerced.
func (c *Config) translate(raw any, chain []string) (lang.Value, error) {
	switch t := raw.(type) {
	case string:
		switch {
		case lang.IsBlock(t):
			v, err := lang.NewEvaluator(
				resolver{c: c, chain: chain},
				lang.WithLogger(c.logger),
			).Evaluate(t)
			if err != nil {
				return lang.Value{}, err
			}

			return lang.Coerce(v), nil

		case strings.HasPrefix(t, "$"):
			v, _, err := c.resolveChain(t, chain)
			if err != nil {
				return lang.Value{}, err
			}

			return lang.Coerce(v), nil
		}

	case []any:
		l := make([]any, len(t))

		for i, x := range t {
			v, err := c.translate(x, chain)
			if err != nil {
				return lang.Value{}, err
			}

			l[i] = v.Native()
		}

		return lang.FromNative(l), nil
	}

	return lang.Coerce(raw), nil
}

// resolver adapts a Config to [lang.Resolver] for one resolution chain.
type resolver struct {
	c     *Config
	chain []string
}

func (r resolver) Resolve(path string) (lang.Value, bool, error) {
	return r.c.resolveChain("$"+path, r.chain)
}

// Lookup resolves a bare word naming a tree path. A word naming a path
// already being resolved stays literal text instead of forming a cycle.
func (r resolver) Lookup(path string) (lang.Value, bool, error) {
	if slices.Contains(r.chain, strings.TrimSpace(path)) {
		return lang.Value{}, false, nil
	}

	if _, ok := lookup(r.c.tree, path); !ok {
		return lang.Value{}, false, nil
	}

	return r.c.resolveChain("$"+path, r.chain)
}
