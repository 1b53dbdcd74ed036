// Package profile starts optional runtime profiling using
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag. Without it,
// [Modes] is empty and [Config.Start] returns a no-op.
//
//	stop := profile.Make(profile.WithMode("cpu"), profile.WithPath(dir)).Start()
//	defer stop.Stop()
package profile

// Tag is the build tag that enables profiling. It also names the
// subdirectory of the cache directory where profiles are written.
const Tag = "pprof"

// Config functions return all supported pprof configuration parameters.
type Config func() (mode, path string, quiet bool)

// Option modifies a [Config].
type Option func(Config) Config

// Make returns a Config with opts applied to an empty configuration.
func Make(opts ...Option) Config {
	c := Config(func() (string, string, bool) { return "", "", false })

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// Start initializes the profiler and returns an interface for stopping it.
//
// If the build tag is unset or the mode is empty or unknown, Start returns a
// no-op. Both Start and Stop are always safely callable.
func (c Config) Start() interface{ Stop() } {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode sets the profiler mode, one of [Modes].
func WithMode(mode string) Option {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath sets the profile output directory.
func WithPath(path string) Option {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet suppresses the profiler's own log messages.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

type ignore struct{}

func (ignore) Stop() {}
