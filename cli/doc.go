// Package cli contains the command line interface for conf.
//
// # Usage
//
// Every command operates on a named configuration in the store:
//
//	conf put app ./app.yaml --bump=minor
//	conf get app server.port
//	conf eval app '{{ if ($env equals prod) then (on) else (off) }}'
//	conf repl app
//
// # Store
//
// New versions are written under --root. The roots listed in the
// environment variable named by [store.PathVar] are searched as well, in
// order, when reading. --format selects the encoding of new versions.
//
// # Configuration File
//
// Default flag values are read from config.<ext> in [pkg.ConfigDir], one
// file per supported format. The file is an ordinary configuration tree, so
// its values may use directives and references:
//
//	log:
//	  level: debug
//	  pretty: true
//	root: "{{ $CONF_ROOT ?? /srv/conf }}"
//
// A flag is looked up under its own name, with hyphens replaced by
// underscores, and with hyphens as path separators. Command-line flags
// override config file values. The init command writes the current flag
// values to the default file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o conf .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/conf/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	conf --log-level=debug --pprof-mode=cpu get app
//
//	# Store new versions as compressed CBOR
//	conf --format=cbor.zst put app ./app.json
package cli
