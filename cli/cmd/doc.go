// Package cmd implements the subcommands of the conf command line.
//
// Commands receive their dependencies through the [context.Context] passed
// to Run: the parsed [kong.Context], the configuration [store.Store], and the
// writer receiving command output.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the command line's own configuration file.
	ConfigIdentifier = "config"

	// RootIdentifier is the kong variable identifier containing the default
	// store root.
	RootIdentifier = "root"
)
