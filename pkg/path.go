package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name used to construct per-user directories and
// the prefix of environment variable identifiers.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		for _, sub := range []struct {
			rex *regexp.Regexp
			rep string
		}{
			{regexp.MustCompile(`^__debug_bin\d+$`), Name},
			{regexp.MustCompile(`^\.+`), ""},
		} {
			id = sub.rex.ReplaceAllString(id, sub.rep)
		}

		if id == "" {
			return Name
		}

		return id
	},
)

// EnvPrefix returns the prefix of environment variables recognized by the
// command line, for example "CONF_".
func EnvPrefix() string {
	return strings.ToUpper(
		strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				return r
			default:
				return '_'
			}
		}, Prefix()),
	) + "_"
}

// ConfigDir returns the directory holding the command line's own
// configuration file.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the directory used for transient files such as the
// interactive shell history.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// DataDir returns the default root of the versioned configuration store.
//
//nolint:gochecknoglobals
var DataDir = sync.OnceValue(
	func() string {
		if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok && dir != "" {
			return filepath.Join(dir, Prefix())
		}

		return userDir(
			func() (string, error) {
				home, err := os.UserHomeDir()

				return filepath.Join(home, ".local", "share"), err
			},
			filepath.Join(".local", "share"),
		)
	},
)

// userDir resolves a per-user directory with lookup, falling back to
// home/fallback and then the working directory.
func userDir(lookup func() (string, error), fallback string) string {
	dir, err := lookup()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
