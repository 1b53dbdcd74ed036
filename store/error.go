package store

import "github.com/k3tzchen/conf/pkg"

var (
	// ErrNotFound is returned when no stored configuration matches a name
	// and version.
	ErrNotFound = pkg.ErrReference.Kind("configuration not found")
	// ErrExists is returned when a write would replace an existing file
	// without permission to overwrite it.
	ErrExists = pkg.ErrIO.Kind("file exists")
	// ErrWrite reports a failed write.
	ErrWrite = pkg.ErrIO.Kind("write failed")
	// ErrName is returned for a configuration name that cannot be used as
	// a directory name.
	ErrName = pkg.ErrSyntax.Kind("invalid configuration name")
)
