package repl

import "github.com/k3tzchen/conf/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds  = pkg.ErrReference.Kind("history index out of range")
	ErrEditDeclined = pkg.NewError("decline edit")
	ErrNoStore      = pkg.ErrReference.Kind("no configuration store")
)
