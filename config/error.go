package config

import "github.com/k3tzchen/conf/pkg"

var (
	// ErrCycle is returned when a reference leads back to a path that is
	// already being resolved. The message lists the chain, for example
	// "circular reference: a -> b -> a".
	ErrCycle = pkg.ErrReference.Kind("circular reference")
	// ErrNotCallable is returned by [Config.Transform] for a nil callback.
	ErrNotCallable = pkg.ErrType.Kind("transform is not callable")
	// ErrTransform wraps an error returned by a transform callback.
	ErrTransform = pkg.ErrType.Kind("transform failed")
)
