// Package config resolves values of a configuration tree.
//
// A [Config] wraps one immutable tree. String values may be references
// ("$db.host", looked up in the tree and then the environment) or directives
// ("{{ $port ?? 8080 }}", see package lang). [Config.Get] returns resolved
// values, [Config.Raw] the stored ones.
//
// Each path is resolved at most once per Config; results are memoized and a
// reference that leads back to itself fails with [ErrCycle]:
//
//	c := config.New(map[string]any{"a": "$b", "b": "$a"})
//	_, err := c.Get("a") // circular reference: a -> b -> a
//
// A Config is safe for concurrent use.
package config
