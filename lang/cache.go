package lang

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// parseCache holds parsed directives keyed by the xxh3 hash of their
// source. Directive ASTs are immutable, so one parse is shared by every
// Config in the process.
//
//nolint:gochecknoglobals
var parseCache sync.Map

type cached struct {
	once sync.Once
	src  string
	d    *Directive
}

// parse returns the cached parse of src, parsing it on first use.
func parse(src string) *Directive {
	src = Normalize(src)

	v, _ := parseCache.LoadOrStore(xxh3.HashString(src), &cached{src: src})

	c, ok := v.(*cached)
	if !ok || c.src != src {
		// hash collision
		return Parse(src)
	}

	c.once.Do(func() { c.d = Parse(src) })

	return c.d
}

// ClearCache removes all cached directive parses.
func ClearCache() {
	parseCache.Clear()
}
