package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// normalize deep-copies a decoded tree, re-keying maps with non-string keys
// by the keys' string form.
func normalize(x any) any {
	switch t := x.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = normalize(v)
		}

		return m

	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[fmt.Sprint(k)] = normalize(v)
		}

		return m

	case map[string]string:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = v
		}

		return m

	case []any:
		l := make([]any, len(t))
		for i, v := range t {
			l[i] = normalize(v)
		}

		return l

	case []string:
		l := make([]any, len(t))
		for i, v := range t {
			l[i] = v
		}

		return l
	}

	return x
}

// lookup returns the value at a dotted path. Numeric segments index lists.
func lookup(tree map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var cur any = tree

	for seg := range strings.SplitSeq(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}

			cur = v

		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}

			cur = node[i]

		default:
			return nil, false
		}
	}

	return cur, true
}

// insert stores v in out at a dotted path, creating intermediate maps and
// replacing non-map values in the way.
func insert(out map[string]any, path string, v any) {
	segs := strings.Split(path, ".")
	cur := out

	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}

		cur = next
	}

	cur[segs[len(segs)-1]] = v
}

// paths returns every addressable path of tree in sorted order.
func paths(tree map[string]any) []string {
	var out []string

	var walk func(prefix string, x any)

	walk = func(prefix string, x any) {
		if prefix != "" {
			out = append(out, prefix)
			prefix += "."
		}

		switch t := x.(type) {
		case map[string]any:
			for k, v := range t {
				walk(prefix+k, v)
			}

		case []any:
			for i, v := range t {
				walk(prefix+strconv.Itoa(i), v)
			}
		}
	}

	walk("", tree)
	slices.Sort(out)

	return out
}
