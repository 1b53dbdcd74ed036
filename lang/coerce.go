package lang

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

// Coerce converts a non-empty string to the first of these that applies:
// a boolean ("true" or "false", any case), a finite number, or a JSON
// literal. Objects and arrays may carry comments and trailing commas. Other
// strings, and all non-string values, are returned unchanged.
func Coerce(x any) Value {
	if v, ok := x.(Value); ok {
		if v.kind != KindString {
			return v
		}

		x = v.v
	}

	s, ok := x.(string)
	if !ok || s == "" {
		return FromNative(x)
	}

	switch {
	case strings.EqualFold(s, "true"):
		return Bool(true)
	case strings.EqualFold(s, "false"):
		return Bool(false)
	}

	t := strings.TrimSpace(s)

	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		return FromNative(i)
	}

	if f, err := strconv.ParseFloat(t, 64); err == nil &&
		!math.IsInf(f, 0) && !math.IsNaN(f) {
		return Number(f)
	}

	if v, ok := parseLiteral(t); ok {
		return FromNative(v)
	}

	return String(s)
}

func parseLiteral(s string) (any, bool) {
	if s == "" {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v, true
	}

	// Comments are only stripped inside a structure, so plain text such as
	// "80 // http" is never shortened.
	if s[0] != '{' && s[0] != '[' {
		return nil, false
	}

	if err := json.Unmarshal(jsonc.ToJSON([]byte(s)), &v); err != nil {
		return nil, false
	}

	return v, true
}
