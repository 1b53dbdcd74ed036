package lang

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind classifies a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged configuration value. It keeps the native Go value it
// was built from, so an int leaf is still an int when converted back with
// [Value.Native].
type Value struct {
	kind Kind
	v    any
}

// Null returns the null value. The zero Value is also null.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, v: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, v: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, v: s} }

// FromNative classifies a decoded Go value. Types without a dedicated kind
// (for example time.Time from YAML) are kept as strings in form but retain
// their native value.
func FromNative(x any) Value {
	switch t := x.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case bool:
		return Value{kind: KindBool, v: t}
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Value{kind: KindNumber, v: t}
	case string:
		return Value{kind: KindString, v: t}
	case []any:
		return Value{kind: KindList, v: t}
	case map[string]any:
		return Value{kind: KindMap, v: t}
	default:
		return Value{kind: KindString, v: t}
	}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Native returns the underlying Go value.
func (v Value) Native() any { return v.v }

// Empty reports whether v is null or the empty string.
func (v Value) Empty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		s, ok := v.v.(string)

		return ok && s == ""
	}

	return false
}

// String returns the string form of v: "" for null, decimal notation for
// integral numbers, and JSON for lists and maps.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.v.(bool))
	case KindNumber:
		return formatNumber(v.v)
	case KindList, KindMap:
		b, err := json.Marshal(v.v)
		if err != nil {
			return fmt.Sprint(v.v)
		}

		return string(b)
	}

	if s, ok := v.v.(string); ok {
		return s
	}

	return fmt.Sprint(v.v)
}

// Float returns the numeric form of v and whether it is a finite number.
// Booleans convert to 1 and 0. Strings must parse as a number after
// trimming surrounding space.
func (v Value) Float() (float64, bool) {
	var f float64

	switch v.kind {
	case KindNumber:
		f = toFloat(v.v)
	case KindBool:
		if v.v.(bool) {
			f = 1
		}
	case KindString:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return 0, false
		}

		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}

	return f, !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Equal reports loose equality between a and b. Null equals only null.
// Booleans compare as 1 or 0 against numbers, numbers compare numerically
// against numeric strings, and everything else compares by string form.
func Equal(a, b Value) bool {
	numeric := func(v Value) bool { return v.kind == KindBool || v.kind == KindNumber }

	switch {
	case a.kind == KindNull || b.kind == KindNull:
		return a.kind == b.kind
	case a.kind == KindBool && b.kind == KindBool:
		return a.v.(bool) == b.v.(bool)
	case numeric(a) || numeric(b):
		af, aok := looseFloat(a)
		bf, bok := looseFloat(b)

		return aok && bok && af == bf
	default:
		return a.String() == b.String()
	}
}

// looseFloat converts for equality, where a blank string is zero.
func looseFloat(v Value) (float64, bool) {
	if v.kind == KindString && strings.TrimSpace(v.String()) == "" {
		return 0, true
	}

	f, ok := v.Float()
	if !ok {
		return 0, false
	}

	return f, true
}

func toFloat(x any) float64 {
	switch n := x.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}

	return math.NaN()
}

func formatNumber(x any) string {
	switch n := x.(type) {
	case float32:
		return formatFloat(float64(n))
	case float64:
		return formatFloat(n)
	}

	return fmt.Sprint(x)
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}
