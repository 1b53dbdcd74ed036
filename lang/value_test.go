package lang

import (
	"reflect"
	"testing"
)

func TestCoerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		kind Kind
		want any
	}{
		{"true", "true", KindBool, true},
		{"false any case", "FaLsE", KindBool, false},
		{"integer", "42", KindNumber, int64(42)},
		{"float", "3.14", KindNumber, 3.14},
		{"padded number", " 7 ", KindNumber, int64(7)},
		{"exponent", "1e3", KindNumber, 1000.0},
		{"word", "hello", KindString, "hello"},
		{"empty", "", KindString, ""},
		{"infinity stays text", "Inf", KindString, "Inf"},
		{"object", `{"a": 1}`, KindMap, map[string]any{"a": 1.0}},
		{"list with trailing comma", `[1, 2,]`, KindList, []any{1.0, 2.0}},
		{"object with comment", "{\"a\": 1 /* one */}", KindMap, map[string]any{"a": 1.0}},
		{"trailing comment stays text", "80 // http", KindString, "80 // http"},
		{"comment only stays text", "/* note */ 1", KindString, "/* note */ 1"},
		{"json string", `"quoted"`, KindString, "quoted"},
		{"json null", "null", KindNull, nil},
		{"non-string passes", 5, KindNumber, 5},
		{"nil", nil, KindNull, nil},
		{"map passes", map[string]any{"x": "true"}, KindMap, map[string]any{"x": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Coerce(tt.in)
			if got.Kind() != tt.kind {
				t.Fatalf("Coerce(%#v).Kind() = %v, want %v", tt.in, got.Kind(), tt.kind)
			}

			if !reflect.DeepEqual(got.Native(), tt.want) {
				t.Errorf("Coerce(%#v) = %#v, want %#v", tt.in, got.Native(), tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Value
		want string
	}{
		{Null(), ""},
		{Bool(true), "true"},
		{Number(3), "3"},
		{Number(2.5), "2.5"},
		{FromNative(uint16(8)), "8"},
		{String("x"), "x"},
		{FromNative([]any{1, "a"}), `[1,"a"]`},
		{FromNative(map[string]any{"b": 1, "a": 2}), `{"a":2,"b":1}`},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.in.Kind(), got, tt.want)
		}
	}
}

func TestValue_Float(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Value
		want float64
		ok   bool
	}{
		{Number(1.5), 1.5, true},
		{FromNative(int64(-2)), -2, true},
		{Bool(true), 1, true},
		{String(" 10 "), 10, true},
		{String(""), 0, false},
		{String("ten"), 0, false},
		{String("NaN"), 0, false},
		{Null(), 0, false},
		{FromNative([]any{1}), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.in.Float()
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("%#v.Float() = (%v, %v), want (%v, %v)", tt.in.Native(), got, ok, tt.want, tt.ok)
		}
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"strings", String("bob"), String("bob"), true},
		{"different strings", String("bob"), String("Bob"), false},
		{"number and numeric string", FromNative(8080), String("8080"), true},
		{"number and float string", Number(1), String("1.0"), true},
		{"string forms are not numbers", String("1"), String("1.0"), false},
		{"bool and number", Bool(true), Number(1), true},
		{"bool and word", Bool(true), String("true"), false},
		{"null and null", Null(), Null(), true},
		{"null and empty", Null(), String(""), false},
		{"number and blank", Number(0), String(""), true},
		{"lists", FromNative([]any{1.0}), FromNative([]any{1.0}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%#v, %#v) = %v, want %v", tt.a.Native(), tt.b.Native(), got, tt.want)
			}
		})
	}
}
