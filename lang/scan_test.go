package lang

import "testing"

func TestScanBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		start int
		block string
		next  int
	}{
		{"simple", "(a) then", 0, "(a)", 3},
		{"nested", "if (a (b)) then", 0, "(a (b))", 10},
		{"from offset", "(a) (bc)", 3, "(bc)", 8},
		{"no paren", "abc", 0, "abc", 3},
		{"unbalanced", "x (abc", 0, "(abc", 6},
		{"quoted close", `("x)") y`, 0, `("x)")`, 6},
		{"apostrophe", "(it's) y", 0, "(it's)", 6},
		{"past end", "abc", 5, "", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			block, next := ScanBlock(tt.in, tt.start)
			if block != tt.block || next != tt.next {
				t.Errorf("ScanBlock(%q, %d) = (%q, %d), want (%q, %d)",
					tt.in, tt.start, block, next, tt.block, tt.next)
			}
		})
	}
}

func TestBalanced(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"(a)":       true,
		"((a) (b))": true,
		"(a)(b)":    false,
		"(a":        false,
		`("a)`:      false,
		"a":         false,
		"()":        true,
	}

	for in, want := range tests {
		if got := Balanced(in); got != want {
			t.Errorf("Balanced(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestStripParensAndQuotes(t *testing.T) {
	t.Parallel()

	if got := StripParens(" ((a b)) "); got != "a b" {
		t.Errorf("StripParens = %q", got)
	}

	if got := StripParens("(a)(b)"); got != "(a)(b)" {
		t.Errorf("StripParens kept = %q", got)
	}

	for in, want := range map[string]string{
		`"a"`: "a",
		`'a'`: "a",
		`"a'`: `"a'`,
		`"`:   `"`,
		"a":   "a",
	} {
		if got := TrimQuotes(in); got != want {
			t.Errorf("TrimQuotes(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsBlockAndNormalize(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"{{ x }}":   true,
		" {{x}} ":   true,
		"{{}}":      true,
		"{x}":       false,
		"{{ x":      false,
		"a {{x}} b": false,
	} {
		if got := IsBlock(in); got != want {
			t.Errorf("IsBlock(%q) = %v, want %v", in, got, want)
		}
	}

	if got := Normalize("{{ if (a)\n\t then (b)\r\n else (c) }}"); got != "{{ if (a) then (b) else (c) }}" {
		t.Errorf("Normalize = %q", got)
	}
}
