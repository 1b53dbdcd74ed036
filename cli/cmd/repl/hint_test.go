package repl

import (
	"strings"
	"testing"
)

func TestDetectClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantForm  string
		wantIndex int
		wantOK    bool
	}{
		{"plain path", "server.port", "", 0, false},
		{"condition", "if ($env equals prod", "if", 0, true},
		{"then", "if ($env equals prod) then (a", "if", 1, true},
		{"else", "if (x) then (a) else (", "if", 2, true},
		{"upper case", "IF (x) THEN (", "if", 1, true},
		{"quoted keyword", `if ($a equals "then"`, "if", 0, true},
		{"keyword in parens", "if (then", "if", 0, true},
		{"coalesce", "$a ?? ", "??", 1, true},
		{"coalesce in parens", "if ($a ?? b", "if", 0, true},
		{"open block", "x {{ if (", "if", 0, true},
		{"closed block", "{{ $a ?? b }} tail", "", 0, false},
		{"apostrophe", "it's ?? x", "??", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := detectClause(tt.input, len(tt.input))
			if c.form != tt.wantForm || c.index != tt.wantIndex || c.ok != tt.wantOK {
				t.Errorf("detectClause(%q) = %+v, want {form:%s index:%d ok:%v}",
					tt.input, c, tt.wantForm, tt.wantIndex, tt.wantOK)
			}
		})
	}
}

func TestDetectClause_Cursor(t *testing.T) {
	t.Parallel()

	input := "if (x) then (a) else (b)"

	if c := detectClause(input, strings.Index(input, "then")); c.index != 0 {
		t.Errorf("cursor before then: index = %d, want 0", c.index)
	}

	if c := detectClause(input, len(input)+10); c.index != 2 {
		t.Errorf("cursor past end: index = %d, want 2", c.index)
	}
}

func TestRenderClauseHint(t *testing.T) {
	t.Parallel()

	got := renderClauseHint(clause{form: "if", index: 1, ok: true})

	for _, part := range clauseForms["if"] {
		if !strings.Contains(got, part) {
			t.Errorf("renderClauseHint() = %q, missing %q", got, part)
		}
	}
}
