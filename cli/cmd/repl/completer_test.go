package repl

import (
	"slices"
	"testing"
)

func TestWordBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"dot_separated", "bar.baz", 7, "baz", 4, 7},
		{"after_sigil", "$ser", 4, "ser", 1, 4},
		{"in_coalesce", "$a ?? $fo", 9, "fo", 7, 9},
		{"in_clause", "if ($env equals pr", 18, "pr", 16, 18},
		{"after_paren", "then ($po", 9, "po", 7, 9},
		{"empty_at_boundary", "$a ?? ", 6, "", 6, 6},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		// Hyphens and underscores are part of keys.
		{"hyphenated", "log-pretty", 10, "log-pretty", 0, 10},
		{"hyphenated_after_dot", "$config.log_level", 17, "log_level", 8, 17},
		{"empty_after_dot", "server.", 7, "", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wordStart int
		want      string
	}{
		{"top_level", "fo", 0, ""},
		{"bare_chain", "server.http.", 12, "server.http"},
		{"reference", "$db.primary.", 12, "db.primary"},
		{"after_coalesce", "$a ?? $db.", 10, "db"},
		{"after_paren", "then ($db.", 10, "db"},
		{"no_chain", "$a ?? ", 6, ""},
		{"partial_word", "$db.ho", 4, "db"},
		{"hyphenated_chain", "$config.log-pretty.", 19, "config.log-pretty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := parentPath(tt.input, tt.wordStart); got != tt.want {
				t.Errorf("parentPath(%q, %d) = %q, want %q",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestChildCandidates(t *testing.T) {
	t.Parallel()

	paths := []string{
		"db",
		"db.host",
		"db.port",
		"db.replicas",
		"db.replicas.0",
		"db.replicas.1",
		"env",
		"server",
		"server.host",
	}

	tests := []struct {
		parent string
		want   []string
	}{
		{"", []string{"db", "env", "server"}},
		{"db", []string{"host", "port", "replicas"}},
		{"db.replicas", []string{"0", "1"}},
		{"env", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			t.Parallel()

			if got := childCandidates(paths, tt.parent); !slices.Equal(got, tt.want) {
				t.Errorf("childCandidates(%q) = %q, want %q", tt.parent, got, tt.want)
			}
		})
	}
}

func TestFormatPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, "null"},
		{"map", map[string]any{"a": 1, "b": 2}, "{ 2 keys }"},
		{"list", []any{1, 2, 3}, "[ 3 items ]"},
		{"short", "{{ $a ?? b }}", "{{ $a ?? b }}"},
		{
			"long",
			"{{ if ($env equals production) then (enabled) else (disabled) }}",
			"{{ if ($env equals production) then (...",
		},
		{"number", 8080, "8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPreview(tt.v); got != tt.want {
				t.Errorf("formatPreview(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
