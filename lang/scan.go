package lang

import "strings"

// ScanBlock returns the parenthesized block that begins at the first "("
// at or after start, including both parentheses, and the offset just past
// its closing ")". Quoted text is skipped, so parentheses inside quotes do
// not count.
//
// If there is no "(" the remainder s[start:] and len(s) are returned. If the
// block never closes, the remainder from "(" and len(s) are returned. Use
// [Balanced] to tell these apart from a complete block.
func ScanBlock(s string, start int) (block string, next int) {
	if start >= len(s) {
		return "", len(s)
	}

	open, end, _ := scan(s, start)

	switch {
	case open < 0:
		return s[start:], len(s)
	case end < 0:
		return s[open:], len(s)
	}

	return s[open:end], end
}

// Balanced reports whether s is a single parenthesized block: it starts
// with "(" and the matching ")" is its last byte.
func Balanced(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}

	open, end, ok := scan(s, 0)

	return ok && open == 0 && end == len(s)
}

// scan locates the first parenthesized block at or after start. open is -1
// if there is none; end is -1 if it never closes.
func scan(s string, start int) (open, end int, ok bool) {
	open, depth := -1, 0

	for i := start; i < len(s); i++ {
		switch c := s[i]; {
		case isQuote(c) && opensQuote(s, i):
			if i = closeQuote(s, i); i < 0 {
				return open, -1, false
			}
		case c == '(':
			if open < 0 {
				open = i
			}

			depth++
		case c == ')' && open >= 0:
			if depth--; depth == 0 {
				return open, i + 1, true
			}
		}
	}

	return open, -1, false
}

// StripParens removes every pair of parentheses that wraps all of s.
func StripParens(s string) string {
	s = strings.TrimSpace(s)

	for Balanced(s) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	return s
}

// TrimQuotes removes one pair of matching single or double quotes around s.
func TrimQuotes(s string) string {
	if n := len(s); n >= 2 && isQuote(s[0]) && s[n-1] == s[0] {
		return s[1 : n-1]
	}

	return s
}

// Quoted reports whether s is wrapped in one pair of matching quotes.
func Quoted(s string) bool {
	return len(s) >= 2 && isQuote(s[0]) && s[len(s)-1] == s[0]
}

// IsBlock reports whether s, ignoring surrounding space, is a directive
// wrapped in "{{" and "}}".
func IsBlock(s string) bool {
	s = strings.TrimSpace(s)

	return len(s) >= 4 && strings.HasPrefix(s, "{{") && strings.HasSuffix(s, "}}")
}

// Normalize joins the lines of s with single spaces, trimming each line.
func Normalize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return strings.TrimSpace(s)
	}

	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
	parts := lines[:0]

	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, " ")
}

// body returns the trimmed content between "{{" and "}}" of a block.
func body(s string) string {
	s = strings.TrimSpace(s)

	return strings.TrimSpace(s[2 : len(s)-2])
}

func isQuote(c byte) bool { return c == '"' || c == '\'' }

// opensQuote reports whether the quote at s[i] starts a quoted string.
// A quote directly after a letter or digit is an apostrophe.
func opensQuote(s string, i int) bool {
	if i == 0 {
		return true
	}

	return !isWordByte(s[i-1])
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' || c >= 0x80
}

// closeQuote returns the index of the quote closing the one at s[i], or -1
// if it is unterminated.
func closeQuote(s string, i int) int {
	q := s[i]

	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j
		}
	}

	return -1
}
