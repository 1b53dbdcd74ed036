package lang

import "strings"

// tokenKind classifies a condition token.
type tokenKind uint8

const (
	tokWord   tokenKind = iota // bare text, keywords, references
	tokString                  // quoted text
	tokBlock                   // nested {{ ... }}
	tokLParen                  // (
	tokRParen                  // )
	tokOp                      // > >= < <=
)

// token is a lexeme of a condition. pos and end are byte offsets into the
// condition source.
type token struct {
	kind tokenKind
	text string
	pos  int
	end  int
}

// is reports whether t is the bare word w, ignoring case.
func (t token) is(w string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, w)
}

// lex splits a condition into tokens. It never fails: unterminated quotes
// and blocks extend to the end of the input.
func lex(src string) []token {
	var toks []token

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == ' ' || c == '\t':
			i++

			continue

		case c == '(':
			toks = append(toks, token{tokLParen, "(", i, i + 1})
			i++

		case c == ')':
			toks = append(toks, token{tokRParen, ")", i, i + 1})
			i++

		case c == '<' || c == '>':
			n := 1
			if i+1 < len(src) && src[i+1] == '=' {
				n = 2
			}

			toks = append(toks, token{tokOp, src[i : i+n], i, i + n})
			i += n

		case isQuote(c) && opensQuote(src, i):
			end := closeQuote(src, i) + 1
			if end == 0 {
				end = len(src)
			}

			toks = append(toks, token{tokString, src[i:end], i, end})
			i = end

		case strings.HasPrefix(src[i:], "{{"):
			end := closeBlock(src, i)
			toks = append(toks, token{tokBlock, src[i:end], i, end})
			i = end

		default:
			end := i
			for end < len(src) && !isDelim(src, end) {
				end++
			}

			toks = append(toks, token{tokWord, src[i:end], i, end})
			i = end
		}
	}

	return toks
}

func isDelim(src string, i int) bool {
	switch src[i] {
	case ' ', '\t', '(', ')', '<', '>':
		return true
	}

	return strings.HasPrefix(src[i:], "{{")
}

// closeBlock returns the offset just past the "}}" matching the "{{" at
// src[i], counting nested blocks.
func closeBlock(src string, i int) int {
	depth := 0

	for j := i; j+1 < len(src); j++ {
		switch src[j : j+2] {
		case "{{":
			depth++
			j++
		case "}}":
			depth--
			j++

			if depth == 0 {
				return j + 1
			}
		}
	}

	return len(src)
}
