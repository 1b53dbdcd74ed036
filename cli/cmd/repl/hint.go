package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// clauseForms lists the parts of each directive form, in order.
var clauseForms = map[string][]string{
	"if": {"if (<condition>)", "then (<value>)", "else (<value>)"},
	"??": {"<value>", "?? <fallback>"},
}

var (
	clauseStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	currentClauseStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// clause is the directive part under the cursor.
type clause struct {
	form  string // key of clauseForms
	index int    // part of the form being typed
	ok    bool
}

// detectClause reports which part of a directive the cursor is in. The
// directive is the innermost "{{" left open before the cursor, or the whole
// input when it has no braces, since the shell evaluates bare input as a
// directive body.
func detectClause(input string, cursor int) clause {
	if cursor > len(input) {
		cursor = len(input)
	}

	body := input[:cursor]

	if i := strings.LastIndex(body, "{{"); i >= 0 {
		body = body[i+2:]
	}

	if strings.Contains(body, "}}") {
		return clause{}
	}

	words, coalesce := topLevelWords(body)

	if len(words) > 0 && strings.EqualFold(words[0], "if") {
		c := clause{form: "if", ok: true}

		for _, w := range words[1:] {
			switch strings.ToLower(w) {
			case "then":
				c.index = 1
			case "else":
				c.index = 2
			}
		}

		return c
	}

	if coalesce {
		return clause{form: "??", index: 1, ok: true}
	}

	return clause{}
}

// topLevelWords splits s into the words outside parentheses and quotes, and
// reports whether a "??" occurs outside them. A quote inside a word is an
// apostrophe.
func topLevelWords(s string) (words []string, coalesce bool) {
	var (
		depth int
		quote byte
		word  strings.Builder
	)

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}

		case (c == '"' || c == '\'') && word.Len() == 0:
			quote = c

		case c == '(':
			flush()

			depth++

		case c == ')':
			if depth > 0 {
				depth--
			}

		case depth > 0:

		case c == ' ' || c == '\t':
			flush()

		case c == '?' && i+1 < len(s) && s[i+1] == '?':
			flush()

			coalesce = true
			i++

		default:
			word.WriteByte(c)
		}
	}

	flush()

	return words, coalesce
}

// renderClauseHint renders the form of c with its current part highlighted.
func renderClauseHint(c clause) string {
	parts := clauseForms[c.form]

	rendered := make([]string, len(parts))
	for i, p := range parts {
		if i == c.index {
			rendered[i] = currentClauseStyle.Render(p)
		} else {
			rendered[i] = clauseStyle.Render(p)
		}
	}

	return strings.Join(rendered, clauseStyle.Render(" "))
}
