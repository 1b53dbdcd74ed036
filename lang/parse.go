package lang

import "strings"

// Parse parses the body of a directive, the text between "{{" and "}}".
// It never fails; a body matching no form parses to [Raw].
func Parse(src string) *Directive {
	src = Normalize(src)

	d := &Directive{Source: src, Expr: Raw{Text: src}}

	if !hasKeyword(src, "if") {
		if c, ok := parseCoalesce(src); ok {
			d.Expr = c
		}

		return d
	}

	if c, ok := parseConditional(src); ok {
		d.Expr = c
	}

	return d
}

// parseCoalesce splits src at its first top-level "??".
func parseCoalesce(src string) (Expr, bool) {
	i := indexTop(src, "??")
	if i < 0 {
		return nil, false
	}

	left := strings.TrimSpace(src[:i])
	right := strings.TrimSpace(src[i+2:])

	if left == "" || right == "" {
		return nil, false
	}

	c := Coalesce{Left: operand(left)}

	if next, ok := parseCoalesce(StripParens(right)); ok {
		c.Right = next
	} else {
		c.Right = operand(right)
	}

	return c, true
}

// parseConditional parses "if (C) then (T) else (F)" where the else part
// may itself be a conditional. Trailing text makes the form invalid.
func parseConditional(src string) (Conditional, bool) {
	var c Conditional

	rest, ok := keyword(src, "if")
	if !ok {
		return c, false
	}

	cond, rest, ok := clause(rest)
	if !ok {
		return c, false
	}

	if rest, ok = keyword(rest, "then"); !ok {
		return c, false
	}

	then, rest, ok := clause(rest)
	if !ok {
		return c, false
	}

	if rest, ok = keyword(rest, "else"); !ok {
		return c, false
	}

	c.If = parseCond(cond)
	c.Then = branch(then)

	if hasKeyword(rest, "if") {
		next, ok := parseConditional(rest)
		if !ok {
			return c, false
		}

		c.Else = next

		return c, true
	}

	els, rest, ok := clause(rest)
	if !ok || strings.TrimSpace(rest) != "" {
		return c, false
	}

	c.Else = branch(els)

	return c, true
}

// clause reads a parenthesized block at the start of src and returns its
// inner text and the remainder.
func clause(src string) (inner, rest string, ok bool) {
	src = strings.TrimSpace(src)
	if !strings.HasPrefix(src, "(") {
		return "", "", false
	}

	block, next := ScanBlock(src, 0)
	if !Balanced(block) {
		return "", "", false
	}

	return strings.TrimSpace(block[1 : len(block)-1]), src[next:], true
}

// keyword consumes word w at the start of src. It must be followed by space
// or "(".
func keyword(src, w string) (string, bool) {
	src = strings.TrimSpace(src)
	if !hasKeyword(src, w) {
		return "", false
	}

	return src[len(w):], true
}

func hasKeyword(src, w string) bool {
	src = strings.TrimLeft(src, " \t")

	if len(src) <= len(w) || !strings.EqualFold(src[:len(w)], w) {
		return false
	}

	return src[len(w)] == ' ' || src[len(w)] == '\t' || src[len(w)] == '('
}

// indexTop returns the index of the first sep in src outside quotes,
// parentheses, and nested blocks, or -1.
func indexTop(src, sep string) int {
	depth := 0

	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case isQuote(c) && opensQuote(src, i):
			if i = closeQuote(src, i); i < 0 {
				return -1
			}
		case strings.HasPrefix(src[i:], "{{"):
			i = closeBlock(src, i) - 1
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && strings.HasPrefix(src[i:], sep):
			return i
		}
	}

	return -1
}

// operand parses one side of a "??".
func operand(src string) Expr {
	s := StripParens(src)

	switch {
	case IsBlock(s):
		return Block{Directive: Parse(body(s))}
	case Quoted(s):
		return Literal{Text: TrimQuotes(s), Quoted: true}
	case strings.HasPrefix(s, "$"):
		return Ref{Path: strings.TrimSpace(s[1:])}
	}

	return Literal{Text: s}
}

// branch parses the text of a then or else clause.
func branch(src string) Expr {
	s := strings.TrimSpace(src)

	if IsBlock(s) {
		return Block{Directive: Parse(body(s))}
	}

	quoted := Quoted(s)
	s = TrimQuotes(s)

	if strings.HasPrefix(s, "$") {
		return Ref{Path: strings.TrimSpace(s[1:])}
	}

	return Literal{Text: s, Quoted: quoted}
}

// parseCond parses a condition.
func parseCond(src string) Cond {
	return condition(src, lex(src))
}

func condition(src string, toks []token) Cond {
	for wrapped(toks) {
		toks = toks[1 : len(toks)-1]
	}

	if len(toks) > 1 && toks[0].is("not") {
		return Not{X: condition(src, toks[1:])}
	}

	parts, links := splitChain(toks)
	if len(parts) > 1 {
		c := Chain{First: condition(src, parts[0])}

		for i, p := range parts[1:] {
			c.Links = append(c.Links, Link{Or: links[i], X: condition(src, p)})
		}

		return c
	}

	return comparison(src, toks)
}

// splitChain splits toks at top-level "and" and "or" words. links[i] is
// true when parts[i+1] follows an "or".
func splitChain(toks []token) (parts [][]token, links []bool) {
	depth, start := 0, 0

	for i, t := range toks {
		switch {
		case t.kind == tokLParen:
			depth++
		case t.kind == tokRParen:
			depth--
		case depth == 0 && i > start && (t.is("and") || t.is("or")):
			parts = append(parts, toks[start:i])
			links = append(links, t.is("or"))
			start = i + 1
		}
	}

	if start >= len(toks) && len(parts) > 0 {
		// dangling combinator: treat the whole as one operand
		return [][]token{toks}, nil
	}

	return append(parts, toks[start:]), links
}

func comparison(src string, toks []token) Cond {
	depth := 0

	for i, t := range toks {
		switch t.kind {
		case tokLParen:
			depth++

			continue
		case tokRParen:
			depth--

			continue
		case tokWord, tokOp:
		default:
			continue
		}

		op, ok := opNames[strings.ToLower(t.text)]
		if !ok || depth != 0 || i == 0 || i == len(toks)-1 {
			continue
		}

		return Compare{
			Op:    op,
			Left:  compareOperand(src, toks[:i]),
			Right: compareOperand(src, toks[i+1:]),
		}
	}

	return Truth{X: compareOperand(src, toks)}
}

func compareOperand(src string, toks []token) Expr {
	for wrapped(toks) {
		toks = toks[1 : len(toks)-1]
	}

	if len(toks) == 0 {
		return Literal{}
	}

	if len(toks) == 1 {
		switch t := toks[0]; t.kind {
		case tokString:
			return Literal{Text: TrimQuotes(t.text), Quoted: true}
		case tokBlock:
			if IsBlock(t.text) {
				return Block{Directive: Parse(body(t.text))}
			}
		}
	}

	s := StripParens(src[toks[0].pos:toks[len(toks)-1].end])
	quoted := Quoted(s)
	s = TrimQuotes(s)

	switch {
	case strings.HasPrefix(s, "$"):
		return Ref{Path: strings.TrimSpace(s[1:])}
	case quoted:
		return Literal{Text: s, Quoted: true}
	}

	return Bare{Text: s}
}

// wrapped reports whether toks is enclosed by one matching pair of
// parentheses.
func wrapped(toks []token) bool {
	if len(toks) < 2 || toks[0].kind != tokLParen || toks[len(toks)-1].kind != tokRParen {
		return false
	}

	depth := 0

	for i, t := range toks {
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--

			if depth == 0 && i < len(toks)-1 {
				return false
			}
		}
	}

	return depth == 0
}
