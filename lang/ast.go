package lang

import (
	"strconv"
	"strings"
)

// Directive is the parsed body of a "{{ ... }}" block.
type Directive struct {
	// Source is the normalized body text, returned verbatim when Expr
	// yields nothing.
	Source string
	Expr   Expr
}

// Expr is a node of a directive that evaluates to a value.
type Expr interface {
	expr()
	String() string
}

// Cond is a node of a condition that evaluates to true or false.
type Cond interface {
	cond()
	String() string
}

type (
	// Raw is a body that matched no form; it evaluates to its text.
	Raw struct{ Text string }

	// Literal is constant text. Quoted records whether it was written in
	// quotes, in which case it is never looked up as a path.
	Literal struct {
		Text   string
		Quoted bool
	}

	// Ref is a "$path" reference.
	Ref struct{ Path string }

	// Bare is an unquoted comparison operand. It names a configuration
	// path if one exists, otherwise it is literal text.
	Bare struct{ Text string }

	// Block is a nested directive.
	Block struct{ Directive *Directive }

	// Coalesce yields Left unless it is empty, then Right unless it is
	// empty, and otherwise nothing.
	Coalesce struct{ Left, Right Expr }

	// Conditional yields Then or Else depending on If.
	Conditional struct {
		If   Cond
		Then Expr
		Else Expr
	}
)

type (
	// Not negates X.
	Not struct{ X Cond }

	// Chain combines operands left to right with "and" and "or".
	Chain struct {
		First Cond
		Links []Link
	}

	// Link is one "and X" or "or X" step of a [Chain].
	Link struct {
		Or bool
		X  Cond
	}

	// Compare applies a comparison operator.
	Compare struct {
		Op          Op
		Left, Right Expr
	}

	// Truth holds when its operand resolves to boolean true.
	Truth struct{ X Expr }
)

// Op is a comparison operator.
type Op uint8

const (
	OpEquals Op = iota + 1
	OpStartsWith
	OpEndsWith
	OpContains
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
)

var opNames = map[string]Op{
	"equals":     OpEquals,
	"startswith": OpStartsWith,
	"endswith":   OpEndsWith,
	"contains":   OpContains,
	">":          OpGreater,
	">=":         OpGreaterEqual,
	"<":          OpLess,
	"<=":         OpLessEqual,
}

func (o Op) String() string {
	for name, op := range opNames {
		if op == o {
			return name
		}
	}

	return "Op(" + strconv.Itoa(int(o)) + ")"
}

func (Raw) expr()         {}
func (Literal) expr()     {}
func (Ref) expr()         {}
func (Bare) expr()        {}
func (Block) expr()       {}
func (Coalesce) expr()    {}
func (Conditional) expr() {}

func (Not) cond()     {}
func (Chain) cond()   {}
func (Compare) cond() {}
func (Truth) cond()   {}

func (r Raw) String() string { return r.Text }

func (l Literal) String() string {
	if l.Quoted {
		return strconv.Quote(l.Text)
	}

	return l.Text
}

func (r Ref) String() string   { return "$" + r.Path }
func (b Bare) String() string  { return b.Text }
func (b Block) String() string { return "{{ " + b.Directive.Source + " }}" }

func (c Coalesce) String() string {
	return c.Left.String() + " ?? " + c.Right.String()
}

func (c Conditional) String() string {
	var sb strings.Builder

	sb.WriteString("if (" + c.If.String() + ") then (" + c.Then.String() + ") else ")

	if _, ok := c.Else.(Conditional); ok {
		sb.WriteString(c.Else.String())
	} else {
		sb.WriteString("(" + c.Else.String() + ")")
	}

	return sb.String()
}

func (n Not) String() string { return "not " + n.X.String() }

func (c Chain) String() string {
	var sb strings.Builder

	sb.WriteString(group(c.First))

	for _, l := range c.Links {
		if l.Or {
			sb.WriteString(" or ")
		} else {
			sb.WriteString(" and ")
		}

		sb.WriteString(group(l.X))
	}

	return sb.String()
}

func group(c Cond) string {
	switch c.(type) {
	case Chain, Not:
		return "(" + c.String() + ")"
	}

	return c.String()
}

func (c Compare) String() string {
	return c.Left.String() + " " + c.Op.String() + " " + c.Right.String()
}

func (t Truth) String() string { return t.X.String() }
