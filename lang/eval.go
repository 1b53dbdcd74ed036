package lang

import (
	"log/slog"
	"strings"

	"github.com/k3tzchen/conf/log"
)

// Resolver looks up the values that directives refer to.
type Resolver interface {
	// Resolve returns the value of a "$path" reference (path excludes the
	// "$"). ok is false when the reference is undefined.
	Resolve(path string) (v Value, ok bool, err error)
	// Lookup returns the value of an existing configuration path named by a
	// bare comparison operand. It must not consult the environment.
	Lookup(path string) (v Value, ok bool, err error)
}

// Evaluator evaluates directives against a [Resolver].
type Evaluator struct {
	resolver Resolver
	logger   log.Logger
}

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithLogger sets the logger receiving Trace messages.
func WithLogger(l log.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// NewEvaluator returns an Evaluator resolving references with r.
func NewEvaluator(r Resolver, opts ...Option) *Evaluator {
	e := &Evaluator{resolver: r}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate evaluates text if it is a directive block and returns text as a
// string value otherwise. Multi-line directives are joined with single
// spaces before parsing.
func (e *Evaluator) Evaluate(text string) (Value, error) {
	s := Normalize(text)
	if !IsBlock(s) {
		return String(text), nil
	}

	return e.directive(parse(body(s)))
}

// directive evaluates d, falling back to its source text.
func (e *Evaluator) directive(d *Directive) (Value, error) {
	v, ok, err := e.eval(d.Expr)
	if err != nil {
		return Value{}, err
	}

	e.logger.Trace("directive",
		slog.String("source", d.Source),
		slog.Bool("matched", ok),
	)

	if !ok {
		return String(d.Source), nil
	}

	return v, nil
}

func (e *Evaluator) eval(x Expr) (Value, bool, error) {
	switch n := x.(type) {
	case Raw:
		return String(n.Text), true, nil

	case Literal:
		return String(n.Text), true, nil

	case Ref:
		if n.Path == "" {
			return String("$"), true, nil
		}

		return e.resolver.Resolve(n.Path)

	case Bare:
		if v, ok, err := e.resolver.Lookup(n.Text); err != nil || ok {
			return v, ok, err
		}

		return String(n.Text), true, nil

	case Block:
		v, err := e.directive(n.Directive)
		if err != nil {
			return Value{}, false, err
		}

		return v, true, nil

	case Coalesce:
		for _, side := range []Expr{n.Left, n.Right} {
			v, ok, err := e.eval(side)
			if err != nil {
				return Value{}, false, err
			}

			if ok && !v.Empty() {
				return v, true, nil
			}
		}

		return Value{}, false, nil

	case Conditional:
		holds, err := e.cond(n.If)
		if err != nil {
			return Value{}, false, err
		}

		next := n.Else
		if holds {
			next = n.Then
		}

		v, ok, err := e.eval(next)
		if err != nil || !ok {
			return v, ok, err
		}

		if _, isBlock := next.(Block); isBlock && v.Kind() == KindString {
			v = String(TrimQuotes(strings.TrimSpace(v.String())))
		}

		return v, true, nil
	}

	return Value{}, false, nil
}

func (e *Evaluator) cond(c Cond) (bool, error) {
	switch n := c.(type) {
	case Not:
		holds, err := e.cond(n.X)

		return !holds, err

	case Chain:
		result, err := e.cond(n.First)
		if err != nil {
			return false, err
		}

		for _, l := range n.Links {
			switch {
			case l.Or && result:
				return true, nil
			case !l.Or && !result:
				continue
			}

			if result, err = e.cond(l.X); err != nil {
				return false, err
			}
		}

		return result, nil

	case Compare:
		return e.compare(n)

	case Truth:
		v, ok, err := e.eval(n.X)
		if err != nil || !ok {
			return false, err
		}

		b := Coerce(v)

		return b.Kind() == KindBool && b.Native().(bool), nil
	}

	return false, nil
}

func (e *Evaluator) compare(c Compare) (bool, error) {
	l, lok, err := e.eval(c.Left)
	if err != nil {
		return false, err
	}

	r, rok, err := e.eval(c.Right)
	if err != nil {
		return false, err
	}

	if !lok {
		l = Null()
	}

	if !rok {
		r = Null()
	}

	if l.Empty() != r.Empty() {
		return false, nil
	}

	switch c.Op {
	case OpEquals:
		return Equal(l, r), nil
	case OpStartsWith:
		return strings.HasPrefix(l.String(), r.String()), nil
	case OpEndsWith:
		return strings.HasSuffix(l.String(), r.String()), nil
	case OpContains:
		return strings.Contains(l.String(), r.String()), nil
	}

	lf, lok := l.Float()
	rf, rok := r.Float()

	if !lok || !rok {
		return false, nil
	}

	switch c.Op {
	case OpGreater:
		return lf > rf, nil
	case OpGreaterEqual:
		return lf >= rf, nil
	case OpLess:
		return lf < rf, nil
	case OpLessEqual:
		return lf <= rf, nil
	}

	return false, nil
}
