// Package formula compiles and evaluates the arithmetic expressions stored on
// formula columns.
//
// An expression is a template such as "{Qty} * {Price}". Placeholders are bound
// to numbers at evaluation time; everything outside them must be digits, '.',
// the four arithmetic operators, parentheses or whitespace. Nothing else is
// ever evaluated.
package formula

import (
	"errors"
	"math"
)

var (
	ErrDisallowedChar  = errors.New("formula: disallowed character")
	ErrUnresolved      = errors.New("formula: unresolved placeholder")
	ErrSyntax          = errors.New("formula: syntax error")
	ErrDivisionByZero  = errors.New("formula: division by zero")
	ErrNonFinite       = errors.New("formula: non-finite result")
	ErrEmptyExpression = errors.New("formula: empty expression")
)

// Env resolves a placeholder name to its numeric value. ok is false when the
// name does not refer to any known column.
type Env func(name string) (value float64, ok bool)

// Program is a compiled expression. It is safe to evaluate concurrently.
type Program struct {
	source string
	root   node
	refs   []string
}

// Compile tokenizes and parses expr.
func Compile(expr string) (*Program, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, ErrEmptyExpression
	}

	p := &parser{toks: toks}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, ErrSyntax
	}

	var refs []string
	seen := make(map[string]struct{})
	for _, t := range toks {
		if t.kind != tokVar {
			continue
		}
		if _, ok := seen[t.text]; ok {
			continue
		}
		seen[t.text] = struct{}{}
		refs = append(refs, t.text)
	}

	return &Program{source: expr, root: root, refs: refs}, nil
}

// Source returns the expression the program was compiled from.
func (p *Program) Source() string { return p.source }

// References lists the placeholder names in order of first appearance.
func (p *Program) References() []string { return p.refs }

// Eval evaluates the program. Every placeholder must resolve through env.
func (p *Program) Eval(env Env) (float64, error) {
	for _, name := range p.refs {
		if _, ok := env(name); !ok {
			return 0, ErrUnresolved
		}
	}
	v, err := p.root.eval(env)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// Evaluate compiles and evaluates expr in one step.
func Evaluate(expr string, env Env) (float64, error) {
	prog, err := Compile(expr)
	if err != nil {
		return 0, err
	}
	return prog.Eval(env)
}
