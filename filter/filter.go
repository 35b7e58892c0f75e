/*
Package filter selects plop records with boolean expressions over their metrics.

An expression compares metrics, referenced by name in single quotes, with numbers
or with other metrics:

	'Proc' == 1 and 'Energy' < -26759
	('Binding Ene' < -80 or 'Steps' > 600) and not 'Proc' == 3

Names are normalized like metadata keys, so 'Binding Ene' refers to the key
binding_ene. Bare names (Proc == 1) are also accepted. The operators are not, and,
or, <, >, ==, !=, +, -, *, / and parentheses. Comparisons can be chained (-10 < 'x' < 10).
The expression is case-insensitive. ">=" and "<=" are not supported, use "not"
instead ('Energy' >= -5 is not 'Energy' < -5).

Expressions are parsed into a tree, never executed as code.
*/
package filter

import (
	"fmt"
	"strings"

	plop "github.com/rmera/plopmetrics"
)

// Expr is a compiled filter expression. It is safe for concurrent use.
type Expr struct {
	src  string
	root node
	keys []string
}

// Compile parses expr. It returns an error wrapping plop.ErrUnsupportedOperator if expr
// contains ">=" or "<=", or one wrapping plop.ErrExpressionSyntax if it is malformed.
func Compile(expr string) (*Expr, error) {
	for _, op := range []string{">=", "<="} {
		if i := strings.Index(expr, op); i >= 0 {
			return nil, &Error{message: fmt.Sprintf("'%s' can't be used in expressions", op), expr: expr, pos: i, kind: plop.ErrUnsupportedOperator, deco: []string{"Compile"}}
		}
	}
	lower := strings.ToLower(expr)
	toks, err := lex(lower)
	if err != nil {
		return nil, errDecorate(err, "Compile")
	}
	root, err := parse(lower, toks)
	if err != nil {
		return nil, errDecorate(err, "Compile")
	}
	return &Expr{src: expr, root: root, keys: fields(root, nil, make(map[string]bool))}, nil
}

// Fields returns the normalized keys referenced by the expression, in order of appearance.
func (E *Expr) Fields() []string {
	ret := make([]string, len(E.keys))
	copy(ret, E.keys)
	return ret
}

// Eval evaluates the expression for the record r. It returns an error wrapping plop.ErrFieldNotFound
// if r lacks a field the expression uses, or plop.ErrExpressionSyntax if the values can't be
// operated (comparing a string with a number, dividing by zero).
func (E *Expr) Eval(r plop.Looker) (bool, error) {
	v, err := E.root.eval(r)
	if err != nil {
		if e, ok := err.(*Error); ok && e.expr == "" {
			e.expr = E.src
		}
		return false, errDecorate(err, "Eval")
	}
	return v.truthy(), nil
}

// Select returns the records in records for which the expression is true, in the same order.
// Any evaluation error aborts the selection, and no records are returned.
func (E *Expr) Select(records []*plop.Record) (plop.Selection, error) {
	sel := make(plop.Selection, 0, len(records))
	for i, r := range records {
		ok, err := E.Eval(r)
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Select: record %d", i))
		}
		if ok {
			sel = append(sel, r)
		}
	}
	return sel, nil
}

// String returns the expression as parsed, fully parenthesized.
func (E *Expr) String() string {
	return E.root.String()
}

// Select compiles expr and returns the records for which it is true. See Compile and (*Expr).Select.
func Select(expr string, records []*plop.Record) (plop.Selection, error) {
	E, err := Compile(expr)
	if err != nil {
		return nil, errDecorate(err, "Select")
	}
	sel, err := E.Select(records)
	return sel, errDecorate(err, "Select")
}
