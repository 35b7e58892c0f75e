package filter

import (
	"fmt"
	"strconv"
	"strings"

	plop "github.com/rmera/plopmetrics"
)

type valueKind int

const (
	vNum valueKind = iota
	vBool
	vStr
)

// value is the result of evaluating a node. Booleans count as 0 and 1
// in arithmetic and comparisons.
type value struct {
	kind valueKind
	num  float64
	str  string
}

func numValue(f float64) value { return value{kind: vNum, num: f} }

func strValue(s string) value { return value{kind: vStr, str: s} }

func boolValue(b bool) value {
	if b {
		return value{kind: vBool, num: 1}
	}
	return value{kind: vBool}
}

func (v value) numeric() bool { return v.kind != vStr }

func (v value) truthy() bool {
	if v.kind == vStr {
		return v.str != ""
	}
	return v.num != 0
}

func (v value) String() string {
	switch v.kind {
	case vStr:
		return strconv.Quote(v.str)
	case vBool:
		return strconv.FormatBool(v.num != 0)
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

func typeError(format string, a ...any) error {
	return &Error{message: fmt.Sprintf(format, a...), pos: -1, kind: plop.ErrExpressionSyntax}
}

type node interface {
	eval(r plop.Looker) (value, error)
	String() string
}

type litNode struct {
	v value
}

func (n *litNode) eval(plop.Looker) (value, error) { return n.v, nil }

func (n *litNode) String() string { return n.v.String() }

// fieldNode is the value of a metadata field of the current record.
type fieldNode struct {
	key string
}

func (n *fieldNode) eval(r plop.Looker) (value, error) {
	f, err := r.Lookup(n.key)
	if err != nil {
		return value{}, err
	}
	return numValue(f), nil
}

func (n *fieldNode) String() string { return "'" + n.key + "'" }

type negNode struct {
	op  string
	x   node
	pos int
}

func (n *negNode) eval(r plop.Looker) (value, error) {
	v, err := n.x.eval(r)
	if err != nil {
		return v, err
	}
	if !v.numeric() {
		return value{}, typeError("bad operand for unary %s: %s", n.op, v)
	}
	if n.op == "-" {
		return numValue(-v.num), nil
	}
	return numValue(v.num), nil
}

func (n *negNode) String() string { return n.op + n.x.String() }

type arithNode struct {
	op          string
	left, right node
	pos         int
}

func (n *arithNode) eval(r plop.Looker) (value, error) {
	a, err := n.left.eval(r)
	if err != nil {
		return a, err
	}
	b, err := n.right.eval(r)
	if err != nil {
		return b, err
	}
	if a.kind == vStr && b.kind == vStr && n.op == "+" {
		return strValue(a.str + b.str), nil
	}
	if !a.numeric() || !b.numeric() {
		return value{}, typeError("unsupported operands for %s: %s and %s", n.op, a, b)
	}
	switch n.op {
	case "+":
		return numValue(a.num + b.num), nil
	case "-":
		return numValue(a.num - b.num), nil
	case "*":
		return numValue(a.num * b.num), nil
	case "/":
		if b.num == 0 {
			return value{}, typeError("division by zero: %s", n)
		}
		return numValue(a.num / b.num), nil
	}
	panic("filter: unknown arithmetic operator " + n.op) //the parser doesn't produce these.
}

func (n *arithNode) String() string {
	return "(" + n.left.String() + " " + n.op + " " + n.right.String() + ")"
}

// compareNode is a chain of comparisons. a < b == c is a < b and b == c.
type compareNode struct {
	ops      []string
	operands []node
}

func compare(op string, a, b value) (bool, error) {
	if a.numeric() && b.numeric() {
		switch op {
		case "<":
			return a.num < b.num, nil
		case ">":
			return a.num > b.num, nil
		case "==":
			return a.num == b.num, nil
		case "!=":
			return a.num != b.num, nil
		}
	}
	if a.kind == vStr && b.kind == vStr {
		switch op {
		case "<":
			return a.str < b.str, nil
		case ">":
			return a.str > b.str, nil
		case "==":
			return a.str == b.str, nil
		case "!=":
			return a.str != b.str, nil
		}
	}
	//a string and a number are never equal, and can't be ordered.
	switch op {
	case "==":
		return false, nil
	case "!=":
		return true, nil
	}
	return false, typeError("can't compare %s %s %s", a, op, b)
}

func (n *compareNode) eval(r plop.Looker) (value, error) {
	a, err := n.operands[0].eval(r)
	if err != nil {
		return a, err
	}
	for i, op := range n.ops {
		b, err := n.operands[i+1].eval(r)
		if err != nil {
			return b, err
		}
		ok, err := compare(op, a, b)
		if err != nil {
			return value{}, err
		}
		if !ok {
			return boolValue(false), nil
		}
		a = b
	}
	return boolValue(true), nil
}

func (n *compareNode) String() string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(n.operands[0].String())
	for i, op := range n.ops {
		fmt.Fprintf(&b, " %s %s", op, n.operands[i+1])
	}
	b.WriteString(")")
	return b.String()
}

// logicNode is "and" or "or". Like in Python, the result is one of the
// operands, and the right one is only evaluated if needed.
type logicNode struct {
	op          string
	left, right node
}

func (n *logicNode) eval(r plop.Looker) (value, error) {
	a, err := n.left.eval(r)
	if err != nil {
		return a, err
	}
	if (n.op == "and" && !a.truthy()) || (n.op == "or" && a.truthy()) {
		return a, nil
	}
	return n.right.eval(r)
}

func (n *logicNode) String() string {
	return "(" + n.left.String() + " " + n.op + " " + n.right.String() + ")"
}

type notNode struct {
	x node
}

func (n *notNode) eval(r plop.Looker) (value, error) {
	v, err := n.x.eval(r)
	if err != nil {
		return v, err
	}
	return boolValue(!v.truthy()), nil
}

func (n *notNode) String() string { return "(not " + n.x.String() + ")" }

// fields appends to keys the field keys referenced under n that are not already in seen.
func fields(n node, keys []string, seen map[string]bool) []string {
	switch n := n.(type) {
	case *fieldNode:
		if !seen[n.key] {
			seen[n.key] = true
			keys = append(keys, n.key)
		}
	case *negNode:
		keys = fields(n.x, keys, seen)
	case *notNode:
		keys = fields(n.x, keys, seen)
	case *arithNode:
		keys = fields(n.left, keys, seen)
		keys = fields(n.right, keys, seen)
	case *logicNode:
		keys = fields(n.left, keys, seen)
		keys = fields(n.right, keys, seen)
	case *compareNode:
		for _, v := range n.operands {
			keys = fields(v, keys, seen)
		}
	}
	return keys
}
