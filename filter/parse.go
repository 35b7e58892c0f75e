package filter

import (
	"errors"
	"strconv"
)

// parser is a recursive descent parser for filter expressions:
//
//	expr    := or
//	or      := and { "or" and }
//	and     := not { "and" not }
//	not     := "not" not | compare
//	compare := sum { ("<" | ">" | "==" | "!=") sum }
//	sum     := term { ("+" | "-") term }
//	term    := unary { ("*" | "/") unary }
//	unary   := ("-" | "+") unary | primary
//	primary := NUMBER | STRING | FIELD | IDENT | "true" | "false" | "(" expr ")"
type parser struct {
	expr string
	toks []token
	pos  int
}

func parse(expr string, toks []token) (node, error) {
	p := &parser{expr: expr, toks: toks}
	if p.peek().kind == tEOF {
		return nil, newSyntaxError(expr, 0, "empty expression")
	}
	n, err := p.or()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tEOF {
		return nil, newSyntaxError(expr, t.pos, "unexpected %s", describe(t))
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops ...string) bool {
	t := p.peek()
	if t.kind != tOp {
		return false
	}
	for _, v := range ops {
		if t.text == v {
			return true
		}
	}
	return false
}

func describe(t token) string {
	switch t.kind {
	case tEOF:
		return "end of expression"
	case tField:
		return "field '" + t.text + "'"
	case tString:
		return strconv.Quote(t.text)
	default:
		return "'" + t.text + "'"
	}
}

func (p *parser) or() (node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tOr {
		p.advance()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = &logicNode{op: "or", left: left, right: right}
	}
	return left, nil
}

func (p *parser) and() (node, error) {
	left, err := p.not()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tAnd {
		p.advance()
		right, err := p.not()
		if err != nil {
			return nil, err
		}
		left = &logicNode{op: "and", left: left, right: right}
	}
	return left, nil
}

func (p *parser) not() (node, error) {
	if p.peek().kind == tNot {
		p.advance()
		x, err := p.not()
		if err != nil {
			return nil, err
		}
		return &notNode{x: x}, nil
	}
	return p.compare()
}

// a < b < c means a < b and b < c, with b evaluated once.
func (p *parser) compare() (node, error) {
	first, err := p.sum()
	if err != nil {
		return nil, err
	}
	if !p.isOp("<", ">", "==", "!=") {
		return first, nil
	}
	c := &compareNode{operands: []node{first}}
	for p.isOp("<", ">", "==", "!=") {
		t := p.advance()
		x, err := p.sum()
		if err != nil {
			return nil, err
		}
		c.ops = append(c.ops, t.text)
		c.operands = append(c.operands, x)
	}
	return c, nil
}

func (p *parser) sum() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		t := p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &arithNode{op: t.text, left: left, right: right, pos: t.pos}
	}
	return left, nil
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/") {
		t := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &arithNode{op: t.text, left: left, right: right, pos: t.pos}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.isOp("-", "+") {
		t := p.advance()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &negNode{op: t.text, x: x, pos: t.pos}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.advance()
	switch t.kind {
	case tNumber:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, newSyntaxError(p.expr, t.pos, "malformed number %s", t.text)
		}
		return &litNode{v: numValue(f)}, nil
	case tString:
		return &litNode{v: strValue(t.text)}, nil
	case tTrue:
		return &litNode{v: boolValue(true)}, nil
	case tFalse:
		return &litNode{v: boolValue(false)}, nil
	case tField, tIdent:
		return &fieldNode{key: t.text}, nil
	case tOp:
		if t.text == "(" {
			x, err := p.or()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, newSyntaxError(p.expr, p.peek().pos, "expected ')', found %s", describe(p.peek()))
			}
			p.advance()
			return x, nil
		}
	}
	return nil, newSyntaxError(p.expr, t.pos, "unexpected %s", describe(t))
}
