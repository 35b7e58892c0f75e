package filter

import (
	"strings"

	plop "github.com/rmera/plopmetrics"
)

type tokenKind int

const (
	tEOF tokenKind = iota
	tNumber
	tString //"double quoted"
	tField  //'single quoted' metric name
	tIdent  //bare metric name
	tOp     //< > == != + - * / ( )
	tAnd
	tOr
	tNot
	tTrue
	tFalse
)

type token struct {
	kind tokenKind
	text string //for tField and tIdent, the normalized key
	pos  int
}

var keywords = map[string]tokenKind{
	"and":   tAnd,
	"or":    tOr,
	"not":   tNot,
	"true":  tTrue,
	"false": tFalse,
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isIdent(c byte) bool { return isIdentStart(c) || isDigit(c) }

// lex splits expr into tokens. The last token is always tEOF.
func lex(expr string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '\'':
			end := strings.IndexByte(expr[i+1:], '\'')
			if end < 0 {
				return nil, newSyntaxError(expr, i, "unterminated field reference")
			}
			name := expr[i+1 : i+1+end]
			key := plop.Normalize(name)
			if key == "" {
				return nil, newSyntaxError(expr, i, "empty field reference")
			}
			toks = append(toks, token{kind: tField, text: key, pos: i})
			i += end + 2
		case c == '"':
			end := strings.IndexByte(expr[i+1:], '"')
			if end < 0 {
				return nil, newSyntaxError(expr, i, "unterminated string")
			}
			toks = append(toks, token{kind: tString, text: expr[i+1 : i+1+end], pos: i})
			i += end + 2
		case isDigit(c) || (c == '.' && i+1 < len(expr) && isDigit(expr[i+1])):
			n, err := lexNumber(expr, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tNumber, text: expr[i:n], pos: i})
			i = n
		case isIdentStart(c):
			j := i + 1
			for j < len(expr) && isIdent(expr[j]) {
				j++
			}
			word := expr[i:j]
			if k, ok := keywords[word]; ok {
				toks = append(toks, token{kind: k, text: word, pos: i})
			} else {
				toks = append(toks, token{kind: tIdent, text: plop.Normalize(word), pos: i})
			}
			i = j
		case c == '=' || c == '!':
			if i+1 < len(expr) && expr[i+1] == '=' {
				toks = append(toks, token{kind: tOp, text: expr[i : i+2], pos: i})
				i += 2
				continue
			}
			return nil, newSyntaxError(expr, i, "unexpected '%c'", c)
		case strings.IndexByte("<>+-*/()", c) >= 0:
			toks = append(toks, token{kind: tOp, text: string(c), pos: i})
			i++
		default:
			return nil, newSyntaxError(expr, i, "unexpected '%c'", c)
		}
	}
	toks = append(toks, token{kind: tEOF, pos: len(expr)})
	return toks, nil
}

// lexNumber returns the offset just past the number starting at i.
// Numbers have no sign, the sign is a unary operator.
func lexNumber(expr string, i int) (int, error) {
	start := i
	for i < len(expr) && isDigit(expr[i]) {
		i++
	}
	if i < len(expr) && expr[i] == '.' {
		i++
		for i < len(expr) && isDigit(expr[i]) {
			i++
		}
	}
	if i < len(expr) && (expr[i] == 'e' || expr[i] == 'E') {
		j := i + 1
		if j < len(expr) && (expr[j] == '+' || expr[j] == '-') {
			j++
		}
		if j >= len(expr) || !isDigit(expr[j]) {
			return 0, newSyntaxError(expr, start, "malformed number")
		}
		for j < len(expr) && isDigit(expr[j]) {
			j++
		}
		i = j
	}
	if i < len(expr) && isIdentStart(expr[i]) {
		return 0, newSyntaxError(expr, start, "malformed number")
	}
	return i, nil
}
