package formula

import (
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokVar
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isNumberChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

// lex splits expr into tokens. A '{' opens a placeholder that runs to the
// next '}'; an unterminated or empty placeholder is rejected like any other
// character outside the whitelist.
func lex(expr string) ([]token, error) {
	var toks []token
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case isSpace(c):
			i++
		case isNumberChar(c):
			j := i
			for j < len(expr) && isNumberChar(expr[j]) {
				j++
			}
			text := expr[i:j]
			if strings.Count(text, ".") > 1 {
				return nil, ErrSyntax
			}
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, ErrSyntax
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: n})
			i = j
		case c == '{':
			end := strings.IndexByte(expr[i+1:], '}')
			if end <= 0 {
				return nil, ErrDisallowedChar
			}
			name := expr[i+1 : i+1+end]
			toks = append(toks, token{kind: tokVar, text: name})
			i += end + 2
		case c == '+':
			toks = append(toks, token{kind: tokPlus, text: "+"})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, text: "-"})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokStar, text: "*"})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, text: "/"})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		default:
			return nil, ErrDisallowedChar
		}
	}
	return toks, nil
}
