package dice

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenDice
	tokenOp
	tokenLParen
	tokenRParen
)

type token struct {
	kind  tokenKind
	pos   int
	value int  // tokenNumber
	count int  // tokenDice
	sides int  // tokenDice
	op    byte // tokenOp
}

// lex splits expr into tokens. "d20" is shorthand for "1d20".
func lex(expr string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, token{kind: tokenOp, op: c, pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, pos: i})
			i++
		case isDigit(c) || c == 'd' || c == 'D':
			tok, next, err := lexOperand(expr, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		default:
			r := []rune(expr[i:])[0]
			if unicode.IsPrint(r) {
				return nil, fmt.Errorf("%w: unexpected character %q at position %d", ErrInvalidExpression, r, i+1)
			}
			return nil, fmt.Errorf("%w: unexpected character at position %d", ErrInvalidExpression, i+1)
		}
	}
	return tokens, nil
}

// lexOperand reads a plain integer or an NdM dice term starting at i.
func lexOperand(expr string, i int) (token, int, error) {
	start := i
	for i < len(expr) && isDigit(expr[i]) {
		i++
	}
	digits := expr[start:i]

	if i >= len(expr) || (expr[i] != 'd' && expr[i] != 'D') {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return token{}, 0, fmt.Errorf("%w: number %q is too large", ErrInvalidExpression, digits)
		}
		return token{kind: tokenNumber, value: n, pos: start}, i, nil
	}

	count := 1
	if digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return token{}, 0, fmt.Errorf("%w: too many dice (max %d): %s", ErrDiceLimit, MaxDice, digits)
		}
		count = n
	}

	i++ // skip 'd'
	sidesStart := i
	for i < len(expr) && isDigit(expr[i]) {
		i++
	}
	if sidesStart == i {
		return token{}, 0, fmt.Errorf("%w: missing number of sides in %q",
			ErrInvalidExpression, strings.TrimSpace(expr[start:i]))
	}
	sides, err := strconv.Atoi(expr[sidesStart:i])
	if err != nil {
		return token{}, 0, fmt.Errorf("%w: die has too many sides (max %d): %s",
			ErrDiceLimit, MaxSides, expr[sidesStart:i])
	}

	if i < len(expr) && (isDigit(expr[i]) || expr[i] == 'd' || expr[i] == 'D') {
		return token{}, 0, fmt.Errorf("%w: malformed dice term at position %d", ErrInvalidExpression, start+1)
	}

	return token{kind: tokenDice, count: count, sides: sides, pos: start}, i, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
