package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Limits on a single dice term.
const (
	MaxDice  = 100
	MaxSides = 1000
)

// DefaultExpression is rolled when the caller gives no expression.
const DefaultExpression = "1d20"

var (
	// ErrInvalidExpression is returned when an expression cannot be parsed.
	ErrInvalidExpression = errors.New("invalid dice expression")

	// ErrNoDice is returned when an expression contains no dice term.
	ErrNoDice = errors.New("no valid dice notation found")

	// ErrDiceLimit is returned when a term exceeds MaxDice or MaxSides.
	ErrDiceLimit = errors.New("dice limit exceeded")

	// ErrDivisionByZero is returned when an expression divides by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Result is the outcome of rolling one expression.
type Result struct {
	// Expression is the trimmed expression that was rolled.
	Expression string `json:"expression"`

	// Breakdown lists each dice term and its rolls, e.g. "d20: 17 | 2d6: [3, 4] = 7".
	Breakdown string `json:"breakdown"`

	// Total is the integer value of the whole expression.
	Total int `json:"total"`
}

// Roller rolls dice expressions. It is safe for concurrent use.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller creates a Roller seeded from the current time.
func NewRoller() *Roller {
	return NewRollerWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewRollerWithSource creates a Roller that draws from src.
func NewRollerWithSource(src rand.Source) *Roller {
	return &Roller{rng: rand.New(src)}
}

// Roll parses expr, rolls every dice term left to right and evaluates the
// arithmetic with integer semantics. An empty expression rolls 1d20.
func (r *Roller) Roll(expr string) (Result, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = DefaultExpression
	}

	tokens, err := lex(expr)
	if err != nil {
		return Result{}, err
	}

	p := &parser{tokens: tokens, roller: r}
	total, err := p.parseExpression()
	if err != nil {
		return Result{}, err
	}
	if p.pos < len(p.tokens) {
		return Result{}, fmt.Errorf("%w: unexpected token at position %d", ErrInvalidExpression, p.tokens[p.pos].pos+1)
	}
	if len(p.breakdown) == 0 {
		return Result{}, fmt.Errorf("%w in: %s", ErrNoDice, expr)
	}

	return Result{
		Expression: expr,
		Breakdown:  strings.Join(p.breakdown, " | "),
		Total:      total,
	}, nil
}

// rollTerm rolls count dice with the given number of sides.
func (r *Roller) rollTerm(count, sides int) ([]int, int, error) {
	if count <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid number of dice: %d", ErrInvalidExpression, count)
	}
	if count > MaxDice {
		return nil, 0, fmt.Errorf("%w: too many dice (max %d): %d", ErrDiceLimit, MaxDice, count)
	}
	if sides <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid number of sides: %d", ErrInvalidExpression, sides)
	}
	if sides > MaxSides {
		return nil, 0, fmt.Errorf("%w: die has too many sides (max %d): %d", ErrDiceLimit, MaxSides, sides)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, count)
	sum := 0
	for i := range rolls {
		rolls[i] = r.rng.Intn(sides) + 1
		sum += rolls[i]
	}
	return rolls, sum, nil
}

// formatTerm renders one dice term for the breakdown.
func formatTerm(count, sides int, rolls []int, sum int) string {
	if count == 1 {
		return fmt.Sprintf("d%d: %d", sides, rolls[0])
	}
	parts := make([]string, len(rolls))
	for i, v := range rolls {
		parts[i] = strconv.Itoa(v)
	}
	return fmt.Sprintf("%dd%d: [%s] = %d", count, sides, strings.Join(parts, ", "), sum)
}

// parser evaluates the grammar
//
//	expression = term { ("+" | "-") term }
//	term       = unary { ("*" | "/") unary }
//	unary      = [ "+" | "-" ] unary | primary
//	primary    = number | dice | "(" expression ")"
type parser struct {
	tokens    []token
	pos       int
	roller    *Roller
	breakdown []string
}

func (p *parser) peekOp(ops string) (byte, bool) {
	if p.pos >= len(p.tokens) {
		return 0, false
	}
	t := p.tokens[p.pos]
	if t.kind != tokenOp || !strings.ContainsRune(ops, rune(t.op)) {
		return 0, false
	}
	return t.op, true
}

func (p *parser) parseExpression() (int, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp("+-")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseTerm() (int, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peekOp("*/")
		if !ok {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		// Each quotient truncates toward zero before the next operator, so
		// 7/2*2 is 6, not 7.
		left /= right
	}
}

func (p *parser) parseUnary() (int, error) {
	if op, ok := p.peekOp("+-"); ok {
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '-' {
			return -v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (int, error) {
	if p.pos >= len(p.tokens) {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrInvalidExpression)
	}

	t := p.tokens[p.pos]
	p.pos++

	switch t.kind {
	case tokenNumber:
		return t.value, nil

	case tokenDice:
		rolls, sum, err := p.roller.rollTerm(t.count, t.sides)
		if err != nil {
			return 0, err
		}
		p.breakdown = append(p.breakdown, formatTerm(t.count, t.sides, rolls, sum))
		return sum, nil

	case tokenLParen:
		v, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenRParen {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		p.pos++
		return v, nil

	default:
		return 0, fmt.Errorf("%w: unexpected token at position %d", ErrInvalidExpression, t.pos+1)
	}
}
