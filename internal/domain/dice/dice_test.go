package dice

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoll_Deterministic(t *testing.T) {
	t.Parallel()

	// One-sided dice always roll 1, which makes totals exact.
	tests := []struct {
		expr          string
		wantTotal     int
		wantBreakdown string
	}{
		{expr: "d1", wantTotal: 1, wantBreakdown: "d1: 1"},
		{expr: "1D1", wantTotal: 1, wantBreakdown: "d1: 1"},
		{expr: "3d1+2", wantTotal: 5, wantBreakdown: "3d1: [1, 1, 1] = 3"},
		{expr: "2d1*10-(1d1)", wantTotal: 19, wantBreakdown: "2d1: [1, 1] = 2 | d1: 1"},
		{expr: "d1 + 4 * 2", wantTotal: 9, wantBreakdown: "d1: 1"},
		{expr: "(d1 + 4) * 2", wantTotal: 10, wantBreakdown: "d1: 1"},
		{expr: "7/2+d1", wantTotal: 4, wantBreakdown: "d1: 1"},
		{expr: "-7/2+d1", wantTotal: -2, wantBreakdown: "d1: 1"},
		{expr: "d1*7/2*2", wantTotal: 6, wantBreakdown: "d1: 1"},
		{expr: "-d1", wantTotal: -1, wantBreakdown: "d1: 1"},
		{expr: "  5d1  ", wantTotal: 5, wantBreakdown: "5d1: [1, 1, 1, 1, 1] = 5"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			res, err := NewRoller().Roll(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Equal(t, tt.wantBreakdown, res.Breakdown)
		})
	}
}

func TestRoll_DefaultsToD20(t *testing.T) {
	t.Parallel()

	r := NewRoller()
	for i := 0; i < 50; i++ {
		res, err := r.Roll("")
		require.NoError(t, err)
		assert.Equal(t, DefaultExpression, res.Expression)
		assert.GreaterOrEqual(t, res.Total, 1)
		assert.LessOrEqual(t, res.Total, 20)
		assert.Regexp(t, `^d20: \d+$`, res.Breakdown)
	}
}

func TestRoll_RangeAndFormat(t *testing.T) {
	t.Parallel()

	termPattern := regexp.MustCompile(`^4d6: \[(\d+), (\d+), (\d+), (\d+)\] = (\d+)$`)
	r := NewRoller()
	for i := 0; i < 100; i++ {
		res, err := r.Roll("4d6")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Total, 4)
		assert.LessOrEqual(t, res.Total, 24)
		assert.Regexp(t, termPattern, res.Breakdown)
	}
}

func TestRoll_SameSeedSameResult(t *testing.T) {
	t.Parallel()

	a, err := NewRollerWithSource(rand.NewSource(42)).Roll("3d20+1d4")
	require.NoError(t, err)
	b, err := NewRollerWithSource(rand.NewSource(42)).Roll("3d20+1d4")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRoll_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{name: "no dice", expr: "2+3", wantErr: ErrNoDice},
		{name: "too many dice", expr: "101d6", wantErr: ErrDiceLimit},
		{name: "too many sides", expr: "1d1001", wantErr: ErrDiceLimit},
		{name: "huge count", expr: "99999999999999999999d6", wantErr: ErrDiceLimit},
		{name: "zero dice", expr: "0d6", wantErr: ErrInvalidExpression},
		{name: "zero sides", expr: "1d0", wantErr: ErrInvalidExpression},
		{name: "missing sides", expr: "2d", wantErr: ErrInvalidExpression},
		{name: "double d", expr: "2d6d4", wantErr: ErrInvalidExpression},
		{name: "letters", expr: "1d20+abc", wantErr: ErrInvalidExpression},
		{name: "code injection", expr: "__import__('os')", wantErr: ErrInvalidExpression},
		{name: "unbalanced open", expr: "(1d6+2", wantErr: ErrInvalidExpression},
		{name: "unbalanced close", expr: "1d6+2)", wantErr: ErrInvalidExpression},
		{name: "dangling operator", expr: "1d6+", wantErr: ErrInvalidExpression},
		{name: "adjacent operands", expr: "1d6 2", wantErr: ErrInvalidExpression},
		{name: "division by zero", expr: "1d6/0", wantErr: ErrDivisionByZero},
		{name: "division by zero expression", expr: "1d6/(2-2)", wantErr: ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewRoller().Roll(tt.expr)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRoll_LimitsAreInclusive(t *testing.T) {
	t.Parallel()

	res, err := NewRoller().Roll("100d1000")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Total, 100)
	assert.LessOrEqual(t, res.Total, 100*1000)
}
