package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// Limits on a single expression. A roll does work proportional to Count.
const (
	MaxDice  = 100
	MaxSides = 1000
)

// Expression is a parsed "NdS+M" damage expression.
//
// Invariant: 1 <= Count <= MaxDice and 2 <= Sides <= MaxSides after a successful Parse.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// Parse parses a damage expression. Supported forms: "d8", "2d6", "2d6+3", "1d10-1".
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > MaxDice {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be 1..%d", expr, MaxDice)
		}
		count = n
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil || sides < 2 || sides > MaxSides {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be 2..%d", expr, MaxSides)
	}
	mod := 0
	if m[3] != "" {
		if mod, err = strconv.Atoi(m[3]); err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
	}
	return Expression{Raw: s, Count: count, Sides: sides, Modifier: mod}, nil
}

// MustParse is like Parse but panics on error. Use for package-level constants.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// Roll evaluates expr using src.
//
// Precondition: expr came from Parse; src is non-nil.
// Postcondition: len(result.Dice) == expr.Count and each die is in [1, Sides].
func (e Expression) Roll(src Source) RollResult {
	rolled := make([]int, e.Count)
	for i := range rolled {
		rolled[i] = src.Intn(e.Sides) + 1
	}
	return RollResult{Expression: e.Raw, Dice: rolled, Modifier: e.Modifier}
}

// Max returns the highest total the expression can produce.
func (e Expression) Max() int {
	return e.Count*e.Sides + e.Modifier
}

// Min returns the lowest total the expression can produce.
func (e Expression) Min() int {
	return e.Count + e.Modifier
}
