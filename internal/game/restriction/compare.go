package restriction

import (
	"errors"
	"fmt"
	"strings"
)

// Operator is a two-letter comparison token as written in card scripts.
type Operator string

const (
	OpEQ Operator = "EQ"
	OpNE Operator = "NE"
	OpLT Operator = "LT"
	OpLE Operator = "LE"
	OpGT Operator = "GT"
	OpGE Operator = "GE"
)

// ErrBadComparison is returned for comparison strings that don't start with
// a known operator or have no operand.
var ErrBadComparison = errors.New("bad comparison")

// ParseOperator parses a two-letter operator token case-insensitively.
func ParseOperator(token string) (Operator, error) {
	op := Operator(strings.ToUpper(strings.TrimSpace(token)))
	switch op {
	case OpEQ, OpNE, OpLT, OpLE, OpGT, OpGE:
		return op, nil
	}
	return "", fmt.Errorf("%w: unknown operator %q", ErrBadComparison, token)
}

// Compare applies the operator to left and right.
func (op Operator) Compare(left, right int) bool {
	switch op {
	case OpEQ:
		return left == right
	case OpNE:
		return left != right
	case OpLT:
		return left < right
	case OpLE:
		return left <= right
	case OpGT:
		return left > right
	case OpGE:
		return left >= right
	}
	return false
}

func (op Operator) String() string {
	return string(op)
}

// Comparison pairs an operator with a right-hand operand. The operand is an
// amount expression: a literal, "X", or an SVar name.
type Comparison struct {
	Op      Operator
	Operand string
}

// ParseComparison splits a comparison such as "GE2" or "LTX" into operator
// and operand.
func ParseComparison(s string) (Comparison, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return Comparison{}, fmt.Errorf("%w: %q", ErrBadComparison, s)
	}
	op, err := ParseOperator(s[:2])
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Op: op, Operand: strings.TrimSpace(s[2:])}, nil
}

func mustComparison(s string) Comparison {
	c, err := ParseComparison(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Comparison) String() string {
	return string(c.Op) + c.Operand
}
