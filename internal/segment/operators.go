// internal/segment/operators.go
package segment

import "strings"

/*
 * Operator comparison logic.
 *
 * Five comparison operators over typed values. Values must already be
 * coerced via Coerce() to the same FieldType before reaching Compare().
 *
 * Operators:
 *   - gt/lt/gte/lte: ordering, numeric or chronological (cost 7)
 *   - eq: equality for every type (cost 5)
 *
 * Text has no ordering; ordering operators against text compare false.
 * The validator rejects such conditions before they reach evaluation.
 */

// Operator is a comparison operator.
type Operator int

const (
	OpUnspecified Operator = iota
	OpGt
	OpLt
	OpGte
	OpLte
	OpEq
)

var operatorSymbols = [...]string{
	OpUnspecified: "",
	OpGt:          ">",
	OpLt:          "<",
	OpGte:         ">=",
	OpLte:         "<=",
	OpEq:          "=",
}

// String returns the operator's wire symbol.
func (op Operator) String() string {
	if op < 0 || int(op) >= len(operatorSymbols) {
		return ""
	}
	return operatorSymbols[op]
}

// ParseOperator resolves a wire symbol. Surrounding whitespace is ignored.
func ParseOperator(s string) (Operator, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OpUnspecified, false
	}
	for op, sym := range operatorSymbols {
		if sym == s {
			return Operator(op), true
		}
	}
	return OpUnspecified, false
}

// Compare applies the operator to compare value against target.
// Mismatched types never match.
func Compare(op Operator, value, target Value) bool {
	if value.Type != target.Type {
		return false
	}
	if op == OpEq {
		return value.Equal(target)
	}
	c, ok := compareOrdered(value, target)
	if !ok {
		return false
	}
	switch op {
	case OpGt:
		return c > 0
	case OpLt:
		return c < 0
	case OpGte:
		return c >= 0
	case OpLte:
		return c <= 0
	default:
		return false
	}
}

// compareOrdered performs three-way comparison (-1/0/1) for ordered types.
// Returns ok=false for text.
func compareOrdered(a, b Value) (int, bool) {
	switch a.Type {
	case FieldTypeNumeric:
		return a.Number.Cmp(b.Number), true
	case FieldTypeDate:
		return a.Date.Compare(b.Date), true
	default:
		return 0, false
	}
}
