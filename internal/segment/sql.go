// internal/segment/sql.go
package segment

import (
	"fmt"
	"math"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/solatis/audiencekeeper/internal/types"
)

/*
 * SQL pushdown.
 *
 * ToSQL renders a compiled segment as a WHERE predicate over the customers
 * table so the audience can be counted inside the database. The predicate
 * mirrors the in-memory evaluator:
 *
 *   - groups joined with AND, conditions joined with the group's logic
 *   - NULL columns make the comparison NULL, which WHERE treats as false,
 *     matching the missing-attribute rule (no comparison is negated, so NULL
 *     never flips to true)
 *   - dates are stored as 'YYYY-MM-DD' text, so lexical order is calendar order
 *   - numeric columns hold float64, which the evaluator reads as its shortest
 *     decimal form; a literal with no exact float64 is replaced by the
 *     neighbouring float64 that selects the same set of column values
 */

// ToSQL converts a compiled segment into a squirrel predicate.
func ToSQL(seg *CompiledSegment) (sq.Sqlizer, error) {
	where := make(sq.And, 0, len(seg.Groups))
	for gi := range seg.Groups {
		group := &seg.Groups[gi]
		parts := make([]sq.Sqlizer, 0, len(group.Conditions))
		for ci := range group.Conditions {
			p, err := conditionSQL(&group.Conditions[ci])
			if err != nil {
				return nil, fmt.Errorf("group %d condition %d: %w", gi, ci, err)
			}
			parts = append(parts, p)
		}
		if group.Logic == types.LogicOr {
			where = append(where, sq.Or(parts))
		} else {
			where = append(where, sq.And(parts))
		}
	}
	return where, nil
}

// noRows is the predicate no row satisfies.
var noRows = sq.Expr("1 = 0")

func conditionSQL(cond *CompiledCondition) (sq.Sqlizer, error) {
	col := cond.Field.Column
	var arg any
	switch cond.Value.Type {
	case FieldTypeNumeric:
		return numericSQL(col, cond.Operator, cond.Value.Number)
	case FieldTypeDate:
		arg = cond.Value.Date.Format(DateLayout)
	case FieldTypeText:
		arg = cond.Value.Text
	default:
		return nil, types.ErrCoercionFailed
	}

	switch cond.Operator {
	case OpEq:
		return sq.Eq{col: arg}, nil
	case OpGt:
		return sq.Gt{col: arg}, nil
	case OpLt:
		return sq.Lt{col: arg}, nil
	case OpGte:
		return sq.GtOrEq{col: arg}, nil
	case OpLte:
		return sq.LtOrEq{col: arg}, nil
	default:
		return nil, types.ErrInvalidOperator
	}
}

// numericSQL compares a float64 column against d. Column value c matches
// when the shortest decimal form of c compares to d as op requires; that
// form is monotonic in c, so each operator reduces to one comparison
// against the nearest float64 on the correct side of d.
func numericSQL(col string, op Operator, d decimal.Decimal) (sq.Sqlizer, error) {
	switch op {
	case OpEq:
		f, ok := ceilFloat(d)
		if !ok || !decimal.NewFromFloat(f).Equal(d) {
			return noRows, nil
		}
		return sq.Eq{col: f}, nil
	case OpGt:
		f, ok := floorFloat(d)
		if !ok {
			return sq.NotEq{col: nil}, nil
		}
		return sq.Gt{col: f}, nil
	case OpGte:
		f, ok := ceilFloat(d)
		if !ok {
			return noRows, nil
		}
		return sq.GtOrEq{col: f}, nil
	case OpLt:
		f, ok := ceilFloat(d)
		if !ok {
			return sq.NotEq{col: nil}, nil
		}
		return sq.Lt{col: f}, nil
	case OpLte:
		f, ok := floorFloat(d)
		if !ok {
			return noRows, nil
		}
		return sq.LtOrEq{col: f}, nil
	default:
		return nil, types.ErrInvalidOperator
	}
}

// ceilFloat returns the smallest finite float64 whose shortest decimal form
// is >= d. ok is false when d exceeds every finite float64.
func ceilFloat(d decimal.Decimal) (float64, bool) {
	atLeast := func(f float64) bool { return decimal.NewFromFloat(f).Cmp(d) >= 0 }

	f := math.Max(-math.MaxFloat64, math.Min(math.MaxFloat64, d.InexactFloat64()))
	if atLeast(f) {
		for {
			prev := math.Nextafter(f, math.Inf(-1))
			if math.IsInf(prev, 0) || !atLeast(prev) {
				return f, true
			}
			f = prev
		}
	}
	for {
		f = math.Nextafter(f, math.Inf(1))
		if math.IsInf(f, 0) {
			return 0, false
		}
		if atLeast(f) {
			return f, true
		}
	}
}

// floorFloat returns the largest finite float64 whose shortest decimal form
// is <= d. ok is false when d is below every finite float64.
func floorFloat(d decimal.Decimal) (float64, bool) {
	f, ok := ceilFloat(d.Neg())
	return -f, ok
}
