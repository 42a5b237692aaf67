// internal/segment/cost.go
package segment

/*
 * Cost model for condition evaluation.
 *
 * cost = operator_cost * type_multiplier
 *
 * Conditions inside a group are visited in ascending cost so cheap checks
 * short-circuit before expensive ones. AND and OR are commutative over
 * side-effect-free conditions, so visiting order never changes the result.
 */

const (
	// Operator base costs
	CostEq    = 5
	CostRange = 7

	// Field type multipliers
	MultiplierNumeric = 4
	MultiplierDate    = 6
	MultiplierText    = 48

	// Penalty per condition group, reflecting the extra pass over the customer
	GroupPenalty = 10
)

// CalculateConditionCost computes cost for a single condition.
func CalculateConditionCost(op Operator, fieldType FieldType) int {
	return operatorCost(op) * typeMultiplier(fieldType)
}

func operatorCost(op Operator) int {
	if op == OpEq {
		return CostEq
	}
	return CostRange
}

func typeMultiplier(ft FieldType) int {
	switch ft {
	case FieldTypeNumeric:
		return MultiplierNumeric
	case FieldTypeDate:
		return MultiplierDate
	default:
		return MultiplierText
	}
}
