// internal/segment/evaluate.go
package segment

import (
	"context"
	"iter"

	"github.com/solatis/audiencekeeper/internal/types"
)

/*
 * Segment evaluation.
 *
 * Evaluates a CompiledSegment against customer attribute bags. Groups are
 * combined with AND; each group applies its own AND/OR uniformly.
 *
 * Evaluation flow:
 *   1. Groups in authored order (short-circuit on first non-matching group)
 *   2. Conditions in ascending cost order (AND stops on first false,
 *      OR stops on first true)
 *   3. Per-condition: lookup attribute -> coerce to field type -> compare
 *
 * Missing policy: an absent or nil attribute, or one that does not coerce
 * to the field type, makes the condition false. Malformed customer data
 * never produces an error.
 *
 * Streaming: Filter wraps an iter.Seq lazily. The result is restartable
 * exactly when the input is; ranging twice over a slice-backed sequence
 * yields the same customers in the same order. Evaluate and Count consume
 * the sequence under a context so large populations can be cancelled.
 */

// Result is the outcome of evaluating a segment over a population.
type Result struct {
	Matches []types.Customer // input order
	Count   int
}

// Matches reports whether the customer satisfies every group of the segment.
func Matches(seg *CompiledSegment, customer types.Customer) bool {
	for i := range seg.Groups {
		if !evaluateGroup(&seg.Groups[i], customer.Attributes) {
			return false
		}
	}
	return true
}

// evaluateGroup applies the group's logic over its conditions in cost order.
func evaluateGroup(group *CompiledGroup, attrs map[string]any) bool {
	if group.Logic == types.LogicOr {
		for _, idx := range group.order {
			if evaluateCondition(&group.Conditions[idx], attrs) {
				return true
			}
		}
		return false
	}
	for _, idx := range group.order {
		if !evaluateCondition(&group.Conditions[idx], attrs) {
			return false
		}
	}
	return true
}

// evaluateCondition orchestrates lookup -> coerce -> compare.
func evaluateCondition(cond *CompiledCondition, attrs map[string]any) bool {
	raw, ok := attrs[cond.Field.Name]
	if !ok {
		return false
	}
	coerced, err := Coerce(raw, cond.Field.Type)
	if err != nil || coerced.IsNull {
		return false
	}
	return Compare(cond.Operator, coerced.Value, cond.Value)
}

// Filter lazily yields the customers that match seg, in input order.
func Filter(seg *CompiledSegment, customers iter.Seq[types.Customer]) iter.Seq[types.Customer] {
	return func(yield func(types.Customer) bool) {
		for c := range customers {
			if Matches(seg, c) && !yield(c) {
				return
			}
		}
	}
}

// Evaluate materializes the audience of seg over customers.
// Returns ctx.Err() if the context is cancelled mid-scan.
func Evaluate(ctx context.Context, seg *CompiledSegment, customers iter.Seq[types.Customer]) (Result, error) {
	var res Result
	done := ctx.Done()
	for c := range customers {
		select {
		case <-done:
			return Result{}, ctx.Err()
		default:
		}
		if Matches(seg, c) {
			res.Matches = append(res.Matches, c)
		}
	}
	res.Count = len(res.Matches)
	return res, nil
}

// Count returns the audience size without retaining matches. With limit > 0
// the result never exceeds limit; the scan stops at the first match beyond
// it and capped reports true. A population of exactly limit matches is
// not capped.
func Count(ctx context.Context, seg *CompiledSegment, customers iter.Seq[types.Customer], limit int) (n int, capped bool, err error) {
	done := ctx.Done()
	for c := range customers {
		select {
		case <-done:
			return 0, false, ctx.Err()
		default:
		}
		if !Matches(seg, c) {
			continue
		}
		if limit > 0 && n == limit {
			return n, true, nil
		}
		n++
	}
	return n, false, nil
}
