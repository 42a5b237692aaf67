// internal/segment/evaluate_test.go
package segment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/solatis/audiencekeeper/internal/types"
)

func mustValidate(t *testing.T, seg *types.Segment) *CompiledSegment {
	t.Helper()
	compiled, err := Validate(seg)
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	return compiled
}

func customer(id string, attrs map[string]any) types.Customer {
	return types.Customer{ID: types.CustomerID(id), Attributes: attrs}
}

func ids(cs []types.Customer) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c.ID)
	}
	return out
}

func population() []types.Customer {
	return []types.Customer{
		customer("c1", map[string]any{"totalSpend": 50.0, "visits": int64(1), "city": "Pune"}),
		customer("c2", map[string]any{"totalSpend": 150.0, "visits": int64(2), "city": "Delhi"}),
		customer("c3", map[string]any{"totalSpend": "250", "visits": int64(9), "city": "Pune"}),
		customer("c4", map[string]any{"visits": int64(12)}),
		customer("c5", map[string]any{"totalSpend": 100.0, "lastVisit": time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)}),
		customer("c6", map[string]any{"totalSpend": "not-a-number", "visits": nil}),
	}
}

func TestEvaluate_SingleCondition(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name:   "spend over 100",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("totalSpend", ">", "100")}}},
	})

	res, err := Evaluate(context.Background(), seg, slices.Values(population()))
	if err != nil {
		t.Fatalf("Evaluate() error = %v, want nil", err)
	}
	want := []string{"c2", "c3"}
	if got := ids(res.Matches); !slices.Equal(got, want) {
		t.Errorf("Matches = %v, want %v", got, want)
	}
	if res.Count != 2 {
		t.Errorf("Count = %v, want 2", res.Count)
	}
}

func TestEvaluate_AndGroup(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name: "and",
		Groups: []types.ConditionGroup{{Logic: types.LogicAnd, Conditions: []types.Condition{
			cond("totalSpend", ">", "100"),
			cond("visits", "<", "3"),
		}}},
	})

	got := ids(slices.Collect(Filter(seg, slices.Values(population()))))
	if want := []string{"c2"}; !slices.Equal(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestEvaluate_OrGroup(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name: "or",
		Groups: []types.ConditionGroup{{Logic: types.LogicOr, Conditions: []types.Condition{
			cond("totalSpend", ">", "200"),
			cond("visits", ">", "10"),
		}}},
	})

	got := ids(slices.Collect(Filter(seg, slices.Values(population()))))
	if want := []string{"c3", "c4"}; !slices.Equal(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestEvaluate_CrossGroupAnd(t *testing.T) {
	// (spend > 100 OR visits > 10) AND city = Pune
	seg := mustValidate(t, &types.Segment{
		Name: "cross",
		Groups: []types.ConditionGroup{
			{Logic: types.LogicOr, Conditions: []types.Condition{
				cond("totalSpend", ">", "100"),
				cond("visits", ">", "10"),
			}},
			{Conditions: []types.Condition{cond("city", "=", "Pune")}},
		},
	})

	got := ids(slices.Collect(Filter(seg, slices.Values(population()))))
	if want := []string{"c3"}; !slices.Equal(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestEvaluate_MissingAttribute(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name:   "spend",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("totalSpend", ">=", "0")}}},
	})

	tests := []struct {
		name string
		c    types.Customer
		want bool
	}{
		{"absent key", customer("a", map[string]any{"visits": 3}), false},
		{"nil value", customer("b", map[string]any{"totalSpend": nil}), false},
		{"nil map", customer("c", nil), false},
		{"uncoercible value", customer("d", map[string]any{"totalSpend": "n/a"}), false},
		{"wrong kind", customer("e", map[string]any{"totalSpend": []any{1}}), false},
		{"present", customer("f", map[string]any{"totalSpend": 0}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(seg, tt.c); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_StringNumbersCompareNumerically(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name:   "visits",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("visits", ">", "9")}}},
	})
	if !Matches(seg, customer("x", map[string]any{"visits": "10"})) {
		t.Errorf("\"10\" > \"9\" = false, want true")
	}
	if Matches(seg, customer("y", map[string]any{"visits": "9.0"})) {
		t.Errorf("\"9.0\" > \"9\" = true, want false")
	}
}

func TestEvaluate_DateGranularity(t *testing.T) {
	onDay := mustValidate(t, &types.Segment{
		Name:   "visited on",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("lastVisit", "=", "2024-03-05")}}},
	})
	after := mustValidate(t, &types.Segment{
		Name:   "visited after",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("lastVisit", ">", "2024-03-05T09:00:00Z")}}},
	})

	late := customer("late", map[string]any{"lastVisit": "2024-03-05T23:30:00Z"})
	next := customer("next", map[string]any{"lastVisit": "2024-03-06"})

	if !Matches(onDay, late) {
		t.Errorf("same-day timestamp = no match, want match")
	}
	if Matches(after, late) {
		t.Errorf("same day compares later than date literal, want equal dates")
	}
	if !Matches(after, next) {
		t.Errorf("next day > date = false, want true")
	}
}

func TestFilter_Restartable(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name:   "spend",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("totalSpend", ">", "60")}}},
	})
	seq := Filter(seg, slices.Values(population()))

	first := ids(slices.Collect(seq))
	second := ids(slices.Collect(seq))
	if !slices.Equal(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}

func TestFilter_EarlyStop(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name:   "any spend",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("totalSpend", ">=", "0")}}},
	})

	pulled := 0
	source := func(yield func(types.Customer) bool) {
		for _, c := range population() {
			pulled++
			if !yield(c) {
				return
			}
		}
	}

	for range Filter(seg, source) {
		break
	}
	if pulled != 1 {
		t.Errorf("pulled = %v, want 1", pulled)
	}
}

func TestCount_Limit(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name:   "any spend",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("totalSpend", ">=", "0")}}},
	})

	n, capped, err := Count(context.Background(), seg, slices.Values(population()), 0)
	if err != nil || n != 4 || capped {
		t.Errorf("Count(limit=0) = %v, %v, %v, want 4, false, nil", n, capped, err)
	}
	n, capped, err = Count(context.Background(), seg, slices.Values(population()), 2)
	if err != nil || n != 2 || !capped {
		t.Errorf("Count(limit=2) = %v, %v, %v, want 2, true, nil", n, capped, err)
	}

	// Exactly limit matches is a complete count.
	for _, limit := range []int{4, 5} {
		n, capped, err = Count(context.Background(), seg, slices.Values(population()), limit)
		if err != nil || n != 4 || capped {
			t.Errorf("Count(limit=%d) = %v, %v, %v, want 4, false, nil", limit, n, capped, err)
		}
	}
}

func TestEvaluate_Cancelled(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name:   "any spend",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("totalSpend", ">=", "0")}}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Evaluate(ctx, seg, slices.Values(population())); !errors.Is(err, context.Canceled) {
		t.Errorf("Evaluate() error = %v, want context.Canceled", err)
	}
	if _, _, err := Count(ctx, seg, slices.Values(population()), 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Count() error = %v, want context.Canceled", err)
	}
}

func TestEvaluate_ConcurrentUse(t *testing.T) {
	seg := mustValidate(t, &types.Segment{
		Name:   "spend",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("totalSpend", ">", "100")}}},
	})

	errc := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			res, err := Evaluate(context.Background(), seg, slices.Values(population()))
			if err == nil && res.Count != 2 {
				err = fmt.Errorf("Count = %d, want 2", res.Count)
			}
			errc <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-errc; err != nil {
			t.Error(err)
		}
	}
}

// Property-based test: evaluation is deterministic and order-independent
func TestEvaluate_PropertyIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("same segment and population give the same audience", prop.ForAll(
		func(seg *types.Segment, pop []types.Customer) bool {
			compiled, err := Validate(seg)
			if err != nil {
				return false
			}
			a, errA := Evaluate(context.Background(), compiled, slices.Values(pop))
			b, errB := Evaluate(context.Background(), compiled, slices.Values(pop))
			if errA != nil || errB != nil {
				return false
			}
			return slices.Equal(ids(a.Matches), ids(b.Matches))
		},
		genSegment(),
		genPopulation(),
	))

	properties.Property("group logic matches a direct truth table", prop.ForAll(
		func(seg *types.Segment, pop []types.Customer) bool {
			compiled, err := Validate(seg)
			if err != nil {
				return false
			}
			for _, c := range pop {
				if Matches(compiled, c) != referenceMatch(compiled, c) {
					return false
				}
			}
			return true
		},
		genSegment(),
		genPopulation(),
	))

	properties.TestingRun(t)
}

// referenceMatch evaluates every condition in authored order without
// short-circuiting.
func referenceMatch(seg *CompiledSegment, c types.Customer) bool {
	all := true
	for _, g := range seg.Groups {
		results := make([]bool, len(g.Conditions))
		for i := range g.Conditions {
			results[i] = evaluateCondition(&g.Conditions[i], c.Attributes)
		}
		var groupResult bool
		if g.Logic == types.LogicOr {
			groupResult = slices.Contains(results, true)
		} else {
			groupResult = !slices.Contains(results, false)
		}
		all = all && groupResult
	}
	return all
}

func genPopulation() gopter.Gen {
	return gen.SliceOfN(20, genCustomer())
}

func genCustomer() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 1000),
		gen.IntRange(0, 500),
		gen.IntRange(0, 30),
		gen.IntRange(0, 3),
		gen.IntRange(0, 15),
	).Map(func(vals []any) types.Customer {
		id := vals[0].(int)
		attrs := map[string]any{}
		mask := vals[4].(int)
		if mask&1 != 0 {
			attrs[types.AttrTotalSpend] = float64(vals[1].(int))
		}
		if mask&2 != 0 {
			attrs[types.AttrVisits] = int64(vals[2].(int))
		}
		if mask&4 != 0 {
			attrs[types.AttrCity] = cities[vals[3].(int)]
		}
		if mask&8 != 0 {
			attrs[types.AttrLastVisit] = baseDate.AddDate(0, 0, vals[2].(int))
		}
		return customer(fmt.Sprintf("c%d", id), attrs)
	})
}
