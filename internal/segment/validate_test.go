// internal/segment/validate_test.go
package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/solatis/audiencekeeper/internal/types"
)

func cond(field, op, value string) types.Condition {
	return types.Condition{Field: field, Operator: op, Value: value}
}

func TestValidate_SimpleSegment(t *testing.T) {
	seg := &types.Segment{
		SegmentID: "seg-001",
		UserID:    "user-1",
		Name:      "  Big spenders ",
		Groups: []types.ConditionGroup{
			{Logic: "and", Conditions: []types.Condition{cond("total_spend", ">", " 100 ")}},
		},
	}

	compiled, err := Validate(seg)
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if compiled.Name != "Big spenders" {
		t.Errorf("Name = %q, want %q", compiled.Name, "Big spenders")
	}
	if len(compiled.Groups) != 1 {
		t.Fatalf("len(Groups) = %v, want 1", len(compiled.Groups))
	}
	g := compiled.Groups[0]
	if g.Logic != types.LogicAnd {
		t.Errorf("Logic = %v, want AND", g.Logic)
	}
	c := g.Conditions[0]
	if c.Field.Name != types.AttrTotalSpend {
		t.Errorf("Field = %v, want totalSpend", c.Field.Name)
	}
	if c.Operator != OpGt {
		t.Errorf("Operator = %v, want >", c.Operator)
	}
	if c.Literal != "100" || c.Value.String() != "100" {
		t.Errorf("Value = %q/%v, want 100", c.Literal, c.Value)
	}
}

func TestValidate_DefaultLogicIsAnd(t *testing.T) {
	seg := &types.Segment{
		Name:   "default",
		Groups: []types.ConditionGroup{{Conditions: []types.Condition{cond("visits", ">=", "3")}}},
	}
	compiled, err := Validate(seg)
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	if compiled.Groups[0].Logic != types.LogicAnd {
		t.Errorf("Logic = %v, want AND", compiled.Groups[0].Logic)
	}
}

func TestValidate_Locations(t *testing.T) {
	tests := []struct {
		name      string
		seg       *types.Segment
		wantGroup int
		wantCond  int
		wantAttr  string
		wantErr   error
	}{
		{
			name: "empty name",
			seg: &types.Segment{Name: "   ", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("visits", ">", "1")}},
			}},
			wantGroup: -1, wantCond: -1, wantAttr: AttrName, wantErr: types.ErrEmptyName,
		},
		{
			name:      "no groups",
			seg:       &types.Segment{Name: "x"},
			wantGroup: -1, wantCond: -1, wantAttr: AttrGroups, wantErr: types.ErrNoGroups,
		},
		{
			name: "empty group",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("visits", ">", "1")}},
				{Logic: types.LogicOr},
			}},
			wantGroup: 1, wantCond: -1, wantAttr: AttrConditions, wantErr: types.ErrEmptyGroup,
		},
		{
			name: "missing operator",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("visits", ">", "1")}},
				{Conditions: []types.Condition{cond("visits", ">", "1"), cond("visits", "", "1")}},
			}},
			wantGroup: 1, wantCond: 1, wantAttr: AttrOperator, wantErr: types.ErrMissingOperator,
		},
		{
			name: "unknown operator",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("visits", "!=", "1")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrOperator, wantErr: types.ErrInvalidOperator,
		},
		{
			name: "ordering on text",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("city", ">", "Pune")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrOperator, wantErr: types.ErrInvalidOperator,
		},
		{
			name: "unknown field",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("age", ">", "30")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrField, wantErr: types.ErrUnknownField,
		},
		{
			name: "missing field",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("", ">", "30")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrField, wantErr: types.ErrMissingField,
		},
		{
			name: "missing value",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("visits", ">", " ")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrValue, wantErr: types.ErrMissingValue,
		},
		{
			name: "non-numeric value",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("totalSpend", ">", "lots")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrValue, wantErr: types.ErrCoercionFailed,
		},
		{
			name: "bad date",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("lastVisit", "<", "yesterday")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrValue, wantErr: types.ErrCoercionFailed,
		},
		{
			name: "exponent out of range",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("totalSpend", ">", "1e2000000000")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrValue, wantErr: types.ErrCoercionFailed,
		},
		{
			name: "negative exponent out of range",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("totalSpend", ">", "1e-2000000000")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrValue, wantErr: types.ErrCoercionFailed,
		},
		{
			name: "invalid utf-8 name",
			seg: &types.Segment{Name: "big\xffspend", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("visits", ">", "1")}},
			}},
			wantGroup: -1, wantCond: -1, wantAttr: AttrName, wantErr: types.ErrInvalidEncoding,
		},
		{
			name: "invalid utf-8 user id",
			seg: &types.Segment{Name: "x", UserID: "u\xc3", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("visits", ">", "1")}},
			}},
			wantGroup: -1, wantCond: -1, wantAttr: AttrUserID, wantErr: types.ErrInvalidEncoding,
		},
		{
			name: "invalid utf-8 field",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("vis\xffits", ">", "1")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrField, wantErr: types.ErrInvalidEncoding,
		},
		{
			name: "invalid utf-8 operator",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("visits", ">\xfe", "1")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrOperator, wantErr: types.ErrInvalidEncoding,
		},
		{
			name: "invalid utf-8 value",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Conditions: []types.Condition{cond("city", "=", "Pu\xffne")}},
			}},
			wantGroup: 0, wantCond: 0, wantAttr: AttrValue, wantErr: types.ErrInvalidEncoding,
		},
		{
			name: "invalid logic",
			seg: &types.Segment{Name: "x", Groups: []types.ConditionGroup{
				{Logic: "XOR", Conditions: []types.Condition{cond("visits", ">", "1")}},
			}},
			wantGroup: 0, wantCond: -1, wantAttr: AttrLogic, wantErr: types.ErrInvalidLogic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.seg)
			if err == nil {
				t.Fatalf("Validate() error = nil, want %v", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			verrs, ok := AsValidationErrors(err)
			if !ok {
				t.Fatalf("error type = %T, want ValidationErrors", err)
			}
			if len(verrs) != 1 {
				t.Fatalf("len(errors) = %v, want 1: %v", len(verrs), err)
			}
			got := verrs[0]
			if got.Group != tt.wantGroup || got.Condition != tt.wantCond || got.Attribute != tt.wantAttr {
				t.Errorf("location = (%d, %d, %s), want (%d, %d, %s)",
					got.Group, got.Condition, got.Attribute, tt.wantGroup, tt.wantCond, tt.wantAttr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	seg := &types.Segment{
		Name: "",
		Groups: []types.ConditionGroup{
			{Conditions: []types.Condition{cond("age", "", "")}},
		},
	}
	_, err := Validate(seg)
	verrs, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("Validate() error = %v, want ValidationErrors", err)
	}
	// name, field, operator, value
	if len(verrs) != 4 {
		t.Fatalf("len(errors) = %v, want 4: %v", len(verrs), err)
	}
	for _, sentinel := range []error{types.ErrEmptyName, types.ErrUnknownField, types.ErrMissingOperator, types.ErrMissingValue} {
		if !errors.Is(err, sentinel) {
			t.Errorf("errors.Is(err, %v) = false, want true", sentinel)
		}
	}
	if !verrs[1].IsUnknownField() {
		t.Errorf("IsUnknownField() = false, want true")
	}
}

func TestValidate_NilSegment(t *testing.T) {
	_, err := Validate(nil)
	if !errors.Is(err, types.ErrEmptyName) || !errors.Is(err, types.ErrNoGroups) {
		t.Errorf("Validate(nil) error = %v, want empty name and no groups", err)
	}
}

func TestValidate_Limits(t *testing.T) {
	conds := make([]types.Condition, types.MaxConditionsPerGroup+1)
	for i := range conds {
		conds[i] = cond("visits", ">", "1")
	}
	_, err := Validate(&types.Segment{Name: "x", Groups: []types.ConditionGroup{{Conditions: conds}}})
	if !errors.Is(err, types.ErrTooManyConditions) {
		t.Errorf("Validate() error = %v, want ErrTooManyConditions", err)
	}

	groups := make([]types.ConditionGroup, types.MaxGroups+1)
	for i := range groups {
		groups[i] = types.ConditionGroup{Conditions: []types.Condition{cond("visits", ">", "1")}}
	}
	_, err = Validate(&types.Segment{Name: "x", Groups: groups})
	if !errors.Is(err, types.ErrTooManyGroups) {
		t.Errorf("Validate() error = %v, want ErrTooManyGroups", err)
	}

	_, err = Validate(&types.Segment{
		Name:   strings.Repeat("n", types.MaxNameLength+1),
		Groups: groups[:1],
	})
	if !errors.Is(err, types.ErrNameTooLong) {
		t.Errorf("Validate() error = %v, want ErrNameTooLong", err)
	}
}

func TestValidate_CostOrderKeepsAuthoredOrder(t *testing.T) {
	seg := &types.Segment{
		Name: "mixed",
		Groups: []types.ConditionGroup{{
			Logic: types.LogicOr,
			Conditions: []types.Condition{
				cond("city", "=", "Pune"),
				cond("lastVisit", ">", "2024-01-01"),
				cond("visits", "=", "3"),
			},
		}},
	}
	compiled, err := Validate(seg)
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
	g := compiled.Groups[0]
	if g.Conditions[0].Field.Name != types.AttrCity {
		t.Errorf("Conditions[0] = %v, want authored order", g.Conditions[0].Field.Name)
	}
	for i := 1; i < len(g.order); i++ {
		if g.Conditions[g.order[i-1]].Cost > g.Conditions[g.order[i]].Cost {
			t.Errorf("evaluation order not ascending by cost: %v", g.order)
		}
	}
	if g.Conditions[g.order[0]].Field.Name != types.AttrVisits {
		t.Errorf("cheapest condition = %v, want visits", g.Conditions[g.order[0]].Field.Name)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	seg := &types.Segment{
		Name: "  Loyal ",
		Groups: []types.ConditionGroup{
			{Logic: "or", Conditions: []types.Condition{cond(" visit_count", " >= ", " 5"), cond("CITY", "=", " Delhi ")}},
			{Conditions: []types.Condition{cond("last_visit", ">", "2024-01-01T00:00:00Z")}},
		},
	}
	once, err := Normalize(seg)
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("Normalize(normalized) error = %v, want nil", err)
	}
	if !once.Equal(twice) {
		t.Errorf("Normalize not idempotent:\n once = %+v\n twice = %+v", once, twice)
	}
	if once.Groups[0].Logic != types.LogicOr || once.Groups[1].Logic != types.LogicAnd {
		t.Errorf("logic = %v/%v, want OR/AND", once.Groups[0].Logic, once.Groups[1].Logic)
	}
	if once.Groups[0].Conditions[0].Field != types.AttrVisits {
		t.Errorf("field = %v, want visits", once.Groups[0].Conditions[0].Field)
	}
	if once.Groups[0].Conditions[1].Value != "Delhi" {
		t.Errorf("value = %q, want Delhi", once.Groups[0].Conditions[1].Value)
	}
}
