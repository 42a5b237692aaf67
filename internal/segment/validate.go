// internal/segment/validate.go
package segment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/solatis/audiencekeeper/internal/types"
)

/*
 * Segment validation and compilation.
 *
 * Validate turns a user-authored types.Segment into a CompiledSegment with
 * canonical field names, typed literals and a cost-ordered evaluation plan,
 * or returns every problem it found as ValidationErrors.
 *
 * Validation workflow:
 *   1. Every string valid UTF-8; name present and within MaxNameLength
 *   2. At least one group, at most MaxGroups
 *   3. Per group: logic AND/OR (empty means AND), 1..MaxConditionsPerGroup conditions
 *   4. Per condition: field in catalog, operator supported by the field,
 *      value parses to the field type
 *   5. Order each group's conditions by ascending cost (stable sort)
 *
 * All errors are collected rather than stopping at the first so a client
 * can highlight every offending input in one round trip.
 *
 * Authored order is preserved in CompiledGroup.Conditions; the cost order is
 * held separately so normalization and serialization never reorder groups
 * or conditions.
 */

// Attribute names used in ValidationError.Attribute.
const (
	AttrID         = "id"
	AttrUserID     = "userId"
	AttrName       = "name"
	AttrGroups     = "groups"
	AttrLogic      = "logic"
	AttrConditions = "conditions"
	AttrField      = "field"
	AttrOperator   = "operator"
	AttrValue      = "value"
)

// ValidationError reports one invalid location in a segment definition.
// Group and Condition are -1 when the error is not tied to one.
type ValidationError struct {
	Group     int
	Condition int
	Attribute string
	Err       error // sentinel from internal/types
	Message   string
}

// Path renders the location, e.g. "groups[0].conditions[2].operator".
func (e *ValidationError) Path() string {
	var b strings.Builder
	if e.Group >= 0 {
		fmt.Fprintf(&b, "groups[%d]", e.Group)
		if e.Condition >= 0 {
			fmt.Fprintf(&b, ".conditions[%d]", e.Condition)
		}
		if e.Attribute != "" && e.Attribute != AttrGroups {
			b.WriteByte('.')
			b.WriteString(e.Attribute)
		}
		return b.String()
	}
	return e.Attribute
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Err.Error()
	}
	return e.Path() + ": " + msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsUnknownField reports whether the error names a field outside the catalog.
func (e *ValidationError) IsUnknownField() bool {
	return errors.Is(e.Err, types.ErrUnknownField)
}

// IsCoercion reports whether the error is a literal that does not parse to
// the field type.
func (e *ValidationError) IsCoercion() bool {
	return errors.Is(e.Err, types.ErrCoercionFailed)
}

// ValidationErrors is the full list of problems found in one segment.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "invalid segment: " + strings.Join(parts, "; ")
}

// Unwrap exposes every sentinel to errors.Is.
func (v ValidationErrors) Unwrap() []error {
	out := make([]error, len(v))
	for i, e := range v {
		out[i] = e
	}
	return out
}

// AsValidationErrors extracts ValidationErrors from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// CompiledCondition is a validated condition ready for evaluation.
type CompiledCondition struct {
	Field    Field
	Operator Operator
	Value    Value
	Literal  string // trimmed literal as authored
	Cost     int
}

// CompiledGroup is a validated condition group.
type CompiledGroup struct {
	Logic      types.Logic
	Conditions []CompiledCondition // authored order
	order      []int               // indices into Conditions, ascending cost
}

// CompiledSegment is a validated, normalized segment ready for evaluation.
// It is immutable and safe for concurrent use.
type CompiledSegment struct {
	SegmentID    types.SegmentID
	UserID       string
	Name         string
	AudienceSize int
	CreatedAt    time.Time
	Groups       []CompiledGroup
	Cost         int // estimated per-customer cost from the cost model
}

// Validate checks a segment definition and compiles it for evaluation.
// On failure the error is a ValidationErrors listing every problem.
func Validate(seg *types.Segment) (*CompiledSegment, error) {
	if seg == nil {
		seg = &types.Segment{}
	}
	var errs ValidationErrors
	add := func(g, c int, attr string, sentinel error, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Group:     g,
			Condition: c,
			Attribute: attr,
			Err:       sentinel,
			Message:   fmt.Sprintf(format, args...),
		})
	}

	compiled := &CompiledSegment{
		SegmentID:    seg.SegmentID,
		UserID:       strings.TrimSpace(seg.UserID),
		Name:         strings.TrimSpace(seg.Name),
		AudienceSize: seg.AudienceSize,
		CreatedAt:    seg.CreatedAt,
		Groups:       make([]CompiledGroup, 0, len(seg.Groups)),
	}

	if !utf8.ValidString(string(seg.SegmentID)) {
		add(-1, -1, AttrID, types.ErrInvalidEncoding, "segment id is not valid UTF-8")
	}
	if !utf8.ValidString(seg.UserID) {
		add(-1, -1, AttrUserID, types.ErrInvalidEncoding, "user id is not valid UTF-8")
	}

	switch {
	case !utf8.ValidString(seg.Name):
		add(-1, -1, AttrName, types.ErrInvalidEncoding, "segment name is not valid UTF-8")
	case compiled.Name == "":
		add(-1, -1, AttrName, types.ErrEmptyName, "segment name is required")
	case utf8.RuneCountInString(compiled.Name) > types.MaxNameLength:
		add(-1, -1, AttrName, types.ErrNameTooLong, "segment name exceeds %d characters", types.MaxNameLength)
	}

	switch {
	case len(seg.Groups) == 0:
		add(-1, -1, AttrGroups, types.ErrNoGroups, "at least one condition group is required")
	case len(seg.Groups) > types.MaxGroups:
		add(-1, -1, AttrGroups, types.ErrTooManyGroups, "at most %d condition groups are allowed", types.MaxGroups)
	}

	totalCost := 0
	for gi, group := range seg.Groups {
		cg := CompiledGroup{Conditions: make([]CompiledCondition, 0, len(group.Conditions))}

		logic, ok := parseLogic(group.Logic)
		if !ok {
			add(gi, -1, AttrLogic, types.ErrInvalidLogic, "logic %q must be AND or OR", group.Logic)
		}
		cg.Logic = logic

		switch {
		case len(group.Conditions) == 0:
			add(gi, -1, AttrConditions, types.ErrEmptyGroup, "group must contain at least one condition")
		case len(group.Conditions) > types.MaxConditionsPerGroup:
			add(gi, -1, AttrConditions, types.ErrTooManyConditions,
				"group exceeds %d conditions", types.MaxConditionsPerGroup)
		}

		for ci, cond := range group.Conditions {
			cc, condErrs := compileCondition(gi, ci, cond)
			if len(condErrs) > 0 {
				errs = append(errs, condErrs...)
				continue
			}
			cg.Conditions = append(cg.Conditions, cc)
			totalCost += cc.Cost
		}

		cg.order = make([]int, len(cg.Conditions))
		for i := range cg.order {
			cg.order[i] = i
		}
		// Stable sort: equal-cost conditions keep authored order
		sort.SliceStable(cg.order, func(i, j int) bool {
			return cg.Conditions[cg.order[i]].Cost < cg.Conditions[cg.order[j]].Cost
		})

		compiled.Groups = append(compiled.Groups, cg)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	compiled.Cost = totalCost + len(compiled.Groups)*GroupPenalty
	return compiled, nil
}

// Normalize validates seg and returns its normalized form: trimmed strings,
// canonical field names, upper-case logic. Normalize is idempotent.
func Normalize(seg *types.Segment) (*types.Segment, error) {
	compiled, err := Validate(seg)
	if err != nil {
		return nil, err
	}
	return compiled.Segment(), nil
}

func parseLogic(l types.Logic) (types.Logic, bool) {
	switch strings.ToUpper(strings.TrimSpace(string(l))) {
	case "", string(types.LogicAnd):
		return types.LogicAnd, true
	case string(types.LogicOr):
		return types.LogicOr, true
	default:
		return types.LogicAnd, false
	}
}

// compileCondition validates one condition and computes its cost.
// Reports every problem with the condition, not only the first.
func compileCondition(gi, ci int, cond types.Condition) (CompiledCondition, ValidationErrors) {
	var errs ValidationErrors
	add := func(attr string, sentinel error, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Group:     gi,
			Condition: ci,
			Attribute: attr,
			Err:       sentinel,
			Message:   fmt.Sprintf(format, args...),
		})
	}

	name := strings.TrimSpace(cond.Field)
	field, fieldOK := LookupField(name)
	switch {
	case !utf8.ValidString(name):
		add(AttrField, types.ErrInvalidEncoding, "field is not valid UTF-8")
	case name == "":
		add(AttrField, types.ErrMissingField, "field is required")
	case !fieldOK:
		add(AttrField, types.ErrUnknownField, "unknown field %q", name)
	}

	opText := strings.TrimSpace(cond.Operator)
	op, opOK := ParseOperator(opText)
	switch {
	case !utf8.ValidString(opText):
		add(AttrOperator, types.ErrInvalidEncoding, "operator is not valid UTF-8")
	case opText == "":
		add(AttrOperator, types.ErrMissingOperator, "operator is required")
	case !opOK:
		add(AttrOperator, types.ErrInvalidOperator, "unknown operator %q", opText)
	case fieldOK && !field.Supports(op):
		add(AttrOperator, types.ErrInvalidOperator,
			"operator %q is not supported for %s field %q", opText, field.Type, field.Name)
	}

	literal := strings.TrimSpace(cond.Value)
	var value Value
	switch {
	case !utf8.ValidString(literal):
		add(AttrValue, types.ErrInvalidEncoding, "value is not valid UTF-8")
	case literal == "":
		add(AttrValue, types.ErrMissingValue, "value is required")
	case utf8.RuneCountInString(literal) > types.MaxValueLength:
		add(AttrValue, types.ErrValueTooLong, "value exceeds %d characters", types.MaxValueLength)
	case fieldOK:
		res, err := Coerce(literal, field.Type)
		if err != nil {
			add(AttrValue, types.ErrCoercionFailed, "value %q is not a valid %s for field %q",
				literal, field.Type, field.Name)
		} else {
			value = res.Value
		}
	}

	if len(errs) > 0 {
		return CompiledCondition{}, errs
	}
	return CompiledCondition{
		Field:    field,
		Operator: op,
		Value:    value,
		Literal:  literal,
		Cost:     CalculateConditionCost(op, field.Type),
	}, nil
}

// Segment returns the normalized definition in authored order.
func (c *CompiledSegment) Segment() *types.Segment {
	seg := &types.Segment{
		SegmentID:    c.SegmentID,
		UserID:       c.UserID,
		Name:         c.Name,
		AudienceSize: c.AudienceSize,
		CreatedAt:    c.CreatedAt,
		Groups:       make([]types.ConditionGroup, len(c.Groups)),
	}
	for i, g := range c.Groups {
		conds := make([]types.Condition, len(g.Conditions))
		for j, cc := range g.Conditions {
			conds[j] = types.Condition{
				Field:    cc.Field.Name,
				Operator: cc.Operator.String(),
				Value:    cc.Literal,
			}
		}
		seg.Groups[i] = types.ConditionGroup{Logic: g.Logic, Conditions: conds}
	}
	return seg
}

// Equal reports whether two compiled segments are semantically identical:
// same metadata, same groups, same fields, operators and typed values in
// authored order.
func (c *CompiledSegment) Equal(o *CompiledSegment) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.SegmentID != o.SegmentID || c.UserID != o.UserID || c.Name != o.Name ||
		c.AudienceSize != o.AudienceSize || !c.CreatedAt.Equal(o.CreatedAt) ||
		len(c.Groups) != len(o.Groups) {
		return false
	}
	for i := range c.Groups {
		a, b := c.Groups[i], o.Groups[i]
		if a.Logic != b.Logic || len(a.Conditions) != len(b.Conditions) {
			return false
		}
		for j := range a.Conditions {
			x, y := a.Conditions[j], b.Conditions[j]
			if x.Field != y.Field || x.Operator != y.Operator || !x.Value.Equal(y.Value) {
				return false
			}
		}
	}
	return true
}
