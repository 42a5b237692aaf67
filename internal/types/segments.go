// internal/types/segments.go
package types

import "time"

/*
 * Domain types for segment definitions.
 *
 * Segment, ConditionGroup and Condition are the user-authored form of an
 * audience predicate. They hold raw strings exactly as submitted; typing and
 * normalization happen in internal/segment. Wire shapes (JSON, Avro) and row
 * shapes are converted at the serializer and store boundaries.
 *
 * Key types:
 *   - Segment: named predicate owned by a user, groups combined with AND
 *   - ConditionGroup: conditions combined uniformly with AND or OR
 *   - Condition: one comparison of a customer attribute against a literal
 */

// Logic is the combinator applied uniformly inside a condition group.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Condition represents a single comparison. Value is the literal as the
// user wrote it; it is parsed into the field's type during validation.
type Condition struct {
	Field    string
	Operator string
	Value    string
}

// ConditionGroup is an ordered, non-empty list of conditions. An empty Logic
// means AND.
type ConditionGroup struct {
	Logic      Logic
	Conditions []Condition
}

// Segment is a named audience definition.
type Segment struct {
	SegmentID    SegmentID
	UserID       string
	Name         string
	Groups       []ConditionGroup
	AudienceSize int
	CreatedAt    time.Time
}

// Equal reports whether two segments describe the same definition and
// metadata. CreatedAt is compared as an instant.
func (s *Segment) Equal(o *Segment) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.SegmentID != o.SegmentID || s.UserID != o.UserID || s.Name != o.Name ||
		s.AudienceSize != o.AudienceSize || !s.CreatedAt.Equal(o.CreatedAt) {
		return false
	}
	if len(s.Groups) != len(o.Groups) {
		return false
	}
	for i := range s.Groups {
		a, b := s.Groups[i], o.Groups[i]
		if a.Logic != b.Logic || len(a.Conditions) != len(b.Conditions) {
			return false
		}
		for j := range a.Conditions {
			if a.Conditions[j] != b.Conditions[j] {
				return false
			}
		}
	}
	return true
}

// ConditionCount returns the total number of conditions across all groups.
func (s *Segment) ConditionCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Conditions)
	}
	return n
}
