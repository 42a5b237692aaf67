// internal/segment/fields.go
package segment

import (
	"strings"

	"github.com/solatis/audiencekeeper/internal/types"
)

/*
 * Customer attribute catalog.
 *
 * Every condition names one catalog field. The field fixes the value type
 * the literal must parse into, the operators allowed against it, and the
 * customer column used for SQL pushdown.
 *
 * Name matching is case-insensitive and ignores '_', '-' and spaces, so
 * "total_spend", "TotalSpend" and "totalSpend" resolve to the same field.
 * A few legacy spellings used by older clients are kept as aliases.
 *
 * Field types:
 *   - NUMERIC: exact decimal comparison, all five operators
 *   - DATE: UTC calendar-date comparison, all five operators
 *   - TEXT: exact equality only
 */

// FieldType is the declared value type of a catalog field.
type FieldType int

const (
	FieldTypeUnspecified FieldType = iota
	FieldTypeNumeric
	FieldTypeDate
	FieldTypeText
)

func (t FieldType) String() string {
	switch t {
	case FieldTypeNumeric:
		return "numeric"
	case FieldTypeDate:
		return "date"
	case FieldTypeText:
		return "text"
	default:
		return "unspecified"
	}
}

// Field describes one customer attribute that segments may reference.
type Field struct {
	Name   string // canonical attribute name
	Type   FieldType
	Column string // customers table column
}

// Supports reports whether op may be applied to the field.
func (f Field) Supports(op Operator) bool {
	if op == OpUnspecified {
		return false
	}
	if f.Type == FieldTypeText {
		return op == OpEq
	}
	return true
}

var catalog = []Field{
	{Name: types.AttrTotalSpend, Type: FieldTypeNumeric, Column: "total_spend"},
	{Name: types.AttrVisits, Type: FieldTypeNumeric, Column: "visits"},
	{Name: types.AttrLastVisit, Type: FieldTypeDate, Column: "last_visit"},
	{Name: types.AttrCity, Type: FieldTypeText, Column: "city"},
}

var fieldAliases = map[string]string{
	"spend":         types.AttrTotalSpend,
	"totalspending": types.AttrTotalSpend,
	"visitcount":    types.AttrVisits,
	"lastvisited":   types.AttrLastVisit,
	"lastvisitdate": types.AttrLastVisit,
}

var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]Field {
	idx := make(map[string]Field, len(catalog)+len(fieldAliases))
	for _, f := range catalog {
		idx[fieldKey(f.Name)] = f
	}
	for alias, name := range fieldAliases {
		idx[alias] = idx[fieldKey(name)]
	}
	return idx
}

// fieldKey folds a user-supplied field name to its lookup key.
func fieldKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LookupField resolves a field name (any accepted spelling) to its catalog entry.
func LookupField(name string) (Field, bool) {
	f, ok := fieldIndex[fieldKey(name)]
	return f, ok
}

// Fields returns the catalog in declaration order.
func Fields() []Field {
	out := make([]Field, len(catalog))
	copy(out, catalog)
	return out
}
