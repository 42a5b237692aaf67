// internal/segment/serialize.go
package segment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/solatis/audiencekeeper/internal/types"
)

/*
 * JSON wire format.
 *
 * The document shape is the one CRM clients already send and render:
 *
 *   {"_id": "...", "userId": "...", "name": "...",
 *    "conditions": [{"logic": "AND", "conditions": [
 *        {"field": "totalSpend", "operator": ">", "value": "100"}]}],
 *    "audienceSize": 12, "createdAt": "2024-03-05T10:00:00.123456Z"}
 *
 * Decoding accepts "groups" as an alias of the top-level "conditions" and
 * numeric or boolean JSON literals for "value"; the literal text is kept
 * verbatim. Encoding always writes "conditions" and string values, so
 * Unmarshal(Marshal(s)) reproduces s exactly, order included.
 */

// ConditionDocument is the wire form of a condition.
type ConditionDocument struct {
	Field    string  `json:"field"`
	Operator string  `json:"operator"`
	Value    Literal `json:"value"`
}

// GroupDocument is the wire form of a condition group.
type GroupDocument struct {
	Logic      string              `json:"logic,omitempty"`
	Conditions []ConditionDocument `json:"conditions"`
}

// Document is the wire form of a segment.
type Document struct {
	ID           string          `json:"_id,omitempty"`
	UserID       string          `json:"userId,omitempty"`
	Name         string          `json:"name"`
	Conditions   []GroupDocument `json:"conditions"`
	Groups       []GroupDocument `json:"groups,omitempty"`
	AudienceSize int             `json:"audienceSize"`
	CreatedAt    string          `json:"createdAt,omitempty"`
}

// Literal is a condition value that decodes from a JSON string, number or
// boolean and always encodes as a string.
type Literal string

// UnmarshalJSON implements json.Unmarshaler.
func (l *Literal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*l = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Literal(s)
		return nil
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("condition value must be a string or number, got %s", data)
	default:
		// Numbers and booleans keep their literal text
		*l = Literal(data)
		return nil
	}
}

// NewDocument converts a segment to its wire form.
func NewDocument(seg *types.Segment) Document {
	doc := Document{
		ID:           string(seg.SegmentID),
		UserID:       seg.UserID,
		Name:         seg.Name,
		Conditions:   make([]GroupDocument, len(seg.Groups)),
		AudienceSize: seg.AudienceSize,
	}
	if !seg.CreatedAt.IsZero() {
		doc.CreatedAt = seg.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	for i, g := range seg.Groups {
		gd := GroupDocument{
			Logic:      string(g.Logic),
			Conditions: make([]ConditionDocument, len(g.Conditions)),
		}
		for j, c := range g.Conditions {
			gd.Conditions[j] = ConditionDocument{Field: c.Field, Operator: c.Operator, Value: Literal(c.Value)}
		}
		doc.Conditions[i] = gd
	}
	return doc
}

// Segment converts the wire form back to a segment. It does not validate
// the definition; pass the result to Validate.
func (d Document) Segment() (*types.Segment, error) {
	groups := d.Conditions
	if len(groups) == 0 {
		groups = d.Groups
	}
	seg := &types.Segment{
		SegmentID:    types.SegmentID(d.ID),
		UserID:       d.UserID,
		Name:         d.Name,
		AudienceSize: d.AudienceSize,
		Groups:       make([]types.ConditionGroup, len(groups)),
	}
	if d.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid createdAt: %w", err)
		}
		seg.CreatedAt = t
	}
	for i, g := range groups {
		cg := types.ConditionGroup{
			Logic:      types.Logic(g.Logic),
			Conditions: make([]types.Condition, len(g.Conditions)),
		}
		for j, c := range g.Conditions {
			cg.Conditions[j] = types.Condition{Field: c.Field, Operator: c.Operator, Value: string(c.Value)}
		}
		seg.Groups[i] = cg
	}
	return seg, nil
}

// Marshal encodes a segment as JSON.
func Marshal(seg *types.Segment) ([]byte, error) {
	return json.Marshal(NewDocument(seg))
}

// Unmarshal decodes a JSON segment document.
func Unmarshal(data []byte) (*types.Segment, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode segment: %w", err)
	}
	return doc.Segment()
}

// MarshalGroups encodes only the condition groups, the form persisted in
// the segments table.
func MarshalGroups(groups []types.ConditionGroup) ([]byte, error) {
	return json.Marshal(NewDocument(&types.Segment{Groups: groups}).Conditions)
}

// UnmarshalGroups decodes groups written by MarshalGroups.
func UnmarshalGroups(data []byte) ([]types.ConditionGroup, error) {
	var docs []GroupDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode condition groups: %w", err)
	}
	seg, err := Document{Conditions: docs}.Segment()
	if err != nil {
		return nil, err
	}
	return seg.Groups, nil
}

// CustomerDocument is the wire form of an evaluator input:
//
//	{"id": "c1", "attributes": {"totalSpend": 150, "city": "Pune"}}
//
// Attribute names resolve through the field catalog, so "total_spend" and
// "totalSpend" address the same attribute. Unknown names are kept and never
// match a condition.
type CustomerDocument struct {
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
}

// Customer converts the document to the evaluator's attribute bag.
func (d CustomerDocument) Customer() types.Customer {
	attrs := make(map[string]any, len(d.Attributes))
	for k, v := range d.Attributes {
		if f, ok := LookupField(k); ok {
			k = f.Name
		}
		attrs[k] = v
	}
	return types.Customer{ID: types.CustomerID(d.ID), Attributes: attrs}
}

// DecodeCustomers reads a JSON array of customer documents, or an object
// holding one under "customers". Numbers are kept as json.Number so large
// spend values compare exactly.
func DecodeCustomers(r io.Reader) ([]types.Customer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read customers: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	var docs []CustomerDocument
	if len(raw) > 0 && raw[0] == '{' {
		var wrapped struct {
			Customers []CustomerDocument `json:"customers"`
		}
		if err := decodeNumbers(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("decode customers: %w", err)
		}
		docs = wrapped.Customers
	} else if err := decodeNumbers(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}

	out := make([]types.Customer, len(docs))
	for i, d := range docs {
		out[i] = d.Customer()
	}
	return out, nil
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
