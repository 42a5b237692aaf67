// internal/segment/avro.go
package segment

import (
	"fmt"
	"time"

	"github.com/hamba/avro/v2"

	"github.com/solatis/audiencekeeper/internal/types"
)

// AvroSchema is the binary wire schema for a segment. createdAt is RFC 3339
// text with nanoseconds, the form the JSON document uses, and empty when the
// segment has no creation time.
const AvroSchema = `{
  "type": "record",
  "name": "Segment",
  "namespace": "io.audiencekeeper.avro",
  "fields": [
    {"name": "id", "type": "string"},
    {"name": "userId", "type": "string"},
    {"name": "name", "type": "string"},
    {"name": "groups", "type": {"type": "array", "items": {
      "type": "record",
      "name": "ConditionGroup",
      "fields": [
        {"name": "logic", "type": "string"},
        {"name": "conditions", "type": {"type": "array", "items": {
          "type": "record",
          "name": "Condition",
          "fields": [
            {"name": "field", "type": "string"},
            {"name": "operator", "type": "string"},
            {"name": "value", "type": "string"}
          ]
        }}}
      ]
    }}},
    {"name": "audienceSize", "type": "long"},
    {"name": "createdAt", "type": "string"}
  ]
}`

var avroSchema = avro.MustParse(AvroSchema)

type avroCondition struct {
	Field    string `avro:"field"`
	Operator string `avro:"operator"`
	Value    string `avro:"value"`
}

type avroGroup struct {
	Logic      string          `avro:"logic"`
	Conditions []avroCondition `avro:"conditions"`
}

type avroSegment struct {
	ID           string      `avro:"id"`
	UserID       string      `avro:"userId"`
	Name         string      `avro:"name"`
	Groups       []avroGroup `avro:"groups"`
	AudienceSize int64       `avro:"audienceSize"`
	CreatedAt    string      `avro:"createdAt"`
}

// MarshalAvro encodes a segment with AvroSchema.
func MarshalAvro(seg *types.Segment) ([]byte, error) {
	rec := avroSegment{
		ID:           string(seg.SegmentID),
		UserID:       seg.UserID,
		Name:         seg.Name,
		Groups:       make([]avroGroup, len(seg.Groups)),
		AudienceSize: int64(seg.AudienceSize),
	}
	if !seg.CreatedAt.IsZero() {
		rec.CreatedAt = seg.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	for i, g := range seg.Groups {
		ag := avroGroup{Logic: string(g.Logic), Conditions: make([]avroCondition, len(g.Conditions))}
		for j, c := range g.Conditions {
			ag.Conditions[j] = avroCondition{Field: c.Field, Operator: c.Operator, Value: c.Value}
		}
		rec.Groups[i] = ag
	}
	data, err := avro.Marshal(avroSchema, rec)
	if err != nil {
		return nil, fmt.Errorf("encode segment: %w", err)
	}
	return data, nil
}

// UnmarshalAvro decodes a segment written by MarshalAvro.
func UnmarshalAvro(data []byte) (*types.Segment, error) {
	var rec avroSegment
	if err := avro.Unmarshal(avroSchema, data, &rec); err != nil {
		return nil, fmt.Errorf("decode segment: %w", err)
	}
	seg := &types.Segment{
		SegmentID:    types.SegmentID(rec.ID),
		UserID:       rec.UserID,
		Name:         rec.Name,
		AudienceSize: int(rec.AudienceSize),
		Groups:       make([]types.ConditionGroup, len(rec.Groups)),
	}
	if rec.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("decode segment: invalid createdAt: %w", err)
		}
		seg.CreatedAt = t
	}
	for i, g := range rec.Groups {
		cg := types.ConditionGroup{Logic: types.Logic(g.Logic), Conditions: make([]types.Condition, len(g.Conditions))}
		for j, c := range g.Conditions {
			cg.Conditions[j] = types.Condition{Field: c.Field, Operator: c.Operator, Value: c.Value}
		}
		seg.Groups[i] = cg
	}
	return seg, nil
}
