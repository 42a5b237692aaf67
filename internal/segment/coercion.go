// internal/segment/coercion.go
package segment

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/solatis/audiencekeeper/internal/types"
)

/*
 * Type coercion for segment evaluation.
 *
 * Both sides of a comparison pass through Coerce: condition literals once at
 * validation time, customer attributes on every evaluation. A failure on the
 * literal side is a validation error; a failure on the customer side makes
 * the condition false.
 *
 * Null values and coercion failures are distinct: nil input yields IsNull,
 * an unparseable value yields ErrCoercionFailed. The evaluator treats both
 * as a non-match but the validator only ever sees strings.
 *
 * Type modes:
 *   - NUMERIC: Strict - numbers and numeric strings to decimal, reject booleans
 *   - DATE: Strict - time.Time and date strings, truncated to the UTC date
 *   - TEXT: Lenient - auto-coerce scalars to string, surrounding space trimmed
 */

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DateLayout is the canonical calendar-date form.
const DateLayout = "2006-01-02"

// Value is a typed comparison operand.
type Value struct {
	Type   FieldType
	Number decimal.Decimal
	Date   time.Time // midnight UTC
	Text   string
}

// String renders the value in its canonical form.
func (v Value) String() string {
	switch v.Type {
	case FieldTypeNumeric:
		return v.Number.String()
	case FieldTypeDate:
		return v.Date.Format(DateLayout)
	default:
		return v.Text
	}
}

// Equal reports whether two values have the same type and denote the same quantity.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case FieldTypeNumeric:
		return v.Number.Equal(o.Number)
	case FieldTypeDate:
		return v.Date.Equal(o.Date)
	default:
		return v.Text == o.Text
	}
}

// CoercionResult holds the coerced value or indicates null.
type CoercionResult struct {
	Value  Value // valid only if !IsNull
	IsNull bool  // true if input was nil
}

// Coerce attempts to convert value to the expected field type.
// Returns CoercionResult with IsNull=true for nil input.
// Returns ErrCoercionFailed for impossible coercions.
func Coerce(value any, fieldType FieldType) (CoercionResult, error) {
	if value == nil {
		return CoercionResult{IsNull: true}, nil
	}

	switch fieldType {
	case FieldTypeNumeric:
		return coerceNumeric(value)
	case FieldTypeDate:
		return coerceDate(value)
	case FieldTypeText:
		return coerceText(value)
	default:
		return CoercionResult{}, types.ErrCoercionFailed
	}
}

// Bounds on accepted decimals. Comparisons rescale both operands to the
// smaller exponent, so an unbounded exponent turns one comparison into an
// arbitrarily large power of ten. The exponent range covers every finite
// float64.
const (
	maxNumericExponent = 400
	maxNumericDigits   = 100
)

func numeric(d decimal.Decimal) (CoercionResult, error) {
	if d.IsZero() {
		d = decimal.Zero
	}
	if exp := d.Exponent(); exp > maxNumericExponent || exp < -maxNumericExponent || d.NumDigits() > maxNumericDigits {
		return CoercionResult{}, fmt.Errorf("%w: numeric value out of range", types.ErrCoercionFailed)
	}
	return CoercionResult{Value: Value{Type: FieldTypeNumeric, Number: d}}, nil
}

// coerceNumeric converts value to an exact decimal.
// Accepts Go numeric kinds, json.Number, decimal.Decimal and numeric strings.
// Rejects booleans, NaN and infinities.
func coerceNumeric(value any) (CoercionResult, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return numeric(v)
	case *decimal.Decimal:
		if v == nil {
			return CoercionResult{IsNull: true}, nil
		}
		return numeric(*v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return CoercionResult{}, types.ErrCoercionFailed
		}
		return numeric(decimal.NewFromFloat(v))
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return CoercionResult{}, types.ErrCoercionFailed
		}
		return numeric(decimal.NewFromFloat32(v))
	case int:
		return numeric(decimal.NewFromInt(int64(v)))
	case int32:
		return numeric(decimal.NewFromInt32(v))
	case int64:
		return numeric(decimal.NewFromInt(v))
	case uint32:
		return numeric(decimal.NewFromInt(int64(v)))
	case json.Number:
		return parseNumeric(string(v))
	case string:
		return parseNumeric(v)
	case bool:
		// Strict mode: reject boolean-to-numeric coercion
		return CoercionResult{}, types.ErrCoercionFailed
	default:
		return CoercionResult{}, types.ErrCoercionFailed
	}
}

func parseNumeric(s string) (CoercionResult, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		// Empty/whitespace-only strings are not valid numbers
		return CoercionResult{}, types.ErrCoercionFailed
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return CoercionResult{}, types.ErrCoercionFailed
	}
	return numeric(d)
}

// coerceDate converts value to midnight UTC of its calendar date.
// Timestamps with an offset are moved to UTC before truncation.
func coerceDate(value any) (CoercionResult, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return CoercionResult{IsNull: true}, nil
		}
		return dateOf(v), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return CoercionResult{IsNull: true}, nil
		}
		return dateOf(*v), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return CoercionResult{}, types.ErrCoercionFailed
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOf(t), nil
			}
		}
		return CoercionResult{}, types.ErrCoercionFailed
	default:
		return CoercionResult{}, types.ErrCoercionFailed
	}
}

func dateOf(t time.Time) CoercionResult {
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return CoercionResult{Value: Value{Type: FieldTypeDate, Date: d}}
}

// coerceText converts scalars to their string form for equality.
func coerceText(value any) (CoercionResult, error) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return CoercionResult{IsNull: true}, nil
		}
		s = *v
	case fmt.Stringer:
		s = v.String()
	case bool, int, int32, int64, float32, float64, json.Number:
		s = fmt.Sprintf("%v", v)
	default:
		return CoercionResult{}, types.ErrCoercionFailed
	}
	return CoercionResult{Value: Value{Type: FieldTypeText, Text: strings.TrimSpace(s)}}, nil
}
