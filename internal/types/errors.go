package types

import "errors"

// Sentinel errors for audiencekeeper operations.
var (
	// ErrEmptyName indicates a segment name is empty after trimming.
	ErrEmptyName = errors.New("segment name is empty")

	// ErrNameTooLong indicates a segment name exceeds MaxNameLength.
	ErrNameTooLong = errors.New("segment name too long")

	// ErrNoGroups indicates a segment has no condition groups.
	ErrNoGroups = errors.New("segment has no condition groups")

	// ErrTooManyGroups indicates a segment exceeds MaxGroups.
	ErrTooManyGroups = errors.New("segment has too many condition groups")

	// ErrEmptyGroup indicates a condition group has no conditions.
	ErrEmptyGroup = errors.New("condition group is empty")

	// ErrTooManyConditions indicates a group exceeds MaxConditionsPerGroup.
	ErrTooManyConditions = errors.New("condition group has too many conditions")

	// ErrInvalidLogic indicates a group combinator other than AND/OR.
	ErrInvalidLogic = errors.New("logic must be AND or OR")

	// ErrMissingField indicates a condition without a field name.
	ErrMissingField = errors.New("condition field is required")

	// ErrUnknownField indicates a field name outside the customer attribute catalog.
	ErrUnknownField = errors.New("unknown customer field")

	// ErrMissingOperator indicates a condition without an operator.
	ErrMissingOperator = errors.New("condition operator is required")

	// ErrInvalidOperator indicates an unknown operator or one the field type does not support.
	ErrInvalidOperator = errors.New("invalid operator for field type")

	// ErrMissingValue indicates a condition without a comparison value.
	ErrMissingValue = errors.New("condition value is required")

	// ErrValueTooLong indicates a condition literal exceeds MaxValueLength.
	ErrValueTooLong = errors.New("condition value too long")

	// ErrInvalidEncoding indicates segment text that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("text is not valid UTF-8")

	// ErrCoercionFailed indicates a value could not be coerced to the field type.
	ErrCoercionFailed = errors.New("type coercion failed")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the record belongs to a different user.
	ErrForbidden = errors.New("record belongs to another user")

	// ErrMissingUser indicates a request carried no user identity.
	ErrMissingUser = errors.New("user id is required")

	// ErrInvalidState indicates an unknown campaign state.
	ErrInvalidState = errors.New("invalid campaign state")

	// ErrInvalidStatus indicates an unknown communication log status.
	ErrInvalidStatus = errors.New("invalid communication log status")

	// ErrEmptyTitle indicates a campaign without a title.
	ErrEmptyTitle = errors.New("campaign title is empty")

	// ErrBatchTooLarge indicates a customer ingest batch exceeds the configured maximum.
	ErrBatchTooLarge = errors.New("customer batch too large")
)
