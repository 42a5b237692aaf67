package scope

import "errors"

// User id errors. A missing id is types.ErrMissingUser so services and
// transports share one sentinel.
var (
	ErrUserIDTooLong = errors.New("user id too long")
	ErrInvalidUserID = errors.New("user id contains whitespace or control characters")
)
