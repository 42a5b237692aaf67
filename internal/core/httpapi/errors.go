package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/solatis/audiencekeeper/internal/core/logger"
	"github.com/solatis/audiencekeeper/internal/core/scope"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// Error codes returned in errorResponse.Code.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeBadRequest  = "BAD_REQUEST"
	CodeMissingUser = "MISSING_USER"
	CodeForbidden   = "FORBIDDEN"
	CodeNotFound    = "NOT_FOUND"
	CodeTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeTimeout     = "TIMEOUT"
	CodeInternal    = "INTERNAL"
)

type errorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []fieldDetail `json:"details,omitempty"`
}

// fieldDetail locates one validation failure. Group and Condition are
// omitted for segment-level errors.
type fieldDetail struct {
	Path      string `json:"path"`
	Group     *int   `json:"group,omitempty"`
	Condition *int   `json:"condition,omitempty"`
	Attribute string `json:"attribute"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

func index(i int) *int {
	if i < 0 {
		return nil
	}
	return &i
}

// kind names the error class a client can switch on.
func kind(e *segment.ValidationError) string {
	switch {
	case e.IsUnknownField():
		return "UnknownFieldError"
	case e.IsCoercion():
		return "TypeCoercionError"
	default:
		return "ValidationError"
	}
}

func validationDetails(verrs segment.ValidationErrors) []fieldDetail {
	out := make([]fieldDetail, len(verrs))
	for i, e := range verrs {
		msg := e.Message
		if msg == "" {
			msg = e.Err.Error()
		}
		out[i] = fieldDetail{
			Path:      e.Path(),
			Group:     index(e.Group),
			Condition: index(e.Condition),
			Attribute: e.Attribute,
			Kind:      kind(e),
			Message:   msg,
		}
	}
	return out
}

// writeError maps err onto a status code and error body. Unexpected errors
// are logged and reported without their cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if verrs, ok := segment.AsValidationErrors(err); ok {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{
			Code:    CodeValidation,
			Message: "segment definition is invalid",
			Details: validationDetails(verrs),
		})
		return
	}

	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, types.ErrMissingUser):
		h.respondError(w, http.StatusUnauthorized, CodeMissingUser, err.Error())
	case errors.Is(err, types.ErrForbidden):
		h.respondError(w, http.StatusForbidden, CodeForbidden, err.Error())
	case errors.Is(err, types.ErrNotFound):
		h.respondError(w, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.As(err, &maxBytes):
		h.respondError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "request body too large")
	case errors.Is(err, types.ErrBatchTooLarge):
		h.respondError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, err.Error())
	case errors.Is(err, types.ErrEmptyTitle),
		errors.Is(err, types.ErrNameTooLong),
		errors.Is(err, types.ErrInvalidState),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrCoercionFailed),
		errors.Is(err, scope.ErrUserIDTooLong),
		errors.Is(err, scope.ErrInvalidUserID),
		errors.Is(err, errBadRequest):
		h.respondError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, http.StatusGatewayTimeout, CodeTimeout, "request timed out")
	default:
		logger.FromContext(r.Context()).Errorw("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		h.respondError(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
