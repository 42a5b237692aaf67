// Package scope carries the acting user's identity through request contexts.
//
// The user id arrives with each request (HTTP header or query parameter,
// gRPC metadata) and lives only in that request's context.Context. There is
// no process-wide session.
package scope

import (
	"context"
	"net/http"
	"strings"
	"unicode"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/solatis/audiencekeeper/internal/types"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

// userIDKey is the context key for storing the acting user id.
const userIDKey = contextKey("user_id")

// Transport keys for the user id.
const (
	HeaderUserID   = "X-User-ID"
	QueryUserID    = "userId"
	MetadataUserID = "x-user-id"
)

// MaxUserIDLength bounds accepted user ids.
const MaxUserIDLength = 128

// ParseUserID trims and checks a user id taken from a request.
func ParseUserID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", types.ErrMissingUser
	}
	if len(id) > MaxUserIDLength {
		return "", ErrUserIDTooLong
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return "", ErrInvalidUserID
		}
	}
	return id, nil
}

// WithUserID returns a context carrying the user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the user id from context.
// Returns empty string if not found.
func UserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey).(string); ok {
		return userID
	}
	return ""
}

// RequireUserID returns the user id or types.ErrMissingUser.
func RequireUserID(ctx context.Context) (string, error) {
	if id := UserIDFromContext(ctx); id != "" {
		return id, nil
	}
	return "", types.ErrMissingUser
}

// Middleware copies the user id from the X-User-ID header, or failing that
// the userId query parameter, into the request context. Requests without one
// pass through unchanged; handlers that need a user call RequireUserID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			raw = r.URL.Query().Get(QueryUserID)
		}
		if raw != "" {
			id, err := ParseUserID(raw)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			r = r.WithContext(WithUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// UnaryInterceptor returns a gRPC interceptor that copies x-user-id metadata
// into the context. A malformed id is rejected with INVALID_ARGUMENT.
func UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return handler(ctx, req)
		}

		ids := md.Get(MetadataUserID)
		if len(ids) == 0 {
			return handler(ctx, req)
		}

		userID, err := ParseUserID(ids[0])
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		return handler(WithUserID(ctx, userID), req)
	}
}
