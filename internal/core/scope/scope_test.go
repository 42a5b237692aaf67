package scope

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/solatis/audiencekeeper/internal/types"
)

func TestParseUserID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"user-1", "user-1", nil},
		{"  user-1 ", "user-1", nil},
		{"", "", types.ErrMissingUser},
		{"   ", "", types.ErrMissingUser},
		{"a b", "", ErrInvalidUserID},
		{"a\x00b", "", ErrInvalidUserID},
		{strings.Repeat("u", MaxUserIDLength+1), "", ErrUserIDTooLong},
	}
	for _, tt := range tests {
		got, err := ParseUserID(tt.in)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("ParseUserID(%q) = %q, %v, want %q, %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestRequireUserID(t *testing.T) {
	if _, err := RequireUserID(context.Background()); !errors.Is(err, types.ErrMissingUser) {
		t.Errorf("RequireUserID() error = %v, want ErrMissingUser", err)
	}
	id, err := RequireUserID(WithUserID(context.Background(), "u1"))
	if err != nil || id != "u1" {
		t.Errorf("RequireUserID() = %q, %v, want u1, nil", id, err)
	}
}

func TestMiddleware(t *testing.T) {
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserIDFromContext(r.Context())
	}))

	tests := []struct {
		name       string
		target     string
		header     string
		wantUser   string
		wantStatus int
	}{
		{"header", "/segments", "u-header", "u-header", http.StatusOK},
		{"query", "/segments?userId=u-query", "", "u-query", http.StatusOK},
		{"header wins", "/segments?userId=u-query", "u-header", "u-header", http.StatusOK},
		{"none", "/segments", "", "", http.StatusOK},
		{"invalid", "/segments?userId=a%20b", "", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(HeaderUserID, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v", rec.Code, tt.wantStatus)
			}
			if seen != tt.wantUser {
				t.Errorf("user = %q, want %q", seen, tt.wantUser)
			}
		})
	}
}

func TestUnaryInterceptor(t *testing.T) {
	interceptor := UnaryInterceptor()
	handler := func(ctx context.Context, req any) (any, error) {
		return UserIDFromContext(ctx), nil
	}
	info := &grpc.UnaryServerInfo{FullMethod: "/audiencekeeper.v1.AudienceService/CountAudience"}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(MetadataUserID, "u-grpc"))
	got, err := interceptor(ctx, nil, info, handler)
	if err != nil || got != "u-grpc" {
		t.Errorf("interceptor() = %v, %v, want u-grpc, nil", got, err)
	}

	got, err = interceptor(context.Background(), nil, info, handler)
	if err != nil || got != "" {
		t.Errorf("interceptor(no metadata) = %v, %v, want empty, nil", got, err)
	}

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs(MetadataUserID, "bad id"))
	_, err = interceptor(ctx, nil, info, handler)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("interceptor(bad id) code = %v, want InvalidArgument", status.Code(err))
	}
}
