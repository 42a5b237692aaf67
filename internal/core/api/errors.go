package api

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/solatis/audiencekeeper/internal/core/logger"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// toStatus maps service and engine errors onto gRPC status codes.
// Validation errors carry a BadRequest detail with one violation per
// location. Errors without a sentinel come from the database and map to
// UNAVAILABLE.
func toStatus(ctx context.Context, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	if verrs, ok := segment.AsValidationErrors(err); ok {
		br := &errdetails.BadRequest{}
		for _, e := range verrs {
			msg := e.Message
			if msg == "" {
				msg = e.Err.Error()
			}
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       e.Path(),
				Description: msg,
			})
		}
		st := status.New(codes.InvalidArgument, verrs.Error())
		if detailed, derr := st.WithDetails(br); derr == nil {
			st = detailed
		}
		return st.Err()
	}

	switch {
	case errors.Is(err, types.ErrMissingUser):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, types.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, types.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, types.ErrCoercionFailed):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		logger.Error(ctx, "rpc failed", "error", err)
		return status.Error(codes.Unavailable, "audience store unavailable")
	}
}
