// Package api provides the gRPC AudienceService for backends that evaluate
// segments without going through the REST API.
package api

import (
	"context"
	"fmt"
	"slices"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/solatis/audiencekeeper/internal/core/scope"
	"github.com/solatis/audiencekeeper/internal/core/service"
	pb "github.com/solatis/audiencekeeper/internal/protobuf/audiencekeeper/audience/v1"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// ServiceName is the fully qualified gRPC service name, also used for the
// health status of the service.
var ServiceName = pb.AudienceService_ServiceDesc.ServiceName

// MaxEvaluateCustomers bounds the inline population of one EvaluateSegment call.
const MaxEvaluateCustomers = 100_000

// AudienceService implements pb.AudienceServiceServer. Thin orchestration
// layer delegating to the segment engine and the service layer.
type AudienceService struct {
	pb.UnimplementedAudienceServiceServer
	svc *service.Service
}

// NewAudienceService creates the gRPC service over svc.
func NewAudienceService(svc *service.Service) (*AudienceService, error) {
	if svc == nil {
		return nil, fmt.Errorf("svc cannot be nil")
	}
	return &AudienceService{svc: svc}, nil
}

// ValidateSegment validates and normalizes a segment without storing it.
func (s *AudienceService) ValidateSegment(ctx context.Context, req *pb.ValidateSegmentRequest) (*pb.ValidateSegmentResponse, error) {
	compiled, err := segment.Validate(segmentFromProto(req.GetSegment()))
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pb.ValidateSegmentResponse{
		Segment: segmentToProto(compiled.Segment()),
		Cost:    int64(compiled.Cost),
	}, nil
}

// EvaluateSegment runs the evaluator over the customers in the request.
func (s *AudienceService) EvaluateSegment(ctx context.Context, req *pb.EvaluateSegmentRequest) (*pb.EvaluateSegmentResponse, error) {
	if len(req.GetCustomers()) > MaxEvaluateCustomers {
		return nil, status.Errorf(codes.InvalidArgument,
			"at most %d customers per request, got %d", MaxEvaluateCustomers, len(req.GetCustomers()))
	}
	if req.GetLimit() < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	}
	limit := int(min(req.GetLimit(), MaxEvaluateCustomers))

	compiled, err := segment.Validate(segmentFromProto(req.GetSegment()))
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	customers := make([]types.Customer, len(req.GetCustomers()))
	for i, c := range req.GetCustomers() {
		customers[i] = customerFromProto(c)
	}

	if req.GetCountOnly() {
		n, capped, err := segment.Count(ctx, compiled, slices.Values(customers), limit)
		if err != nil {
			return nil, toStatus(ctx, err)
		}
		return &pb.EvaluateSegmentResponse{Count: int64(n), Capped: capped}, nil
	}

	res, err := segment.Evaluate(ctx, compiled, slices.Values(customers))
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	resp := &pb.EvaluateSegmentResponse{Count: int64(res.Count)}
	for _, c := range res.Matches {
		if limit > 0 && len(resp.CustomerIds) == limit {
			resp.Capped = true
			break
		}
		resp.CustomerIds = append(resp.CustomerIds, string(c.ID))
	}
	return resp, nil
}

// CountAudience returns the live audience size of a stored segment owned
// by the caller named in x-user-id metadata.
func (s *AudienceService) CountAudience(ctx context.Context, req *pb.CountAudienceRequest) (*pb.CountAudienceResponse, error) {
	userID, err := scope.RequireUserID(ctx)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	id, err := types.ParseSegmentID(req.GetSegmentId())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid segment id %q", req.GetSegmentId())
	}
	n, err := s.svc.CountAudience(ctx, userID, id)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &pb.CountAudienceResponse{SegmentId: string(id), AudienceSize: int64(n)}, nil
}
