package api

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/solatis/audiencekeeper/internal/protobuf/audiencekeeper/audience/v1"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// segmentFromProto converts a wire segment. A nil segment yields an empty
// definition so the validator reports what is missing.
func segmentFromProto(p *pb.Segment) *types.Segment {
	seg := &types.Segment{
		SegmentID:    types.SegmentID(p.GetId()),
		UserID:       p.GetUserId(),
		Name:         p.GetName(),
		AudienceSize: int(p.GetAudienceSize()),
		Groups:       make([]types.ConditionGroup, len(p.GetGroups())),
	}
	if p.GetCreatedAt() != nil {
		seg.CreatedAt = p.GetCreatedAt().AsTime()
	}
	for i, g := range p.GetGroups() {
		cg := types.ConditionGroup{
			Logic:      types.Logic(g.GetLogic()),
			Conditions: make([]types.Condition, len(g.GetConditions())),
		}
		for j, c := range g.GetConditions() {
			cg.Conditions[j] = types.Condition{Field: c.GetField(), Operator: c.GetOperator(), Value: c.GetValue()}
		}
		seg.Groups[i] = cg
	}
	return seg
}

func segmentToProto(seg *types.Segment) *pb.Segment {
	p := &pb.Segment{
		Id:           string(seg.SegmentID),
		UserId:       seg.UserID,
		Name:         seg.Name,
		AudienceSize: int64(seg.AudienceSize),
		Groups:       make([]*pb.ConditionGroup, len(seg.Groups)),
	}
	if !seg.CreatedAt.IsZero() {
		p.CreatedAt = timestamppb.New(seg.CreatedAt)
	}
	for i, g := range seg.Groups {
		pg := &pb.ConditionGroup{
			Logic:      string(g.Logic),
			Conditions: make([]*pb.Condition, len(g.Conditions)),
		}
		for j, c := range g.Conditions {
			pg.Conditions[j] = &pb.Condition{Field: c.Field, Operator: c.Operator, Value: c.Value}
		}
		p.Groups[i] = pg
	}
	return p
}

// customerFromProto resolves attribute names through the field catalog.
// Values stay text and are coerced per field during evaluation.
func customerFromProto(p *pb.Customer) types.Customer {
	attrs := make(map[string]any, len(p.GetAttributes()))
	for k, v := range p.GetAttributes() {
		attrs[k] = v
	}
	return segment.CustomerDocument{ID: p.GetId(), Attributes: attrs}.Customer()
}
