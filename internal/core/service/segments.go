package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/solatis/audiencekeeper/internal/core/tracing"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// ListSegments returns the user's segments in creation order.
func (s *Service) ListSegments(ctx context.Context, userID string) ([]*types.Segment, error) {
	if userID == "" {
		return nil, types.ErrMissingUser
	}
	return s.store.ListSegments(ctx, userID)
}

// GetSegment returns one of the user's segments.
func (s *Service) GetSegment(ctx context.Context, userID string, id types.SegmentID) (*types.Segment, error) {
	if userID == "" {
		return nil, types.ErrMissingUser
	}
	return s.owned(ctx, userID, id)
}

// CreateSegment validates, normalizes and persists a new segment with a
// freshly computed audience size. The returned segment is the stored form.
func (s *Service) CreateSegment(ctx context.Context, userID string, seg *types.Segment) (out *types.Segment, err error) {
	ctx, span := tracing.Start(ctx, "segment.create")
	defer func() { finish(span, err) }()

	if userID == "" {
		return nil, types.ErrMissingUser
	}
	compiled, err := segment.Validate(seg)
	if err != nil {
		return nil, err
	}

	size, err := s.countAudience(ctx, compiled)
	if err != nil {
		return nil, err
	}

	out = compiled.Segment()
	out.SegmentID = types.NewSegmentID()
	out.UserID = userID
	out.AudienceSize = size
	out.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	if err := s.store.CreateSegment(ctx, out); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("segment.id", string(out.SegmentID)),
		attribute.Int("segment.audience_size", size),
	)
	s.log.WithContext(ctx).Infow("segment created",
		"segment_id", out.SegmentID, "groups", len(out.Groups), "audience_size", size)
	return out, nil
}

// ReplaceSegment replaces the definition of one of the user's segments.
// ID, owner and CreatedAt are preserved.
func (s *Service) ReplaceSegment(ctx context.Context, userID string, id types.SegmentID, seg *types.Segment) (out *types.Segment, err error) {
	ctx, span := tracing.Start(ctx, "segment.replace", traceSegment(id))
	defer func() { finish(span, err) }()

	if userID == "" {
		return nil, types.ErrMissingUser
	}
	existing, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	compiled, err := segment.Validate(seg)
	if err != nil {
		return nil, err
	}
	size, err := s.countAudience(ctx, compiled)
	if err != nil {
		return nil, err
	}

	out = compiled.Segment()
	out.SegmentID = existing.SegmentID
	out.UserID = existing.UserID
	out.CreatedAt = existing.CreatedAt
	out.AudienceSize = size

	if err := s.store.ReplaceSegment(ctx, out); err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Infow("segment replaced", "segment_id", id, "audience_size", size)
	return out, nil
}

// DeleteSegment removes one of the user's segments.
func (s *Service) DeleteSegment(ctx context.Context, userID string, id types.SegmentID) (err error) {
	ctx, span := tracing.Start(ctx, "segment.delete", traceSegment(id))
	defer func() { finish(span, err) }()

	if userID == "" {
		return types.ErrMissingUser
	}
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.DeleteSegment(ctx, id); err != nil {
		return err
	}
	s.log.WithContext(ctx).Infow("segment deleted", "segment_id", id)
	return nil
}
