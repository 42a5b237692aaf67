package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/solatis/audiencekeeper/internal/core/config"
	"github.com/solatis/audiencekeeper/internal/core/tracing"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// Audience is a segment's audience size with a bounded sample of member IDs.
type Audience struct {
	Size        int
	Capped      bool // CustomerIDs holds fewer than Size entries
	CustomerIDs []types.CustomerID
}

// countAudience computes the audience size with the configured strategy.
func (s *Service) countAudience(ctx context.Context, compiled *segment.CompiledSegment) (int, error) {
	if s.cfg.Strategy == config.StrategySQL {
		return s.store.CountMatching(ctx, compiled)
	}

	cur := s.store.Customers(ctx)
	n, _, err := segment.Count(ctx, compiled, cur.All(), 0)
	if err != nil {
		return 0, err
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	return n, nil
}

// audience returns the size and up to limit member IDs (limit <= 0: all).
func (s *Service) audience(ctx context.Context, compiled *segment.CompiledSegment, limit int) (Audience, error) {
	if s.cfg.Strategy == config.StrategySQL {
		n, err := s.store.CountMatching(ctx, compiled)
		if err != nil {
			return Audience{}, err
		}
		ids, err := s.store.MatchingIDs(ctx, compiled, limit)
		if err != nil {
			return Audience{}, err
		}
		return Audience{Size: n, Capped: len(ids) < n, CustomerIDs: ids}, nil
	}

	cur := s.store.Customers(ctx)
	var a Audience
	done := ctx.Done()
	for c := range segment.Filter(compiled, cur.All()) {
		select {
		case <-done:
			return Audience{}, ctx.Err()
		default:
		}
		a.Size++
		if limit <= 0 || len(a.CustomerIDs) < limit {
			a.CustomerIDs = append(a.CustomerIDs, c.ID)
		}
	}
	if err := cur.Err(); err != nil {
		return Audience{}, err
	}
	a.Capped = len(a.CustomerIDs) < a.Size
	return a, nil
}

// PreviewSegment validates a definition and returns its audience size
// without persisting anything. An empty name is allowed.
func (s *Service) PreviewSegment(ctx context.Context, seg *types.Segment) (n int, err error) {
	ctx, span := tracing.Start(ctx, "segment.preview")
	defer func() { finish(span, err) }()

	draft := *seg
	if draft.Name == "" {
		draft.Name = "preview"
	}
	compiled, err := segment.Validate(&draft)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("segment.conditions", draft.ConditionCount()))
	return s.countAudience(ctx, compiled)
}

// SegmentAudience evaluates a stored segment for its owner.
func (s *Service) SegmentAudience(ctx context.Context, userID string, id types.SegmentID, limit int) (a Audience, err error) {
	ctx, span := tracing.Start(ctx, "segment.audience")
	defer func() { finish(span, err) }()

	seg, err := s.owned(ctx, userID, id)
	if err != nil {
		return Audience{}, err
	}
	compiled, err := segment.Validate(seg)
	if err != nil {
		return Audience{}, fmt.Errorf("stored segment %s is invalid: %w", id, err)
	}
	if limit <= 0 || limit > s.cfg.PreviewLimit {
		limit = s.cfg.PreviewLimit
	}
	return s.audience(ctx, compiled, limit)
}

// CountAudience returns the live audience size of a stored segment.
func (s *Service) CountAudience(ctx context.Context, userID string, id types.SegmentID) (n int, err error) {
	ctx, span := tracing.Start(ctx, "segment.count")
	defer func() { finish(span, err) }()

	seg, err := s.owned(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	compiled, err := segment.Validate(seg)
	if err != nil {
		return 0, fmt.Errorf("stored segment %s is invalid: %w", id, err)
	}
	return s.countAudience(ctx, compiled)
}

// RefreshAudiences recomputes and stores the audience size of every
// segment, at most RefreshConcurrency at a time. Returns the number of
// segments refreshed.
func (s *Service) RefreshAudiences(ctx context.Context) (refreshed int, err error) {
	ctx, span := tracing.Start(ctx, "segment.refresh")
	defer func() { finish(span, err) }()

	segments, err := s.store.ListSegments(ctx, "")
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("segment.count", len(segments)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.RefreshConcurrency)
	for _, seg := range segments {
		g.Go(func() error {
			compiled, err := segment.Validate(seg)
			if err != nil {
				// Stored definitions are validated on write; skip rather
				// than block every other refresh.
				s.log.WithContext(gctx).Warnw("skipping invalid stored segment",
					"segment_id", seg.SegmentID, "error", err)
				return nil
			}
			n, err := s.countAudience(gctx, compiled)
			if err != nil {
				return fmt.Errorf("segment %s: %w", seg.SegmentID, err)
			}
			if n == seg.AudienceSize {
				return nil
			}
			return s.store.UpdateAudienceSize(gctx, seg.SegmentID, n)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	s.log.WithContext(ctx).Debugw("audiences refreshed", "segments", len(segments))
	return len(segments), nil
}

// IngestCustomers upserts a batch of customers and refreshes every
// segment's audience size.
func (s *Service) IngestCustomers(ctx context.Context, profiles []types.CustomerProfile) (ids []types.CustomerID, err error) {
	ctx, span := tracing.Start(ctx, "customer.ingest")
	defer func() { finish(span, err) }()

	if len(profiles) > s.cfg.MaxIngestBatch {
		return nil, fmt.Errorf("%d customers, maximum %d: %w", len(profiles), s.cfg.MaxIngestBatch, types.ErrBatchTooLarge)
	}
	span.SetAttributes(attribute.Int("customer.count", len(profiles)))

	ids, err = s.store.UpsertCustomers(ctx, profiles)
	if err != nil {
		return nil, err
	}
	if _, err := s.RefreshAudiences(ctx); err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Infow("customers ingested", "count", len(ids))
	return ids, nil
}
