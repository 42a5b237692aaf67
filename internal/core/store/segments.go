package store

import (
	"context"
	"fmt"
	"time"

	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// segmentRow mirrors the segments table. Groups are stored as the JSON
// array used on the wire.
type segmentRow struct {
	SegmentID    string `db:"segment_id"`
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	GroupsJSON   string `db:"groups_json"`
	AudienceSize int64  `db:"audience_size"`
	CreatedAt    string `db:"created_at"`
}

func (r segmentRow) segment() (*types.Segment, error) {
	groups, err := segment.UnmarshalGroups([]byte(r.GroupsJSON))
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", r.SegmentID, err)
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", r.SegmentID, err)
	}
	return &types.Segment{
		SegmentID:    types.SegmentID(r.SegmentID),
		UserID:       r.UserID,
		Name:         r.Name,
		Groups:       groups,
		AudienceSize: int(r.AudienceSize),
		CreatedAt:    createdAt,
	}, nil
}

// CreateSegment inserts seg. SegmentID and CreatedAt must already be set.
func (s *Store) CreateSegment(ctx context.Context, seg *types.Segment) error {
	groups, err := segment.MarshalGroups(seg.Groups)
	if err != nil {
		return err
	}
	created := FormatTime(seg.CreatedAt)
	_, err = s.queries.Exec(ctx, "insert-segment",
		string(seg.SegmentID), seg.UserID, seg.Name, string(groups),
		int64(seg.AudienceSize), created, created)
	if err != nil {
		return fmt.Errorf("failed to insert segment: %w", err)
	}
	return nil
}

// GetSegment loads one segment. Returns types.ErrNotFound if absent.
func (s *Store) GetSegment(ctx context.Context, id types.SegmentID) (*types.Segment, error) {
	var row segmentRow
	if err := s.queries.Get(ctx, "get-segment", &row, string(id)); err != nil {
		return nil, notFound(err, "segment "+string(id))
	}
	return row.segment()
}

// ListSegments returns the user's segments in creation order. An empty
// userID lists every segment.
func (s *Store) ListSegments(ctx context.Context, userID string) ([]*types.Segment, error) {
	var rows []segmentRow
	var err error
	if userID == "" {
		err = s.queries.Select(ctx, "list-segments", &rows)
	} else {
		err = s.queries.Select(ctx, "list-segments-by-user", &rows, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}

	out := make([]*types.Segment, 0, len(rows))
	for _, r := range rows {
		seg, err := r.segment()
		if err != nil {
			return nil, err
		}
		out = append(out, seg)
	}
	return out, nil
}

// ReplaceSegment overwrites name, groups and audience size. CreatedAt and
// the owner are never changed.
func (s *Store) ReplaceSegment(ctx context.Context, seg *types.Segment) error {
	groups, err := segment.MarshalGroups(seg.Groups)
	if err != nil {
		return err
	}
	res, err := s.queries.Exec(ctx, "replace-segment",
		seg.Name, string(groups), int64(seg.AudienceSize), FormatTime(time.Now()), string(seg.SegmentID))
	if err != nil {
		return fmt.Errorf("failed to replace segment: %w", err)
	}
	return affected(res, "segment "+string(seg.SegmentID))
}

// UpdateAudienceSize stores a refreshed audience size.
func (s *Store) UpdateAudienceSize(ctx context.Context, id types.SegmentID, size int) error {
	res, err := s.queries.Exec(ctx, "update-segment-audience-size",
		int64(size), FormatTime(time.Now()), string(id))
	if err != nil {
		return fmt.Errorf("failed to update audience size: %w", err)
	}
	return affected(res, "segment "+string(id))
}

// DeleteSegment removes a segment. Campaigns keep their segment ID.
func (s *Store) DeleteSegment(ctx context.Context, id types.SegmentID) error {
	res, err := s.queries.Exec(ctx, "delete-segment", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}
	return affected(res, "segment "+string(id))
}
